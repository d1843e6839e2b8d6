// integration/fetchers.go

package integration

import (
	"context"

	"github.com/talentedge/console-api/model"
)

// The integration layer treats the per-domain lookups as black boxes to be
// cached, permission-gated, audited and formatted. The dao package provides
// the relational implementations.

type PaymentFetcher interface {
	FetchPaymentData(ctx context.Context, candidateID string) (*model.PaymentData, error)
}

type AccountFetcher interface {
	FetchAccountData(ctx context.Context, candidateID string) (*model.AccountData, error)
}

type JobFetcher interface {
	FetchJobsData(ctx context.Context, candidateID string) (*model.JobsData, error)
}

type WithdrawalFetcher interface {
	FetchWithdrawalData(ctx context.Context, candidateID string) (*model.WithdrawalData, error)
}

type InterviewFetcher interface {
	FetchInterviewData(ctx context.Context, candidateID string) (*model.InterviewData, error)
}

// Fetchers bundles the five domain fetchers the facade fans out to.
type Fetchers struct {
	Payment    PaymentFetcher
	Account    AccountFetcher
	Jobs       JobFetcher
	Withdrawal WithdrawalFetcher
	Interview  InterviewFetcher
}
