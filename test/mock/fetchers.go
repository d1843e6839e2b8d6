// test/mock/fetchers.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/talentedge/console-api/model"
)

// MockPaymentFetcher is a mock implementation of integration.PaymentFetcher
type MockPaymentFetcher struct {
	mock.Mock
}

func (m *MockPaymentFetcher) FetchPaymentData(ctx context.Context, candidateID string) (*model.PaymentData, error) {
	args := m.Called(ctx, candidateID)
	data, _ := args.Get(0).(*model.PaymentData)
	return data, args.Error(1)
}

// MockAccountFetcher is a mock implementation of integration.AccountFetcher
type MockAccountFetcher struct {
	mock.Mock
}

func (m *MockAccountFetcher) FetchAccountData(ctx context.Context, candidateID string) (*model.AccountData, error) {
	args := m.Called(ctx, candidateID)
	data, _ := args.Get(0).(*model.AccountData)
	return data, args.Error(1)
}

// MockJobFetcher is a mock implementation of integration.JobFetcher
type MockJobFetcher struct {
	mock.Mock
}

func (m *MockJobFetcher) FetchJobsData(ctx context.Context, candidateID string) (*model.JobsData, error) {
	args := m.Called(ctx, candidateID)
	data, _ := args.Get(0).(*model.JobsData)
	return data, args.Error(1)
}

// MockWithdrawalFetcher is a mock implementation of integration.WithdrawalFetcher
type MockWithdrawalFetcher struct {
	mock.Mock
}

func (m *MockWithdrawalFetcher) FetchWithdrawalData(ctx context.Context, candidateID string) (*model.WithdrawalData, error) {
	args := m.Called(ctx, candidateID)
	data, _ := args.Get(0).(*model.WithdrawalData)
	return data, args.Error(1)
}

// MockInterviewFetcher is a mock implementation of integration.InterviewFetcher
type MockInterviewFetcher struct {
	mock.Mock
}

func (m *MockInterviewFetcher) FetchInterviewData(ctx context.Context, candidateID string) (*model.InterviewData, error) {
	args := m.Called(ctx, candidateID)
	data, _ := args.Get(0).(*model.InterviewData)
	return data, args.Error(1)
}
