// integration/requests.go

package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/talentedge/console-api/audit"
	consoleerrors "github.com/talentedge/console-api/errors"
	"github.com/talentedge/console-api/model"
)

// ValidateWithdrawal checks a proposed withdrawal for the candidate: the
// requester must have write access to withdrawal data, and the amount must
// pass the balance and verification rules. A nil RuleError means the
// withdrawal is eligible.
func (l *Layer) ValidateWithdrawal(ctx context.Context, userID string, req model.WithdrawalRequest) (*consoleerrors.RuleError, error) {
	value, err := l.GetSpecificData(ctx, userID, req.CandidateID, model.DataTypeWithdrawal)
	if err != nil {
		return nil, err
	}
	data, ok := value.(*model.WithdrawalData)
	if !ok {
		return nil, fmt.Errorf("%w: withdrawal for %s", consoleerrors.ErrDataFetchFailed, req.CandidateID)
	}

	ruleErr := l.validator.CheckWithdrawal(data, req, l.limits)
	l.auditor.LogDataAccess(ctx, audit.AccessEntry{
		UserID:       userID,
		SubjectID:    req.CandidateID,
		DataType:     model.DataTypeWithdrawal,
		Source:       audit.SourceDatabaseFetch,
		Success:      ruleErr == nil,
		ErrorMessage: ruleReason(ruleErr),
		Sensitive:    true,
	})
	return ruleErr, nil
}

// ValidateInterviewSlot checks a proposed interview slot for the candidate.
// A nil RuleError means the slot can be booked.
func (l *Layer) ValidateInterviewSlot(ctx context.Context, userID string, req model.InterviewRequest) (*consoleerrors.RuleError, error) {
	value, err := l.GetSpecificData(ctx, userID, req.CandidateID, model.DataTypeInterview)
	if err != nil {
		return nil, err
	}
	data, ok := value.(*model.InterviewData)
	if !ok {
		return nil, fmt.Errorf("%w: interview for %s", consoleerrors.ErrDataFetchFailed, req.CandidateID)
	}

	ruleErr := l.validator.CheckInterviewSlot(ctx, data, req, l.bookings, time.Now())
	l.auditor.LogDataAccess(ctx, audit.AccessEntry{
		UserID:       userID,
		SubjectID:    req.CandidateID,
		DataType:     model.DataTypeInterview,
		Source:       audit.SourceDatabaseFetch,
		Success:      ruleErr == nil,
		ErrorMessage: ruleReason(ruleErr),
	})
	return ruleErr, nil
}

// CheckCompliance reports requested fields a purpose does not justify.
func (l *Layer) CheckCompliance(purpose string, requestedFields []string) []string {
	return l.validator.CheckDataMinimization(purpose, requestedFields)
}

// RetentionWindow reports how long records about a data type may be kept.
func (l *Layer) RetentionWindow(dataType string) time.Duration {
	return l.validator.RetentionWindow(dataType)
}

func ruleReason(err *consoleerrors.RuleError) string {
	if err == nil {
		return ""
	}
	return err.Reason
}
