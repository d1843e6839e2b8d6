// validation/rules.go

package validation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	consoleerrors "github.com/talentedge/console-api/errors"
	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
)

// WithdrawalLimits are the configured bounds a withdrawal must fall within.
type WithdrawalLimits struct {
	Min float64
	Max float64
}

// CheckWithdrawal validates a proposed withdrawal against the candidate's
// balance and verification state. A nil result means the withdrawal is
// eligible; otherwise the RuleError carries the rejection code.
func (e *Engine) CheckWithdrawal(data *model.WithdrawalData, req model.WithdrawalRequest, limits WithdrawalLimits) *consoleerrors.RuleError {
	if data == nil {
		return consoleerrors.NewRuleError(consoleerrors.CodeVerificationRequired, "withdrawal profile unavailable")
	}
	if !data.BankVerified || !data.IdentityVerified {
		return consoleerrors.NewRuleError(consoleerrors.CodeVerificationRequired,
			"bank and identity verification must be completed before withdrawing")
	}
	if req.Amount < limits.Min {
		return consoleerrors.NewRuleError(consoleerrors.CodeAmountTooLow,
			fmt.Sprintf("minimum withdrawal amount is %.2f", limits.Min))
	}
	if req.Amount > limits.Max {
		return consoleerrors.NewRuleError(consoleerrors.CodeAmountTooHigh,
			fmt.Sprintf("maximum withdrawal amount is %.2f", limits.Max))
	}
	available := data.AvailableBalance - data.PendingAmount
	if req.Amount > available {
		return consoleerrors.NewRuleError(consoleerrors.CodeInsufficientFundsPending,
			fmt.Sprintf("amount exceeds available balance of %.2f after pending withdrawals", available))
	}
	return nil
}

// BookingIndex answers whether any candidate already holds an interview at an
// exact date and time. It backs the global double-booking guard.
type BookingIndex interface {
	IsSlotTaken(ctx context.Context, at time.Time) (bool, error)
}

// CheckInterviewSlot validates a proposed interview slot. A nil result means
// the slot can be booked.
func (e *Engine) CheckInterviewSlot(ctx context.Context, data *model.InterviewData, req model.InterviewRequest, bookings BookingIndex, now time.Time) *consoleerrors.RuleError {
	if data == nil || !data.NeedsInterview {
		return consoleerrors.NewRuleError(consoleerrors.CodeInterviewNotRequired,
			"no interview is required for this candidate")
	}
	if !req.ProposedAt.After(now) {
		return consoleerrors.NewRuleError(consoleerrors.CodeInvalidDate,
			"interview time must be in the future")
	}
	if data.Active != nil {
		return consoleerrors.NewRuleError(consoleerrors.CodeInterviewAlreadyScheduled,
			"an interview is already scheduled for this candidate")
	}
	if bookings != nil {
		taken, err := bookings.IsSlotTaken(ctx, req.ProposedAt)
		if err != nil {
			logger.Error("Booking index lookup failed", zap.Error(err),
				zap.String("candidateID", req.CandidateID))
			return consoleerrors.NewRuleError(consoleerrors.CodeTimeSlotConflict,
				"could not confirm slot availability")
		}
		if taken {
			return consoleerrors.NewRuleError(consoleerrors.CodeTimeSlotConflict,
				"that time slot is already booked")
		}
	}
	return nil
}

// MemoryBookingIndex is an in-process BookingIndex keyed by exact minute.
type MemoryBookingIndex struct {
	mu    sync.Mutex
	slots map[string]bool
}

func NewMemoryBookingIndex() *MemoryBookingIndex {
	return &MemoryBookingIndex{slots: make(map[string]bool)}
}

func slotKey(at time.Time) string {
	return at.UTC().Format("2006-01-02T15:04")
}

func (b *MemoryBookingIndex) IsSlotTaken(ctx context.Context, at time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots[slotKey(at)], nil
}

// Book marks a slot as taken. It returns false if the slot was already held.
func (b *MemoryBookingIndex) Book(at time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := slotKey(at)
	if b.slots[key] {
		return false
	}
	b.slots[key] = true
	return true
}
