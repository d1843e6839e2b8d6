// errors/rule_errors.go
package errors

import "fmt"

// Rule failure codes surfaced to callers alongside a human-readable reason.
const (
	CodeAmountTooLow              = "AMOUNT_TOO_LOW"
	CodeAmountTooHigh             = "AMOUNT_TOO_HIGH"
	CodeInsufficientFundsPending  = "INSUFFICIENT_FUNDS_PENDING"
	CodeVerificationRequired      = "VERIFICATION_REQUIRED"
	CodeInvalidDate               = "INVALID_DATE"
	CodeInterviewAlreadyScheduled = "INTERVIEW_ALREADY_SCHEDULED"
	CodeTimeSlotConflict          = "TIME_SLOT_CONFLICT"
	CodeInterviewNotRequired      = "INTERVIEW_NOT_REQUIRED"
)

// RuleError is a business-rule rejection. It is a value the caller inspects,
// not an exceptional condition.
type RuleError struct {
	Code   string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func NewRuleError(code, reason string) *RuleError {
	return &RuleError{Code: code, Reason: reason}
}
