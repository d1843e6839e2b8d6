// formatter/formatter.go

// Package formatter turns already-fetched domain payloads into user-facing
// prose. It is a pure presentation layer: every formatting path degrades to a
// fixed per-type fallback message and never returns an error, so a broken
// template can not take down the chat flow.
package formatter

import (
	"encoding/json"

	"go.uber.org/zap"

	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
	"github.com/talentedge/console-api/template"
)

// Fallback messages per data type, used whenever the payload shape is missing
// or rendering fails.
var fallbacks = map[string]string{
	model.DataTypePayment:    "I couldn't retrieve your payment details right now. Please try again in a few minutes.",
	model.DataTypeAccount:    "I couldn't retrieve your account details right now. Please try again in a few minutes.",
	model.DataTypeJobs:       "I couldn't retrieve your job history right now. Please try again in a few minutes.",
	model.DataTypeWithdrawal: "I couldn't retrieve your withdrawal details right now. Please try again in a few minutes.",
	model.DataTypeInterview:  "I couldn't retrieve your interview details right now. Please try again in a few minutes.",
	model.DataTypeProfile:    "I couldn't put together your profile summary right now. Please try again in a few minutes.",
}

type Formatter struct {
	engine *template.Engine
}

func NewFormatter(engine *template.Engine) *Formatter {
	return &Formatter{engine: engine}
}

// FormatPayment renders the payment summary message.
func (f *Formatter) FormatPayment(data *model.PaymentData) string {
	if data == nil || data.CandidateID == "" {
		return fallbacks[model.DataTypePayment]
	}
	ctx, ok := toContext(data)
	if !ok {
		return fallbacks[model.DataTypePayment]
	}
	return f.engine.Render("payment_status", ctx)
}

// FormatAccount renders the account/verification overview message.
func (f *Formatter) FormatAccount(data *model.AccountData) string {
	if data == nil || data.CandidateID == "" {
		return fallbacks[model.DataTypeAccount]
	}
	ctx, ok := toContext(data)
	if !ok {
		return fallbacks[model.DataTypeAccount]
	}
	return f.engine.Render("account_status", ctx)
}

// FormatJobs renders the work-history summary message.
func (f *Formatter) FormatJobs(data *model.JobsData) string {
	if data == nil || data.CandidateID == "" {
		return fallbacks[model.DataTypeJobs]
	}
	ctx, ok := toContext(data)
	if !ok {
		return fallbacks[model.DataTypeJobs]
	}
	ctx["has_upcoming"] = len(data.Upcoming) > 0
	return f.engine.Render("jobs_summary", ctx)
}

// FormatWithdrawal renders the balance/eligibility message.
func (f *Formatter) FormatWithdrawal(data *model.WithdrawalData) string {
	if data == nil || data.CandidateID == "" {
		return fallbacks[model.DataTypeWithdrawal]
	}
	ctx, ok := toContext(data)
	if !ok {
		return fallbacks[model.DataTypeWithdrawal]
	}
	return f.engine.Render("withdrawal_status", ctx)
}

// FormatInterview renders the interview status message. The template keeps
// its conditionals flat, so the mutually exclusive states are precomputed
// here.
func (f *Formatter) FormatInterview(data *model.InterviewData) string {
	if data == nil || data.CandidateID == "" {
		return fallbacks[model.DataTypeInterview]
	}
	ctx, ok := toContext(data)
	if !ok {
		return fallbacks[model.DataTypeInterview]
	}
	hasActive := data.Active != nil
	ctx["has_active"] = hasActive
	ctx["needs_slot"] = !hasActive && data.NeedsInterview
	ctx["all_clear"] = !hasActive && !data.NeedsInterview
	return f.engine.Render("interview_status", ctx)
}

// FormatProfile renders the comprehensive profile summary.
func (f *Formatter) FormatProfile(data *model.Profile) string {
	if data == nil || data.CandidateID == "" {
		return fallbacks[model.DataTypeProfile]
	}
	ctx, ok := toContext(data)
	if !ok {
		return fallbacks[model.DataTypeProfile]
	}
	if data.Interview != nil && data.Interview.Active != nil {
		ctx["has_interview"] = true
		ctx["interview_date"] = data.Interview.Active.ScheduledAt
	}
	return f.engine.Render("profile_summary", ctx)
}

// intent -> formatter dispatch table.
const (
	IntentPaymentStatus   = "payment_status"
	IntentAccountStatus   = "account_status"
	IntentJobHistory      = "job_history"
	IntentWithdrawal      = "withdrawal_status"
	IntentInterviewStatus = "interview_status"
	IntentProfileSummary  = "profile_summary"
)

// FormatIntentResponse dispatches a chat intent to the matching formatter.
// Unknown intents get the general summary.
func (f *Formatter) FormatIntentResponse(intent string, profile *model.Profile) string {
	if profile == nil {
		return f.engine.Render("general_summary", map[string]interface{}{})
	}
	switch intent {
	case IntentPaymentStatus:
		return f.FormatPayment(profile.Payment)
	case IntentAccountStatus:
		return f.FormatAccount(profile.Account)
	case IntentJobHistory:
		return f.FormatJobs(profile.Jobs)
	case IntentWithdrawal:
		return f.FormatWithdrawal(profile.Withdrawal)
	case IntentInterviewStatus:
		return f.FormatInterview(profile.Interview)
	case IntentProfileSummary:
		return f.FormatProfile(profile)
	default:
		return f.engine.Render("general_summary", map[string]interface{}{})
	}
}

// toContext converts a typed payload into the map form the template engine
// consumes, via its JSON representation.
func toContext(payload interface{}) (map[string]interface{}, bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal payload for formatting", zap.Error(err))
		return nil, false
	}
	var ctx map[string]interface{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		logger.Error("Failed to unmarshal payload for formatting", zap.Error(err))
		return nil, false
	}
	return ctx, true
}
