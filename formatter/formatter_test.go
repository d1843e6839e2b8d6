// formatter/formatter_test.go
package formatter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/talentedge/console-api/formatter"
	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/model"
	"github.com/talentedge/console-api/template"
)

func newFormatter() *formatter.Formatter {
	return formatter.NewFormatter(template.NewEngine())
}

func TestFormatPayment(t *testing.T) {
	logger.InitTestLogger()
	f := newFormatter()

	t.Run("WithPendingAndLastPayment", func(t *testing.T) {
		out := f.FormatPayment(&model.PaymentData{
			CandidateID:   "CAND_001",
			TotalEarned:   45000,
			PendingAmount: 2500,
			LastPayment: &model.Payment{
				ID: "PAY_1", Amount: 3000, Status: "completed",
				CreatedAt: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
			},
		})
		assert.Contains(t, out, "₹45,000.00")
		assert.Contains(t, out, "₹2,500.00 pending")
		assert.Contains(t, out, "₹3,000.00")
		assert.Contains(t, out, "20 Feb 2026")
	})

	t.Run("NoPending", func(t *testing.T) {
		out := f.FormatPayment(&model.PaymentData{
			CandidateID: "CAND_001",
			TotalEarned: 45000,
		})
		assert.Contains(t, out, "no pending payments")
	})

	t.Run("NilDataFallsBack", func(t *testing.T) {
		out := f.FormatPayment(nil)
		assert.Contains(t, out, "couldn't retrieve your payment details")
	})

	t.Run("EmptyShapeFallsBack", func(t *testing.T) {
		out := f.FormatPayment(&model.PaymentData{})
		assert.Contains(t, out, "couldn't retrieve your payment details")
	})
}

func TestFormatAccount(t *testing.T) {
	logger.InitTestLogger()
	f := newFormatter()

	t.Run("Unverified", func(t *testing.T) {
		out := f.FormatAccount(&model.AccountData{
			CandidateID: "CAND_001",
			Email:       "priya@example.com",
			MemberSince: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.Contains(t, out, "priya@example.com")
		assert.Contains(t, out, "complete bank verification")
		assert.Contains(t, out, "verification pending")
		assert.Contains(t, out, "1 Jun 2024")
	})

	t.Run("Verified", func(t *testing.T) {
		out := f.FormatAccount(&model.AccountData{
			CandidateID:      "CAND_001",
			Email:            "priya@example.com",
			BankVerified:     true,
			IdentityVerified: true,
		})
		assert.Contains(t, out, "Bank account: verified")
		assert.Contains(t, out, "Identity: verified")
	})
}

func TestFormatJobs(t *testing.T) {
	logger.InitTestLogger()
	f := newFormatter()

	t.Run("WithUpcoming", func(t *testing.T) {
		out := f.FormatJobs(&model.JobsData{
			CandidateID:   "CAND_001",
			TotalJobs:     12,
			CompletedJobs: 10,
			AverageRating: 4.6,
			Upcoming: []model.Job{
				{Title: "Retail Associate", Client: "BigMart", Location: "Pune"},
			},
		})
		assert.Contains(t, out, "12 jobs")
		assert.Contains(t, out, "10 completed")
		assert.Contains(t, out, "4.6")
		assert.Contains(t, out, "Retail Associate at BigMart, Pune")
	})

	t.Run("SingleJobSingular", func(t *testing.T) {
		out := f.FormatJobs(&model.JobsData{
			CandidateID: "CAND_001",
			TotalJobs:   1,
		})
		assert.Contains(t, out, "1 job with us")
	})

	t.Run("NoUpcoming", func(t *testing.T) {
		out := f.FormatJobs(&model.JobsData{
			CandidateID: "CAND_001",
			TotalJobs:   3,
		})
		assert.Contains(t, out, "No upcoming assignments")
	})
}

func TestFormatWithdrawal(t *testing.T) {
	logger.InitTestLogger()
	f := newFormatter()

	out := f.FormatWithdrawal(&model.WithdrawalData{
		CandidateID:      "CAND_001",
		AvailableBalance: 8000,
		PendingAmount:    1500,
	})
	assert.Contains(t, out, "₹8,000.00")
	assert.Contains(t, out, "₹1,500.00")
	assert.Contains(t, out, "on hold until your bank account is verified")
}

func TestFormatInterview(t *testing.T) {
	logger.InitTestLogger()
	f := newFormatter()

	t.Run("ActiveInterview", func(t *testing.T) {
		out := f.FormatInterview(&model.InterviewData{
			CandidateID:    "CAND_001",
			NeedsInterview: true,
			Active: &model.Interview{
				ID:          "INT_1",
				ScheduledAt: time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC),
				Status:      "scheduled",
			},
		})
		assert.Contains(t, out, "Thursday, 5 March 2026")
		assert.Contains(t, out, "2:30 PM")
		assert.NotContains(t, out, "pick a slot")
	})

	t.Run("NeedsSlot", func(t *testing.T) {
		out := f.FormatInterview(&model.InterviewData{
			CandidateID:    "CAND_001",
			NeedsInterview: true,
		})
		assert.Contains(t, out, "pick a slot")
	})

	t.Run("AllClear", func(t *testing.T) {
		out := f.FormatInterview(&model.InterviewData{
			CandidateID: "CAND_001",
		})
		assert.Contains(t, out, "No interview is required")
	})
}

func TestFormatProfile(t *testing.T) {
	logger.InitTestLogger()
	f := newFormatter()

	out := f.FormatProfile(&model.Profile{
		CandidateID: "CAND_001",
		Payment:     &model.PaymentData{CandidateID: "CAND_001", TotalEarned: 45000, PendingAmount: 2500},
		Jobs:        &model.JobsData{CandidateID: "CAND_001", TotalJobs: 12, CompletedJobs: 10},
		Withdrawal:  &model.WithdrawalData{CandidateID: "CAND_001", AvailableBalance: 8000},
		Interview: &model.InterviewData{
			CandidateID: "CAND_001",
			Active: &model.Interview{
				ID:          "INT_1",
				ScheduledAt: time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC),
				Status:      "scheduled",
			},
		},
	})
	assert.Contains(t, out, "₹45,000.00 total")
	assert.Contains(t, out, "12 jobs")
	assert.Contains(t, out, "₹8,000.00")
	assert.Contains(t, out, "Upcoming interview: 5 Mar 2026")
}

func TestFormatIntentResponse(t *testing.T) {
	logger.InitTestLogger()
	f := newFormatter()

	profile := &model.Profile{
		CandidateID: "CAND_001",
		Payment:     &model.PaymentData{CandidateID: "CAND_001", TotalEarned: 45000},
		Jobs:        &model.JobsData{CandidateID: "CAND_001", TotalJobs: 3},
	}

	t.Run("Dispatch", func(t *testing.T) {
		assert.Contains(t, f.FormatIntentResponse(formatter.IntentPaymentStatus, profile), "payment summary")
		assert.Contains(t, f.FormatIntentResponse(formatter.IntentJobHistory, profile), "3 jobs")
	})

	t.Run("UnknownIntentGetsGeneralSummary", func(t *testing.T) {
		out := f.FormatIntentResponse("weather_forecast", profile)
		assert.Contains(t, out, "What would you like to know?")
	})

	t.Run("NilProfileGetsGeneralSummary", func(t *testing.T) {
		out := f.FormatIntentResponse(formatter.IntentPaymentStatus, nil)
		assert.Contains(t, out, "What would you like to know?")
	})

	t.Run("MissingSectionFallsBack", func(t *testing.T) {
		out := f.FormatIntentResponse(formatter.IntentWithdrawal, profile)
		assert.Contains(t, out, "couldn't retrieve your withdrawal details")
	})
}
