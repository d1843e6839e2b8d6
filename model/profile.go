// model/profile.go
package model

import "time"

// Profile is the comprehensive payload assembled by the integration layer
// when all five domain fetchers are fanned out and joined.
type Profile struct {
	CandidateID string          `json:"candidate_id"`
	Payment     *PaymentData    `json:"payment,omitempty"`
	Account     *AccountData    `json:"account,omitempty"`
	Jobs        *JobsData       `json:"jobs,omitempty"`
	Withdrawal  *WithdrawalData `json:"withdrawal,omitempty"`
	Interview   *InterviewData  `json:"interview,omitempty"`
	AssembledAt time.Time       `json:"assembled_at"`
}
