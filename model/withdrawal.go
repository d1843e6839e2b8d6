// model/withdrawal.go
package model

import "time"

type Withdrawal struct {
	ID          string     `json:"id"`
	CandidateID string     `json:"candidate_id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"` // "pending", "approved", "paid", "rejected"
	RequestedAt time.Time  `json:"requested_at"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
}

// WithdrawalData is the balance/eligibility payload for a candidate.
type WithdrawalData struct {
	CandidateID      string       `json:"candidate_id"`
	AvailableBalance float64      `json:"available_balance"`
	PendingAmount    float64      `json:"pending_amount"`
	Pending          []Withdrawal `json:"pending"`
	BankVerified     bool         `json:"bank_verified"`
	IdentityVerified bool         `json:"identity_verified"`
	FetchedAt        time.Time    `json:"fetched_at"`
}

// WithdrawalRequest is a proposed withdrawal checked by the validation rules.
type WithdrawalRequest struct {
	CandidateID string  `json:"candidate_id"`
	Amount      float64 `json:"amount"`
}
