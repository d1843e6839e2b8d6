// model/payment.go
package model

import "time"

type Payment struct {
	ID          string     `json:"id"`
	CandidateID string     `json:"candidate_id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"` // "pending", "processing", "completed", "failed"
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// PaymentData is the payment payload handed to the cache, audit and
// formatting layers.
type PaymentData struct {
	CandidateID   string    `json:"candidate_id"`
	TotalEarned   float64   `json:"total_earned"`
	PendingAmount float64   `json:"pending_amount"`
	LastPayment   *Payment  `json:"last_payment,omitempty"`
	Recent        []Payment `json:"recent"`
	FetchedAt     time.Time `json:"fetched_at"`
}
