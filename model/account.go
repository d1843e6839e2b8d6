// model/account.go
package model

import "time"

// AccountData is the verification/identity payload for a candidate.
type AccountData struct {
	CandidateID      string     `json:"candidate_id"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	BankVerified     bool       `json:"bank_verified"`
	IdentityVerified bool       `json:"identity_verified"`
	ProfileComplete  bool       `json:"profile_complete"`
	MemberSince      time.Time  `json:"member_since"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	FetchedAt        time.Time  `json:"fetched_at"`
}
