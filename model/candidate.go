// model/candidate.go
package model

import "time"

// Data types served by the integration layer.
const (
	DataTypePayment    = "payment"
	DataTypeAccount    = "account"
	DataTypeJobs       = "jobs"
	DataTypeWithdrawal = "withdrawal"
	DataTypeInterview  = "interview"
	DataTypeProfile    = "profile"
)

// KnownDataTypes lists every data type GetSpecificData accepts.
var KnownDataTypes = []string{
	DataTypePayment,
	DataTypeAccount,
	DataTypeJobs,
	DataTypeWithdrawal,
	DataTypeInterview,
}

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSupport   Role = "support"
	RoleCandidate Role = "candidate"
)

type Candidate struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	BankVerified     bool      `json:"bank_verified"`
	IdentityVerified bool      `json:"identity_verified"`
	NeedsInterview   bool      `json:"needs_interview"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TeamLeadership marks an active team-lead relation over a candidate.
type TeamLeadership struct {
	LeaderID    string    `json:"leader_id"`
	CandidateID string    `json:"candidate_id"`
	Active      bool      `json:"active"`
	Since       time.Time `json:"since"`
}

// ConsultantAssignment marks an active consultant relation over a candidate.
// Unlike team leadership it clears the financial-data restriction.
type ConsultantAssignment struct {
	ConsultantID string    `json:"consultant_id"`
	CandidateID  string    `json:"candidate_id"`
	Active       bool      `json:"active"`
	AssignedAt   time.Time `json:"assigned_at"`
}
