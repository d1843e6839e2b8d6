// model/interview.go
package model

import "time"

type Interview struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status"` // "scheduled", "completed", "cancelled", "no_show"
}

// InterviewData is the interview payload for a candidate.
type InterviewData struct {
	CandidateID    string      `json:"candidate_id"`
	NeedsInterview bool        `json:"needs_interview"`
	Active         *Interview  `json:"active,omitempty"`
	History        []Interview `json:"history"`
	FetchedAt      time.Time   `json:"fetched_at"`
}

// InterviewRequest is a proposed interview slot checked by the validation rules.
type InterviewRequest struct {
	CandidateID string    `json:"candidate_id"`
	ProposedAt  time.Time `json:"proposed_at"`
}
