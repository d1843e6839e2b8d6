// model/job.go
package model

import "time"

type Job struct {
	ID          string     `json:"id"`
	CandidateID string     `json:"candidate_id"`
	Title       string     `json:"title"`
	Client      string     `json:"client"`
	Location    string     `json:"location,omitempty"`
	Status      string     `json:"status"` // "applied", "offered", "active", "completed", "upcoming"
	Rating      float64    `json:"rating,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// JobsData is the work-history payload for a candidate.
type JobsData struct {
	CandidateID   string    `json:"candidate_id"`
	TotalJobs     int       `json:"total_jobs"`
	CompletedJobs int       `json:"completed_jobs"`
	AverageRating float64   `json:"average_rating"`
	Applications  []Job     `json:"applications"`
	Upcoming      []Job     `json:"upcoming"`
	FetchedAt     time.Time `json:"fetched_at"`
}
