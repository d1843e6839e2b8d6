// dao/job_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/talentedge/console-api/model"
)

// JobDAO serves the work-history payload from the relational store.
type JobDAO struct {
	db *gorm.DB
}

func NewJobDAO(db *gorm.DB) *JobDAO {
	return &JobDAO{db: db}
}

func (d *JobDAO) FetchJobsData(ctx context.Context, candidateID string) (*model.JobsData, error) {
	var jobs []model.Job
	err := d.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("starts_at DESC NULLS LAST").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	data := &model.JobsData{
		CandidateID: candidateID,
		TotalJobs:   len(jobs),
		FetchedAt:   time.Now(),
	}
	var ratingSum float64
	var rated int
	for i := range jobs {
		switch jobs[i].Status {
		case "completed":
			data.CompletedJobs++
			if jobs[i].Rating > 0 {
				ratingSum += jobs[i].Rating
				rated++
			}
		case "applied", "offered":
			data.Applications = append(data.Applications, jobs[i])
		case "upcoming", "active":
			data.Upcoming = append(data.Upcoming, jobs[i])
		}
	}
	if rated > 0 {
		data.AverageRating = ratingSum / float64(rated)
	}
	return data, nil
}
