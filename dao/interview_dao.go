// dao/interview_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	consoleerrors "github.com/talentedge/console-api/errors"
	"github.com/talentedge/console-api/model"
)

// InterviewDAO serves the interview payload and backs the global
// double-booking guard.
type InterviewDAO struct {
	db *gorm.DB
}

func NewInterviewDAO(db *gorm.DB) *InterviewDAO {
	return &InterviewDAO{db: db}
}

func (d *InterviewDAO) FetchInterviewData(ctx context.Context, candidateID string) (*model.InterviewData, error) {
	var candidate model.Candidate
	err := d.db.WithContext(ctx).First(&candidate, "id = ?", candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", consoleerrors.ErrCandidateNotFound, candidateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	var interviews []model.Interview
	err = d.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("scheduled_at DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load interviews: %w", err)
	}

	data := &model.InterviewData{
		CandidateID:    candidateID,
		NeedsInterview: candidate.NeedsInterview,
		History:        interviews,
		FetchedAt:      time.Now(),
	}
	for i := range interviews {
		if interviews[i].Status == "scheduled" {
			data.Active = &interviews[i]
			break
		}
	}
	return data, nil
}

// IsSlotTaken reports whether any candidate already holds a scheduled
// interview at the exact date and time.
func (d *InterviewDAO) IsSlotTaken(ctx context.Context, at time.Time) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Interview{}).
		Where("scheduled_at = ? AND status = ?", at, "scheduled").
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("slot lookup failed: %w", err)
	}
	return count > 0, nil
}
