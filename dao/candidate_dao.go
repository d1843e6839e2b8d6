// dao/candidate_dao.go
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

// CandidateDAO serves account data plus the role and delegation lookups the
// permission engine depends on.
type CandidateDAO struct {
	db *gorm.DB
}

func NewCandidateDAO(db *gorm.DB) *CandidateDAO {
	return &CandidateDAO{db: db}
}

// userRole is a row in the role table.
type userRole struct {
	UserID string `gorm:"primaryKey"`
	Role   string
}

func (userRole) TableName() string { return "user_roles" }

func (d *CandidateDAO) FetchAccountData(ctx context.Context, candidateID string) (*model.AccountData, error) {
	var candidate model.Candidate
	err := d.db.WithContext(ctx).First(&candidate, "id = ?", candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", consoleerrors.ErrCandidateNotFound, candidateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	return &model.AccountData{
		CandidateID:      candidate.ID,
		Email:            candidate.Email,
		Phone:            candidate.Phone,
		BankVerified:     candidate.BankVerified,
		IdentityVerified: candidate.IdentityVerified,
		ProfileComplete:  candidate.Email != "" && candidate.Phone != "",
		MemberSince:      candidate.CreatedAt,
		FetchedAt:        time.Now(),
	}, nil
}

// RoleOf looks the user up in the role table.
func (d *CandidateDAO) RoleOf(ctx context.Context, userID string) (model.Role, bool, error) {
	var row userRole
	err := d.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("role lookup failed: %w", err)
	}
	return model.Role(row.Role), true, nil
}

// HasTeamLeadership reports an active team-lead relation over the candidate.
func (d *CandidateDAO) HasTeamLeadership(ctx context.Context, leaderID, candidateID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.TeamLeadership{}).
		Where("leader_id = ? AND candidate_id = ? AND active", leaderID, candidateID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("team leadership lookup failed: %w", err)
	}
	return count > 0, nil
}

// HasConsultantAssignment reports an active consultant relation over the
// candidate.
func (d *CandidateDAO) HasConsultantAssignment(ctx context.Context, consultantID, candidateID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.ConsultantAssignment{}).
		Where("consultant_id = ? AND candidate_id = ? AND active", consultantID, candidateID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("consultant assignment lookup failed: %w", err)
	}
	return count > 0, nil
}
