// dao/withdrawal_dao.go
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

// WithdrawalDAO serves the balance/eligibility payload from the relational
// store.
type WithdrawalDAO struct {
	db *gorm.DB
}

func NewWithdrawalDAO(db *gorm.DB) *WithdrawalDAO {
	return &WithdrawalDAO{db: db}
}

func (d *WithdrawalDAO) FetchWithdrawalData(ctx context.Context, candidateID string) (*model.WithdrawalData, error) {
	var candidate model.Candidate
	err := d.db.WithContext(ctx).First(&candidate, "id = ?", candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", consoleerrors.ErrCandidateNotFound, candidateID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	// Available balance is completed earnings minus settled withdrawals.
	var earned, withdrawn float64
	err = d.db.WithContext(ctx).Model(&model.Payment{}).
		Where("candidate_id = ? AND status = ?", candidateID, "completed").
		Select("COALESCE(SUM(amount), 0)").Scan(&earned).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum earnings: %w", err)
	}
	err = d.db.WithContext(ctx).Model(&model.Withdrawal{}).
		Where("candidate_id = ? AND status IN ?", candidateID, []string{"approved", "paid"}).
		Select("COALESCE(SUM(amount), 0)").Scan(&withdrawn).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum withdrawals: %w", err)
	}

	var pending []model.Withdrawal
	err = d.db.WithContext(ctx).
		Where("candidate_id = ? AND status = ?", candidateID, "pending").
		Order("requested_at DESC").
		Find(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending withdrawals: %w", err)
	}

	data := &model.WithdrawalData{
		CandidateID:      candidateID,
		AvailableBalance: earned - withdrawn,
		Pending:          pending,
		BankVerified:     candidate.BankVerified,
		IdentityVerified: candidate.IdentityVerified,
		FetchedAt:        time.Now(),
	}
	for i := range pending {
		data.PendingAmount += pending[i].Amount
	}
	return data, nil
}
