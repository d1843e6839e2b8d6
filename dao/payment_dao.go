// dao/payment_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/talentedge/console-api/model"
)

// PaymentDAO serves the payment payload from the relational store.
type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{db: db}
}

func (d *PaymentDAO) FetchPaymentData(ctx context.Context, candidateID string) (*model.PaymentData, error) {
	var payments []model.Payment
	err := d.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at DESC").
		Limit(20).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	data := &model.PaymentData{
		CandidateID: candidateID,
		Recent:      payments,
		FetchedAt:   time.Now(),
	}
	for i := range payments {
		switch payments[i].Status {
		case "completed":
			data.TotalEarned += payments[i].Amount
		case "pending", "processing":
			data.PendingAmount += payments[i].Amount
		}
	}
	if len(payments) > 0 {
		data.LastPayment = &payments[0]
	}
	return data, nil
}
