package mysql

import (
	"context"

	"crowdlending/internal/domain/payout"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayoutRepository struct{ db *gorm.DB }

func NewPayoutRepository(db *gorm.DB) *PayoutRepository { return &PayoutRepository{db: db} }

func (r *PayoutRepository) Create(ctx context.Context, p *payout.Payout) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PayoutRepository) ListByAgreement(ctx context.Context, agreementNumericID uint64) ([]payout.Payout, error) {
	var out []payout.Payout
	res := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementNumericID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
