package mysql

import (
	"context"
	"errors"

	"crowdlending/internal/domain/lending"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AgreementRepository struct{ db *gorm.DB }

func NewAgreementRepository(db *gorm.DB) *AgreementRepository { return &AgreementRepository{db: db} }

func (r *AgreementRepository) Create(ctx context.Context, a *lending.Agreement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgreementRepository) Save(ctx context.Context, a *lending.Agreement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AgreementRepository) GetByAgreementID(ctx context.Context, agreementID string) (*lending.Agreement, error) {
	var out lending.Agreement
	res := r.db.WithContext(ctx).Where("agreement_id = ?", agreementID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, lending.ErrNotFound
	}
	return &out, res.Error
}

// GetByAgreementIDForUpdate issues SELECT ... FOR UPDATE; sqlite ignores the clause.
func (r *AgreementRepository) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*lending.Agreement, error) {
	var out lending.Agreement
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("agreement_id = ?", agreementID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, lending.ErrNotFound
	}
	return &out, res.Error
}

func (r *AgreementRepository) GetContribution(ctx context.Context, agreementNumericID uint64, investor string) (*lending.Contribution, error) {
	var out lending.Contribution
	res := r.db.WithContext(ctx).
		Where("agreement_id = ? AND investor = ?", agreementNumericID, investor).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, lending.ErrNoContribution
	}
	return &out, res.Error
}

func (r *AgreementRepository) SaveContribution(ctx context.Context, c *lending.Contribution) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *AgreementRepository) ListContributions(ctx context.Context, agreementNumericID uint64) ([]lending.Contribution, error) {
	var out []lending.Contribution
	res := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
