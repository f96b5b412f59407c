package mysql

import (
	"context"
	"errors"

	"crowdlending/internal/domain/registry"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistryRepository struct{ db *gorm.DB }

func NewRegistryRepository(db *gorm.DB) *RegistryRepository { return &RegistryRepository{db: db} }

func (r *RegistryRepository) Upsert(ctx context.Context, identity string, role registry.Role, active bool) error {
	reg := &registry.Registration{Identity: identity, Role: role, Active: active}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}, {Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"active", "updated_at"}),
		}).
		Create(reg).Error
}

func (r *RegistryRepository) SetStatus(ctx context.Context, identity string, role registry.Role, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&registry.Registration{}).
		Where("identity = ? AND role = ?", identity, role).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// mysql reports 0 for unchanged rows; tell missing apart from no-op
		var n int64
		if err := r.db.WithContext(ctx).Model(&registry.Registration{}).
			Where("identity = ? AND role = ?", identity, role).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return registry.ErrNotFound
		}
	}
	return nil
}

func (r *RegistryRepository) IsRegistered(ctx context.Context, identity string, role registry.Role) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&registry.Registration{}).
		Where("identity = ? AND role = ? AND active = ?", identity, role, true).
		Count(&n).Error
	return n > 0, err
}

func (r *RegistryRepository) RegisterContract(ctx context.Context, agreementID, by string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "agreement_id"}}, DoNothing: true}).
		Create(&registry.Contract{AgreementID: agreementID, RegisteredBy: by}).Error
}

func (r *RegistryRepository) IsContractRegistered(ctx context.Context, agreementID string) (bool, error) {
	var c registry.Contract
	res := r.db.WithContext(ctx).Where("agreement_id = ?", agreementID).First(&c)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return res.Error == nil, res.Error
}
