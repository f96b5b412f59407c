package mysql

import (
	"context"

	"crowdlending/internal/domain/lending"
	"crowdlending/internal/domain/payout"
	"crowdlending/internal/domain/registry"
	"crowdlending/internal/domain/reputation"
	"crowdlending/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Agreements: &AgreementRepository{db: tx},
		Reputation: &ReputationRepository{db: tx},
		Registry:   &RegistryRepository{db: tx},
		Payouts:    &PayoutRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinAgreementTx(ctx context.Context, agreementID string, fn func(r uow.Repos, a *lending.Agreement) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the agreement row up-front so concurrent operations serialize
		a, err := r.Agreements.GetByAgreementIDForUpdate(ctx, agreementID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

// Models lists every table the repositories touch, in migration order.
func Models() []any {
	return []any{
		&lending.Agreement{},
		&lending.Contribution{},
		&reputation.Score{},
		&reputation.CompletedProjects{},
		&registry.Registration{},
		&registry.Contract{},
		&payout.Payout{},
	}
}
