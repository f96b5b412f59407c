package uow

import (
	"context"

	"crowdlending/internal/domain/lending"
	"crowdlending/internal/domain/payout"
	"crowdlending/internal/domain/registry"
	"crowdlending/internal/domain/reputation"
)

type Repos struct {
	Agreements lending.Repository
	Reputation reputation.Repository
	Registry   registry.Repository
	Payouts    payout.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// locks the agreement row first, then passes it in
	WithinAgreementTx(ctx context.Context, agreementID string, fn func(r Repos, a *lending.Agreement) error) error
}
