package payoutmock

import (
	"context"

	domain "crowdlending/internal/domain/payout"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies payout.Repository.
// With CreateFn unset, Create records the payout in Created.
type Repo struct {
	CreateFn          func(ctx context.Context, p *domain.Payout) error
	ListByAgreementFn func(ctx context.Context, agreementNumericID uint64) ([]domain.Payout, error)

	Created []domain.Payout
}

func (m *Repo) Create(ctx context.Context, p *domain.Payout) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	m.Created = append(m.Created, *p)
	return nil
}

func (m *Repo) ListByAgreement(ctx context.Context, agreementNumericID uint64) ([]domain.Payout, error) {
	if m.ListByAgreementFn != nil {
		return m.ListByAgreementFn(ctx, agreementNumericID)
	}
	return nil, context.Canceled
}
