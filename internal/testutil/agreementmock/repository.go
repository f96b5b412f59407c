package agreementmock

import (
	"context"

	domain "crowdlending/internal/domain/lending"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies lending.Repository.
// Writes default to no-op nil, reads default to context.Canceled.
type Repo struct {
	CreateFn                    func(ctx context.Context, a *domain.Agreement) error
	GetByAgreementIDFn          func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	GetByAgreementIDForUpdateFn func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	SaveFn                      func(ctx context.Context, a *domain.Agreement) error
	GetContributionFn           func(ctx context.Context, agreementNumericID uint64, investor string) (*domain.Contribution, error)
	SaveContributionFn          func(ctx context.Context, c *domain.Contribution) error
	ListContributionsFn         func(ctx context.Context, agreementNumericID uint64) ([]domain.Contribution, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Agreement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAgreementID(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDFn != nil {
		return m.GetByAgreementIDFn(ctx, agreementID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDForUpdateFn != nil {
		return m.GetByAgreementIDForUpdateFn(ctx, agreementID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Agreement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetContribution(ctx context.Context, agreementNumericID uint64, investor string) (*domain.Contribution, error) {
	if m.GetContributionFn != nil {
		return m.GetContributionFn(ctx, agreementNumericID, investor)
	}
	return nil, context.Canceled
}

func (m *Repo) SaveContribution(ctx context.Context, c *domain.Contribution) error {
	if m.SaveContributionFn != nil {
		return m.SaveContributionFn(ctx, c)
	}
	return nil
}

func (m *Repo) ListContributions(ctx context.Context, agreementNumericID uint64) ([]domain.Contribution, error) {
	if m.ListContributionsFn != nil {
		return m.ListContributionsFn(ctx, agreementNumericID)
	}
	return nil, context.Canceled
}
