package registrymock

import (
	"context"

	domain "crowdlending/internal/domain/registry"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies registry.Repository.
type Repo struct {
	UpsertFn               func(ctx context.Context, identity string, role domain.Role, active bool) error
	SetStatusFn            func(ctx context.Context, identity string, role domain.Role, active bool) error
	IsRegisteredFn         func(ctx context.Context, identity string, role domain.Role) (bool, error)
	RegisterContractFn     func(ctx context.Context, agreementID, by string) error
	IsContractRegisteredFn func(ctx context.Context, agreementID string) (bool, error)
}

func (m *Repo) Upsert(ctx context.Context, identity string, role domain.Role, active bool) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, identity, role, active)
	}
	return nil
}

func (m *Repo) SetStatus(ctx context.Context, identity string, role domain.Role, active bool) error {
	if m.SetStatusFn != nil {
		return m.SetStatusFn(ctx, identity, role, active)
	}
	return nil
}

func (m *Repo) IsRegistered(ctx context.Context, identity string, role domain.Role) (bool, error) {
	if m.IsRegisteredFn != nil {
		return m.IsRegisteredFn(ctx, identity, role)
	}
	return false, context.Canceled
}

func (m *Repo) RegisterContract(ctx context.Context, agreementID, by string) error {
	if m.RegisterContractFn != nil {
		return m.RegisterContractFn(ctx, agreementID, by)
	}
	return nil
}

func (m *Repo) IsContractRegistered(ctx context.Context, agreementID string) (bool, error) {
	if m.IsContractRegisteredFn != nil {
		return m.IsContractRegisteredFn(ctx, agreementID)
	}
	return false, context.Canceled
}

// AllowAll answers every registration query with true.
func AllowAll() *Repo {
	yes := func(context.Context, string, domain.Role) (bool, error) { return true, nil }
	return &Repo{
		IsRegisteredFn:         yes,
		IsContractRegisteredFn: func(context.Context, string) (bool, error) { return true, nil },
	}
}
