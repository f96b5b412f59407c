package registry

import "context"

type Repository interface {
	// Upsert creates the registration or updates its status.
	Upsert(ctx context.Context, identity string, role Role, active bool) error
	// SetStatus fails with ErrNotFound for identities never registered under role.
	SetStatus(ctx context.Context, identity string, role Role, active bool) error
	IsRegistered(ctx context.Context, identity string, role Role) (bool, error)

	RegisterContract(ctx context.Context, agreementID, by string) error
	IsContractRegistered(ctx context.Context, agreementID string) (bool, error)
}
