package lending

import "context"

type Repository interface {
	Create(ctx context.Context, a *Agreement) error
	GetByAgreementID(ctx context.Context, agreementID string) (*Agreement, error)
	// Locks the row for the rest of the surrounding transaction.
	GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*Agreement, error)
	Save(ctx context.Context, a *Agreement) error

	GetContribution(ctx context.Context, agreementNumericID uint64, investor string) (*Contribution, error)
	SaveContribution(ctx context.Context, c *Contribution) error
	ListContributions(ctx context.Context, agreementNumericID uint64) ([]Contribution, error)
}
