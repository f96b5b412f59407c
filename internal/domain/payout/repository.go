package payout

import "context"

type Repository interface {
	// Create assigns a uuid when p.ID is empty.
	Create(ctx context.Context, p *Payout) error
	ListByAgreement(ctx context.Context, agreementNumericID uint64) ([]Payout, error)
}
