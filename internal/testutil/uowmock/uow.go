package uowmock

import (
	"context"
	"errors"

	"crowdlending/internal/domain/lending"
	"crowdlending/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinAgreementTxFn func(ctx context.Context, agreementID string, fn func(r uow.Repos, a *lending.Agreement) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinAgreementTx(fn func(context.Context, string, func(uow.Repos, *lending.Agreement) error) error) *UoW {
	m.WithinAgreementTxFn = fn
	return m
}

// Passthrough runs every body directly against r, locking by r.Agreements.GetByAgreementIDForUpdate.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error { return fn(r) },
		WithinAgreementTxFn: func(ctx context.Context, agreementID string, fn func(uow.Repos, *lending.Agreement) error) error {
			a, err := r.Agreements.GetByAgreementIDForUpdate(ctx, agreementID)
			if err != nil {
				return err
			}
			return fn(r, a)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinAgreementTx(ctx context.Context, agreementID string, fn func(r uow.Repos, a *lending.Agreement) error) error {
	if m.WithinAgreementTxFn != nil {
		return m.WithinAgreementTxFn(ctx, agreementID, fn)
	}
	return errUnimplemented
}
