package lending

import (
	"context"
	"fmt"

	domain "crowdlending/internal/domain/lending"
	"crowdlending/internal/domain/uow"
)

// FinishInitialExchange fixes the rate the borrowed funds were exchanged at and
// derives what the borrower owes in the reference unit.
func (u *Usecase) FinishInitialExchange(ctx context.Context, in RateInput) (*AgreementDTO, error) {
	if in.Rate <= 0 {
		return nil, u.reject("finish_exchange", in.AgreementID, fmt.Errorf("%w: rate must be positive", domain.ErrInvalidInput))
	}
	var out *domain.Agreement
	err := u.uow.WithinAgreementTx(ctx, in.AgreementID, func(r uow.Repos, a *domain.Agreement) error {
		if in.Caller != a.Operator {
			return domain.ErrUnauthorized
		}
		if a.State != domain.StateExchangingToFiat {
			return fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		principal, err := a.FiatPrincipalFor(in.Rate)
		if err != nil {
			return err
		}
		a.InitialRate = in.Rate
		a.FiatPrincipal = principal
		if a.FiatDue, err = a.FiatDueFor(0); err != nil {
			return err
		}
		a.Transition(domain.StateAwaitingReturn, u.clock.Now())
		out = a
		return r.Agreements.Save(ctx, a)
	})
	if err != nil {
		return nil, u.reject("finish_exchange", in.AgreementID, err)
	}
	u.transitioned(out)
	log.Infow("initial exchange finished", "agreement", out.AgreementID, "rate", out.InitialRate,
		"fiat_principal", out.FiatPrincipal.String(), "fiat_due", out.FiatDue.String())
	return u.toDTO(out), nil
}

// SetReturnRate fixes the repayment-time rate; it may be reset until funds come back.
func (u *Usecase) SetReturnRate(ctx context.Context, in RateInput) (*AgreementDTO, error) {
	if in.Rate <= 0 {
		return nil, u.reject("set_return_rate", in.AgreementID, fmt.Errorf("%w: rate must be positive", domain.ErrInvalidInput))
	}
	var out *domain.Agreement
	err := u.uow.WithinAgreementTx(ctx, in.AgreementID, func(r uow.Repos, a *domain.Agreement) error {
		if in.Caller != a.Operator {
			return domain.ErrUnauthorized
		}
		if a.State != domain.StateAwaitingReturn {
			return fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		a.FinalRate = in.Rate
		var err error
		if a.BorrowerReturnAmount, err = a.ReturnAmountFor(0); err != nil {
			return err
		}
		out = a
		return r.Agreements.Save(ctx, a)
	})
	if err != nil {
		return nil, u.reject("set_return_rate", in.AgreementID, err)
	}
	log.Infow("return rate set", "agreement", out.AgreementID, "rate", out.FinalRate,
		"borrower_return", out.BorrowerReturnAmount.Units())
	return u.toDTO(out), nil
}

// ReturnFunds accepts the borrower's repayment when it matches the amount due at
// this instant, then settles reputation: increment when on time, burn when late.
func (u *Usecase) ReturnFunds(ctx context.Context, in ReturnInput) (*AgreementDTO, error) {
	var out *domain.Agreement
	err := u.uow.WithinAgreementTx(ctx, in.AgreementID, func(r uow.Repos, a *domain.Agreement) error {
		if in.Caller != a.Borrower {
			return domain.ErrUnauthorized
		}
		if a.State != domain.StateAwaitingReturn {
			return fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		now := u.clock.Now()
		if !now.Before(a.DefaultDeadline()) {
			return fmt.Errorf("%w: default deadline %s passed", domain.ErrWindowClosed, a.DefaultDeadline())
		}
		required, err := a.RequiredReturnAmount(now)
		if err != nil {
			return err
		}
		if !in.Amount.Equal(required) {
			return fmt.Errorf("%w: got %s, want %s", domain.ErrAmountMismatch, in.Amount, required)
		}

		a.DefaultDays = a.DefaultDaysAt(now)
		a.EscrowBalance = a.EscrowBalance.Add(in.Amount)
		a.Transition(domain.StateContributionReturned, now)
		if err := r.Agreements.Save(ctx, a); err != nil {
			return err
		}

		if a.DefaultDays > 0 {
			if err := u.reputation.BurnReputation(ctx, r, a.AgreementID, a.DefaultDays); err != nil {
				return err
			}
		} else {
			completed, err := r.Reputation.IncrementCompletedProjects(ctx, a.Community, a.Tier)
			if err != nil {
				return err
			}
			if err := u.reputation.IncrementReputation(ctx, r, a.AgreementID, completed); err != nil {
				return err
			}
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, u.reject("return_funds", in.AgreementID, err)
	}
	u.transitioned(out)
	log.Infow("funds returned", "agreement", out.AgreementID, "amount", in.Amount.Units(), "default_days", out.DefaultDays)
	return u.toDTO(out), nil
}

// DeclareDefault ends an agreement whose borrower never repaid within the grace period.
func (u *Usecase) DeclareDefault(ctx context.Context, caller, agreementID string) (*AgreementDTO, error) {
	var out *domain.Agreement
	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		if caller != a.Operator && caller != a.LocalNode {
			return domain.ErrUnauthorized
		}
		if a.State != domain.StateAwaitingReturn {
			return fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		now := u.clock.Now()
		if now.Before(a.DefaultDeadline()) {
			return fmt.Errorf("%w: default may be declared from %s", domain.ErrNotYetDue, a.DefaultDeadline())
		}

		a.DefaultDays = min(a.DefaultDaysAt(now), a.MaxDefaultDays)
		a.Transition(domain.StateDefault, now)
		if err := r.Agreements.Save(ctx, a); err != nil {
			return err
		}
		if err := u.reputation.BurnReputation(ctx, r, a.AgreementID, a.DefaultDays); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, u.reject("declare_default", agreementID, err)
	}
	u.transitioned(out)
	log.Warnw("agreement defaulted", "agreement", out.AgreementID, "default_days", out.DefaultDays)
	return u.toDTO(out), nil
}
