package lending

import (
	"context"
	"errors"
	"fmt"

	domain "crowdlending/internal/domain/lending"
	"crowdlending/internal/domain/payout"
	"crowdlending/internal/domain/registry"
	"crowdlending/internal/domain/uow"
	"crowdlending/pkg/fixedpoint"
)

// Contribute adds the caller's pledge. Anything above the remaining target is
// refunded in the same operation; filling the target disburses the escrow to the
// borrower and ends the funding phase.
func (u *Usecase) Contribute(ctx context.Context, in ContributeInput) (*ContributeResult, error) {
	if in.Amount.IsZero() {
		return nil, u.reject("contribute", in.AgreementID, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput))
	}

	var (
		res      *ContributeResult
		out      *domain.Agreement
		payouts  []*payout.Payout
		capFired bool
	)
	err := u.uow.WithinAgreementTx(ctx, in.AgreementID, func(r uow.Repos, a *domain.Agreement) error {
		now := u.clock.Now()
		if a.State != domain.StateAcceptingContributions {
			if a.CapReached() && a.State != domain.StateClosed {
				return domain.ErrCapExceeded
			}
			return fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		if now.Before(a.FundingStartTime) {
			return domain.ErrWindowNotOpen
		}
		if now.After(a.FundingEndTime) {
			return domain.ErrWindowClosed
		}
		if err := requireRole(ctx, r, in.Caller, registry.RoleInvestor); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
		}

		remaining, err := a.TargetAmount.Sub(a.ContributedAmount)
		if err != nil || remaining.IsZero() {
			return domain.ErrCapExceeded
		}
		accepted := fixedpoint.Min(in.Amount, remaining)
		excess, err := in.Amount.Sub(accepted)
		if err != nil {
			return err
		}

		c, err := r.Agreements.GetContribution(ctx, a.ID, in.Caller)
		switch {
		case errors.Is(err, domain.ErrNoContribution):
			c = &domain.Contribution{AgreementID: a.ID, Investor: in.Caller}
			a.ContributorCount++
		case err != nil:
			return err
		}
		c.Amount = c.Amount.Add(accepted)
		if err := r.Agreements.SaveContribution(ctx, c); err != nil {
			return err
		}

		a.ContributedAmount = a.ContributedAmount.Add(accepted)
		a.EscrowBalance = a.EscrowBalance.Add(accepted)

		payouts = append(payouts, &payout.Payout{Beneficiary: in.Caller, Kind: payout.KindExcessRefund, Amount: excess})
		if a.CapReached() {
			payouts = append(payouts, &payout.Payout{Beneficiary: a.Borrower, Kind: payout.KindBorrowerDisbursement, Amount: a.EscrowBalance})
			a.EscrowBalance = fixedpoint.Zero()
			a.Transition(domain.StateExchangingToFiat, now)
			capFired = true
		}
		if err := r.Agreements.Save(ctx, a); err != nil {
			return err
		}
		// transfers go out only after every balance above is persisted
		if err := queue(ctx, r, a, payouts...); err != nil {
			return err
		}

		res = &ContributeResult{AgreementID: a.AgreementID, Accepted: accepted, Refunded: excess, State: string(a.State)}
		out = a
		return nil
	})
	if err != nil {
		return nil, u.reject("contribute", in.AgreementID, err)
	}

	u.metrics.IncrementContributions()
	u.queued(payouts...)
	log.Infow("contribution accepted", "agreement", in.AgreementID, "investor", in.Caller,
		"accepted", res.Accepted.Units(), "refunded", res.Refunded.Units())
	if capFired {
		u.transitioned(out)
	}
	return res, nil
}

// DeclareNotFunded closes a funding window that ended short of the target.
func (u *Usecase) DeclareNotFunded(ctx context.Context, caller, agreementID string) (*AgreementDTO, error) {
	var out *domain.Agreement
	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		if caller != a.Operator {
			return domain.ErrUnauthorized
		}
		if a.State != domain.StateAcceptingContributions {
			return fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		now := u.clock.Now()
		if !now.After(a.FundingEndTime) {
			return fmt.Errorf("%w: funding ends at %s", domain.ErrWindowNotOpen, a.FundingEndTime)
		}
		a.Transition(domain.StateProjectNotFunded, now)
		out = a
		return r.Agreements.Save(ctx, a)
	})
	if err != nil {
		return nil, u.reject("declare_not_funded", agreementID, err)
	}
	u.transitioned(out)
	return u.toDTO(out), nil
}
