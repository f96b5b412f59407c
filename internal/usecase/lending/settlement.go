package lending

import (
	"context"
	"errors"
	"fmt"

	domain "crowdlending/internal/domain/lending"
	"crowdlending/internal/domain/payout"
	"crowdlending/internal/domain/uow"
	"crowdlending/pkg/fixedpoint"
)

// settle takes one claim out of escrow. The last outstanding claim receives
// whatever remains so the residual ends at exactly zero.
func settle(a *domain.Agreement, owed fixedpoint.Amount) (fixedpoint.Amount, error) {
	amount := fixedpoint.Min(owed, a.EscrowBalance)
	if a.OutstandingClaims() == 1 {
		amount = a.EscrowBalance
	}
	rest, err := a.EscrowBalance.Sub(amount)
	if err != nil {
		return fixedpoint.Zero(), err
	}
	a.EscrowBalance = rest
	a.SettledClaims++
	return amount, nil
}

type claimFn func(ctx context.Context, r uow.Repos, a *domain.Agreement) (*payout.Payout, error)

// withdraw runs a claim with the shared bookkeeping: save, then queue the payout last.
func (u *Usecase) withdraw(ctx context.Context, op, agreementID string, claim claimFn) (*PayoutDTO, error) {
	var p *payout.Payout
	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		var err error
		if p, err = claim(ctx, r, a); err != nil {
			return err
		}
		if err := r.Agreements.Save(ctx, a); err != nil {
			return err
		}
		return queue(ctx, r, a, p)
	})
	if err != nil {
		return nil, u.reject(op, agreementID, err)
	}
	u.queued(p)
	log.Infow("claim settled", "op", op, "agreement", agreementID, "beneficiary", p.Beneficiary, "amount", p.Amount.Units())
	return &PayoutDTO{ID: p.ID, AgreementID: agreementID, Beneficiary: p.Beneficiary, Kind: string(p.Kind), Amount: p.Amount, CreatedAt: p.CreatedAt}, nil
}

func contributionOf(ctx context.Context, r uow.Repos, a *domain.Agreement, investor string) (*domain.Contribution, error) {
	c, err := r.Agreements.GetContribution(ctx, a.ID, investor)
	if errors.Is(err, domain.ErrNoContribution) {
		return nil, fmt.Errorf("%w: %s never contributed", domain.ErrUnauthorized, investor)
	}
	return c, err
}

// ReclaimContribution refunds the beneficiary's principal after the project went unfunded.
func (u *Usecase) ReclaimContribution(ctx context.Context, in ReclaimInput) (*PayoutDTO, error) {
	return u.withdraw(ctx, "reclaim_contribution", in.AgreementID, func(ctx context.Context, r uow.Repos, a *domain.Agreement) (*payout.Payout, error) {
		if in.Caller != in.Beneficiary && in.Caller != a.Operator {
			return nil, domain.ErrUnauthorized
		}
		if a.State != domain.StateProjectNotFunded {
			return nil, fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		c, err := contributionOf(ctx, r, a, in.Beneficiary)
		if err != nil {
			return nil, err
		}
		if c.Reclaimed {
			return nil, domain.ErrAlreadyClaimed
		}
		if c.Amount.Cmp(a.EscrowBalance) > 0 {
			return nil, fmt.Errorf("%w: escrow %s below pledge %s", domain.ErrAmountMismatch, a.EscrowBalance, c.Amount)
		}
		amount, err := settle(a, c.Amount)
		if err != nil {
			return nil, err
		}
		c.Reclaimed = true
		if err := r.Agreements.SaveContribution(ctx, c); err != nil {
			return nil, err
		}
		return &payout.Payout{Beneficiary: in.Beneficiary, Kind: payout.KindContributionRefund, Amount: amount}, nil
	})
}

// ReclaimContributionWithInterest pays the beneficiary's principal plus yield after repayment.
func (u *Usecase) ReclaimContributionWithInterest(ctx context.Context, in ReclaimInput) (*PayoutDTO, error) {
	return u.withdraw(ctx, "reclaim_with_interest", in.AgreementID, func(ctx context.Context, r uow.Repos, a *domain.Agreement) (*payout.Payout, error) {
		if in.Caller != in.Beneficiary && in.Caller != a.Operator {
			return nil, domain.ErrUnauthorized
		}
		if a.State != domain.StateContributionReturned {
			return nil, fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		c, err := contributionOf(ctx, r, a, in.Beneficiary)
		if err != nil {
			return nil, err
		}
		if c.Withdrawn {
			return nil, domain.ErrAlreadyClaimed
		}
		owed, err := a.InvestorReturn(c.Amount)
		if err != nil {
			return nil, err
		}
		amount, err := settle(a, owed)
		if err != nil {
			return nil, err
		}
		c.Withdrawn = true
		if err := r.Agreements.SaveContribution(ctx, c); err != nil {
			return nil, err
		}
		return &payout.Payout{Beneficiary: in.Beneficiary, Kind: payout.KindInvestorReturn, Amount: amount}, nil
	})
}

type feeClaim struct {
	op          string
	kind        payout.Kind
	beneficiary func(a *domain.Agreement) string
	hundredths  func(a *domain.Agreement) int64
	claimed     func(a *domain.Agreement) *bool
}

var (
	localNodeFee = feeClaim{
		op:          "reclaim_local_node_fee",
		kind:        payout.KindLocalNodeFee,
		beneficiary: func(a *domain.Agreement) string { return a.LocalNode },
		hundredths:  func(a *domain.Agreement) int64 { return a.LocalNodeFeeHundredths },
		claimed:     func(a *domain.Agreement) *bool { return &a.LocalNodeFeeClaimed },
	}
	teamFee = feeClaim{
		op:          "reclaim_team_fee",
		kind:        payout.KindTeamFee,
		beneficiary: func(a *domain.Agreement) string { return a.Team },
		hundredths:  func(a *domain.Agreement) int64 { return a.TeamFeeHundredths },
		claimed:     func(a *domain.Agreement) *bool { return &a.TeamFeeClaimed },
	}
)

func (u *Usecase) reclaimFee(ctx context.Context, caller, agreementID string, f feeClaim) (*PayoutDTO, error) {
	return u.withdraw(ctx, f.op, agreementID, func(_ context.Context, _ uow.Repos, a *domain.Agreement) (*payout.Payout, error) {
		to := f.beneficiary(a)
		if caller != to && caller != a.Operator {
			return nil, domain.ErrUnauthorized
		}
		if a.State != domain.StateContributionReturned {
			return nil, fmt.Errorf("%w: %s", domain.ErrWrongState, a.State)
		}
		claimed := f.claimed(a)
		if *claimed {
			return nil, domain.ErrAlreadyClaimed
		}
		owed, err := a.FeePool(f.hundredths(a))
		if err != nil {
			return nil, err
		}
		amount, err := settle(a, owed)
		if err != nil {
			return nil, err
		}
		*claimed = true
		return &payout.Payout{Beneficiary: to, Kind: f.kind, Amount: amount}, nil
	})
}

func (u *Usecase) ReclaimLocalNodeFee(ctx context.Context, caller, agreementID string) (*PayoutDTO, error) {
	return u.reclaimFee(ctx, caller, agreementID, localNodeFee)
}

func (u *Usecase) ReclaimTeamFee(ctx context.Context, caller, agreementID string) (*PayoutDTO, error) {
	return u.reclaimFee(ctx, caller, agreementID, teamFee)
}

// Close sweeps any residual escrow to the operator and makes the agreement inert.
// It refuses while funds are in flight or any party still holds a claim.
func (u *Usecase) Close(ctx context.Context, caller, agreementID string) (*AgreementDTO, error) {
	var (
		out   *domain.Agreement
		sweep *payout.Payout
	)
	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		if caller != a.Operator {
			return domain.ErrUnauthorized
		}
		switch a.State {
		case domain.StateClosed:
			return fmt.Errorf("%w: already closed", domain.ErrWrongState)
		case domain.StateExchangingToFiat, domain.StateAwaitingReturn:
			return fmt.Errorf("%w: loan in flight", domain.ErrOutstandingClaims)
		case domain.StateAcceptingContributions:
			if !a.ContributedAmount.IsZero() {
				return fmt.Errorf("%w: contributions held in escrow", domain.ErrOutstandingClaims)
			}
		}
		if n := a.OutstandingClaims(); n > 0 {
			return fmt.Errorf("%w: %d unsettled", domain.ErrOutstandingClaims, n)
		}

		sweep = &payout.Payout{Beneficiary: a.Operator, Kind: payout.KindResidualSweep, Amount: a.EscrowBalance}
		a.EscrowBalance = fixedpoint.Zero()
		a.Transition(domain.StateClosed, u.clock.Now())
		if err := r.Agreements.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return queue(ctx, r, a, sweep)
	})
	if err != nil {
		return nil, u.reject("close", agreementID, err)
	}
	u.queued(sweep)
	u.transitioned(out)
	return u.toDTO(out), nil
}
