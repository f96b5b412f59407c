package lending

import (
	"context"
	"errors"
	"fmt"

	domain "crowdlending/internal/domain/lending"
	"crowdlending/internal/domain/payout"
	"crowdlending/internal/domain/registry"
	"crowdlending/internal/domain/uow"
	"crowdlending/internal/metrics"
	"crowdlending/pkg/fixedpoint"
	"crowdlending/pkg/id"

	"github.com/benbjohnson/clock"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("lending")

// ReputationUpdater is called inside the operation's transaction on repayment outcomes.
type ReputationUpdater interface {
	BurnReputation(ctx context.Context, r uow.Repos, agreementID string, delayDays int64) error
	IncrementReputation(ctx context.Context, r uow.Repos, agreementID string, completedProjectsInTier int64) error
}

type Fees struct {
	LocalNodeHundredths int64
	TeamHundredths      int64
}

type Usecase struct {
	uow        uow.UnitOfWork
	reputation ReputationUpdater
	clock      clock.Clock
	metrics    *metrics.Metrics
	fees       Fees
}

type Option func(*Usecase)

func WithClock(c clock.Clock) Option { return func(u *Usecase) { u.clock = c } }

func WithMetrics(m *metrics.Metrics) Option { return func(u *Usecase) { u.metrics = m } }

// WithDefaultFees sets the fee percentages used when Create leaves them unset.
func WithDefaultFees(f Fees) Option { return func(u *Usecase) { u.fees = f } }

func NewUsecase(tx uow.UnitOfWork, rep ReputationUpdater, opts ...Option) *Usecase {
	u := &Usecase{
		uow:        tx,
		reputation: rep,
		clock:      clock.New(),
		fees:       Fees{LocalNodeHundredths: 300, TeamHundredths: 400},
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// reject records a failed operation and hands err back.
func (u *Usecase) reject(op, agreementID string, err error) error {
	u.metrics.IncrementRejected(op)
	log.Debugw("operation rejected", "op", op, "agreement", agreementID, "err", err)
	return err
}

func (u *Usecase) transitioned(a *domain.Agreement) {
	u.metrics.IncrementStateTransition(string(a.State))
	log.Infow("agreement state changed", "agreement", a.AgreementID, "state", a.State)
}

// queue appends outbound transfers; callers invoke it as their last effect.
func queue(ctx context.Context, r uow.Repos, a *domain.Agreement, ps ...*payout.Payout) error {
	for _, p := range ps {
		if p == nil || p.Amount.IsZero() {
			continue
		}
		p.AgreementID = a.ID
		if err := r.Payouts.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (u *Usecase) queued(ps ...*payout.Payout) {
	for _, p := range ps {
		if p == nil || p.Amount.IsZero() {
			continue
		}
		u.metrics.IncrementPayout(string(p.Kind))
	}
}

func requireRole(ctx context.Context, r uow.Repos, identity string, role registry.Role) error {
	ok, err := r.Registry.IsRegistered(ctx, identity, role)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is not a registered %s", domain.ErrRegistrationMissing, identity, role)
	}
	return nil
}

const maxAnnualInterestHundredths = 100000

func validateCreate(in CreateInput, fees Fees) error {
	var bad []string
	for _, f := range [...]struct{ name, v string }{
		{"caller", in.Caller}, {"borrower", in.Borrower}, {"local_node", in.LocalNode}, {"team", in.Team},
	} {
		if !id.Valid(f.v) {
			bad = append(bad, f.name)
		}
	}
	switch {
	case len(bad) > 0:
		return fmt.Errorf("%w: invalid identity %v", domain.ErrInvalidInput, bad)
	case in.FundingStartTime.IsZero() || !in.FundingEndTime.After(in.FundingStartTime):
		return fmt.Errorf("%w: funding window must end after it starts", domain.ErrInvalidInput)
	case in.LendingDays <= 0:
		return fmt.Errorf("%w: lending_days must be positive", domain.ErrInvalidInput)
	case in.LendingDays >= domain.MaxTermDays:
		return fmt.Errorf("%w: lending_days must be below %d", domain.ErrInvalidInput, domain.MaxTermDays)
	case in.AnnualInterestHundredths < 0 || in.AnnualInterestHundredths > maxAnnualInterestHundredths:
		return fmt.Errorf("%w: annual interest out of range", domain.ErrInvalidInput)
	case in.TargetAmount.IsZero():
		return fmt.Errorf("%w: target amount must be positive", domain.ErrInvalidInput)
	case fees.LocalNodeHundredths < 0 || fees.TeamHundredths < 0 ||
		fees.LocalNodeHundredths+fees.TeamHundredths > fixedpoint.HundredthsBase:
		return fmt.Errorf("%w: fees out of range", domain.ErrInvalidInput)
	}
	return nil
}

// Create records a new agreement in Uninitialized with the caller as operator.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*AgreementDTO, error) {
	fees := u.fees
	if in.LocalNodeFeeHundredths != nil {
		fees.LocalNodeHundredths = *in.LocalNodeFeeHundredths
	}
	if in.TeamFeeHundredths != nil {
		fees.TeamHundredths = *in.TeamFeeHundredths
	}
	if err := validateCreate(in, fees); err != nil {
		return nil, u.reject("create", "", err)
	}

	now := u.clock.Now().UTC()
	a := &domain.Agreement{
		AgreementID:              id.NewID32(),
		Operator:                 in.Caller,
		Borrower:                 in.Borrower,
		LocalNode:                in.LocalNode,
		Team:                     in.Team,
		FundingStartTime:         in.FundingStartTime.UTC(),
		FundingEndTime:           in.FundingEndTime.UTC(),
		LendingDays:              in.LendingDays,
		AnnualInterestHundredths: in.AnnualInterestHundredths,
		LocalNodeFeeHundredths:   fees.LocalNodeHundredths,
		TeamFeeHundredths:        fees.TeamHundredths,
		TargetAmount:             in.TargetAmount,
		State:                    domain.StateUninitialized,
		StateUpdatedAt:           now,
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := requireRole(ctx, r, in.Borrower, registry.RoleRepresentative); err != nil {
			return err
		}
		if err := requireRole(ctx, r, in.LocalNode, registry.RoleLocalNode); err != nil {
			return err
		}
		return r.Agreements.Create(ctx, a)
	})
	if err != nil {
		return nil, u.reject("create", "", err)
	}

	log.Infow("agreement created", "agreement", a.AgreementID, "operator", a.Operator,
		"borrower", a.Borrower, "target", a.TargetAmount.Units())
	return u.toDTO(a), nil
}

// Activate stores the one-time parameters and opens the agreement for contributions.
func (u *Usecase) Activate(ctx context.Context, in ActivateInput) (*AgreementDTO, error) {
	if in.MaxDefaultDays <= 0 || in.MaxDefaultDays >= domain.MaxTermDays || in.Tier < 1 || in.CommunityMembers <= 0 || !id.Valid(in.Community) {
		return nil, u.reject("activate", in.AgreementID, fmt.Errorf("%w: activation parameters", domain.ErrInvalidInput))
	}

	var out *domain.Agreement
	err := u.uow.WithinAgreementTx(ctx, in.AgreementID, func(r uow.Repos, a *domain.Agreement) error {
		if in.Caller != a.Operator && in.Caller != a.LocalNode {
			return domain.ErrUnauthorized
		}
		if a.State != domain.StateUninitialized {
			return fmt.Errorf("%w: already activated", domain.ErrWrongState)
		}
		if a.LendingDays+in.MaxDefaultDays > domain.MaxTermDays {
			return fmt.Errorf("%w: lending_days + max_default_days exceeds %d", domain.ErrInvalidInput, domain.MaxTermDays)
		}
		if err := requireRole(ctx, r, in.Community, registry.RoleCommunity); err != nil {
			return err
		}

		a.MaxDefaultDays = in.MaxDefaultDays
		a.Tier = in.Tier
		a.CommunityMembers = in.CommunityMembers
		a.Community = in.Community
		a.Transition(domain.StateAcceptingContributions, u.clock.Now())
		if err := r.Agreements.Save(ctx, a); err != nil {
			return err
		}
		if err := r.Registry.RegisterContract(ctx, a.AgreementID, in.Caller); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, u.reject("activate", in.AgreementID, err)
	}
	u.transitioned(out)
	return u.toDTO(out), nil
}

func (u *Usecase) Get(ctx context.Context, agreementID string) (*AgreementDTO, error) {
	var a *domain.Agreement
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		a, err = r.Agreements.GetByAgreementID(ctx, agreementID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u.toDTO(a), nil
}

func (u *Usecase) Contribution(ctx context.Context, agreementID, investor string) (*ContributionDTO, error) {
	var c *domain.Contribution
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Agreements.GetByAgreementID(ctx, agreementID)
		if err != nil {
			return err
		}
		c, err = r.Agreements.GetContribution(ctx, a.ID, investor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ContributionDTO{AgreementID: agreementID, Investor: c.Investor, Amount: c.Amount, Reclaimed: c.Reclaimed, Withdrawn: c.Withdrawn}, nil
}

// DefaultDays is the live default-day count; once funds came back or a default was
// declared it is the recorded value.
func (u *Usecase) DefaultDays(ctx context.Context, agreementID string) (int64, error) {
	dto, err := u.Get(ctx, agreementID)
	if err != nil {
		return 0, err
	}
	return dto.DefaultDays, nil
}

func (u *Usecase) Payouts(ctx context.Context, agreementID string) ([]PayoutDTO, error) {
	var ps []payout.Payout
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Agreements.GetByAgreementID(ctx, agreementID)
		if err != nil {
			return err
		}
		ps, err = r.Payouts.ListByAgreement(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]PayoutDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, PayoutDTO{ID: p.ID, AgreementID: agreementID, Beneficiary: p.Beneficiary, Kind: string(p.Kind), Amount: p.Amount, CreatedAt: p.CreatedAt})
	}
	return out, nil
}

func (u *Usecase) toDTO(a *domain.Agreement) *AgreementDTO {
	now := u.clock.Now()
	dto := &AgreementDTO{
		AgreementID:              a.AgreementID,
		Operator:                 a.Operator,
		Borrower:                 a.Borrower,
		LocalNode:                a.LocalNode,
		Team:                     a.Team,
		Community:                a.Community,
		FundingStartTime:         a.FundingStartTime,
		FundingEndTime:           a.FundingEndTime,
		LendingDays:              a.LendingDays,
		MaxDefaultDays:           a.MaxDefaultDays,
		AnnualInterestHundredths: a.AnnualInterestHundredths,
		LocalNodeFeeHundredths:   a.LocalNodeFeeHundredths,
		TeamFeeHundredths:        a.TeamFeeHundredths,
		TargetAmount:             a.TargetAmount,
		Tier:                     a.Tier,
		CommunityMembers:         a.CommunityMembers,
		State:                    string(a.State),
		ContributedAmount:        a.ContributedAmount,
		EscrowBalance:            a.EscrowBalance,
		InitialRate:              a.InitialRate,
		FinalRate:                a.FinalRate,
		FiatPrincipal:            a.FiatPrincipal,
		FiatDue:                  a.FiatDue,
		BorrowerReturnAmount:     a.BorrowerReturnAmount,
		DefaultDays:              a.DefaultDays,
		ContributorCount:         a.ContributorCount,
		OutstandingClaims:        a.OutstandingClaims(),
		CapReached:               a.CapReached(),
		ContribPeriodRunning:     a.IsContribPeriodRunning(now),
		DueDate:                  a.DueDate(),
		DefaultDeadline:          a.DefaultDeadline(),
		StateUpdatedAt:           a.StateUpdatedAt,
		CreatedAt:                a.CreatedAt,
	}
	if a.State == domain.StateAwaitingReturn {
		dto.DefaultDays = a.DefaultDaysAt(now)
		if amt, err := a.RequiredReturnAmount(now); err == nil {
			dto.RequiredReturnAmount = &amt
		} else if !errors.Is(err, domain.ErrWrongState) {
			log.Warnw("required return amount", "agreement", a.AgreementID, "err", err)
		}
	}
	return dto
}
