package lending

import (
	"context"
	"errors"
	"testing"
	"time"

	"crowdlending/internal/adapter/repository/mysql"
	domain "crowdlending/internal/domain/lending"
	"crowdlending/internal/domain/registry"
	domainRep "crowdlending/internal/domain/reputation"
	"crowdlending/internal/metrics"
	"crowdlending/internal/testutil/dbtest"
	"crowdlending/internal/usecase/reputation"
	"crowdlending/pkg/fixedpoint"
	"crowdlending/pkg/id"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

var fundingStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type env struct {
	t       *testing.T
	db      *gorm.DB
	clk     *clock.Mock
	uc      *Usecase
	metrics *metrics.Metrics

	operator, borrower, localNode, team, community string
	investors                                      []string
}

func newEnv(t *testing.T, opts ...Option) *env {
	t.Helper()
	db := dbtest.Open(t)
	e := &env{
		t:         t,
		db:        db,
		clk:       clock.NewMock(),
		metrics:   metrics.New(prometheus.NewRegistry()),
		operator:  id.NewID32(),
		borrower:  id.NewID32(),
		localNode: id.NewID32(),
		team:      id.NewID32(),
		community: id.NewID32(),
		investors: []string{id.NewID32(), id.NewID32(), id.NewID32()},
	}
	e.clk.Set(fundingStart.Add(-lendingDay))

	ctx := context.Background()
	reg := mysql.NewRegistryRepository(db)
	scores := mysql.NewReputationRepository(db)
	e.register(reg, e.borrower, registry.RoleRepresentative)
	e.register(reg, e.localNode, registry.RoleLocalNode)
	e.register(reg, e.community, registry.RoleCommunity)
	for _, inv := range e.investors {
		e.register(reg, inv, registry.RoleInvestor)
	}
	if err := scores.InitIfAbsent(ctx, domainRep.KindCommunity, e.community, domainRep.InitReputation); err != nil {
		t.Fatal(err)
	}
	if err := scores.InitIfAbsent(ctx, domainRep.KindLocalNode, e.localNode, domainRep.InitReputation); err != nil {
		t.Fatal(err)
	}

	opts = append([]Option{WithClock(e.clk), WithMetrics(e.metrics)}, opts...)
	e.uc = NewUsecase(mysql.NewGormUoW(db), reputation.NewEngine(scores), opts...)
	return e
}

const lendingDay = domain.Day

func (e *env) register(reg *mysql.RegistryRepository, who string, role registry.Role) {
	e.t.Helper()
	if err := reg.Upsert(context.Background(), who, role, true); err != nil {
		e.t.Fatalf("register %s: %v", role, err)
	}
}

func (e *env) createInput() CreateInput {
	return CreateInput{
		Caller:                   e.operator,
		Borrower:                 e.borrower,
		LocalNode:                e.localNode,
		Team:                     e.team,
		FundingStartTime:         fundingStart,
		FundingEndTime:           fundingStart.Add(40 * lendingDay),
		LendingDays:              90,
		AnnualInterestHundredths: 1500,
		TargetAmount:             fixedpoint.MustUnits("3"),
	}
}

// activeAgreement creates and activates a 3-unit, 90-day, 15% agreement.
func (e *env) activeAgreement() string {
	e.t.Helper()
	ctx := context.Background()
	a, err := e.uc.Create(ctx, e.createInput())
	if err != nil {
		e.t.Fatalf("Create: %v", err)
	}
	if _, err := e.uc.Activate(ctx, ActivateInput{
		Caller: e.localNode, AgreementID: a.AgreementID,
		MaxDefaultDays: 10, Tier: 3, CommunityMembers: 100, Community: e.community,
	}); err != nil {
		e.t.Fatalf("Activate: %v", err)
	}
	return a.AgreementID
}

func (e *env) contribute(agreementID string, investor int, units string) (*ContributeResult, error) {
	return e.uc.Contribute(context.Background(), ContributeInput{
		Caller: e.investors[investor], AgreementID: agreementID, Amount: fixedpoint.MustUnits(units),
	})
}

// fundedAgreement runs Scenario A and both exchange steps at 400 -> 500.
func (e *env) fundedAgreement() string {
	e.t.Helper()
	ctx := context.Background()
	agreementID := e.activeAgreement()
	e.clk.Set(fundingStart.Add(lendingDay))
	for i := 0; i < 2; i++ {
		if _, err := e.contribute(agreementID, i, "1.5"); err != nil {
			e.t.Fatalf("contribute %d: %v", i, err)
		}
	}
	if _, err := e.uc.FinishInitialExchange(ctx, RateInput{Caller: e.operator, AgreementID: agreementID, Rate: 400}); err != nil {
		e.t.Fatalf("FinishInitialExchange: %v", err)
	}
	if _, err := e.uc.SetReturnRate(ctx, RateInput{Caller: e.operator, AgreementID: agreementID, Rate: 500}); err != nil {
		e.t.Fatalf("SetReturnRate: %v", err)
	}
	return agreementID
}

func (e *env) get(agreementID string) *AgreementDTO {
	e.t.Helper()
	a, err := e.uc.Get(context.Background(), agreementID)
	if err != nil {
		e.t.Fatalf("Get: %v", err)
	}
	return a
}

func (e *env) score(kind domainRep.Kind, holder string) int64 {
	e.t.Helper()
	s, err := mysql.NewReputationRepository(e.db).Get(context.Background(), kind, holder)
	if err != nil {
		e.t.Fatalf("score: %v", err)
	}
	return s.Value
}

func (e *env) payouts(agreementID string) []PayoutDTO {
	e.t.Helper()
	ps, err := e.uc.Payouts(context.Background(), agreementID)
	if err != nil {
		e.t.Fatalf("Payouts: %v", err)
	}
	return ps
}

func wantErr(t *testing.T, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func wantAmount(t *testing.T, what string, got fixedpoint.Amount, want string) {
	t.Helper()
	if got.String() != want {
		t.Fatalf("%s = %s, want %s", what, got, want)
	}
}
