package payoutmock

import (
	"context"
	"errors"
	"testing"

	domain "crowdlending/internal/domain/payout"
	"crowdlending/pkg/fixedpoint"
)

func TestRepo_CreateRecords(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	p := &domain.Payout{Beneficiary: "b", Kind: domain.KindTeamFee, Amount: fixedpoint.NewAmount(3)}
	if err := m.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(m.Created) != 1 || m.Created[0].Beneficiary != "b" {
		t.Fatalf("Created = %+v", m.Created)
	}
	if _, err := m.ListByAgreement(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListByAgreement default: got %v", err)
	}
}

func TestRepo_CreateFn(t *testing.T) {
	boom := errors.New("boom")
	m := &Repo{CreateFn: func(context.Context, *domain.Payout) error { return boom }}
	if err := m.Create(context.Background(), &domain.Payout{}); !errors.Is(err, boom) {
		t.Fatalf("Create: want boom, got %v", err)
	}
	if len(m.Created) != 0 {
		t.Fatalf("CreateFn must replace recording")
	}
}
