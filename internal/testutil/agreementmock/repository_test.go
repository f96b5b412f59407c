package agreementmock

import (
	"context"
	"errors"
	"testing"

	domain "crowdlending/internal/domain/lending"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	a := &domain.Agreement{AgreementID: "AG-1"}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Agreement) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Create ctx mismatch")
			}
			if got != a {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, a); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op
	m = &Repo{}
	if err := m.Create(ctx, a); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_ReadsDefaultToCanceled(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if _, err := m.GetByAgreementID(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByAgreementID default: got %v", err)
	}
	if _, err := m.GetByAgreementIDForUpdate(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByAgreementIDForUpdate default: got %v", err)
	}
	if _, err := m.GetContribution(ctx, 1, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetContribution default: got %v", err)
	}
	if _, err := m.ListContributions(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListContributions default: got %v", err)
	}
	if err := m.Save(ctx, &domain.Agreement{}); err != nil {
		t.Fatalf("Save default: got %v", err)
	}
	if err := m.SaveContribution(ctx, &domain.Contribution{}); err != nil {
		t.Fatalf("SaveContribution default: got %v", err)
	}
}

func TestRepo_ForwardsArgs(t *testing.T) {
	ctx := context.Background()
	want := &domain.Agreement{AgreementID: "AG-2"}
	m := &Repo{
		GetByAgreementIDForUpdateFn: func(_ context.Context, agreementID string) (*domain.Agreement, error) {
			if agreementID != "AG-2" {
				t.Fatalf("agreementID mismatch: %s", agreementID)
			}
			return want, nil
		},
		GetContributionFn: func(_ context.Context, n uint64, investor string) (*domain.Contribution, error) {
			if n != 7 || investor != "inv" {
				t.Fatalf("GetContribution args: %d %s", n, investor)
			}
			return nil, domain.ErrNoContribution
		},
	}
	got, err := m.GetByAgreementIDForUpdate(ctx, "AG-2")
	if err != nil || got != want {
		t.Fatalf("GetByAgreementIDForUpdate = %v, %v", got, err)
	}
	if _, err := m.GetContribution(ctx, 7, "inv"); !errors.Is(err, domain.ErrNoContribution) {
		t.Fatalf("GetContribution: got %v", err)
	}
}
