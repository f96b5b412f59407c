package mysql

import (
	"testing"
	"time"

	"crowdlending/internal/domain/lending"
	"crowdlending/pkg/fixedpoint"
	"crowdlending/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with every table migrated.
// One connection only: each :memory: connection is its own database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeAgreement(agreementID string) *lending.Agreement {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &lending.Agreement{
		AgreementID:              agreementID,
		Operator:                 id.NewID32(),
		Borrower:                 id.NewID32(),
		LocalNode:                id.NewID32(),
		Team:                     id.NewID32(),
		FundingStartTime:         start,
		FundingEndTime:           start.Add(40 * lending.Day),
		LendingDays:              90,
		AnnualInterestHundredths: 1500,
		LocalNodeFeeHundredths:   300,
		TeamFeeHundredths:        400,
		TargetAmount:             fixedpoint.MustUnits("3"),
		State:                    lending.StateUninitialized,
		StateUpdatedAt:           start,
	}
}
