package payout

import (
	"time"

	"crowdlending/pkg/fixedpoint"
)

type Kind string

const (
	KindBorrowerDisbursement Kind = "borrower_disbursement"
	KindExcessRefund         Kind = "excess_refund"
	KindContributionRefund   Kind = "contribution_refund"
	KindInvestorReturn       Kind = "investor_return"
	KindLocalNodeFee         Kind = "local_node_fee"
	KindTeamFee              Kind = "team_fee"
	KindResidualSweep        Kind = "residual_sweep"
)

// Payout is one outbound transfer owed to Beneficiary. Rows are append-only.
type Payout struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	AgreementID uint64            `gorm:"not null;index:idx_payouts_agreement" json:"-"`
	Beneficiary string            `gorm:"size:32;not null;index:idx_payouts_beneficiary" json:"beneficiary"`
	Kind        Kind              `gorm:"size:32;not null" json:"kind"`
	Amount      fixedpoint.Amount `gorm:"type:varchar(80);not null" json:"amount"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Payout) TableName() string { return "payouts" }
