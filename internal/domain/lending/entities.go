package lending

import (
	"time"

	"crowdlending/pkg/fixedpoint"
)

type State string

const (
	StateUninitialized          State = "uninitialized"
	StateAcceptingContributions State = "accepting_contributions"
	StateExchangingToFiat       State = "exchanging_to_fiat"
	StateAwaitingReturn         State = "awaiting_return"
	StateProjectNotFunded       State = "project_not_funded"
	StateContributionReturned   State = "contribution_returned"
	StateDefault                State = "default"
	// StateClosed is terminal and inert: every mutation is rejected.
	StateClosed State = "closed"
)

// Agreement is one funding round. Terms are fixed at creation, activation
// parameters once at Activate; everything below "runtime" moves with the state machine.
type Agreement struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	AgreementID string `gorm:"size:32;uniqueIndex:ux_agreements_agreement_id" json:"agreement_id"`

	Operator  string `gorm:"size:32;not null" json:"operator"`
	Borrower  string `gorm:"size:32;not null;index:idx_agreements_borrower" json:"borrower"`
	LocalNode string `gorm:"size:32;not null;index:idx_agreements_local_node" json:"local_node"`
	Team      string `gorm:"size:32;not null" json:"team"`
	Community string `gorm:"size:32" json:"community"`

	FundingStartTime time.Time `gorm:"not null" json:"funding_start_time"`
	FundingEndTime   time.Time `gorm:"not null" json:"funding_end_time"`
	LendingDays      int64     `gorm:"not null" json:"lending_days"`
	MaxDefaultDays   int64     `json:"max_default_days"`

	// percentages in hundredths: 1500 = 15.00%
	AnnualInterestHundredths int64             `gorm:"not null" json:"annual_interest_hundredths"`
	LocalNodeFeeHundredths   int64             `gorm:"not null" json:"local_node_fee_hundredths"`
	TeamFeeHundredths        int64             `gorm:"not null" json:"team_fee_hundredths"`
	TargetAmount             fixedpoint.Amount `gorm:"type:varchar(80);not null" json:"target_amount"`
	Tier                     int64             `json:"tier"`
	CommunityMembers         int64             `json:"community_members"`

	// runtime
	State                State             `gorm:"size:32;not null;default:'uninitialized'" json:"state"`
	ContributedAmount    fixedpoint.Amount `gorm:"type:varchar(80);not null" json:"contributed_amount"`
	EscrowBalance        fixedpoint.Amount `gorm:"type:varchar(80);not null" json:"escrow_balance"`
	InitialRate          int64             `json:"initial_rate"`
	FinalRate            int64             `json:"final_rate"`
	FiatPrincipal        fixedpoint.Amount `gorm:"type:varchar(80)" json:"fiat_principal"`
	FiatDue              fixedpoint.Amount `gorm:"type:varchar(80)" json:"fiat_due"`
	BorrowerReturnAmount fixedpoint.Amount `gorm:"type:varchar(80)" json:"borrower_return_amount"`
	DefaultDays          int64             `json:"default_days"`
	ContributorCount     int64             `json:"contributor_count"`
	SettledClaims        int64             `json:"settled_claims"`
	LocalNodeFeeClaimed  bool              `json:"local_node_fee_claimed"`
	TeamFeeClaimed       bool              `json:"team_fee_claimed"`

	StateUpdatedAt time.Time `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Agreement) TableName() string { return "agreements" }

// Contribution is one investor's pledge to one agreement. Repeat pledges accumulate
// into the same row.
type Contribution struct {
	ID          uint64            `gorm:"primaryKey;column:id" json:"-"`
	AgreementID uint64            `gorm:"not null;uniqueIndex:ux_contributions_agreement_investor" json:"-"`
	Investor    string            `gorm:"size:32;not null;uniqueIndex:ux_contributions_agreement_investor" json:"investor"`
	Amount      fixedpoint.Amount `gorm:"type:varchar(80);not null" json:"amount"`
	// Reclaimed is the principal-only refund after ProjectNotFunded.
	Reclaimed bool `json:"reclaimed"`
	// Withdrawn is the principal+interest withdrawal after ContributionReturned.
	Withdrawn bool      `json:"withdrawn"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Contribution) TableName() string { return "contributions" }

// Transition moves the agreement to s and stamps the change.
func (a *Agreement) Transition(s State, at time.Time) {
	a.State = s
	a.StateUpdatedAt = at.UTC()
}

// OutstandingClaims counts investors and fee pools that have not withdrawn yet in
// the states where withdrawals are owed.
func (a *Agreement) OutstandingClaims() int64 {
	switch a.State {
	case StateContributionReturned:
		return a.ContributorCount + 2 - a.SettledClaims
	case StateProjectNotFunded:
		return a.ContributorCount - a.SettledClaims
	}
	return 0
}
