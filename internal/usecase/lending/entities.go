package lending

import (
	"time"

	"crowdlending/pkg/fixedpoint"
)

type CreateInput struct {
	Caller                   string            `json:"-"`
	Borrower                 string            `json:"borrower" validate:"required,hex32"`
	LocalNode                string            `json:"local_node" validate:"required,hex32"`
	Team                     string            `json:"team" validate:"required,hex32"`
	FundingStartTime         time.Time         `json:"funding_start_time" validate:"required"`
	FundingEndTime           time.Time         `json:"funding_end_time" validate:"required,gtfield=FundingStartTime"`
	LendingDays              int64             `json:"lending_days" validate:"required,gt=0,lt=36500"`
	AnnualInterestHundredths int64             `json:"annual_interest_hundredths" validate:"gte=0,lte=100000"`
	TargetAmount             fixedpoint.Amount `json:"target_amount" validate:"amount"`
	// nil falls back to the configured default
	LocalNodeFeeHundredths *int64 `json:"local_node_fee_hundredths,omitempty" validate:"omitempty,gte=0,lte=10000"`
	TeamFeeHundredths      *int64 `json:"team_fee_hundredths,omitempty" validate:"omitempty,gte=0,lte=10000"`
}

type ActivateInput struct {
	Caller           string `json:"-"`
	AgreementID      string `json:"-"`
	MaxDefaultDays   int64  `json:"max_default_days" validate:"required,gt=0,lt=36500"`
	Tier             int64  `json:"tier" validate:"required,gte=1"`
	CommunityMembers int64  `json:"community_members" validate:"required,gt=0"`
	Community        string `json:"community" validate:"required,hex32"`
}

type ContributeInput struct {
	Caller      string            `json:"-"`
	AgreementID string            `json:"-"`
	Amount      fixedpoint.Amount `json:"amount" validate:"amount"`
}

type RateInput struct {
	Caller      string `json:"-"`
	AgreementID string `json:"-"`
	Rate        int64  `json:"rate" validate:"required,gt=0"`
}

type ReturnInput struct {
	Caller      string            `json:"-"`
	AgreementID string            `json:"-"`
	Amount      fixedpoint.Amount `json:"amount" validate:"amount"`
}

type ReclaimInput struct {
	Caller      string `json:"-"`
	AgreementID string `json:"-"`
	Beneficiary string `json:"-"`
}

type AgreementDTO struct {
	AgreementID              string            `json:"agreement_id"`
	Operator                 string            `json:"operator"`
	Borrower                 string            `json:"borrower"`
	LocalNode                string            `json:"local_node"`
	Team                     string            `json:"team"`
	Community                string            `json:"community,omitempty"`
	FundingStartTime         time.Time         `json:"funding_start_time"`
	FundingEndTime           time.Time         `json:"funding_end_time"`
	LendingDays              int64             `json:"lending_days"`
	MaxDefaultDays           int64             `json:"max_default_days"`
	AnnualInterestHundredths int64             `json:"annual_interest_hundredths"`
	LocalNodeFeeHundredths   int64             `json:"local_node_fee_hundredths"`
	TeamFeeHundredths        int64             `json:"team_fee_hundredths"`
	TargetAmount             fixedpoint.Amount `json:"target_amount"`
	Tier                     int64             `json:"tier"`
	CommunityMembers         int64             `json:"community_members"`

	State                string             `json:"state"`
	ContributedAmount    fixedpoint.Amount  `json:"contributed_amount"`
	EscrowBalance        fixedpoint.Amount  `json:"escrow_balance"`
	InitialRate          int64              `json:"initial_rate,omitempty"`
	FinalRate            int64              `json:"final_rate,omitempty"`
	FiatPrincipal        fixedpoint.Amount  `json:"fiat_principal"`
	FiatDue              fixedpoint.Amount  `json:"fiat_due"`
	BorrowerReturnAmount fixedpoint.Amount  `json:"borrower_return_amount"`
	RequiredReturnAmount *fixedpoint.Amount `json:"required_return_amount,omitempty"`
	DefaultDays          int64              `json:"default_days"`
	ContributorCount     int64              `json:"contributor_count"`
	OutstandingClaims    int64              `json:"outstanding_claims"`
	CapReached           bool               `json:"cap_reached"`
	ContribPeriodRunning bool               `json:"contrib_period_running"`
	DueDate              time.Time          `json:"due_date"`
	DefaultDeadline      time.Time          `json:"default_deadline"`
	StateUpdatedAt       time.Time          `json:"state_updated_at"`
	CreatedAt            time.Time          `json:"created_at"`
}

type ContributionDTO struct {
	AgreementID string            `json:"agreement_id"`
	Investor    string            `json:"investor"`
	Amount      fixedpoint.Amount `json:"amount"`
	Reclaimed   bool              `json:"reclaimed"`
	Withdrawn   bool              `json:"withdrawn"`
}

type ContributeResult struct {
	AgreementID string            `json:"agreement_id"`
	Accepted    fixedpoint.Amount `json:"accepted"`
	Refunded    fixedpoint.Amount `json:"refunded"`
	State       string            `json:"state"`
}

type PayoutDTO struct {
	ID          string            `json:"id"`
	AgreementID string            `json:"agreement_id"`
	Beneficiary string            `json:"beneficiary"`
	Kind        string            `json:"kind"`
	Amount      fixedpoint.Amount `json:"amount"`
	CreatedAt   time.Time         `json:"created_at"`
}
