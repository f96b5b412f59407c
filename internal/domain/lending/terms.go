package lending

import (
	"fmt"
	"time"

	"crowdlending/pkg/fixedpoint"
)

const daysPerYear = 365

// InvestorInterestHundredths is the investors' yield for the loan period plus
// defaultDays, in hundredths of a percent, truncated.
func (a *Agreement) InvestorInterestHundredths(defaultDays int64) int64 {
	return a.AnnualInterestHundredths * (a.LendingDays + defaultDays) / daysPerYear
}

// BorrowerInterestHundredths adds both fee percentages on top of the investors' yield.
func (a *Agreement) BorrowerInterestHundredths(defaultDays int64) int64 {
	return a.InvestorInterestHundredths(defaultDays) + a.TeamFeeHundredths + a.LocalNodeFeeHundredths
}

// FiatPrincipalFor is targetAmount × rate.
func (a *Agreement) FiatPrincipalFor(rate int64) (fixedpoint.Amount, error) {
	return a.TargetAmount.MulInt(rate)
}

// FiatDueFor is fiatPrincipal × (10000 + borrowerInterest) / 10000.
func (a *Agreement) FiatDueFor(defaultDays int64) (fixedpoint.Amount, error) {
	return a.FiatPrincipal.MulDiv(fixedpoint.HundredthsBase+a.BorrowerInterestHundredths(defaultDays), fixedpoint.HundredthsBase)
}

// ReturnAmountFor converts the fiat due for defaultDays back to native units at the final rate.
func (a *Agreement) ReturnAmountFor(defaultDays int64) (fixedpoint.Amount, error) {
	if a.FinalRate <= 0 {
		return fixedpoint.Zero(), fmt.Errorf("%w: return rate not set", ErrWrongState)
	}
	due, err := a.FiatDueFor(defaultDays)
	if err != nil {
		return fixedpoint.Zero(), err
	}
	return due.DivInt(a.FinalRate)
}

// RequiredReturnAmount is the exact amount ReturnFunds must receive at now.
func (a *Agreement) RequiredReturnAmount(now time.Time) (fixedpoint.Amount, error) {
	d := a.DefaultDaysAt(now)
	if d == 0 {
		if a.FinalRate <= 0 {
			return fixedpoint.Zero(), fmt.Errorf("%w: return rate not set", ErrWrongState)
		}
		return a.BorrowerReturnAmount, nil
	}
	return a.ReturnAmountFor(d)
}

// InvestorReturn is contribution × initialRate × (10000 + investorInterest) / (finalRate × 10000),
// with the default days recorded when funds came back.
func (a *Agreement) InvestorReturn(contribution fixedpoint.Amount) (fixedpoint.Amount, error) {
	if a.InitialRate <= 0 || a.FinalRate <= 0 {
		return fixedpoint.Zero(), fmt.Errorf("%w: exchange rates not set", ErrWrongState)
	}
	fiat, err := contribution.MulInt(a.InitialRate)
	if err != nil {
		return fixedpoint.Zero(), err
	}
	return fiat.MulDivProd(fixedpoint.HundredthsBase+a.InvestorInterestHundredths(a.DefaultDays), a.FinalRate, fixedpoint.HundredthsBase)
}

// FeePool is targetAmount × initialRate × fee / (finalRate × 10000).
func (a *Agreement) FeePool(feeHundredths int64) (fixedpoint.Amount, error) {
	if a.InitialRate <= 0 || a.FinalRate <= 0 {
		return fixedpoint.Zero(), fmt.Errorf("%w: exchange rates not set", ErrWrongState)
	}
	fiat, err := a.TargetAmount.MulInt(a.InitialRate)
	if err != nil {
		return fixedpoint.Zero(), err
	}
	return fiat.MulDivProd(feeHundredths, a.FinalRate, fixedpoint.HundredthsBase)
}
