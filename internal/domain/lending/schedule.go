package lending

import "time"

const Day = 24 * time.Hour

// MaxTermDays bounds lendingDays + maxDefaultDays so every schedule instant stays representable.
const MaxTermDays = 36500

func days(n int64) time.Duration { return time.Duration(n) * Day }

// DueDate is the contractual repayment date: funding end plus the loan duration.
func (a *Agreement) DueDate() time.Time { return a.FundingEndTime.Add(days(a.LendingDays)) }

// DefaultDeadline is the first instant a default may be declared.
func (a *Agreement) DefaultDeadline() time.Time { return a.DueDate().Add(days(a.MaxDefaultDays)) }

// DefaultDaysAt is 0 up to the due date, then the elapsed days rounded up:
// any started day counts as a full default day.
func (a *Agreement) DefaultDaysAt(now time.Time) int64 {
	due := a.DueDate()
	if !now.After(due) {
		return 0
	}
	elapsed := now.Sub(due)
	n := int64(elapsed / Day)
	if elapsed%Day != 0 {
		n++
	}
	return n
}

func (a *Agreement) CapReached() bool {
	return !a.TargetAmount.IsZero() && a.ContributedAmount.Cmp(a.TargetAmount) >= 0
}

// IsContribPeriodRunning reports whether a contribution at now would be accepted
// on timing and state grounds.
func (a *Agreement) IsContribPeriodRunning(now time.Time) bool {
	return a.State == StateAcceptingContributions &&
		!a.CapReached() &&
		!now.Before(a.FundingStartTime) &&
		!now.After(a.FundingEndTime)
}
