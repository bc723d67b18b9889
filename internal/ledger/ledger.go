// Package ledger holds the pure aggregation routines: transaction
// summarization, monthly bucketing, category breakdowns, and recurring
// charge detection. Every function reads its inputs and builds fresh
// outputs; nothing here mutates a transaction or keeps state between
// calls, so all of it is safe under concurrent requests.
package ledger

import (
	"math"
	"time"
)

const (
	// DateLayout is the wire format for transaction dates.
	DateLayout = "2006-01-02"

	// Uncategorized is the fallback primary category.
	Uncategorized = "Uncategorized"

	// RecurringThreshold is the minimum occurrence count for a merchant
	// group to qualify as recurring.
	RecurringThreshold = 3

	// DefaultWindowDays is the default summary window when the caller
	// supplies no explicit date range.
	DefaultWindowDays = 30
)

// MonthFormat selects the month-label style for monthly summaries.
type MonthFormat int

const (
	// MonthLong labels buckets "January" ... "December".
	MonthLong MonthFormat = iota
	// MonthShort labels buckets "Jan" ... "Dec".
	MonthShort
)

// Window selects the source range for monthly summaries.
type Window int

const (
	// WindowCurrentYear covers January 1 of the current year to now.
	WindowCurrentYear Window = iota
	// WindowAll covers the full available history.
	WindowAll
)

// Round2 rounds to two decimal places. Applied only when building
// output values, never while accumulating.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PrimaryCategory returns the first category label, or Uncategorized
// when the list is empty.
func PrimaryCategory(category []string) string {
	if len(category) == 0 {
		return Uncategorized
	}
	return category[0]
}

// parseDate reports whether s is a usable YYYY-MM-DD date. Transactions
// with missing or unparseable dates are skipped, never treated as errors.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DefaultRange returns the default window: the DefaultWindowDays days
// ending at now. Callers resolve "now" once per request.
func DefaultRange(now time.Time) (start, end string) {
	return now.AddDate(0, 0, -DefaultWindowDays).Format(DateLayout), now.Format(DateLayout)
}

// WindowRange resolves a monthly-summary window to explicit dates.
// The aggregator requires a start date, so WindowAll is pinned to the
// Unix epoch.
func WindowRange(now time.Time, w Window) (start, end string) {
	end = now.Format(DateLayout)
	switch w {
	case WindowAll:
		start = "1970-01-01"
	default:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).Format(DateLayout)
	}
	return start, end
}

// PreviousMonthRange returns the first and last day (inclusive) of the
// calendar month immediately before now's month.
func PreviousMonthRange(now time.Time) (start, end string) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastOfPrevMonth := firstOfThisMonth.AddDate(0, 0, -1)
	firstOfPrevMonth := time.Date(lastOfPrevMonth.Year(), lastOfPrevMonth.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfPrevMonth.Format(DateLayout), lastOfPrevMonth.Format(DateLayout)
}
