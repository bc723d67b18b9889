package ledger

import (
	"time"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

type monthlyTotals struct {
	income   float64
	expenses float64
}

// MonthlySummary buckets transactions by calendar month. Output is
// always in calendar order (January through December) regardless of
// input order, months with no observed transactions are omitted, and
// transactions with missing or unparseable dates are skipped.
// The format parameter selects full month names or 3-letter
// abbreviations; both call sites share this one implementation.
func MonthlySummary(txns []domain.Transaction, format MonthFormat) []domain.MonthlyBucket {
	byMonth := make(map[time.Month]*monthlyTotals)

	for _, txn := range txns {
		date, ok := parseDate(txn.Date)
		if !ok {
			continue
		}

		totals := byMonth[date.Month()]
		if totals == nil {
			totals = &monthlyTotals{}
			byMonth[date.Month()] = totals
		}

		if txn.Amount < 0 {
			totals.income += -txn.Amount
		} else {
			totals.expenses += txn.Amount
		}
	}

	result := []domain.MonthlyBucket{}
	for m := time.January; m <= time.December; m++ {
		totals, ok := byMonth[m]
		if !ok {
			continue
		}
		result = append(result, domain.MonthlyBucket{
			Month:    monthLabel(m, format),
			Income:   Round2(totals.income),
			Expenses: Round2(totals.expenses),
		})
	}
	return result
}

func monthLabel(m time.Month, format MonthFormat) string {
	name := m.String()
	if format == MonthShort {
		return name[:3]
	}
	return name
}
