package ledger

import (
	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

// SanitizeLiabilities replaces nulls the aggregator reports on
// liability entries: a null account_number becomes an empty string and
// a null interest_rate.percentage becomes 0.0. Every other field passes
// through unchanged. The input is never mutated; a fresh payload is
// returned.
func SanitizeLiabilities(l *domain.Liabilities) *domain.Liabilities {
	if l == nil {
		return &domain.Liabilities{
			Mortgage: []domain.Liability{},
			Student:  []domain.Liability{},
			Credit:   []domain.Liability{},
		}
	}
	return &domain.Liabilities{
		Mortgage: sanitizeList(l.Mortgage),
		Student:  sanitizeList(l.Student),
		Credit:   sanitizeList(l.Credit),
	}
}

func sanitizeList(entries []domain.Liability) []domain.Liability {
	out := make([]domain.Liability, 0, len(entries))
	for _, entry := range entries {
		if entry.AccountNumber == nil {
			empty := ""
			entry.AccountNumber = &empty
		}
		if entry.InterestRate != nil && entry.InterestRate.Percentage == nil {
			rate := *entry.InterestRate
			zero := 0.0
			rate.Percentage = &zero
			entry.InterestRate = &rate
		}
		out = append(out, entry)
	}
	return out
}
