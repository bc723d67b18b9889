package ledger

import (
	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

// Recurring groups transactions by exact merchant-name equality
// (case-sensitive, no fuzzy matching) and returns every group whose
// occurrence count meets RecurringThreshold. Charges keep their
// original encounter order, and groups appear in the order their
// merchant was first seen. This is a frequency heuristic only; no
// periodicity check is performed. Callers pass transactions already
// restricted to a single account.
func Recurring(txns []domain.Transaction) []domain.RecurringGroup {
	charges := make(map[string][]domain.RecurringCharge)
	order := []string{}

	for _, txn := range txns {
		if _, seen := charges[txn.Name]; !seen {
			order = append(order, txn.Name)
		}
		charges[txn.Name] = append(charges[txn.Name], domain.RecurringCharge{
			Amount: txn.Amount,
			Date:   txn.Date,
		})
	}

	result := []domain.RecurringGroup{}
	for _, name := range order {
		group := charges[name]
		if len(group) < RecurringThreshold {
			continue
		}
		result = append(result, domain.RecurringGroup{
			Name:        name,
			Occurrences: len(group),
			Charges:     group,
		})
	}
	return result
}
