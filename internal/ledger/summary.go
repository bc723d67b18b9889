package ledger

import (
	"sort"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

// Summarize splits transactions into income and expenses. The sign
// convention comes from the aggregator and must be preserved exactly:
// amount < 0 is money in (income), everything else (zero included)
// is an expense. Line items carry the absolute amount, the primary
// category, and the merchant name.
func Summarize(txns []domain.Transaction) *domain.TransactionSummary {
	summary := &domain.TransactionSummary{
		IncomeDetails:  []domain.TransactionLineItem{},
		ExpenseDetails: []domain.TransactionLineItem{},
	}

	var income, expenses float64
	for _, txn := range txns {
		if _, ok := parseDate(txn.Date); !ok {
			continue
		}

		item := domain.TransactionLineItem{
			Date:     txn.Date,
			Amount:   Round2(abs(txn.Amount)),
			Category: PrimaryCategory(txn.Category),
			Name:     txn.Name,
		}

		if txn.Amount < 0 {
			income += -txn.Amount
			summary.IncomeDetails = append(summary.IncomeDetails, item)
		} else {
			expenses += txn.Amount
			summary.ExpenseDetails = append(summary.ExpenseDetails, item)
		}
	}

	summary.Income = Round2(income)
	summary.Expenses = Round2(expenses)
	return summary
}

// CategoryBreakdown groups expenses (amount > 0 only) by primary
// category. Categories are ordered by amount descending, name ascending
// on ties, so output is deterministic.
func CategoryBreakdown(txns []domain.Transaction) *domain.CategoryBreakdown {
	totals := make(map[string]float64)
	order := []string{}

	var grand float64
	for _, txn := range txns {
		if txn.Amount <= 0 {
			continue
		}
		if _, ok := parseDate(txn.Date); !ok {
			continue
		}
		cat := PrimaryCategory(txn.Category)
		if _, seen := totals[cat]; !seen {
			order = append(order, cat)
		}
		totals[cat] += txn.Amount
		grand += txn.Amount
	}

	categories := make([]domain.CategoryTotal, 0, len(order))
	for _, cat := range order {
		categories = append(categories, domain.CategoryTotal{
			Category: cat,
			Amount:   Round2(totals[cat]),
		})
	}
	// Amount descending, category name ascending on ties.
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount != categories[j].Amount {
			return categories[i].Amount > categories[j].Amount
		}
		return categories[i].Category < categories[j].Category
	})

	return &domain.CategoryBreakdown{
		Categories:      categories,
		TotalCategories: len(categories),
		TotalExpenses:   Round2(grand),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
