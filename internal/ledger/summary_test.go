package ledger_test

import (
	"testing"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/ledger"
)

func TestSummarize_ClassifiesBySign(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Payroll", Amount: -1500.00, Date: "2024-03-01", Category: []string{"Transfer", "Payroll"}},
		{Name: "Grocery Store", Amount: 82.45, Date: "2024-03-03", Category: []string{"Food and Drink", "Groceries"}},
		{Name: "Coffee", Amount: 4.50, Date: "2024-03-04", Category: []string{"Food and Drink"}},
	}

	summary := ledger.Summarize(txns)

	if summary.Income != 1500.00 {
		t.Errorf("expected income 1500.00, got %v", summary.Income)
	}
	if summary.Expenses != 86.95 {
		t.Errorf("expected expenses 86.95, got %v", summary.Expenses)
	}
	if len(summary.IncomeDetails) != 1 {
		t.Fatalf("expected 1 income line item, got %d", len(summary.IncomeDetails))
	}
	if len(summary.ExpenseDetails) != 2 {
		t.Fatalf("expected 2 expense line items, got %d", len(summary.ExpenseDetails))
	}
	if summary.IncomeDetails[0].Amount != 1500.00 {
		t.Errorf("income line item should carry absolute amount, got %v", summary.IncomeDetails[0].Amount)
	}
	if summary.IncomeDetails[0].Category != "Transfer" {
		t.Errorf("expected primary category 'Transfer', got %q", summary.IncomeDetails[0].Category)
	}
}

func TestSummarize_DetailsSumToTotals(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Salary", Amount: -2000.10, Date: "2024-01-05"},
		{Name: "Refund", Amount: -19.90, Date: "2024-01-08"},
		{Name: "Rent", Amount: 1200.00, Date: "2024-01-01"},
		{Name: "Internet", Amount: 59.99, Date: "2024-01-02"},
	}

	summary := ledger.Summarize(txns)

	var incomeSum, expenseSum float64
	for _, item := range summary.IncomeDetails {
		incomeSum += item.Amount
	}
	for _, item := range summary.ExpenseDetails {
		expenseSum += item.Amount
	}

	if ledger.Round2(incomeSum) != summary.Income {
		t.Errorf("income details sum %v != income total %v", incomeSum, summary.Income)
	}
	if ledger.Round2(expenseSum) != summary.Expenses {
		t.Errorf("expense details sum %v != expense total %v", expenseSum, summary.Expenses)
	}
}

func TestSummarize_ZeroAmountIsExpense(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Zero Auth", Amount: 0, Date: "2024-02-10"},
	}

	summary := ledger.Summarize(txns)

	if len(summary.ExpenseDetails) != 1 {
		t.Fatalf("amount == 0 must classify as expense, got %d expense items", len(summary.ExpenseDetails))
	}
	if len(summary.IncomeDetails) != 0 {
		t.Errorf("amount == 0 must not classify as income")
	}
}

func TestSummarize_SkipsBadDates(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "No Date", Amount: 50},
		{Name: "Bad Date", Amount: 25, Date: "03/15/2024"},
		{Name: "Good", Amount: 10, Date: "2024-03-15"},
	}

	summary := ledger.Summarize(txns)

	if len(summary.ExpenseDetails) != 1 {
		t.Fatalf("expected 1 expense line item, got %d", len(summary.ExpenseDetails))
	}
	if summary.Expenses != 10 {
		t.Errorf("expected expenses 10, got %v", summary.Expenses)
	}
}

func TestSummarize_MissingCategoryDefaults(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Mystery Charge", Amount: 12.34, Date: "2024-04-01"},
	}

	summary := ledger.Summarize(txns)

	if summary.ExpenseDetails[0].Category != ledger.Uncategorized {
		t.Errorf("expected %q, got %q", ledger.Uncategorized, summary.ExpenseDetails[0].Category)
	}
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Salary", Amount: -500, Date: "2024-01-05", Category: []string{"Transfer"}},
	}

	ledger.Summarize(txns)

	if txns[0].Amount != -500 || txns[0].Name != "Salary" {
		t.Error("input transaction was mutated")
	}
}

func TestCategoryBreakdown_ExpensesOnly(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Refund", Amount: -20, Date: "2024-05-03", Category: []string{"Food"}},
		{Name: "Dinner", Amount: 30, Date: "2024-05-10", Category: []string{"Food"}},
	}

	breakdown := ledger.CategoryBreakdown(txns)

	if breakdown.TotalCategories != 1 {
		t.Fatalf("expected 1 category, got %d", breakdown.TotalCategories)
	}
	if breakdown.Categories[0].Category != "Food" || breakdown.Categories[0].Amount != 30 {
		t.Errorf("expected Food=30, got %+v", breakdown.Categories[0])
	}
	if breakdown.TotalExpenses != 30.0 {
		t.Errorf("expected total expenses 30.0, got %v", breakdown.TotalExpenses)
	}
}

func TestCategoryBreakdown_OrderedByAmountDesc(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Coffee", Amount: 5, Date: "2024-05-01", Category: []string{"Food"}},
		{Name: "Rent", Amount: 1200, Date: "2024-05-01", Category: []string{"Housing"}},
		{Name: "Bus", Amount: 40, Date: "2024-05-02", Category: []string{"Transport"}},
	}

	breakdown := ledger.CategoryBreakdown(txns)

	want := []string{"Housing", "Transport", "Food"}
	for i, cat := range breakdown.Categories {
		if cat.Category != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], cat.Category)
		}
	}
}
