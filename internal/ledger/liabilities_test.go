package ledger_test

import (
	"testing"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/ledger"
)

func TestSanitizeLiabilities_NilFields(t *testing.T) {
	input := &domain.Liabilities{
		Student: []domain.Liability{
			{
				AccountID:    "acc-1",
				InterestRate: &domain.InterestRate{Type: "fixed"},
			},
		},
	}

	out := ledger.SanitizeLiabilities(input)

	got := out.Student[0]
	if got.AccountNumber == nil || *got.AccountNumber != "" {
		t.Errorf("nil account_number must become empty string, got %v", got.AccountNumber)
	}
	if got.InterestRate.Percentage == nil || *got.InterestRate.Percentage != 0.0 {
		t.Errorf("nil interest percentage must become 0.0, got %v", got.InterestRate.Percentage)
	}
}

func TestSanitizeLiabilities_PreservesValues(t *testing.T) {
	num := "1234"
	pct := 4.25
	input := &domain.Liabilities{
		Mortgage: []domain.Liability{
			{
				AccountID:     "acc-2",
				AccountNumber: &num,
				InterestRate:  &domain.InterestRate{Percentage: &pct, Type: "variable"},
			},
		},
	}

	out := ledger.SanitizeLiabilities(input)

	got := out.Mortgage[0]
	if *got.AccountNumber != "1234" {
		t.Errorf("account number changed: %v", *got.AccountNumber)
	}
	if *got.InterestRate.Percentage != 4.25 {
		t.Errorf("interest percentage changed: %v", *got.InterestRate.Percentage)
	}
}

func TestSanitizeLiabilities_DoesNotMutateInput(t *testing.T) {
	input := &domain.Liabilities{
		Credit: []domain.Liability{{AccountID: "acc-3"}},
	}

	ledger.SanitizeLiabilities(input)

	if input.Credit[0].AccountNumber != nil {
		t.Error("input liability was mutated")
	}
}

func TestSanitizeLiabilities_NilInput(t *testing.T) {
	out := ledger.SanitizeLiabilities(nil)

	if out == nil {
		t.Fatal("expected empty result for nil input")
	}
	if out.Mortgage == nil || out.Student == nil || out.Credit == nil {
		t.Error("expected empty non-nil lists")
	}
}
