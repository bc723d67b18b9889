package ledger_test

import (
	"testing"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/ledger"
)

func TestRecurring_ThresholdIsThree(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Netflix", Amount: 15.99, Date: "2024-01-05"},
		{Name: "Gym", Amount: 40, Date: "2024-01-06"},
		{Name: "Netflix", Amount: 15.99, Date: "2024-02-05"},
		{Name: "Gym", Amount: 40, Date: "2024-02-06"},
		{Name: "Netflix", Amount: 15.99, Date: "2024-03-05"},
	}

	groups := ledger.Recurring(txns)

	if len(groups) != 1 {
		t.Fatalf("expected only Netflix to qualify, got %d groups", len(groups))
	}
	if groups[0].Name != "Netflix" || groups[0].Occurrences != 3 {
		t.Errorf("unexpected group: %+v", groups[0])
	}
	if len(groups[0].Charges) != 3 {
		t.Errorf("expected 3 charges, got %d", len(groups[0].Charges))
	}
}

func TestRecurring_GroupingIsCaseSensitive(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Spotify", Amount: 9.99, Date: "2024-01-01"},
		{Name: "spotify", Amount: 9.99, Date: "2024-02-01"},
		{Name: "Spotify", Amount: 9.99, Date: "2024-03-01"},
		{Name: "Spotify", Amount: 9.99, Date: "2024-04-01"},
	}

	groups := ledger.Recurring(txns)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Occurrences != 3 {
		t.Errorf("case variants must not merge: expected 3 occurrences, got %d", groups[0].Occurrences)
	}
}

func TestRecurring_EncounterOrder(t *testing.T) {
	txns := []domain.Transaction{
		{Name: "Hulu", Amount: 7.99, Date: "2024-01-02"},
		{Name: "Netflix", Amount: 15.99, Date: "2024-01-05"},
		{Name: "Hulu", Amount: 7.99, Date: "2024-02-02"},
		{Name: "Netflix", Amount: 15.99, Date: "2024-02-05"},
		{Name: "Hulu", Amount: 7.99, Date: "2024-03-02"},
		{Name: "Netflix", Amount: 15.99, Date: "2024-03-05"},
	}

	groups := ledger.Recurring(txns)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Hulu" || groups[1].Name != "Netflix" {
		t.Errorf("groups must follow first-encounter order, got %q then %q", groups[0].Name, groups[1].Name)
	}
}

func TestRecurring_Empty(t *testing.T) {
	groups := ledger.Recurring(nil)
	if groups == nil || len(groups) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", groups)
	}
}
