package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/cache"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/observability"
	"github.com/thetajwar2003/SpendWiseApi/internal/ledger"
	"github.com/thetajwar2003/SpendWiseApi/internal/service"
)

// --- Mocks ---

type mockUserStore struct {
	user   *domain.UserRecord
	err    error
	put    *domain.UserRecord
	merged map[string]any
}

func (m *mockUserStore) GetUser(_ context.Context, userID string) (*domain.UserRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil || m.user.UserID != userID {
		return nil, &domain.ErrNotFound{Resource: "user", ID: userID}
	}
	return m.user, nil
}

func (m *mockUserStore) PutUser(_ context.Context, rec *domain.UserRecord) error {
	m.put = rec
	return m.err
}

func (m *mockUserStore) MergeUser(_ context.Context, _ string, fields map[string]any) error {
	m.merged = fields
	return m.err
}

type mockAggregator struct {
	linkToken   string
	accessToken string
	itemID      string
	accounts    []domain.Account
	txns        []domain.Transaction
	liabilities *domain.Liabilities
	err         error

	gotToken string
	gotStart string
	gotEnd   string
}

func (m *mockAggregator) CreateLinkToken(_ context.Context, _ string) (string, error) {
	return m.linkToken, m.err
}

func (m *mockAggregator) ExchangePublicToken(_ context.Context, _ string) (string, string, error) {
	return m.accessToken, m.itemID, m.err
}

func (m *mockAggregator) ListAccounts(_ context.Context, token string) ([]domain.Account, error) {
	m.gotToken = token
	return m.accounts, m.err
}

func (m *mockAggregator) ListTransactions(_ context.Context, token, startDate, endDate string) ([]domain.Transaction, error) {
	m.gotToken = token
	m.gotStart = startDate
	m.gotEnd = endDate
	return m.txns, m.err
}

func (m *mockAggregator) ListLiabilities(_ context.Context, token string) (*domain.Liabilities, error) {
	m.gotToken = token
	return m.liabilities, m.err
}

func linkedUser() *domain.UserRecord {
	return &domain.UserRecord{UserID: "user-1", Email: "a@b.c", AccessToken: "access-token"}
}

func newTxService(users *mockUserStore, agg *mockAggregator) *service.TransactionService {
	svc := service.NewTransactionService(
		users,
		agg,
		cache.New[*domain.UserRecord](5*time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
	svc.SetNow(func() time.Time {
		return time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)
	})
	return svc
}

// --- Tests ---

func TestGetSummary_LastThirtyDays(t *testing.T) {
	agg := &mockAggregator{txns: []domain.Transaction{
		{Name: "Payroll", Amount: -2000, Date: "2024-08-01"},
		{Name: "Rent", Amount: 1200, Date: "2024-08-02"},
	}}
	svc := newTxService(&mockUserStore{user: linkedUser()}, agg)

	summary, err := svc.GetSummary(context.Background(), "user-1", "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if agg.gotStart != "2024-07-16" || agg.gotEnd != "2024-08-15" {
		t.Errorf("expected 30-day window, got %s..%s", agg.gotStart, agg.gotEnd)
	}
	if summary.Income != 2000 || summary.Expenses != 1200 {
		t.Errorf("unexpected summary: income=%v expenses=%v", summary.Income, summary.Expenses)
	}
}

func TestGetSummary_ExplicitRange(t *testing.T) {
	agg := &mockAggregator{}
	svc := newTxService(&mockUserStore{user: linkedUser()}, agg)

	_, err := svc.GetSummary(context.Background(), "user-1", "2024-01-01", "2024-03-31")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if agg.gotStart != "2024-01-01" || agg.gotEnd != "2024-03-31" {
		t.Errorf("expected explicit range to be used, got %s..%s", agg.gotStart, agg.gotEnd)
	}
}

func TestGetSummary_BadRange(t *testing.T) {
	svc := newTxService(&mockUserStore{user: linkedUser()}, &mockAggregator{})

	cases := []struct {
		name       string
		start, end string
	}{
		{"missing end", "2024-01-01", ""},
		{"missing start", "", "2024-03-31"},
		{"unparseable", "01/01/2024", "2024-03-31"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GetSummary(context.Background(), "user-1", tc.start, tc.end)

			var validation *domain.ErrValidation
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGetSummary_UnlinkedUser(t *testing.T) {
	users := &mockUserStore{user: &domain.UserRecord{UserID: "user-1"}}
	svc := newTxService(users, &mockAggregator{})

	_, err := svc.GetSummary(context.Background(), "user-1", "", "")

	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error for unlinked user, got %v", err)
	}
}

func TestGetSummary_UnknownUser(t *testing.T) {
	svc := newTxService(&mockUserStore{}, &mockAggregator{})

	_, err := svc.GetSummary(context.Background(), "nobody", "", "")

	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetMonthlySummary_WindowAll(t *testing.T) {
	agg := &mockAggregator{txns: []domain.Transaction{
		{Name: "Old Rent", Amount: 900, Date: "2019-02-01"},
	}}
	svc := newTxService(&mockUserStore{user: linkedUser()}, agg)

	buckets, err := svc.GetMonthlySummary(context.Background(), "user-1", ledger.MonthShort, ledger.WindowAll)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if agg.gotStart != "1970-01-01" {
		t.Errorf("unrestricted window must start at epoch, got %s", agg.gotStart)
	}
	if len(buckets) != 1 || buckets[0].Month != "Feb" {
		t.Errorf("unexpected buckets: %+v", buckets)
	}
}

func TestGetPreviousMonthCategories(t *testing.T) {
	agg := &mockAggregator{txns: []domain.Transaction{
		{Name: "Dinner", Amount: 30, Date: "2024-07-10", Category: []string{"Food"}},
		{Name: "Refund", Amount: -15, Date: "2024-07-11", Category: []string{"Food"}},
	}}
	svc := newTxService(&mockUserStore{user: linkedUser()}, agg)

	breakdown, err := svc.GetPreviousMonthCategories(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if agg.gotStart != "2024-07-01" || agg.gotEnd != "2024-07-31" {
		t.Errorf("expected previous calendar month, got %s..%s", agg.gotStart, agg.gotEnd)
	}
	if breakdown.TotalCategories != 1 || breakdown.TotalExpenses != 30 {
		t.Errorf("unexpected breakdown: %+v", breakdown)
	}
}

func TestGetAccountDetail_FiltersByAccount(t *testing.T) {
	agg := &mockAggregator{
		accounts: []domain.Account{
			{AccountID: "acc-1", Name: "Checking"},
			{AccountID: "acc-2", Name: "Savings"},
		},
		txns: []domain.Transaction{
			{AccountID: "acc-1", Name: "Netflix", Amount: 15.99, Date: "2024-01-05"},
			{AccountID: "acc-1", Name: "Netflix", Amount: 15.99, Date: "2024-02-05"},
			{AccountID: "acc-1", Name: "Netflix", Amount: 15.99, Date: "2024-03-05"},
			{AccountID: "acc-2", Name: "Transfer", Amount: 100, Date: "2024-03-06"},
		},
	}
	svc := newTxService(&mockUserStore{user: linkedUser()}, agg)

	detail, err := svc.GetAccountDetail(context.Background(), "user-1", "acc-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if detail.Account.Name != "Checking" {
		t.Errorf("unexpected account: %+v", detail.Account)
	}
	if len(detail.Transactions) != 3 {
		t.Errorf("expected 3 transactions for acc-1, got %d", len(detail.Transactions))
	}
	if len(detail.Recurring) != 1 || detail.Recurring[0].Name != "Netflix" {
		t.Errorf("expected Netflix recurring group, got %+v", detail.Recurring)
	}
}

func TestGetAccountDetail_UnknownAccount(t *testing.T) {
	agg := &mockAggregator{accounts: []domain.Account{{AccountID: "acc-1"}}}
	svc := newTxService(&mockUserStore{user: linkedUser()}, agg)

	_, err := svc.GetAccountDetail(context.Background(), "user-1", "acc-9")

	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetLiabilities_Sanitizes(t *testing.T) {
	agg := &mockAggregator{liabilities: &domain.Liabilities{
		Student: []domain.Liability{{AccountID: "acc-1"}},
	}}
	svc := newTxService(&mockUserStore{user: linkedUser()}, agg)

	out, err := svc.GetLiabilities(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out.Student[0].AccountNumber == nil || *out.Student[0].AccountNumber != "" {
		t.Errorf("expected sanitized account number, got %v", out.Student[0].AccountNumber)
	}
}

func TestGetAccounts_AggregatorError(t *testing.T) {
	agg := &mockAggregator{err: &domain.ErrExternalService{Service: "plaid", Err: errors.New("boom")}}
	svc := newTxService(&mockUserStore{user: linkedUser()}, agg)

	_, err := svc.GetAccounts(context.Background(), "user-1")

	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("expected external service error, got %v", err)
	}
}
