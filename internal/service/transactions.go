package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/observability"
	"github.com/thetajwar2003/SpendWiseApi/internal/ledger"
	"github.com/thetajwar2003/SpendWiseApi/internal/port"
)

var txTracer = otel.Tracer("service/transactions")

// TransactionService owns every read over linked bank data: accounts,
// transaction summaries, monthly rollups, category breakdowns, recurring
// detection, and liabilities. Aggregation math lives in the ledger
// package; this layer resolves the user's access token and fetches the
// raw data. Aggregation results are computed per request and never
// cached, so a re-linked account is reflected immediately.
type TransactionService struct {
	users      port.UserStore
	aggregator port.AggregatorClient
	userCache  port.Cache[*domain.UserRecord]
	metrics    *observability.Metrics
	logger     *zap.Logger

	now func() time.Time
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(users port.UserStore, aggregator port.AggregatorClient, userCache port.Cache[*domain.UserRecord], metrics *observability.Metrics, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		users:      users,
		aggregator: aggregator,
		userCache:  userCache,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// resolveRange turns optional explicit dates into a concrete fetch
// range. Both dates must be supplied together and parse as YYYY-MM-DD;
// an empty pair falls back to the trailing 30 days.
func resolveRange(startDate, endDate string, now func() time.Time) (string, string, error) {
	if startDate == "" && endDate == "" {
		start, end := ledger.DefaultRange(now())
		return start, end, nil
	}
	if startDate == "" || endDate == "" {
		return "", "", &domain.ErrValidation{Field: "date range", Message: "start_date and end_date must be provided together"}
	}
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(ledger.DateLayout, d); err != nil {
			return "", "", &domain.ErrValidation{Field: "date range", Message: "dates must be YYYY-MM-DD"}
		}
	}
	return startDate, endDate, nil
}

// linkedUser loads the user record, preferring the cache, and requires a
// linked bank account.
func (s *TransactionService) linkedUser(ctx context.Context, userID string) (*domain.UserRecord, error) {
	if user, ok := s.userCache.Get(userID); ok {
		s.metrics.IncrCacheHit("user")
		if user.AccessToken == "" {
			return nil, &domain.ErrValidation{Field: "user", Message: "no bank account linked"}
		}
		return user, nil
	}
	s.metrics.IncrCacheMiss("user")

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(userID, user)

	if user.AccessToken == "" {
		return nil, &domain.ErrValidation{Field: "user", Message: "no bank account linked"}
	}
	return user, nil
}

// GetSummary returns the income/expense summary over an explicit date
// range, or the last 30 days when none is given. The range must be a
// complete YYYY-MM-DD pair.
func (s *TransactionService) GetSummary(ctx context.Context, userID, startDate, endDate string) (*domain.TransactionSummary, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.GetSummary")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	opStart := time.Now()
	defer func() { s.metrics.RecordRequestDuration("transaction_summary", time.Since(opStart)) }()

	user, err := s.linkedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, end, err := resolveRange(startDate, endDate, s.now)
	if err != nil {
		return nil, err
	}
	txns, err := s.aggregator.ListTransactions(ctx, user.AccessToken, start, end)
	if err != nil {
		s.metrics.IncrExternalError("plaid")
		return nil, err
	}
	return ledger.Summarize(txns), nil
}

// GetMonthlySummary returns per-month income/expense buckets in calendar
// order. The window selects either the current year or all history.
func (s *TransactionService) GetMonthlySummary(ctx context.Context, userID string, format ledger.MonthFormat, window ledger.Window) ([]domain.MonthlyBucket, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.GetMonthlySummary")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	opStart := time.Now()
	defer func() { s.metrics.RecordRequestDuration("monthly_summary", time.Since(opStart)) }()

	user, err := s.linkedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, end := ledger.WindowRange(s.now(), window)
	txns, err := s.aggregator.ListTransactions(ctx, user.AccessToken, start, end)
	if err != nil {
		s.metrics.IncrExternalError("plaid")
		return nil, err
	}
	return ledger.MonthlySummary(txns, format), nil
}

// GetPreviousMonthCategories returns the expense breakdown by primary
// category for the previous calendar month.
func (s *TransactionService) GetPreviousMonthCategories(ctx context.Context, userID string) (*domain.CategoryBreakdown, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.GetPreviousMonthCategories")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	opStart := time.Now()
	defer func() { s.metrics.RecordRequestDuration("category_breakdown", time.Since(opStart)) }()

	user, err := s.linkedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, end := ledger.PreviousMonthRange(s.now())
	txns, err := s.aggregator.ListTransactions(ctx, user.AccessToken, start, end)
	if err != nil {
		s.metrics.IncrExternalError("plaid")
		return nil, err
	}
	return ledger.CategoryBreakdown(txns), nil
}

// GetAccounts lists all accounts on the user's linked item.
func (s *TransactionService) GetAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.GetAccounts")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("list_accounts", time.Since(start)) }()

	user, err := s.linkedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.aggregator.ListAccounts(ctx, user.AccessToken)
	if err != nil {
		s.metrics.IncrExternalError("plaid")
		return nil, err
	}
	return accounts, nil
}

// GetAccountDetail returns one account with its current-year transactions
// and the recurring charges detected among them. Accounts and transactions
// are fetched concurrently.
func (s *TransactionService) GetAccountDetail(ctx context.Context, userID, accountID string) (*domain.AccountDetail, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.GetAccountDetail")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("account.id", accountID),
	)

	opStart := time.Now()
	defer func() { s.metrics.RecordRequestDuration("account_detail", time.Since(opStart)) }()

	user, err := s.linkedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		accounts []domain.Account
		txns     []domain.Transaction
	)
	start, end := ledger.WindowRange(s.now(), ledger.WindowCurrentYear)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.aggregator.ListAccounts(gctx, user.AccessToken)
		return err
	})
	g.Go(func() error {
		var err error
		txns, err = s.aggregator.ListTransactions(gctx, user.AccessToken, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncrExternalError("plaid")
		return nil, err
	}

	var account *domain.Account
	for i := range accounts {
		if accounts[i].AccountID == accountID {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
	}

	accountTxns := make([]domain.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.AccountID == accountID {
			accountTxns = append(accountTxns, txn)
		}
	}

	return &domain.AccountDetail{
		Account:      *account,
		Transactions: accountTxns,
		Recurring:    ledger.Recurring(accountTxns),
	}, nil
}

// GetLiabilities returns the user's liabilities with null fields
// normalized for display.
func (s *TransactionService) GetLiabilities(ctx context.Context, userID string) (*domain.Liabilities, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.GetLiabilities")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("liabilities", time.Since(start)) }()

	user, err := s.linkedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	liabilities, err := s.aggregator.ListLiabilities(ctx, user.AccessToken)
	if err != nil {
		s.metrics.IncrExternalError("plaid")
		return nil, err
	}
	return ledger.SanitizeLiabilities(liabilities), nil
}
