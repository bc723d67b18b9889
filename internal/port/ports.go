// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the concrete DynamoDB, Cognito, and Plaid adapters.
package port

import (
	"context"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

// UserStore persists user records keyed by user id.
type UserStore interface {
	// GetUser returns the record or *domain.ErrNotFound when absent.
	GetUser(ctx context.Context, userID string) (*domain.UserRecord, error)
	// PutUser creates (or replaces) a user record.
	PutUser(ctx context.Context, rec *domain.UserRecord) error
	// MergeUser applies a partial update and always stamps updated_at.
	// Returns *domain.ErrNotFound when the key does not exist.
	MergeUser(ctx context.Context, userID string, fields map[string]any) error
}

// BudgetStore persists per-category budgets keyed (user id, category).
type BudgetStore interface {
	CreateBudget(ctx context.Context, budget *domain.Budget) error
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
	// UpdateBudget returns *domain.ErrNotFound when the budget does not exist.
	UpdateBudget(ctx context.Context, userID, category string, amount float64) error
	DeleteBudget(ctx context.Context, userID, category string) error
}

// SubscriptionStore persists user-tracked subscriptions.
type SubscriptionStore interface {
	AddSubscription(ctx context.Context, sub *domain.Subscription) error
	ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error)
	DeleteSubscription(ctx context.Context, userID, subscriptionID string) error
}

// AggregatorClient wraps the external financial-data API. Calls are
// synchronous and single-attempt from the caller's point of view; any
// retry policy lives inside the adapter, never in the aggregation core.
type AggregatorClient interface {
	CreateLinkToken(ctx context.Context, userID string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (accessToken, itemID string, err error)
	ListAccounts(ctx context.Context, accessToken string) ([]domain.Account, error)
	ListTransactions(ctx context.Context, accessToken, startDate, endDate string) ([]domain.Transaction, error)
	ListLiabilities(ctx context.Context, accessToken string) (*domain.Liabilities, error)
}

// IdentityProvider wraps the external identity service (Cognito).
type IdentityProvider interface {
	// SignUp registers the user and returns the provider-generated user id.
	SignUp(ctx context.Context, req *domain.RegisterRequest) (string, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmation(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	SignOut(ctx context.Context, accessToken string) error
}

// TokenVerifier validates an access token and returns the user id it
// was issued to.
type TokenVerifier interface {
	Verify(tokenString string) (userID string, err error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
