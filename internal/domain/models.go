// Package domain defines the core business entities for the SpendWise API.
// These models are independent of external services and represent the
// canonical data structures used throughout the backend.
package domain

// ============================================================
// Users
// ============================================================

// UserRecord is the per-user document stored in DynamoDB. The aggregator
// access token is written once the user links a bank account and is never
// serialized in API responses.
type UserRecord struct {
	UserID      string `json:"user_id" dynamodbav:"user_id"`
	Email       string `json:"email" dynamodbav:"email"`
	FirstName   string `json:"first_name" dynamodbav:"first_name"`
	LastName    string `json:"last_name" dynamodbav:"last_name"`
	AccessToken string `json:"-" dynamodbav:"access_token,omitempty"`
	ItemID      string `json:"item_id,omitempty" dynamodbav:"item_id,omitempty"`
	CreatedAt   string `json:"created_at,omitempty" dynamodbav:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty" dynamodbav:"updated_at,omitempty"`
}

// ============================================================
// Aggregator data (read-only to this service)
// ============================================================

// Transaction is a single transaction as returned by the aggregator.
// Sign convention is the aggregator's: negative = money in (income),
// positive = money out (expense). The backend never mutates these.
type Transaction struct {
	TransactionID string   `json:"transaction_id"`
	AccountID     string   `json:"account_id"`
	Name          string   `json:"name"`
	Amount        float64  `json:"amount"`
	Date          string   `json:"date"` // YYYY-MM-DD, may be empty
	Category      []string `json:"category,omitempty"`
	Pending       bool     `json:"pending"`
}

// AccountBalances holds the balance fields of a linked account.
// Available and Current are pointers because the aggregator reports
// null for some account types.
type AccountBalances struct {
	Available       *float64 `json:"available"`
	Current         *float64 `json:"current"`
	Limit           *float64 `json:"limit,omitempty"`
	ISOCurrencyCode string   `json:"iso_currency_code,omitempty"`
}

// Account is a linked bank account.
type Account struct {
	AccountID    string          `json:"account_id"`
	Name         string          `json:"name"`
	OfficialName string          `json:"official_name,omitempty"`
	Type         string          `json:"type"`
	Subtype      string          `json:"subtype,omitempty"`
	Mask         string          `json:"mask,omitempty"`
	Balances     AccountBalances `json:"balances"`
}

// InterestRate is the nested rate object on a liability.
type InterestRate struct {
	Percentage *float64 `json:"percentage"`
	Type       string   `json:"type,omitempty"`
}

// Liability is a single entry in one of the liability lists. Nullable
// fields stay pointers so sanitization can distinguish null from zero.
type Liability struct {
	AccountID          string        `json:"account_id"`
	AccountNumber      *string       `json:"account_number"`
	InterestRate       *InterestRate `json:"interest_rate,omitempty"`
	OriginationDate    string        `json:"origination_date,omitempty"`
	LastPaymentAmount  *float64      `json:"last_payment_amount,omitempty"`
	NextPaymentDueDate string        `json:"next_payment_due_date,omitempty"`
	IsOverdue          *bool         `json:"is_overdue,omitempty"`
}

// Liabilities is the aggregator's liabilities payload.
type Liabilities struct {
	Mortgage []Liability `json:"mortgage"`
	Student  []Liability `json:"student"`
	Credit   []Liability `json:"credit"`
}

// ============================================================
// Aggregation results
// ============================================================

// TransactionLineItem is one classified transaction inside a summary.
// Amount is always the absolute value.
type TransactionLineItem struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
}

// TransactionSummary splits a transaction list into income and expenses.
type TransactionSummary struct {
	Income         float64               `json:"income"`
	Expenses       float64               `json:"expenses"`
	IncomeDetails  []TransactionLineItem `json:"income_details"`
	ExpenseDetails []TransactionLineItem `json:"expense_details"`
}

// MonthlyBucket holds income/expense totals for one calendar month.
type MonthlyBucket struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// CategoryTotal is spending per primary category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryBreakdown is the previous-month expense breakdown.
type CategoryBreakdown struct {
	Categories      []CategoryTotal `json:"categories"`
	TotalCategories int             `json:"total_categories"`
	TotalExpenses   float64         `json:"total_expenses"`
}

// RecurringCharge is one occurrence inside a recurring group.
type RecurringCharge struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// RecurringGroup is a merchant whose charge count met the recurrence
// threshold, with its occurrences in original encounter order.
type RecurringGroup struct {
	Name        string            `json:"name"`
	Occurrences int               `json:"occurrences"`
	Charges     []RecurringCharge `json:"charges"`
}

// AccountDetail is the account view: the account itself, its
// transactions, and the recurring groups detected among them.
type AccountDetail struct {
	Account      Account          `json:"account"`
	Transactions []Transaction    `json:"transactions"`
	Recurring    []RecurringGroup `json:"recurring"`
}

// ============================================================
// Budgets & Subscriptions
// ============================================================

// Budget is a per-category monthly budget, keyed (user_id, category).
type Budget struct {
	UserID   string  `json:"user_id" dynamodbav:"user_id"`
	Category string  `json:"category" dynamodbav:"category"`
	Amount   float64 `json:"amount" dynamodbav:"amount"`
}

// Subscription is a user-tracked recurring payment.
type Subscription struct {
	UserID         string  `json:"user_id" dynamodbav:"user_id"`
	SubscriptionID string  `json:"subscription_id" dynamodbav:"subscription_id"`
	Name           string  `json:"name" dynamodbav:"name"`
	Amount         float64 `json:"amount" dynamodbav:"amount"`
	Frequency      string  `json:"frequency,omitempty" dynamodbav:"frequency,omitempty"`
	NextDueDate    string  `json:"next_due_date,omitempty" dynamodbav:"next_due_date,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty" dynamodbav:"created_at,omitempty"`
}

// ============================================================
// Auth request/response types.
// ============================================================

// RegisterRequest is the body for POST /v1/auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterResponse is returned by POST /v1/auth/register.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the identity provider's tokens plus the user id.
type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	UserID       string `json:"user_id"`
}

// ConfirmRequest is the body for POST /v1/auth/confirm.
type ConfirmRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmation_code"`
}

// ResendConfirmationRequest is the body for POST /v1/auth/resend-confirmation.
type ResendConfirmationRequest struct {
	Email string `json:"email"`
}

// ============================================================
// Bank linking request/response types.
// ============================================================

// LinkTokenRequest is the body for POST /v1/link/token.
type LinkTokenRequest struct {
	UserID string `json:"user_id"`
}

// LinkTokenResponse is returned by POST /v1/link/token.
type LinkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

// ExchangeTokenRequest is the body for POST /v1/link/exchange.
type ExchangeTokenRequest struct {
	UserID      string `json:"user_id"`
	PublicToken string `json:"public_token"`
}

// ExchangeTokenResponse is returned once the bank account is linked.
type ExchangeTokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// ============================================================
// Health & operational metrics
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of one dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// ServiceMetrics is the snapshot returned by GET /v1/metrics/service.
type ServiceMetrics struct {
	TotalRequests float64 `json:"total_requests"`
	ErrorRate     float64 `json:"error_rate"`
	CacheHitRate  float64 `json:"cache_hit_rate"`
	Period        string  `json:"period"`
}

// SuccessResponse wraps a simple confirmation message.
type SuccessResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
