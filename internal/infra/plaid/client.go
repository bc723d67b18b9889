// Package plaid provides the financial-data aggregator client. All calls
// go through the circuit breaker and bulkhead; retries happen inside the
// breaker so the caller sees a single attempt.
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/resilience"
)

var tracer = otel.Tracer("plaid")

// EnvironmentURL maps a Plaid environment name to its API base URL.
func EnvironmentURL(env string) string {
	switch env {
	case "production":
		return "https://production.plaid.com"
	case "development":
		return "https://development.plaid.com"
	default:
		return "https://sandbox.plaid.com"
	}
}

// Client wraps HTTP calls to the Plaid API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a Plaid client.
func NewClient(httpClient *http.Client, baseURL, clientID, secret string, cb *gobreaker.CircuitBreaker, bulkhead *resilience.Bulkhead, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		clientID:   clientID,
		secret:     secret,
		cb:         cb,
		bulkhead:   bulkhead,
		cfg:        cfg,
		logger:     logger,
	}
}

// plaidError is the error envelope Plaid returns on non-2xx responses.
type plaidError struct {
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// post executes a JSON POST with client credentials injected, wrapped in
// bulkhead + circuit breaker + retry. The response body is decoded into out.
func (c *Client) post(ctx context.Context, path string, payload map[string]any, out any) error {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return &domain.ErrTimeout{Operation: "plaid " + path}
	}
	defer c.bulkhead.Release()

	payload["client_id"] = c.clientID
	payload["secret"] = c.secret

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode plaid request: %w", err)
	}

	_, err = c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			respBody, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read plaid response: %w", err)
			}

			if resp.StatusCode != http.StatusOK {
				var pe plaidError
				if json.Unmarshal(respBody, &pe) == nil && pe.ErrorCode != "" {
					c.logger.Warn("plaid: api error",
						zap.String("path", path),
						zap.String("error_code", pe.ErrorCode),
						zap.String("error_type", pe.ErrorType),
					)
					apiErr := fmt.Errorf("plaid %s: %s (%s)", path, pe.ErrorMessage, pe.ErrorCode)
					if resp.StatusCode < http.StatusInternalServerError {
						// Rejected requests will not succeed on retry.
						return resilience.Permanent(apiErr)
					}
					return apiErr
				}
				return fmt.Errorf("plaid %s: unexpected status %d", path, resp.StatusCode)
			}

			if out == nil {
				return nil
			}
			return json.Unmarshal(respBody, out)
		})
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return &domain.ErrCircuitOpen{Service: "plaid"}
		}
		return &domain.ErrExternalService{Service: "plaid", Err: err}
	}
	return nil
}

// CreateLinkToken creates a short-lived token the frontend uses to open
// the account-linking flow.
func (c *Client) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	ctx, span := tracer.Start(ctx, "Plaid.CreateLinkToken")
	defer span.End()

	var resp struct {
		LinkToken string `json:"link_token"`
	}
	err := c.post(ctx, "/link/token/create", map[string]any{
		"user":          map[string]any{"client_user_id": userID},
		"client_name":   "SpendWise",
		"products":      []string{"transactions", "liabilities"},
		"country_codes": []string{"US"},
		"language":      "en",
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.LinkToken, nil
}

// ExchangePublicToken swaps the public token from the linking flow for a
// long-lived access token and item id.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (string, string, error) {
	ctx, span := tracer.Start(ctx, "Plaid.ExchangePublicToken")
	defer span.End()

	var resp struct {
		AccessToken string `json:"access_token"`
		ItemID      string `json:"item_id"`
	}
	err := c.post(ctx, "/item/public_token/exchange", map[string]any{
		"public_token": publicToken,
	}, &resp)
	if err != nil {
		return "", "", err
	}
	return resp.AccessToken, resp.ItemID, nil
}

// ListAccounts returns all accounts on the linked item.
func (c *Client) ListAccounts(ctx context.Context, accessToken string) ([]domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Plaid.ListAccounts")
	defer span.End()

	var resp struct {
		Accounts []domain.Account `json:"accounts"`
	}
	err := c.post(ctx, "/accounts/get", map[string]any{
		"access_token": accessToken,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// ListTransactions returns transactions in [startDate, endDate], both
// inclusive YYYY-MM-DD.
func (c *Client) ListTransactions(ctx context.Context, accessToken, startDate, endDate string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Plaid.ListTransactions")
	defer span.End()

	var resp struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	err := c.post(ctx, "/transactions/get", map[string]any{
		"access_token": accessToken,
		"start_date":   startDate,
		"end_date":     endDate,
		"options":      map[string]any{"count": 500},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

// ListLiabilities returns the liabilities report for the linked item.
func (c *Client) ListLiabilities(ctx context.Context, accessToken string) (*domain.Liabilities, error) {
	ctx, span := tracer.Start(ctx, "Plaid.ListLiabilities")
	defer span.End()

	var resp struct {
		Liabilities domain.Liabilities `json:"liabilities"`
	}
	err := c.post(ctx, "/liabilities/get", map[string]any{
		"access_token": accessToken,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Liabilities, nil
}
