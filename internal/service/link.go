package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/observability"
	"github.com/thetajwar2003/SpendWiseApi/internal/port"
)

var linkTracer = otel.Tracer("service/link")

// LinkService drives the bank-linking flow: issuing link tokens and
// exchanging the resulting public token for a stored access token.
type LinkService struct {
	aggregator port.AggregatorClient
	users      port.UserStore
	userCache  port.Cache[*domain.UserRecord]
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewLinkService creates a new link service.
func NewLinkService(aggregator port.AggregatorClient, users port.UserStore, userCache port.Cache[*domain.UserRecord], metrics *observability.Metrics, logger *zap.Logger) *LinkService {
	return &LinkService{
		aggregator: aggregator,
		users:      users,
		userCache:  userCache,
		metrics:    metrics,
		logger:     logger,
	}
}

// CreateLinkToken issues a short-lived token for the frontend linking flow.
// The user must already exist.
func (s *LinkService) CreateLinkToken(ctx context.Context, userID string) (*domain.LinkTokenResponse, error) {
	ctx, span := linkTracer.Start(ctx, "LinkService.CreateLinkToken")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if userID == "" {
		return nil, &domain.ErrValidation{Field: "user_id", Message: "user_id is required"}
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	token, err := s.aggregator.CreateLinkToken(ctx, userID)
	if err != nil {
		s.metrics.IncrExternalError("plaid")
		return nil, err
	}
	return &domain.LinkTokenResponse{LinkToken: token}, nil
}

// ExchangePublicToken swaps the public token for a long-lived access token
// and persists it on the user record. The cached record is invalidated so
// the next read sees the linked state.
func (s *LinkService) ExchangePublicToken(ctx context.Context, req *domain.ExchangeTokenRequest) (*domain.ExchangeTokenResponse, error) {
	ctx, span := linkTracer.Start(ctx, "LinkService.ExchangePublicToken")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", req.UserID))

	if req.UserID == "" {
		return nil, &domain.ErrValidation{Field: "user_id", Message: "user_id is required"}
	}
	if req.PublicToken == "" {
		return nil, &domain.ErrValidation{Field: "public_token", Message: "public_token is required"}
	}

	accessToken, itemID, err := s.aggregator.ExchangePublicToken(ctx, req.PublicToken)
	if err != nil {
		s.metrics.IncrExternalError("plaid")
		return nil, err
	}

	if err := s.users.MergeUser(ctx, req.UserID, map[string]any{
		"access_token": accessToken,
		"item_id":      itemID,
	}); err != nil {
		return nil, err
	}
	s.userCache.Delete(req.UserID)

	s.logger.Info("link: bank account linked",
		zap.String("user_id", req.UserID),
		zap.String("item_id", itemID),
	)
	return &domain.ExchangeTokenResponse{
		Message:     "bank account linked",
		AccessToken: accessToken,
		ItemID:      itemID,
	}, nil
}
