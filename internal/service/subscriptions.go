package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/port"
)

var subTracer = otel.Tracer("service/subscriptions")

// SubscriptionService manages user-tracked subscriptions. These are
// manual entries, separate from the recurring charges detected in
// transaction history.
type SubscriptionService struct {
	store  port.SubscriptionStore
	logger *zap.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(store port.SubscriptionStore, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{store: store, logger: logger}
}

// AddSubscription records a subscription and assigns it an id.
func (s *SubscriptionService) AddSubscription(ctx context.Context, userID string, sub *domain.Subscription) (*domain.Subscription, error) {
	ctx, span := subTracer.Start(ctx, "SubscriptionService.AddSubscription")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if sub.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if sub.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}

	sub.UserID = userID
	sub.SubscriptionID = uuid.NewString()
	sub.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.store.AddSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.logger.Info("subscriptions: added",
		zap.String("user_id", userID),
		zap.String("subscription_id", sub.SubscriptionID),
	)
	return sub, nil
}

// ListSubscriptions returns all tracked subscriptions for a user.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, userID string) ([]domain.Subscription, error) {
	ctx, span := subTracer.Start(ctx, "SubscriptionService.ListSubscriptions")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	return s.store.ListSubscriptions(ctx, userID)
}

// DeleteSubscription removes a tracked subscription.
func (s *SubscriptionService) DeleteSubscription(ctx context.Context, userID, subscriptionID string) error {
	ctx, span := subTracer.Start(ctx, "SubscriptionService.DeleteSubscription")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if subscriptionID == "" {
		return &domain.ErrValidation{Field: "subscription_id", Message: "subscription_id is required"}
	}
	return s.store.DeleteSubscription(ctx, userID, subscriptionID)
}
