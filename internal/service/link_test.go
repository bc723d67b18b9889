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
	"github.com/thetajwar2003/SpendWiseApi/internal/service"
)

func TestCreateLinkToken(t *testing.T) {
	users := &mockUserStore{user: &domain.UserRecord{UserID: "user-1"}}
	agg := &mockAggregator{linkToken: "link-token-123"}
	svc := service.NewLinkService(agg, users, cache.New[*domain.UserRecord](time.Minute), observability.NewMetrics(), zap.NewNop())

	resp, err := svc.CreateLinkToken(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.LinkToken != "link-token-123" {
		t.Errorf("unexpected link token: %q", resp.LinkToken)
	}
}

func TestCreateLinkToken_UnknownUser(t *testing.T) {
	svc := service.NewLinkService(&mockAggregator{}, &mockUserStore{}, cache.New[*domain.UserRecord](time.Minute), observability.NewMetrics(), zap.NewNop())

	_, err := svc.CreateLinkToken(context.Background(), "nobody")

	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestExchangePublicToken_PersistsAndInvalidates(t *testing.T) {
	users := &mockUserStore{user: &domain.UserRecord{UserID: "user-1"}}
	agg := &mockAggregator{accessToken: "access-abc", itemID: "item-xyz"}
	userCache := cache.New[*domain.UserRecord](time.Minute)
	userCache.Set("user-1", &domain.UserRecord{UserID: "user-1"})
	svc := service.NewLinkService(agg, users, userCache, observability.NewMetrics(), zap.NewNop())

	resp, err := svc.ExchangePublicToken(context.Background(), &domain.ExchangeTokenRequest{
		UserID:      "user-1",
		PublicToken: "public-123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.AccessToken != "access-abc" || resp.ItemID != "item-xyz" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if users.merged["access_token"] != "access-abc" || users.merged["item_id"] != "item-xyz" {
		t.Errorf("expected token persisted on record, got %v", users.merged)
	}
	if _, ok := userCache.Get("user-1"); ok {
		t.Error("expected cached record to be invalidated")
	}
}

func TestExchangePublicToken_Validation(t *testing.T) {
	svc := service.NewLinkService(&mockAggregator{}, &mockUserStore{}, cache.New[*domain.UserRecord](time.Minute), observability.NewMetrics(), zap.NewNop())

	_, err := svc.ExchangePublicToken(context.Background(), &domain.ExchangeTokenRequest{UserID: "user-1"})

	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
