package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/service"
)

// ============================================================
// Subscriptions
// ============================================================

func addSubscriptionHandler(subSvc *service.SubscriptionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/users/{userId}/subscriptions")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}

		var sub domain.Subscription
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := subSvc.AddSubscription(ctx, userID, &sub)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func listSubscriptionsHandler(subSvc *service.SubscriptionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/subscriptions")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}

		subs, err := subSvc.ListSubscriptions(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, subs)
	}
}

func deleteSubscriptionHandler(subSvc *service.SubscriptionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/users/{userId}/subscriptions/{subscriptionId}")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		subscriptionID := chi.URLParam(r, "subscriptionId")
		if !authorizeUser(w, r, userID) {
			return
		}

		if err := subSvc.DeleteSubscription(ctx, userID, subscriptionID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "subscription deleted", ID: subscriptionID})
	}
}
