package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/service"
)

// ============================================================
// Accounts, transactions, liabilities
// ============================================================

func listAccountsHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/accounts")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}
		span.SetAttributes(attribute.String("user.id", userID))

		accounts, err := txSvc.GetAccounts(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, accounts)
	}
}

func accountDetailHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/accounts/{accountId}")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		accountID := chi.URLParam(r, "accountId")
		if !authorizeUser(w, r, userID) {
			return
		}
		span.SetAttributes(
			attribute.String("user.id", userID),
			attribute.String("account.id", accountID),
		)

		detail, err := txSvc.GetAccountDetail(ctx, userID, accountID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func transactionSummaryHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/transactions/summary")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}
		span.SetAttributes(attribute.String("user.id", userID))

		q := r.URL.Query()
		summary, err := txSvc.GetSummary(ctx, userID, q.Get("start_date"), q.Get("end_date"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func monthlySummaryHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/transactions/monthly")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}
		span.SetAttributes(attribute.String("user.id", userID))

		buckets, err := txSvc.GetMonthlySummary(ctx, userID, parseMonthFormat(r), parseWindow(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, buckets)
	}
}

func previousMonthCategoriesHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/transactions/categories/previous-month")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}
		span.SetAttributes(attribute.String("user.id", userID))

		breakdown, err := txSvc.GetPreviousMonthCategories(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, breakdown)
	}
}

func liabilitiesHandler(txSvc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/liabilities")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}
		span.SetAttributes(attribute.String("user.id", userID))

		liabilities, err := txSvc.GetLiabilities(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, liabilities)
	}
}
