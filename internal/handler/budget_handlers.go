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
// Budgets
// ============================================================

func createBudgetHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/users/{userId}/budgets")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}

		var budget domain.Budget
		if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := budgetSvc.CreateBudget(ctx, userID, &budget); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, budget)
	}
}

func listBudgetsHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/users/{userId}/budgets")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		if !authorizeUser(w, r, userID) {
			return
		}

		budgets, err := budgetSvc.ListBudgets(ctx, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, budgets)
	}
}

func updateBudgetHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/users/{userId}/budgets/{category}")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		category := chi.URLParam(r, "category")
		if !authorizeUser(w, r, userID) {
			return
		}

		var body struct {
			Amount float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := budgetSvc.UpdateBudget(ctx, userID, category, body.Amount); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "budget updated"})
	}
}

func deleteBudgetHandler(budgetSvc *service.BudgetService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/users/{userId}/budgets/{category}")
		defer span.End()

		userID := chi.URLParam(r, "userId")
		category := chi.URLParam(r, "category")
		if !authorizeUser(w, r, userID) {
			return
		}

		if err := budgetSvc.DeleteBudget(ctx, userID, category); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Message: "budget deleted"})
	}
}
