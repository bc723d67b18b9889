package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/port"
)

var budgetTracer = otel.Tracer("service/budgets")

// BudgetService manages per-category spending budgets.
type BudgetService struct {
	store  port.BudgetStore
	logger *zap.Logger
}

// NewBudgetService creates a new budget service.
func NewBudgetService(store port.BudgetStore, logger *zap.Logger) *BudgetService {
	return &BudgetService{store: store, logger: logger}
}

// CreateBudget sets a spending budget for a category.
func (s *BudgetService) CreateBudget(ctx context.Context, userID string, budget *domain.Budget) error {
	ctx, span := budgetTracer.Start(ctx, "BudgetService.CreateBudget")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if budget.Category == "" {
		return &domain.ErrValidation{Field: "category", Message: "category is required"}
	}
	if budget.Amount < 0 {
		return &domain.ErrValidation{Field: "amount", Message: "amount must not be negative"}
	}

	budget.UserID = userID
	return s.store.CreateBudget(ctx, budget)
}

// ListBudgets returns all budgets for a user.
func (s *BudgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	ctx, span := budgetTracer.Start(ctx, "BudgetService.ListBudgets")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	return s.store.ListBudgets(ctx, userID)
}

// UpdateBudget changes the amount of an existing budget category.
func (s *BudgetService) UpdateBudget(ctx context.Context, userID, category string, amount float64) error {
	ctx, span := budgetTracer.Start(ctx, "BudgetService.UpdateBudget")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if category == "" {
		return &domain.ErrValidation{Field: "category", Message: "category is required"}
	}
	if amount < 0 {
		return &domain.ErrValidation{Field: "amount", Message: "amount must not be negative"}
	}
	return s.store.UpdateBudget(ctx, userID, category, amount)
}

// DeleteBudget removes a budget category.
func (s *BudgetService) DeleteBudget(ctx context.Context, userID, category string) error {
	ctx, span := budgetTracer.Start(ctx, "BudgetService.DeleteBudget")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	if category == "" {
		return &domain.ErrValidation{Field: "category", Message: "category is required"}
	}
	return s.store.DeleteBudget(ctx, userID, category)
}
