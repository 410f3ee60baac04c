package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// BudgetSvcFacade manages budget allocations and the explicit refresh
// operations that recompute the spent cache from the ledger.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, ownerID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, ownerID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, ownerID, budgetID string) error

	// RefreshBudget recomputes one budget's spent amount from scratch.
	RefreshBudget(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error)

	// RefreshAllBudgets recomputes every budget of the owner, sequentially and
	// idempotently; budgets already processed stay correct if a later one fails.
	RefreshAllBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error)
}
