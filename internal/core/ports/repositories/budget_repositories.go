package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByID retrieves a budget owned by ownerID.
	FindBudgetByID(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error)

	// ListBudgetsByOwner retrieves all budgets for an owner, ordered by
	// (year, month, category) for stable display.
	ListBudgetsByOwner(ctx context.Context, ownerID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	// SaveBudget persists a new budget. Returns apperrors.ErrDuplicate when a
	// budget already exists for the same (owner, category, month, year).
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudgetAmount updates the allocation of an existing budget.
	UpdateBudgetAmount(ctx context.Context, ownerID, budgetID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// DeleteBudget removes a budget owned by ownerID. Transactions are untouched.
	DeleteBudget(ctx context.Context, ownerID, budgetID string) error

	// AdjustSpentAmount applies delta to the spent cache of the budget matching
	// key as a single atomic read-modify-write at the storage layer; concurrent
	// adjustments to the same budget must not lose updates. It returns the
	// post-update spent amount and found=false (no error) when no budget exists
	// for the bucket.
	AdjustSpentAmount(ctx context.Context, key domain.BudgetKey, delta decimal.Decimal, updatedBy string, updatedAt time.Time) (newSpent decimal.Decimal, found bool, err error)

	// SetSpentAmount overwrites the spent cache with an authoritative
	// recomputed value (refresh path).
	SetSpentAmount(ctx context.Context, ownerID, budgetID string, spent decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
