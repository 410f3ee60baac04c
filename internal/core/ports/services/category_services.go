package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// CategorySvcFacade supplies the category names used for validation and UI
// grouping. Matching elsewhere is by name string, so this service enforces no
// referential integrity against transactions or budgets.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, ownerID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, ownerID string, cType *domain.CategoryType) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, ownerID, categoryID string) error

	// EnsureDefaultCategories seeds the shared default categories once,
	// guarded by an existence check; safe to call on every startup.
	EnsureDefaultCategories(ctx context.Context) error
}
