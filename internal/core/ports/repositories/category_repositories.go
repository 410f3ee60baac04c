package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// CategoryRepositoryFacade defines the persistence operations for categories.
type CategoryRepositoryFacade interface {
	// SaveCategory persists a category. Returns apperrors.ErrDuplicate when the
	// owner already has a category with the same name and type.
	SaveCategory(ctx context.Context, category domain.Category) error

	// FindCategoryByID retrieves a category owned by ownerID.
	FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error)

	// ListEffectiveCategories returns the system defaults merged with the
	// owner's categories; an owned category shadows a default with the same
	// name and type. A nil cType returns both types.
	ListEffectiveCategories(ctx context.Context, ownerID string, cType *domain.CategoryType) ([]domain.Category, error)

	// DeleteCategory removes a user-owned category. Defaults cannot be deleted.
	DeleteCategory(ctx context.Context, ownerID, categoryID string) error

	// CountDefaults returns the number of system default categories; used to
	// guard the one-time startup seeding.
	CountDefaults(ctx context.Context) (int64, error)
}
