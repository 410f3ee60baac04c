package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/google/uuid"
)

// defaultCategories are seeded once at startup and shared by all users.
var defaultCategories = []struct {
	Name  string
	Type  domain.CategoryType
	Color string
}{
	{"Salary", domain.CategoryIncome, "#4caf50"},
	{"Freelance", domain.CategoryIncome, "#8bc34a"},
	{"Investments", domain.CategoryIncome, "#009688"},
	{"Groceries", domain.CategoryExpense, "#ff9800"},
	{"Rent", domain.CategoryExpense, "#f44336"},
	{"Utilities", domain.CategoryExpense, "#03a9f4"},
	{"Transport", domain.CategoryExpense, "#3f51b5"},
	{"Dining", domain.CategoryExpense, "#e91e63"},
	{"Entertainment", domain.CategoryExpense, "#9c27b0"},
	{"Healthcare", domain.CategoryExpense, "#00bcd4"},
	{"Other", domain.CategoryExpense, "#607d8b"},
}

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo}
}

// Ensure categoryService implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates a user-owned category. A user category with the same
// name and type as a default shadows the default in listings.
func (s *categoryService) CreateCategory(ctx context.Context, ownerID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	cType := domain.CategoryType(req.Type)
	if !cType.IsValid() {
		return nil, apperrors.NewValidationError("category type must be INCOME or EXPENSE")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name is required")
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		OwnerID:    ownerID,
		Name:       name,
		Type:       cType,
		Color:      req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID), slog.String("name", name))
	return &category, nil
}

// ListCategories returns the defaults merged with the owner's categories,
// optionally filtered by type.
func (s *categoryService) ListCategories(ctx context.Context, ownerID string, cType *domain.CategoryType) ([]domain.Category, error) {
	if cType != nil && !cType.IsValid() {
		return nil, apperrors.NewValidationError("category type must be INCOME or EXPENSE")
	}
	return s.categoryRepo.ListEffectiveCategories(ctx, ownerID, cType)
}

// DeleteCategory removes a user-owned category. Existing transactions keep
// their category name; matching is by name string, not by reference.
func (s *categoryService) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault() {
		return apperrors.NewForbiddenError("default categories cannot be deleted")
	}

	if err := s.categoryRepo.DeleteCategory(ctx, ownerID, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

// EnsureDefaultCategories seeds the shared default categories when none
// exist yet. Called at startup; a non-empty defaults table makes it a no-op.
func (s *categoryService) EnsureDefaultCategories(ctx context.Context) error {
	count, err := s.categoryRepo.CountDefaults(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, d := range defaultCategories {
		category := domain.Category{
			CategoryID: uuid.NewString(),
			Name:       d.Name,
			Type:       d.Type,
			Color:      d.Color,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     "system",
				LastUpdatedAt: now,
				LastUpdatedBy: "system",
			},
		}
		if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
			return err
		}
	}

	s.LogInfo(ctx, "Default categories seeded", slog.Int("count", len(defaultCategories)))
	return nil
}
