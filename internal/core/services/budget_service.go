package services

import (
	"context"
	"fmt"
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

// budgetService manages budget allocations. The spent amount is never
// accepted from callers: it is seeded from the ledger on create and rebuilt
// from the ledger on refresh.
type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	reconciler portssvc.SpendReconcilerSvc
}

// NewBudgetService creates a new budget service.
func NewBudgetService(repo portsrepo.BudgetRepositoryFacade, reconciler portssvc.SpendReconcilerSvc) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo: repo,
		reconciler: reconciler,
	}
}

// Ensure budgetService implements the BudgetSvcFacade interface
var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget validates the request, seeds the spent amount from existing
// expenses in the bucket, and persists the budget. At most one budget may
// exist per (owner, category, month, year).
func (s *budgetService) CreateBudget(ctx context.Context, ownerID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	month := domain.Month(req.Month)
	if err := validateBudgetBucket(month, req.Year); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, apperrors.NewValidationError("category is required")
	}
	if !req.BudgetAmount.IsPositive() {
		return nil, apperrors.NewValidationError("budget amount must be greater than zero")
	}

	key := domain.BudgetKey{
		OwnerID:  ownerID,
		Category: req.Category,
		Month:    month,
		Year:     req.Year,
	}

	// Expenses may predate the budget, so the cache starts at the ledger's
	// current truth rather than zero.
	spent, err := s.reconciler.ComputeSpent(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute initial spent amount for budget")
		return nil, fmt.Errorf("failed to compute spent amount: %w", err)
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		OwnerID:      ownerID,
		Category:     req.Category,
		Month:        month,
		Year:         req.Year,
		BudgetAmount: req.BudgetAmount,
		SpentAmount:  spent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget",
			slog.String("category", budget.Category),
			slog.String("month", string(budget.Month)),
			slog.Int("year", budget.Year))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created",
		slog.String("budget_id", budget.BudgetID),
		slog.String("category", budget.Category),
		slog.String("month", string(budget.Month)),
		slog.Int("year", budget.Year))
	return &budget, nil
}

// GetBudgetByID retrieves a budget owned by ownerID.
func (s *budgetService) GetBudgetByID(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, ownerID, budgetID)
}

// ListBudgets returns all budgets of the owner.
func (s *budgetService) ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	return s.budgetRepo.ListBudgetsByOwner(ctx, ownerID)
}

// UpdateBudget changes the allocation of an existing budget. The spent
// amount and the bucket identity are untouched.
func (s *budgetService) UpdateBudget(ctx context.Context, ownerID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	if !req.BudgetAmount.IsPositive() {
		return nil, apperrors.NewValidationError("budget amount must be greater than zero")
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.budgetRepo.UpdateBudgetAmount(ctx, ownerID, budgetID, req.BudgetAmount, ownerID, now); err != nil {
		s.LogError(ctx, err, "Failed to update budget amount", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	budget.BudgetAmount = req.BudgetAmount
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = ownerID

	s.LogInfo(ctx, "Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

// DeleteBudget removes a budget. The underlying transactions are untouched;
// recreating the budget later reseeds its spent amount from the ledger.
func (s *budgetService) DeleteBudget(ctx context.Context, ownerID, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, ownerID, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// RefreshBudget recomputes one budget's spent amount from the ledger and
// overwrites the cache with the authoritative value.
func (s *budgetService) RefreshBudget(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, ownerID, budgetID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshOne(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// RefreshAllBudgets recomputes every budget of the owner, one at a time.
// Each budget is refreshed independently, so a failure partway leaves the
// already-refreshed budgets correct and the run can simply be repeated.
func (s *budgetService) RefreshAllBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgetsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for i := range budgets {
		if err := s.refreshOne(ctx, &budgets[i]); err != nil {
			s.LogError(ctx, err, "Budget refresh aborted partway; rerun to finish",
				slog.String("budget_id", budgets[i].BudgetID))
			return nil, err
		}
	}

	s.LogInfo(ctx, "All budgets refreshed", slog.Int("count", len(budgets)))
	return budgets, nil
}

// refreshOne recomputes and stores the spent amount for a single budget,
// mutating the passed budget to the refreshed state.
func (s *budgetService) refreshOne(ctx context.Context, budget *domain.Budget) error {
	spent, err := s.reconciler.ComputeSpent(ctx, budget.Key())
	if err != nil {
		return fmt.Errorf("failed to recompute spent amount: %w", err)
	}

	if !spent.Equal(budget.SpentAmount) {
		s.LogWarn(ctx, "Budget spent amount drifted from ledger; correcting",
			slog.String("budget_id", budget.BudgetID),
			slog.String("cached", budget.SpentAmount.String()),
			slog.String("recomputed", spent.String()))
	}

	now := time.Now().UTC()
	if err := s.budgetRepo.SetSpentAmount(ctx, budget.OwnerID, budget.BudgetID, spent, budget.OwnerID, now); err != nil {
		return fmt.Errorf("failed to store recomputed spent amount: %w", err)
	}

	budget.SpentAmount = spent
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = budget.OwnerID
	return nil
}

// validateBudgetBucket checks the month/year pair of a budget bucket.
func validateBudgetBucket(month domain.Month, year int) error {
	if !month.IsValid() {
		return apperrors.NewValidationError("month must be a full English month name, e.g. January")
	}
	if year < domain.MinBudgetYear || year > domain.MaxBudgetYear {
		return apperrors.NewValidationError(fmt.Sprintf("year must be between %d and %d", domain.MinBudgetYear, domain.MaxBudgetYear))
	}
	return nil
}
