package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack_backend/internal/models"
	"github.com/fintrackhq/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, owner_id, category, month, year, budget_amount, spent_amount, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.OwnerID,
		&m.Category,
		&m.Month,
		&m.Year,
		&m.BudgetAmount,
		&m.SpentAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveBudget inserts a new budget. The unique index on
// (owner_id, category, month, year) enforces one budget per bucket.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.BudgetID,
		m.OwnerID,
		m.Category,
		m.Month,
		m.Year,
		m.BudgetAmount,
		m.SpentAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: budget already exists for %s %s %d", apperrors.ErrDuplicate, m.Category, m.Month, m.Year)
		}
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget scoped to its owner.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE budget_id = $1 AND owner_id = $2;
	`
	m, err := scanBudget(r.pool.QueryRow(ctx, query, budgetID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("budget not found")
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}

	d := mapping.ToDomainBudget(m)
	return &d, nil
}

// ListBudgetsByOwner retrieves all budgets for an owner in stable
// (year, month, category) display order.
func (r *PgxBudgetRepository) ListBudgetsByOwner(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	// month is stored by name; ordering chronologically needs the month number.
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE owner_id = $1
		ORDER BY year DESC,
			array_position(ARRAY['January','February','March','April','May','June','July','August','September','October','November','December'], month) DESC,
			category ASC;
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	ms := []models.Budget{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}

	return mapping.ToDomainBudgetSlice(ms), nil
}

// UpdateBudgetAmount updates the allocation of an existing budget.
func (r *PgxBudgetRepository) UpdateBudgetAmount(ctx context.Context, ownerID, budgetID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE budgets
		SET budget_amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, budgetID, ownerID, amount, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to execute update budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget not found")
	}
	return nil
}

// DeleteBudget removes a budget scoped to its owner.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, ownerID, budgetID string) error {
	query := `
		DELETE FROM budgets
		WHERE budget_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, budgetID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to execute delete budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget not found")
	}
	return nil
}

// AdjustSpentAmount applies the delta inside the UPDATE itself, so two
// concurrent expense writes against the same budget serialize on the row and
// neither increment is lost. RETURNING exposes the post-update value for the
// caller's drift check.
func (r *PgxBudgetRepository) AdjustSpentAmount(ctx context.Context, key domain.BudgetKey, delta decimal.Decimal, updatedBy string, updatedAt time.Time) (decimal.Decimal, bool, error) {
	query := `
		UPDATE budgets
		SET spent_amount = spent_amount + $5, last_updated_at = $6, last_updated_by = $7
		WHERE owner_id = $1 AND category = $2 AND month = $3 AND year = $4
		RETURNING spent_amount;
	`
	var newSpent decimal.Decimal
	err := r.pool.QueryRow(ctx, query,
		key.OwnerID,
		key.Category,
		string(key.Month),
		key.Year,
		delta,
		updatedAt,
		updatedBy,
	).Scan(&newSpent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No budget for this bucket; spending before budgeting is allowed.
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to adjust spent amount for owner %s category %s: %w", key.OwnerID, key.Category, err)
	}
	return newSpent, true, nil
}

// SetSpentAmount overwrites the spent cache with a recomputed value.
func (r *PgxBudgetRepository) SetSpentAmount(ctx context.Context, ownerID, budgetID string, spent decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE budgets
		SET spent_amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, budgetID, ownerID, spent, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to execute set spent amount for budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("budget not found")
	}
	return nil
}
