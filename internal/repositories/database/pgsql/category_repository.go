package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack_backend/internal/models"
	"github.com/fintrackhq/fintrack_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, owner_id, name, type, color, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.OwnerID,
		&m.Name,
		&m.Type,
		&m.Color,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a category. owner_id is NULL for system defaults.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.OwnerID,
		m.Name,
		m.Type,
		m.Color,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q (%s) already exists", apperrors.ErrDuplicate, m.Name, m.Type)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category visible to ownerID: either one of
// their own or a system default.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND (owner_id = $2 OR owner_id IS NULL);
	`
	m, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// ListEffectiveCategories returns the system defaults merged with the owner's
// categories. An owned category with the same name and type as a default
// shadows the default.
func (r *PgxCategoryRepository) ListEffectiveCategories(ctx context.Context, ownerID string, cType *domain.CategoryType) ([]domain.Category, error) {
	// DISTINCT ON keeps one row per (name, type); NULLS LAST ranks the owned
	// category above the default it shadows.
	query := `
		SELECT DISTINCT ON (name, type) ` + categoryColumns + `
		FROM categories
		WHERE (owner_id = $1 OR owner_id IS NULL)
	`
	args := []any{ownerID}
	if cType != nil {
		query += ` AND type = $2`
		args = append(args, string(*cType))
	}
	query += `
		ORDER BY name, type, owner_id NULLS LAST;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	ms := []models.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return mapping.ToDomainCategorySlice(ms), nil
}

// DeleteCategory removes a user-owned category. The owner_id predicate means
// a default (NULL owner) can never match, so defaults are delete-proof here.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	query := `
		DELETE FROM categories
		WHERE category_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, categoryID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to execute delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category not found")
	}
	return nil
}

// CountDefaults returns the number of system default categories.
func (r *PgxCategoryRepository) CountDefaults(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE owner_id IS NULL;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count default categories: %w", err)
	}
	return count, nil
}
