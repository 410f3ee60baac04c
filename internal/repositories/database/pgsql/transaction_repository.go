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
	"github.com/fintrackhq/fintrack_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const defaultTransactionPageSize = 20
const maxTransactionPageSize = 100

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, owner_id, type, description, amount, category, date, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.Type,
		&m.Description,
		&m.Amount,
		&m.Category,
		&m.Date,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts a new ledger entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.Type,
		m.Description,
		m.Amount,
		m.Category,
		m.Date,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction scoped to its owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND owner_id = $2;
	`
	m, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactionsByOwner retrieves a page of the owner's transactions,
// ordered by (date DESC, created_at DESC), with an opaque keyset cursor.
func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}

	args := []any{ownerID, limit + 1} // fetch one extra row to detect a next page
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		query += ` AND (date, created_at) < ($3, $4)`
		args = append(args, cursorDate, cursorCreatedAt)
	}
	query += `
		ORDER BY date DESC, created_at DESC
		LIMIT $2;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	ms := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &t
	}

	return mapping.ToDomainTransactionSlice(ms), token, nil
}

// SumExpensesForBucket sums the owner's expense amounts for one category in
// the half-open interval [start, end). This is the authoritative recomputation
// behind budget seeding and refresh.
func (r *PgxTransactionRepository) SumExpensesForBucket(ctx context.Context, ownerID, category string, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE owner_id = $1
		  AND category = $2
		  AND type = 'EXPENSE'
		  AND date >= $3 AND date < $4;
	`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, ownerID, category, start, end).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for owner %s category %s: %w", ownerID, category, err)
	}
	return sum, nil
}

// UpdateTransaction rewrites the mutable columns of an existing transaction.
// Type and owner are immutable and deliberately absent from the SET list.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET description = $3, amount = $4, category = $5, date = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.Description,
		m.Amount,
		m.Category,
		m.Date,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found")
	}
	return nil
}

// DeleteTransaction removes a ledger entry scoped to its owner.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	query := `
		DELETE FROM transactions
		WHERE transaction_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.pool.Exec(ctx, query, transactionID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to execute delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found")
	}
	return nil
}
