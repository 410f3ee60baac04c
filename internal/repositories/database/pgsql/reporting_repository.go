package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface. Every
// method is a single grouped-sum query; the full ledger is never pulled into
// the application. An empty ownerID drops the owner predicate entirely,
// turning the query into an unscoped admin aggregate.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetPeriodTotals sums income and expenses for [from, to] inclusive.
func (r *reportingRepository) GetPeriodTotals(ctx context.Context, ownerID string, from, to time.Time) (domain.PeriodSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) AS total_expenses,
			COUNT(*) AS txn_count
		FROM transactions
		WHERE date BETWEEN $1 AND $2
			AND ($3 = '' OR owner_id = $3)
	`

	var summary domain.PeriodSummary
	err := r.Pool.QueryRow(ctx, query, from, to, ownerID).Scan(
		&summary.TotalIncome,
		&summary.TotalExpenses,
		&summary.Count,
	)
	if err != nil {
		return domain.PeriodSummary{}, fmt.Errorf("error querying period totals: %w", err)
	}
	return summary, nil
}

// GetCategoryBreakdown groups one transaction type by category.
func (r *reportingRepository) GetCategoryBreakdown(ctx context.Context, ownerID string, txnType domain.TransactionType, from, to time.Time, limit int) ([]domain.CategorySummary, error) {
	query := `
		SELECT category, SUM(amount) AS total, COUNT(*) AS txn_count
		FROM transactions
		WHERE type = $1
			AND date BETWEEN $2 AND $3
			AND ($4 = '' OR owner_id = $4)
		GROUP BY category
		ORDER BY total DESC
		LIMIT $5
	`

	rows, err := r.Pool.Query(ctx, query, string(txnType), from, to, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying category breakdown: %w", err)
	}
	defer rows.Close()

	result := []domain.CategorySummary{}
	for rows.Next() {
		var row domain.CategorySummary
		if err := rows.Scan(&row.Category, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning category breakdown row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category breakdown rows: %w", err)
	}

	return result, nil
}

// GetMonthlyTotals returns per-month income/expense sums for dates in
// [from, to). Sparse: months without activity produce no row.
func (r *reportingRepository) GetMonthlyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.MonthlyPoint, error) {
	query := `
		SELECT
			date_trunc('month', date) AS month_start,
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expenses
		FROM transactions
		WHERE date >= $1 AND date < $2
			AND ($3 = '' OR owner_id = $3)
		GROUP BY month_start
		ORDER BY month_start
	`

	rows, err := r.Pool.Query(ctx, query, from, to, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly totals: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyPoint{}
	for rows.Next() {
		var monthStart time.Time
		var point domain.MonthlyPoint
		if err := rows.Scan(&monthStart, &point.Income, &point.Expenses); err != nil {
			return nil, fmt.Errorf("error scanning monthly totals row: %w", err)
		}
		point.Month = domain.MonthOf(monthStart)
		point.Year = monthStart.Year()
		result = append(result, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals rows: %w", err)
	}

	return result, nil
}

// GetDailyTotals returns per-day income/expense sums for [from, to]. Sparse.
func (r *reportingRepository) GetDailyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.DailyPoint, error) {
	query := `
		SELECT
			date_trunc('day', date) AS day,
			COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expenses
		FROM transactions
		WHERE date BETWEEN $1 AND $2
			AND ($3 = '' OR owner_id = $3)
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.Pool.Query(ctx, query, from, to, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying daily totals: %w", err)
	}
	defer rows.Close()

	result := []domain.DailyPoint{}
	for rows.Next() {
		var point domain.DailyPoint
		if err := rows.Scan(&point.Date, &point.Income, &point.Expenses); err != nil {
			return nil, fmt.Errorf("error scanning daily totals row: %w", err)
		}
		point.Balance = point.Income.Sub(point.Expenses)
		result = append(result, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily totals rows: %w", err)
	}

	return result, nil
}

// GetTopSpenders groups expenses by owner across the whole system.
func (r *reportingRepository) GetTopSpenders(ctx context.Context, from, to time.Time, limit int) ([]domain.TopSpender, error) {
	query := `
		SELECT t.owner_id, u.name, SUM(t.amount) AS total, COUNT(*) AS txn_count
		FROM transactions t
		JOIN users u ON t.owner_id = u.user_id
		WHERE t.type = 'EXPENSE'
			AND t.date BETWEEN $1 AND $2
		GROUP BY t.owner_id, u.name
		ORDER BY total DESC
		LIMIT $3
	`

	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top spenders: %w", err)
	}
	defer rows.Close()

	result := []domain.TopSpender{}
	for rows.Next() {
		var row domain.TopSpender
		if err := rows.Scan(&row.OwnerID, &row.Name, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning top spenders row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top spenders rows: %w", err)
	}

	return result, nil
}

// GetCategoryUsage groups all transactions by category system-wide.
func (r *reportingRepository) GetCategoryUsage(ctx context.Context, limit int) ([]domain.CategoryUsage, error) {
	query := `
		SELECT category, COUNT(*) AS txn_count, SUM(amount) AS total
		FROM transactions
		GROUP BY category
		ORDER BY txn_count DESC
		LIMIT $1
	`

	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying category usage: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryUsage{}
	for rows.Next() {
		var row domain.CategoryUsage
		if err := rows.Scan(&row.Category, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("error scanning category usage row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category usage rows: %w", err)
	}

	return result, nil
}
