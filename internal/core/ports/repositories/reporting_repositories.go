package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// ReportingRepository defines the grouped-sum aggregation queries over the
// ledger. Every query is executed in the database; the application never
// materializes the full ledger. An empty ownerID means unscoped (admin)
// aggregation across all owners.
type ReportingRepository interface {
	// GetPeriodTotals sums income and expenses for [from, to] inclusive.
	GetPeriodTotals(ctx context.Context, ownerID string, from, to time.Time) (domain.PeriodSummary, error)

	// GetCategoryBreakdown groups one transaction type by category over
	// [from, to], summing amount and counting rows, ordered by sum descending,
	// capped at limit rows.
	GetCategoryBreakdown(ctx context.Context, ownerID string, txnType domain.TransactionType, from, to time.Time, limit int) ([]domain.CategorySummary, error)

	// GetMonthlyTotals returns per-month income/expense sums for dates in
	// [from, to), sparse: months without activity are absent and filled in by
	// the service.
	GetMonthlyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.MonthlyPoint, error)

	// GetDailyTotals returns per-day income/expense sums for [from, to],
	// sparse, ordered by date ascending.
	GetDailyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.DailyPoint, error)

	// GetTopSpenders groups expenses by owner over [from, to], ordered by
	// total descending, capped at limit rows. Admin only; never owner-scoped.
	GetTopSpenders(ctx context.Context, from, to time.Time, limit int) ([]domain.TopSpender, error)

	// GetCategoryUsage groups all transactions by category system-wide,
	// ordered by count descending, capped at limit rows.
	GetCategoryUsage(ctx context.Context, limit int) ([]domain.CategoryUsage, error)
}
