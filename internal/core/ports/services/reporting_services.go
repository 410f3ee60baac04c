package services

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// ReportingSvcFacade answers the time- and category-bucketed aggregation
// queries behind dashboards and reports. Read-only; no write-side effects.
type ReportingSvcFacade interface {
	// PeriodSummary returns income/expense totals for [from, to] inclusive.
	// from after to is a caller error.
	PeriodSummary(ctx context.Context, ownerID string, from, to time.Time) (*domain.PeriodSummary, error)

	// CategoryBreakdown returns the top categories of one transaction type by
	// total, descending, capped for display.
	CategoryBreakdown(ctx context.Context, ownerID string, txnType domain.TransactionType, from, to time.Time) ([]domain.CategorySummary, error)

	// MonthlySeries returns the trailing months window ending at the current
	// month, dense: one point per month, zero-filled when empty, oldest first.
	MonthlySeries(ctx context.Context, ownerID string, months int) ([]domain.MonthlyPoint, error)

	// DailyTrend returns per-day totals and balance for [from, to]; sparse.
	DailyTrend(ctx context.Context, ownerID string, from, to time.Time) ([]domain.DailyPoint, error)

	// Admin aggregations operate unscoped; the caller must already be
	// verified as an admin.
	AdminPeriodSummary(ctx context.Context, from, to time.Time) (*domain.PeriodSummary, error)
	AdminMonthlySeries(ctx context.Context, months int) ([]domain.MonthlyPoint, error)
	TopSpenders(ctx context.Context, from, to time.Time) ([]domain.TopSpender, error)
	MostUsedCategories(ctx context.Context) ([]domain.CategoryUsage, error)
}
