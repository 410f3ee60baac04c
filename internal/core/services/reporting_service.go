package services

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const (
	// breakdownLimit caps category breakdown rows for display.
	breakdownLimit = 10
	// topSpendersLimit caps the admin top-spenders aggregate.
	topSpendersLimit = 10
	// categoryUsageLimit caps the admin category-usage aggregate.
	categoryUsageLimit = 10
	// defaultTrailingMonths is the monthly series window when none is given.
	defaultTrailingMonths = 6
	// maxTrailingMonths bounds the monthly series window.
	maxTrailingMonths = 60
)

// reportingService answers aggregation queries over the ledger. All grouping
// and summing happens in the repository; this layer validates ranges and
// densifies the monthly series for chart consumers.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// PeriodSummary returns income/expense totals for [from, to] inclusive.
// A period with no transactions yields zeroed totals, not an error.
func (s *reportingService) PeriodSummary(ctx context.Context, ownerID string, from, to time.Time) (*domain.PeriodSummary, error) {
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	summary, err := s.reportingRepo.GetPeriodTotals(ctx, ownerID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute period totals")
		return nil, err
	}
	return &summary, nil
}

// CategoryBreakdown returns the top categories of one transaction type,
// ordered by total descending. An empty slice means no activity.
func (s *reportingService) CategoryBreakdown(ctx context.Context, ownerID string, txnType domain.TransactionType, from, to time.Time) ([]domain.CategorySummary, error) {
	if !txnType.IsValid() {
		return nil, apperrors.NewValidationError("transaction type must be INCOME or EXPENSE")
	}
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.GetCategoryBreakdown(ctx, ownerID, txnType, from, to, breakdownLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute category breakdown")
		return nil, err
	}
	if rows == nil {
		rows = []domain.CategorySummary{}
	}
	return rows, nil
}

// MonthlySeries returns the trailing months window ending at the current
// month, one point per month oldest first, zero-filled where the ledger has
// no activity.
func (s *reportingService) MonthlySeries(ctx context.Context, ownerID string, months int) ([]domain.MonthlyPoint, error) {
	return s.monthlySeries(ctx, ownerID, months)
}

// DailyTrend returns per-day totals for [from, to]. Sparse: days without
// transactions are omitted.
func (s *reportingService) DailyTrend(ctx context.Context, ownerID string, from, to time.Time) ([]domain.DailyPoint, error) {
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	points, err := s.reportingRepo.GetDailyTotals(ctx, ownerID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute daily trend")
		return nil, err
	}
	if points == nil {
		points = []domain.DailyPoint{}
	}
	return points, nil
}

// AdminPeriodSummary is PeriodSummary across all owners.
func (s *reportingService) AdminPeriodSummary(ctx context.Context, from, to time.Time) (*domain.PeriodSummary, error) {
	return s.PeriodSummary(ctx, "", from, to)
}

// AdminMonthlySeries is MonthlySeries across all owners.
func (s *reportingService) AdminMonthlySeries(ctx context.Context, months int) ([]domain.MonthlyPoint, error) {
	return s.monthlySeries(ctx, "", months)
}

// TopSpenders returns the users with the highest expense totals in the range.
func (s *reportingService) TopSpenders(ctx context.Context, from, to time.Time) ([]domain.TopSpender, error) {
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.GetTopSpenders(ctx, from, to, topSpendersLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute top spenders")
		return nil, err
	}
	if rows == nil {
		rows = []domain.TopSpender{}
	}
	return rows, nil
}

// MostUsedCategories returns categories ordered by system-wide transaction
// count.
func (s *reportingService) MostUsedCategories(ctx context.Context) ([]domain.CategoryUsage, error) {
	rows, err := s.reportingRepo.GetCategoryUsage(ctx, categoryUsageLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute category usage")
		return nil, err
	}
	if rows == nil {
		rows = []domain.CategoryUsage{}
	}
	return rows, nil
}

// monthlySeries builds the dense trailing-months series for one owner, or
// for everyone when ownerID is empty.
func (s *reportingService) monthlySeries(ctx context.Context, ownerID string, months int) ([]domain.MonthlyPoint, error) {
	if months == 0 {
		months = defaultTrailingMonths
	}
	if months < 1 || months > maxTrailingMonths {
		return nil, apperrors.NewValidationError("months must be between 1 and 60")
	}

	// The window is [first day of the oldest month, first day of next month).
	now := time.Now().UTC()
	currentMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	windowStart := currentMonthStart.AddDate(0, -(months - 1), 0)
	windowEnd := currentMonthStart.AddDate(0, 1, 0)

	sparse, err := s.reportingRepo.GetMonthlyTotals(ctx, ownerID, windowStart, windowEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute monthly totals")
		return nil, err
	}

	type monthKey struct {
		month domain.Month
		year  int
	}
	byKey := make(map[monthKey]domain.MonthlyPoint, len(sparse))
	for _, p := range sparse {
		byKey[monthKey{p.Month, p.Year}] = p
	}

	series := make([]domain.MonthlyPoint, 0, months)
	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.AddDate(0, 1, 0) {
		month := domain.MonthOf(cursor)
		if p, ok := byKey[monthKey{month, cursor.Year()}]; ok {
			series = append(series, p)
			continue
		}
		series = append(series, domain.MonthlyPoint{
			Month:    month,
			Year:     cursor.Year(),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		})
	}
	return series, nil
}

// validateDateRange rejects inverted ranges before they reach the database.
func validateDateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return apperrors.NewValidationError("from and to dates are required")
	}
	if from.After(to) {
		return apperrors.NewValidationError("from date must not be after to date")
	}
	return nil
}
