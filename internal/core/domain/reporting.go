package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSummary aggregates a date range into dashboard summary-card totals.
type PeriodSummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Count         int64           `json:"count"`
}

// Balance is the period's income minus expenses.
func (s PeriodSummary) Balance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpenses)
}

// CategorySummary is one row of a category breakdown: total and count of
// transactions of one type in one category.
type CategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// MonthlyPoint is one month of a dense monthly series. Months with no
// activity carry zero totals rather than being omitted; chart consumers
// depend on an ordered, gap-free x-axis.
type MonthlyPoint struct {
	Month    Month           `json:"month"`
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// DailyPoint is one calendar day of a daily trend. The series is sparse:
// only days with at least one transaction appear.
type DailyPoint struct {
	Date     time.Time       `json:"date"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"` // Income - Expenses for the day
}

// TopSpender is one row of the admin "top spending users" aggregate.
type TopSpender struct {
	OwnerID string          `json:"ownerID"`
	Name    string          `json:"name"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"count"`
}

// CategoryUsage is one row of the admin "most used categories" aggregate,
// ordered by transaction count.
type CategoryUsage struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
}
