package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Month is a named calendar month, stored as its English name.
type Month string

const (
	January   Month = "January"
	February  Month = "February"
	March     Month = "March"
	April     Month = "April"
	May       Month = "May"
	June      Month = "June"
	July      Month = "July"
	August    Month = "August"
	September Month = "September"
	October   Month = "October"
	November  Month = "November"
	December  Month = "December"
)

// MinBudgetYear and MaxBudgetYear bound the accepted budget years.
const (
	MinBudgetYear = 1970
	MaxBudgetYear = 2100
)

var monthsByName = map[Month]time.Month{
	January: time.January, February: time.February, March: time.March,
	April: time.April, May: time.May, June: time.June,
	July: time.July, August: time.August, September: time.September,
	October: time.October, November: time.November, December: time.December,
}

// TimeMonth converts the named month to its time.Month value.
// The second return value is false for unknown names.
func (m Month) TimeMonth() (time.Month, bool) {
	tm, ok := monthsByName[m]
	return tm, ok
}

// IsValid reports whether m is one of the twelve named months.
func (m Month) IsValid() bool {
	_, ok := monthsByName[m]
	return ok
}

// MonthOf returns the named month a date falls in.
func MonthOf(t time.Time) Month {
	return Month(t.Month().String())
}

// MonthBounds returns the half-open UTC interval [start, next) covering the
// given month. Using a half-open upper bound keeps the last instant of a month
// inside that month's bucket.
func MonthBounds(m Month, year int) (start, next time.Time, ok bool) {
	tm, ok := m.TimeMonth()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	start = time.Date(year, tm, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), true
}

// Budget is a per-(owner, category, month, year) allocation with a cached
// spent amount. SpentAmount is derived data: it must equal the sum of the
// owner's matching expense amounts inside the month, and every expense
// mutation goes through the spend reconciler to keep it that way.
type Budget struct {
	BudgetID     string          `json:"budgetID"` // Primary Key (UUID)
	OwnerID      string          `json:"ownerID"`
	Category     string          `json:"category"`
	Month        Month           `json:"month"`
	Year         int             `json:"year"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"` // Allocation, strictly positive
	SpentAmount  decimal.Decimal `json:"spentAmount"`  // Cache; recomputable via refresh
	AuditFields
}

// BudgetKey identifies the unique budget bucket an expense maps to.
type BudgetKey struct {
	OwnerID  string
	Category string
	Month    Month
	Year     int
}

// Key returns the bucket identity of the budget.
func (b Budget) Key() BudgetKey {
	return BudgetKey{OwnerID: b.OwnerID, Category: b.Category, Month: b.Month, Year: b.Year}
}

// BucketFor resolves the budget bucket an expense transaction belongs to.
func BucketFor(t Transaction) BudgetKey {
	return BudgetKey{
		OwnerID:  t.OwnerID,
		Category: t.Category,
		Month:    MonthOf(t.Date),
		Year:     t.Date.Year(),
	}
}
