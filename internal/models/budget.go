package models

import "github.com/shopspring/decimal"

// Budget mirrors a row of the budgets table. Month is stored as the English
// month name; (owner_id, category, month, year) is unique.
type Budget struct {
	BudgetID     string
	OwnerID      string
	Category     string
	Month        string
	Year         int
	BudgetAmount decimal.Decimal
	SpentAmount  decimal.Decimal
	AuditFields
}
