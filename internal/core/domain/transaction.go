package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is income or an expense.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// IsValid reports whether the type is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// MaxDescriptionLength caps transaction descriptions.
const MaxDescriptionLength = 200

// DateOnly truncates t to its calendar date at UTC midnight. Transactions
// carry day precision; storing anything finer would make the inclusive
// [start, end] aggregation ranges and the month buckets disagree about which
// side of a boundary an entry falls on.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Transaction represents a single income or expense entry in the ledger.
// Category is a free-text name matched against budgets and categories by string
// equality (case-sensitive), deliberately not a foreign key: renaming a category
// does not rewrite history.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	OwnerID       string          `json:"ownerID"`       // Owning user; immutable
	Type          TransactionType `json:"type"`          // INCOME or EXPENSE; immutable
	Description   string          `json:"description"`   // Required, <= MaxDescriptionLength
	Amount        decimal.Decimal `json:"amount"`        // Strictly positive
	Category      string          `json:"category"`      // Required, free-text category name
	Date          time.Time       `json:"date"`          // Calendar date the entry is attributed to
	AuditFields
}
