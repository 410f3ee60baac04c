package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors a row of the transactions table.
type Transaction struct {
	TransactionID string
	OwnerID       string
	Type          string // 'INCOME' or 'EXPENSE'
	Description   string
	Amount        decimal.Decimal
	Category      string
	Date          time.Time
	AuditFields
}
