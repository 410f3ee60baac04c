package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SpendReconcilerSvc keeps each budget's cached spent amount equal to the sum
// of matching expense transactions. The OnExpense hooks are incremental point
// updates invoked inline by the ledger write path; ComputeSpent is the bounded
// scan used for create-time seeding and the authoritative refresh.
//
// Only the ledger and budget services call this; the HTTP surface never does.
type SpendReconcilerSvc interface {
	// OnExpenseCreated adds the expense amount to its bucket's budget, if one exists.
	OnExpenseCreated(ctx context.Context, txn domain.Transaction) error

	// OnExpenseUpdated reconciles an edit. A same-bucket edit is a single delta
	// adjustment; a category or month move decrements the old bucket and
	// increments the new one as two independent atomic updates.
	OnExpenseUpdated(ctx context.Context, oldTxn, newTxn domain.Transaction) error

	// OnExpenseDeleted subtracts the expense amount from its bucket's budget.
	// A resulting negative spent amount is logged as a data-integrity warning,
	// never clamped.
	OnExpenseDeleted(ctx context.Context, txn domain.Transaction) error

	// ComputeSpent sums the owner's expenses matching the bucket via a scan
	// bounded to one owner, category and month.
	ComputeSpent(ctx context.Context, key domain.BudgetKey) (decimal.Decimal, error)
}
