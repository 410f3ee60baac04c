package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// spendReconcilerService keeps each budget's cached spentAmount equal to the
// sum of matching expense transactions without rescanning the ledger on the
// hot path. Every adjustment is a single atomic read-modify-write in the
// budget repository, so concurrent expenses against the same budget cannot
// lose updates.
type spendReconcilerService struct {
	BaseService
	budgetRepo      portsrepo.BudgetWriter
	transactionRepo portsrepo.TransactionReader
}

// NewSpendReconcilerService creates the reconciler invoked by the ledger
// write path and by budget seeding/refresh.
func NewSpendReconcilerService(budgetRepo portsrepo.BudgetWriter, transactionRepo portsrepo.TransactionReader) portssvc.SpendReconcilerSvc {
	return &spendReconcilerService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure spendReconcilerService implements the SpendReconcilerSvc interface
var _ portssvc.SpendReconcilerSvc = (*spendReconcilerService)(nil)

// OnExpenseCreated increments the matching budget's spent amount. Spending
// before budgeting is allowed: if no budget exists for the bucket, there is
// nothing to reconcile.
func (s *spendReconcilerService) OnExpenseCreated(ctx context.Context, txn domain.Transaction) error {
	return s.adjust(ctx, domain.BucketFor(txn), txn.Amount, txn.LastUpdatedBy)
}

// OnExpenseUpdated reconciles an expense edit. If the bucket identity
// (category + month/year) is unchanged, a single delta adjustment suffices.
// Otherwise the old bucket is decremented and the new bucket incremented as
// two independent atomic updates; a partial failure leaves one bucket stale,
// which the refresh operation corrects.
func (s *spendReconcilerService) OnExpenseUpdated(ctx context.Context, oldTxn, newTxn domain.Transaction) error {
	oldKey := domain.BucketFor(oldTxn)
	newKey := domain.BucketFor(newTxn)

	if oldKey == newKey {
		delta := newTxn.Amount.Sub(oldTxn.Amount)
		if delta.IsZero() {
			return nil
		}
		return s.adjust(ctx, newKey, delta, newTxn.LastUpdatedBy)
	}

	// The expense moved buckets: back out of the old one, land in the new one.
	errOld := s.adjust(ctx, oldKey, oldTxn.Amount.Neg(), newTxn.LastUpdatedBy)
	errNew := s.adjust(ctx, newKey, newTxn.Amount, newTxn.LastUpdatedBy)
	if errOld != nil || errNew != nil {
		s.LogWarn(ctx, "Partial bucket-move reconciliation; run budget refresh to correct",
			slog.String("transaction_id", newTxn.TransactionID))
	}
	return errors.Join(errOld, errNew)
}

// OnExpenseDeleted decrements the matching budget's spent amount.
func (s *spendReconcilerService) OnExpenseDeleted(ctx context.Context, txn domain.Transaction) error {
	return s.adjust(ctx, domain.BucketFor(txn), txn.Amount.Neg(), txn.LastUpdatedBy)
}

// ComputeSpent sums the owner's expenses matching the bucket, bounded to one
// owner/category/month. This is the only full scan the reconciler performs,
// reserved for budget seeding and refresh.
func (s *spendReconcilerService) ComputeSpent(ctx context.Context, key domain.BudgetKey) (decimal.Decimal, error) {
	start, next, ok := domain.MonthBounds(key.Month, key.Year)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid month %q", key.Month)
	}
	return s.transactionRepo.SumExpensesForBucket(ctx, key.OwnerID, key.Category, start, next)
}

// adjust applies a single atomic delta to the bucket's budget, if one exists.
// A resulting negative spent amount means some earlier mutation bypassed
// reconciliation; it is surfaced as a warning, not corrected here, so the
// drift stays observable until an explicit refresh.
func (s *spendReconcilerService) adjust(ctx context.Context, key domain.BudgetKey, delta decimal.Decimal, updatedBy string) error {
	newSpent, found, err := s.budgetRepo.AdjustSpentAmount(ctx, key, delta, updatedBy, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to adjust spent amount for %s/%s %s %d: %w",
			key.OwnerID, key.Category, key.Month, key.Year, err)
	}
	if !found {
		s.LogDebug(ctx, "No budget for expense bucket; nothing to reconcile",
			slog.String("category", key.Category),
			slog.String("month", string(key.Month)),
			slog.Int("year", key.Year))
		return nil
	}
	if newSpent.IsNegative() {
		s.LogWarn(ctx, "Budget spent amount went negative; ledger and budget cache have drifted",
			slog.String("owner_id", key.OwnerID),
			slog.String("category", key.Category),
			slog.String("month", string(key.Month)),
			slog.Int("year", key.Year),
			slog.String("spent_amount", newSpent.String()))
	}
	return nil
}
