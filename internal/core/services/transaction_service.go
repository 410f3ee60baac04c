package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService implements the ledger write/read path. Every expense
// mutation calls the spend reconciler inline after the ledger write, before
// the call returns; there are no other reconciliation triggers, so this is
// the one place the call must never be skipped.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	reconciler      portssvc.SpendReconcilerSvc
}

// NewTransactionService creates a new ledger service.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, reconciler portssvc.SpendReconcilerSvc) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: repo,
		reconciler:      reconciler,
	}
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates and persists a new ledger entry, then
// reconciles the affected budget when the entry is an expense.
func (s *transactionService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txnType := domain.TransactionType(req.Type)
	if err := validateTransactionFields(txnType, req.Description, req.Amount, req.Category, req.Date.Time); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		Type:          txnType,
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		Category:      req.Category,
		Date:          domain.DateOnly(req.Date.Time),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	if txn.Type == domain.Expense {
		s.reconcile(ctx, txn.TransactionID, func() error {
			return s.reconciler.OnExpenseCreated(ctx, txn)
		})
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction owned by ownerID.
func (s *transactionService) GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, ownerID, transactionID)
}

// ListTransactions returns a page of the owner's transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	return s.transactionRepo.ListTransactionsByOwner(ctx, ownerID, params.Limit, params.NextToken)
}

// UpdateTransaction applies the requested edits and reconciles both the old
// and new budget buckets when an expense's amount, category or month changed.
func (s *transactionService) UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Date != nil {
		updated.Date = domain.DateOnly(req.Date.Time)
	}

	if err := validateTransactionFields(updated.Type, updated.Description, updated.Amount, updated.Category, updated.Date); err != nil {
		return nil, err
	}

	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = ownerID

	if err := s.transactionRepo.UpdateTransaction(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if updated.Type == domain.Expense {
		s.reconcile(ctx, transactionID, func() error {
			return s.reconciler.OnExpenseUpdated(ctx, *existing, updated)
		})
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction removes a ledger entry and reconciles its budget bucket.
func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	existing, err := s.transactionRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if existing.Type == domain.Expense {
		deleted := *existing
		deleted.LastUpdatedBy = ownerID
		s.reconcile(ctx, transactionID, func() error {
			return s.reconciler.OnExpenseDeleted(ctx, deleted)
		})
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// reconcile runs a reconciliation step after a committed ledger write.
// Reconciliation failure must not fail the write: the ledger is the source of
// truth and the refresh operation restores the cache, so the error is only
// logged for operators to act on.
func (s *transactionService) reconcile(ctx context.Context, transactionID string, fn func() error) {
	if err := fn(); err != nil {
		s.LogError(ctx, err, "Budget reconciliation failed; spent amounts may be stale until refresh",
			slog.String("transaction_id", transactionID))
	}
}

// validateTransactionFields enforces the ledger's invariants before any
// state mutation.
func validateTransactionFields(txnType domain.TransactionType, description string, amount decimal.Decimal, category string, date time.Time) error {
	if !txnType.IsValid() {
		return apperrors.NewValidationError("transaction type must be INCOME or EXPENSE")
	}
	if strings.TrimSpace(description) == "" {
		return apperrors.NewValidationError("description is required")
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return apperrors.NewValidationError("description must be at most 200 characters")
	}
	if !amount.IsPositive() {
		return apperrors.NewValidationError("amount must be greater than zero")
	}
	if strings.TrimSpace(category) == "" {
		return apperrors.NewValidationError("category is required")
	}
	if date.IsZero() {
		return apperrors.NewValidationError("date is required")
	}
	return nil
}
