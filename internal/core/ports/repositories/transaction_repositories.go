package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction owned by ownerID.
	// Returns apperrors.ErrNotFound if it does not exist or belongs to someone else.
	FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByOwner retrieves a paginated list of the owner's transactions,
	// newest first, using token-based pagination. It returns the transactions,
	// a token for the next page, and an error.
	ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumExpensesForBucket sums the owner's expense amounts with the given
	// category and date in [start, end). This is the bounded scan used for
	// budget seeding and refresh; it never runs on the expense hot path.
	SumExpensesForBucket(ctx context.Context, ownerID, category string, start, end time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for ledger data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates the mutable fields (description, amount,
	// category, date) of an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction owned by ownerID.
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
