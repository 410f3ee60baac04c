package services

import (
	"context"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
)

// TransactionSvcFacade is the ledger write/read surface. Every expense
// mutation flowing through it triggers spend reconciliation inline, before
// the call returns; reconciliation failure never fails the ledger write.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
	UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}
