package dto

import (
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for recording a transaction.
// Amount positivity and description length are re-checked in the service;
// binding catches the structural problems early.
type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Description string          `json:"description" binding:"required,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Date        Date            `json:"date" binding:"required"`
}

// UpdateTransactionRequest is the payload for editing a transaction.
// Type is immutable; only the fields present are changed.
type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty" binding:"omitempty,max=200"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Date        *Date            `json:"date,omitempty"`
}

// ListTransactionsParams carries pagination for transaction listing.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ListTransactionsResponse wraps a page of transactions with the next cursor.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          string(txn.Type),
		Description:   txn.Description,
		Amount:        txn.Amount,
		Category:      txn.Category,
		Date:          txn.Date.Format("2006-01-02"),
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.LastUpdatedAt,
	}
}

// ToListTransactionsResponse converts a page of domain transactions to the list DTO.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{Transactions: responses, NextToken: nextToken}
}
