package dto

import (
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest is the payload for creating a budget.
type CreateBudgetRequest struct {
	Category     string          `json:"category" binding:"required"`
	Month        string          `json:"month" binding:"required"`
	Year         int             `json:"year" binding:"required"`
	BudgetAmount decimal.Decimal `json:"budgetAmount" binding:"required"`
}

// UpdateBudgetRequest changes the allocation of an existing budget.
// The bucket identity (category, month, year) is immutable; delete and
// recreate to move a budget.
type UpdateBudgetRequest struct {
	BudgetAmount decimal.Decimal `json:"budgetAmount" binding:"required"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID     string          `json:"budgetID"`
	Category     string          `json:"category"`
	Month        string          `json:"month"`
	Year         int             `json:"year"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	SpentAmount  decimal.Decimal `json:"spentAmount"`
	Remaining    decimal.Decimal `json:"remaining"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO.
// Remaining is display data derived here, never stored.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:     b.BudgetID,
		Category:     b.Category,
		Month:        string(b.Month),
		Year:         b.Year,
		BudgetAmount: b.BudgetAmount,
		SpentAmount:  b.SpentAmount,
		Remaining:    b.BudgetAmount.Sub(b.SpentAmount),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.LastUpdatedAt,
	}
}

// ToBudgetResponses converts a slice of domain budgets to response DTOs.
func ToBudgetResponses(budgets []domain.Budget) []BudgetResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = ToBudgetResponse(&b)
	}
	return responses
}
