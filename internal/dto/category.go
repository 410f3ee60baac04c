package dto

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
)

// CreateCategoryRequest is the payload for creating a user-owned category.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Type  string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Color      string `json:"color"`
	IsDefault  bool   `json:"isDefault"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       string(c.Type),
		Color:      c.Color,
		IsDefault:  c.IsDefault(),
	}
}

// ToCategoryResponses converts a slice of domain categories to response DTOs.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(&c)
	}
	return responses
}
