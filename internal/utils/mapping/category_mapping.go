package mapping

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/models"
)

// ToModelCategory converts a domain Category to its db model.
// An empty domain OwnerID maps to a NULL owner_id (system default).
func ToModelCategory(d domain.Category) models.Category {
	m := models.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		Type:        string(d.Type),
		Color:       d.Color,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.OwnerID != "" {
		owner := d.OwnerID
		m.OwnerID = &owner
	}
	return m
}

// ToDomainCategory converts a db model Category to its domain form.
func ToDomainCategory(m models.Category) domain.Category {
	d := domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Type:        domain.CategoryType(m.Type),
		Color:       m.Color,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.OwnerID != nil {
		d.OwnerID = *m.OwnerID
	}
	return d
}

// ToDomainCategorySlice converts a slice of db models to domain categories.
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	out := make([]domain.Category, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCategory(m)
	}
	return out
}
