package mapping

import (
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/fintrackhq/fintrack_backend/internal/models"
)

// ToModelBudget converts a domain Budget to its db model.
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     d.BudgetID,
		OwnerID:      d.OwnerID,
		Category:     d.Category,
		Month:        string(d.Month),
		Year:         d.Year,
		BudgetAmount: d.BudgetAmount,
		SpentAmount:  d.SpentAmount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a db model Budget to its domain form.
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		OwnerID:      m.OwnerID,
		Category:     m.Category,
		Month:        domain.Month(m.Month),
		Year:         m.Year,
		BudgetAmount: m.BudgetAmount,
		SpentAmount:  m.SpentAmount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts a slice of db models to domain budgets.
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	out := make([]domain.Budget, len(ms))
	for i, m := range ms {
		out[i] = ToDomainBudget(m)
	}
	return out
}
