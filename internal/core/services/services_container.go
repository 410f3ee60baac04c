package services

import (
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
)

// NewServiceContainer wires the full service graph. The reconciler is built
// first because the transaction and budget services both depend on it.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	reconciler := NewSpendReconcilerService(repos.BudgetRepo, repos.TransactionRepo)

	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo, reconciler),
		Budget:      NewBudgetService(repos.BudgetRepo, reconciler),
		Reconciler:  reconciler,
		Category:    NewCategoryService(repos.CategoryRepo),
		Reporting:   NewReportingService(repos.ReportingRepo),
		User:        NewUserService(repos.UserRepo),
	}
}
