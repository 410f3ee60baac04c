package pgsql

import (
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo: transactionRepo,
		BudgetRepo:      budgetRepo,
		CategoryRepo:    categoryRepo,
		UserRepo:        userRepo,
		ReportingRepo:   reportingRepo,
	}
}
