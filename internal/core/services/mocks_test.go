package services_test

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, ownerID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) SumExpensesForBucket(ctx context.Context, ownerID, category string, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, category, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	args := m.Called(ctx, ownerID, transactionID)
	return args.Error(0)
}

// MockBudgetRepository is a mock type for the BudgetRepositoryFacade interface
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, ownerID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByOwner(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudgetAmount(ctx context.Context, ownerID, budgetID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, ownerID, budgetID, amount, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, ownerID, budgetID string) error {
	args := m.Called(ctx, ownerID, budgetID)
	return args.Error(0)
}

func (m *MockBudgetRepository) AdjustSpentAmount(ctx context.Context, key domain.BudgetKey, delta decimal.Decimal, updatedBy string, updatedAt time.Time) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, key, delta, updatedBy, updatedAt)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockBudgetRepository) SetSpentAmount(ctx context.Context, ownerID, budgetID string, spent decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, ownerID, budgetID, spent, updatedBy, updatedAt)
	return args.Error(0)
}

// MockSpendReconciler is a mock type for the SpendReconcilerSvc interface
type MockSpendReconciler struct {
	mock.Mock
}

func (m *MockSpendReconciler) OnExpenseCreated(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockSpendReconciler) OnExpenseUpdated(ctx context.Context, oldTxn, newTxn domain.Transaction) error {
	args := m.Called(ctx, oldTxn, newTxn)
	return args.Error(0)
}

func (m *MockSpendReconciler) OnExpenseDeleted(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockSpendReconciler) ComputeSpent(ctx context.Context, key domain.BudgetKey) (decimal.Decimal, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, ownerID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListEffectiveCategories(ctx context.Context, ownerID string, cType *domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, ownerID, cType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	args := m.Called(ctx, ownerID, categoryID)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountDefaults(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) CountAdmins(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetPeriodTotals(ctx context.Context, ownerID string, from, to time.Time) (domain.PeriodSummary, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).(domain.PeriodSummary), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryBreakdown(ctx context.Context, ownerID string, txnType domain.TransactionType, from, to time.Time, limit int) ([]domain.CategorySummary, error) {
	args := m.Called(ctx, ownerID, txnType, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategorySummary), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.MonthlyPoint, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyPoint), args.Error(1)
}

func (m *MockReportingRepository) GetDailyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]domain.DailyPoint, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyPoint), args.Error(1)
}

func (m *MockReportingRepository) GetTopSpenders(ctx context.Context, from, to time.Time, limit int) ([]domain.TopSpender, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopSpender), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryUsage(ctx context.Context, limit int) ([]domain.CategoryUsage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryUsage), args.Error(1)
}
