package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type ReconcilerServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	mockTxnRepo    *MockTransactionRepository
	service        portssvc.SpendReconcilerSvc
	ownerID        string
}

func (suite *ReconcilerServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewSpendReconcilerService(suite.mockBudgetRepo, suite.mockTxnRepo)
	suite.ownerID = uuid.NewString()
}

func (suite *ReconcilerServiceTestSuite) expense(category string, amount int64, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       suite.ownerID,
		Type:          domain.Expense,
		Description:   "test expense",
		Amount:        decimal.NewFromInt(amount),
		Category:      category,
		Date:          date,
		AuditFields: domain.AuditFields{
			LastUpdatedBy: suite.ownerID,
		},
	}
}

// decimalEq matches a decimal argument by value, not representation.
func decimalEq(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

// --- Test Cases ---

func (suite *ReconcilerServiceTestSuite) TestOnExpenseCreated_IncrementsBucket() {
	ctx := context.Background()
	txn := suite.expense("Groceries", 50, time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC))
	expectedKey := domain.BudgetKey{
		OwnerID:  suite.ownerID,
		Category: "Groceries",
		Month:    domain.March,
		Year:     2025,
	}

	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, expectedKey, decimalEq(decimal.NewFromInt(50)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(50), true, nil).Once()

	err := suite.service.OnExpenseCreated(ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseCreated_NoBudgetIsNoOp() {
	ctx := context.Background()
	txn := suite.expense("Groceries", 50, time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC))

	// Budget does not exist for the bucket: found=false, no error.
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, mock.AnythingOfType("domain.BudgetKey"), mock.Anything, suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, false, nil).Once()

	err := suite.service.OnExpenseCreated(ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseCreated_LastInstantOfMonthStaysInBucket() {
	ctx := context.Background()
	txn := suite.expense("Groceries", 10, time.Date(2025, time.January, 31, 23, 59, 59, 999999999, time.UTC))
	expectedKey := domain.BudgetKey{
		OwnerID:  suite.ownerID,
		Category: "Groceries",
		Month:    domain.January,
		Year:     2025,
	}

	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, expectedKey, decimalEq(decimal.NewFromInt(10)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(10), true, nil).Once()

	err := suite.service.OnExpenseCreated(ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseUpdated_SameBucketAppliesDelta() {
	ctx := context.Background()
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	oldTxn := suite.expense("Groceries", 50, date)
	newTxn := oldTxn
	newTxn.Amount = decimal.NewFromInt(80)

	expectedKey := domain.BudgetKey{
		OwnerID:  suite.ownerID,
		Category: "Groceries",
		Month:    domain.March,
		Year:     2025,
	}

	// One atomic adjustment of +30, not a decrement plus an increment.
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, expectedKey, decimalEq(decimal.NewFromInt(30)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(80), true, nil).Once()

	err := suite.service.OnExpenseUpdated(ctx, oldTxn, newTxn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseUpdated_UnchangedAmountSkipsRepo() {
	ctx := context.Background()
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	oldTxn := suite.expense("Groceries", 50, date)
	newTxn := oldTxn
	newTxn.Description = "renamed only"

	err := suite.service.OnExpenseUpdated(ctx, oldTxn, newTxn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "AdjustSpentAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseUpdated_CategoryMoveAdjustsBothBuckets() {
	ctx := context.Background()
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	oldTxn := suite.expense("Groceries", 50, date)
	newTxn := oldTxn
	newTxn.Category = "Dining"

	oldKey := domain.BudgetKey{OwnerID: suite.ownerID, Category: "Groceries", Month: domain.March, Year: 2025}
	newKey := domain.BudgetKey{OwnerID: suite.ownerID, Category: "Dining", Month: domain.March, Year: 2025}

	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, oldKey, decimalEq(decimal.NewFromInt(-50)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, true, nil).Once()
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, newKey, decimalEq(decimal.NewFromInt(50)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(50), true, nil).Once()

	err := suite.service.OnExpenseUpdated(ctx, oldTxn, newTxn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseUpdated_MonthMoveAdjustsBothBuckets() {
	ctx := context.Background()
	oldTxn := suite.expense("Groceries", 50, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC))
	newTxn := oldTxn
	newTxn.Date = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	oldKey := domain.BudgetKey{OwnerID: suite.ownerID, Category: "Groceries", Month: domain.March, Year: 2025}
	newKey := domain.BudgetKey{OwnerID: suite.ownerID, Category: "Groceries", Month: domain.April, Year: 2025}

	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, oldKey, decimalEq(decimal.NewFromInt(-50)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, true, nil).Once()
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, newKey, decimalEq(decimal.NewFromInt(50)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(50), true, nil).Once()

	err := suite.service.OnExpenseUpdated(ctx, oldTxn, newTxn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseUpdated_PartialMoveFailureReturnsError() {
	ctx := context.Background()
	oldTxn := suite.expense("Groceries", 50, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	newTxn := oldTxn
	newTxn.Category = "Dining"

	oldKey := domain.BudgetKey{OwnerID: suite.ownerID, Category: "Groceries", Month: domain.March, Year: 2025}
	newKey := domain.BudgetKey{OwnerID: suite.ownerID, Category: "Dining", Month: domain.March, Year: 2025}

	expectedErr := assert.AnError
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, oldKey, decimalEq(decimal.NewFromInt(-50)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, false, expectedErr).Once()
	// The new bucket is still adjusted even though the old one failed.
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, newKey, decimalEq(decimal.NewFromInt(50)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(50), true, nil).Once()

	err := suite.service.OnExpenseUpdated(ctx, oldTxn, newTxn)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseDeleted_DecrementsBucket() {
	ctx := context.Background()
	txn := suite.expense("Groceries", 50, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
	expectedKey := domain.BudgetKey{
		OwnerID:  suite.ownerID,
		Category: "Groceries",
		Month:    domain.March,
		Year:     2025,
	}

	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, expectedKey, decimalEq(decimal.NewFromInt(-50)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, true, nil).Once()

	err := suite.service.OnExpenseDeleted(ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestOnExpenseDeleted_NegativeResultIsNotAnError() {
	ctx := context.Background()
	txn := suite.expense("Groceries", 50, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))

	// Deleting an expense that was never reconciled drives spent negative.
	// That is drift to report, not a failure of this delete.
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, mock.AnythingOfType("domain.BudgetKey"), mock.Anything, suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(-50), true, nil).Once()

	err := suite.service.OnExpenseDeleted(ctx, txn)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestComputeSpent_SumsHalfOpenMonth() {
	ctx := context.Background()
	key := domain.BudgetKey{
		OwnerID:  suite.ownerID,
		Category: "Groceries",
		Month:    domain.February,
		Year:     2024, // leap year
	}
	wantStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	suite.mockTxnRepo.On("SumExpensesForBucket", ctx, suite.ownerID, "Groceries", wantStart, wantEnd).
		Return(decimal.NewFromInt(120), nil).Once()

	spent, err := suite.service.ComputeSpent(ctx, key)

	suite.Require().NoError(err)
	suite.True(spent.Equal(decimal.NewFromInt(120)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReconcilerServiceTestSuite) TestComputeSpent_InvalidMonth() {
	ctx := context.Background()
	key := domain.BudgetKey{
		OwnerID:  suite.ownerID,
		Category: "Groceries",
		Month:    domain.Month("Febtober"),
		Year:     2025,
	}

	_, err := suite.service.ComputeSpent(ctx, key)

	suite.Require().Error(err)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SumExpensesForBucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestReconcilerService(t *testing.T) {
	suite.Run(t, new(ReconcilerServiceTestSuite))
}
