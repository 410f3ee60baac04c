package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type BudgetServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockBudgetRepository
	mockReconciler *MockSpendReconciler
	service        portssvc.BudgetSvcFacade
	ownerID        string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRepository)
	suite.mockReconciler = new(MockSpendReconciler)
	suite.service = services.NewBudgetService(suite.mockRepo, suite.mockReconciler)
	suite.ownerID = uuid.NewString()
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_SeedsSpentFromLedger() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:     "Groceries",
		Month:        "March",
		Year:         2025,
		BudgetAmount: decimal.NewFromInt(500),
	}
	expectedKey := domain.BudgetKey{
		OwnerID:  suite.ownerID,
		Category: "Groceries",
		Month:    domain.March,
		Year:     2025,
	}

	// Expenses recorded before the budget existed must be counted immediately.
	suite.mockReconciler.On("ComputeSpent", ctx, expectedKey).Return(decimal.NewFromInt(120), nil).Once()
	suite.mockRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.NotEmpty(budget.BudgetID)
	suite.Equal(suite.ownerID, budget.OwnerID)
	suite.Equal(domain.March, budget.Month)
	suite.Equal(2025, budget.Year)
	suite.True(budget.BudgetAmount.Equal(decimal.NewFromInt(500)))
	suite.True(budget.SpentAmount.Equal(decimal.NewFromInt(120)))
	suite.WithinDuration(time.Now(), budget.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_InvalidMonth() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:     "Groceries",
		Month:        "Marchtober",
		Year:         2025,
		BudgetAmount: decimal.NewFromInt(500),
	}

	budget, err := suite.service.CreateBudget(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_YearOutOfRange() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:     "Groceries",
		Month:        "March",
		Year:         1899,
		BudgetAmount: decimal.NewFromInt(500),
	}

	budget, err := suite.service.CreateBudget(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:     "Groceries",
		Month:        "March",
		Year:         2025,
		BudgetAmount: decimal.Zero,
	}

	budget, err := suite.service.CreateBudget(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_DuplicateBucket() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category:     "Groceries",
		Month:        "March",
		Year:         2025,
		BudgetAmount: decimal.NewFromInt(500),
	}

	suite.mockReconciler.On("ComputeSpent", ctx, mock.AnythingOfType("domain.BudgetKey")).Return(decimal.Zero, nil).Once()
	suite.mockRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).
		Return(apperrors.NewDuplicateError("budget already exists for this category and month")).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_ChangesAllocationOnly() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	existing := &domain.Budget{
		BudgetID:     budgetID,
		OwnerID:      suite.ownerID,
		Category:     "Groceries",
		Month:        domain.March,
		Year:         2025,
		BudgetAmount: decimal.NewFromInt(500),
		SpentAmount:  decimal.NewFromInt(120),
	}
	req := dto.UpdateBudgetRequest{BudgetAmount: decimal.NewFromInt(600)}

	suite.mockRepo.On("FindBudgetByID", ctx, suite.ownerID, budgetID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBudgetAmount", ctx, suite.ownerID, budgetID, decimalEq(decimal.NewFromInt(600)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	budget, err := suite.service.UpdateBudget(ctx, suite.ownerID, budgetID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.True(budget.BudgetAmount.Equal(decimal.NewFromInt(600)))
	suite.True(budget.SpentAmount.Equal(decimal.NewFromInt(120)), "spent amount must survive an allocation change")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_LeavesTransactionsAlone() {
	ctx := context.Background()
	budgetID := uuid.NewString()

	suite.mockRepo.On("DeleteBudget", ctx, suite.ownerID, budgetID).Return(nil).Once()

	err := suite.service.DeleteBudget(ctx, suite.ownerID, budgetID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertNotCalled(suite.T(), "ComputeSpent", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestRefreshBudget_OverwritesDriftedCache() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	existing := &domain.Budget{
		BudgetID:     budgetID,
		OwnerID:      suite.ownerID,
		Category:     "Groceries",
		Month:        domain.March,
		Year:         2025,
		BudgetAmount: decimal.NewFromInt(500),
		SpentAmount:  decimal.NewFromInt(999), // drifted
	}

	suite.mockRepo.On("FindBudgetByID", ctx, suite.ownerID, budgetID).Return(existing, nil).Once()
	suite.mockReconciler.On("ComputeSpent", ctx, existing.Key()).Return(decimal.NewFromInt(120), nil).Once()
	suite.mockRepo.On("SetSpentAmount", ctx, suite.ownerID, budgetID, decimalEq(decimal.NewFromInt(120)), suite.ownerID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	budget, err := suite.service.RefreshBudget(ctx, suite.ownerID, budgetID)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.True(budget.SpentAmount.Equal(decimal.NewFromInt(120)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestRefreshAllBudgets_SequentialAndRepeatable() {
	ctx := context.Background()
	budgets := []domain.Budget{
		{BudgetID: uuid.NewString(), OwnerID: suite.ownerID, Category: "Groceries", Month: domain.March, Year: 2025, SpentAmount: decimal.NewFromInt(10)},
		{BudgetID: uuid.NewString(), OwnerID: suite.ownerID, Category: "Dining", Month: domain.March, Year: 2025, SpentAmount: decimal.NewFromInt(20)},
	}

	suite.mockRepo.On("ListBudgetsByOwner", ctx, suite.ownerID).Return(budgets, nil).Once()
	suite.mockReconciler.On("ComputeSpent", ctx, budgets[0].Key()).Return(decimal.NewFromInt(11), nil).Once()
	suite.mockReconciler.On("ComputeSpent", ctx, budgets[1].Key()).Return(decimal.NewFromInt(22), nil).Once()
	suite.mockRepo.On("SetSpentAmount", ctx, suite.ownerID, budgets[0].BudgetID, decimalEq(decimal.NewFromInt(11)), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("SetSpentAmount", ctx, suite.ownerID, budgets[1].BudgetID, decimalEq(decimal.NewFromInt(22)), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	refreshed, err := suite.service.RefreshAllBudgets(ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().Len(refreshed, 2)
	suite.True(refreshed[0].SpentAmount.Equal(decimal.NewFromInt(11)))
	suite.True(refreshed[1].SpentAmount.Equal(decimal.NewFromInt(22)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestRefreshAllBudgets_FailurePartwayKeepsEarlierResults() {
	ctx := context.Background()
	budgets := []domain.Budget{
		{BudgetID: uuid.NewString(), OwnerID: suite.ownerID, Category: "Groceries", Month: domain.March, Year: 2025},
		{BudgetID: uuid.NewString(), OwnerID: suite.ownerID, Category: "Dining", Month: domain.March, Year: 2025},
	}

	suite.mockRepo.On("ListBudgetsByOwner", ctx, suite.ownerID).Return(budgets, nil).Once()
	suite.mockReconciler.On("ComputeSpent", ctx, budgets[0].Key()).Return(decimal.NewFromInt(11), nil).Once()
	suite.mockRepo.On("SetSpentAmount", ctx, suite.ownerID, budgets[0].BudgetID, decimalEq(decimal.NewFromInt(11)), suite.ownerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockReconciler.On("ComputeSpent", ctx, budgets[1].Key()).Return(decimal.Zero, assert.AnError).Once()

	refreshed, err := suite.service.RefreshAllBudgets(ctx, suite.ownerID)

	suite.Require().Error(err)
	suite.Nil(refreshed)
	// The first budget was already persisted; only the failing one is left.
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
