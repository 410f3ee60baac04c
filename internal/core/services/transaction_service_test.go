package services_test

import (
	"context"
	"strings"
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

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockTransactionRepository
	mockReconciler *MockSpendReconciler
	service        portssvc.TransactionSvcFacade
	ownerID        string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockReconciler = new(MockSpendReconciler)
	suite.service = services.NewTransactionService(suite.mockRepo, suite.mockReconciler)
	suite.ownerID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) createReq(txnType string, amount int64) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Type:        txnType,
		Description: "weekly shop",
		Amount:      decimal.NewFromInt(amount),
		Category:    "Groceries",
		Date:        dto.Date{Time: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)},
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseReconcilesBudget() {
	ctx := context.Background()
	req := suite.createReq("EXPENSE", 50)

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockReconciler.On("OnExpenseCreated", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.OwnerID == suite.ownerID &&
			txn.Category == "Groceries" &&
			txn.Amount.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.Expense, txn.Type)
	suite.Equal(suite.ownerID, txn.CreatedBy)
	suite.WithinDuration(time.Now(), txn.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeNeverReconciles() {
	ctx := context.Background()
	req := suite.createReq("INCOME", 1000)

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockReconciler.AssertNotCalled(suite.T(), "OnExpenseCreated", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ReconcilerFailureDoesNotFailWrite() {
	ctx := context.Background()
	req := suite.createReq("EXPENSE", 50)

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockReconciler.On("OnExpenseCreated", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(assert.AnError).Once()

	// The ledger write succeeded; a stale budget cache is recoverable via
	// refresh, so the caller still gets the created transaction.
	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsInvalidInput() {
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*dto.CreateTransactionRequest)
	}{
		{"bad type", func(r *dto.CreateTransactionRequest) { r.Type = "TRANSFER" }},
		{"empty description", func(r *dto.CreateTransactionRequest) { r.Description = "   " }},
		{"long description", func(r *dto.CreateTransactionRequest) { r.Description = strings.Repeat("x", 201) }},
		{"zero amount", func(r *dto.CreateTransactionRequest) { r.Amount = decimal.Zero }},
		{"negative amount", func(r *dto.CreateTransactionRequest) { r.Amount = decimal.NewFromInt(-5) }},
		{"empty category", func(r *dto.CreateTransactionRequest) { r.Category = "" }},
		{"zero date", func(r *dto.CreateTransactionRequest) { r.Date = dto.Date{} }},
	}

	for _, tc := range cases {
		req := suite.createReq("EXPENSE", 50)
		tc.mutate(&req)

		txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

		suite.Require().Error(err, tc.name)
		suite.Nil(txn, tc.name)
		suite.ErrorIs(err, apperrors.ErrValidation, tc.name)
	}

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NormalizesDateToUTCMidnight() {
	ctx := context.Background()
	req := suite.createReq("EXPENSE", 50)
	// A caller-supplied time-of-day must not survive: a timestamp on the last
	// day of a range would fall outside inclusive [start, end] aggregation
	// while the month bucket still counts it.
	req.Date = dto.Date{Time: time.Date(2025, time.March, 15, 23, 30, 0, 0, time.FixedZone("CEST", 2*60*60))}

	wantDate := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Date.Equal(wantDate)
	})).Return(nil).Once()
	suite.mockReconciler.On("OnExpenseCreated", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.True(txn.Date.Equal(wantDate))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DescriptionLimitCountsRunes() {
	ctx := context.Background()
	req := suite.createReq("INCOME", 1000)
	req.Description = strings.Repeat("é", 200)

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)

	req.Description = strings.Repeat("é", 201)
	txn, err = suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_PassesOldAndNewToReconciler() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		OwnerID:       suite.ownerID,
		Type:          domain.Expense,
		Description:   "weekly shop",
		Amount:        decimal.NewFromInt(50),
		Category:      "Groceries",
		Date:          time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
	newAmount := decimal.NewFromInt(80)
	newCategory := "Dining"
	req := dto.UpdateTransactionRequest{Amount: &newAmount, Category: &newCategory}

	suite.mockRepo.On("FindTransactionByID", ctx, suite.ownerID, transactionID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockReconciler.On("OnExpenseUpdated", ctx,
		mock.MatchedBy(func(oldTxn domain.Transaction) bool {
			return oldTxn.Category == "Groceries" && oldTxn.Amount.Equal(decimal.NewFromInt(50))
		}),
		mock.MatchedBy(func(newTxn domain.Transaction) bool {
			return newTxn.Category == "Dining" && newTxn.Amount.Equal(decimal.NewFromInt(80))
		}),
	).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, suite.ownerID, transactionID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal("Dining", txn.Category)
	suite.Equal(domain.Expense, txn.Type, "type is immutable")

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, suite.ownerID, transactionID).
		Return(nil, apperrors.NewNotFoundError("transaction not found")).Once()

	newAmount := decimal.NewFromInt(80)
	txn, err := suite.service.UpdateTransaction(ctx, suite.ownerID, transactionID, dto.UpdateTransactionRequest{Amount: &newAmount})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ExpenseReconcilesBudget() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		OwnerID:       suite.ownerID,
		Type:          domain.Expense,
		Amount:        decimal.NewFromInt(50),
		Category:      "Groceries",
		Date:          time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindTransactionByID", ctx, suite.ownerID, transactionID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteTransaction", ctx, suite.ownerID, transactionID).Return(nil).Once()
	suite.mockReconciler.On("OnExpenseDeleted", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.TransactionID == transactionID && txn.Amount.Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.ownerID, transactionID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_IncomeSkipsReconciler() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		OwnerID:       suite.ownerID,
		Type:          domain.Income,
		Amount:        decimal.NewFromInt(1000),
		Category:      "Salary",
		Date:          time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindTransactionByID", ctx, suite.ownerID, transactionID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteTransaction", ctx, suite.ownerID, transactionID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.ownerID, transactionID)

	suite.Require().NoError(err)
	suite.mockReconciler.AssertNotCalled(suite.T(), "OnExpenseDeleted", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_PassesCursorThrough() {
	ctx := context.Background()
	token := "b3BhcXVl"
	next := "bmV4dA"
	txns := []domain.Transaction{{TransactionID: uuid.NewString(), OwnerID: suite.ownerID}}

	suite.mockRepo.On("ListTransactionsByOwner", ctx, suite.ownerID, 20, &token).Return(txns, &next, nil).Once()

	got, nextToken, err := suite.service.ListTransactions(ctx, suite.ownerID, dto.ListTransactionsParams{Limit: 20, NextToken: &token})

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Require().NotNil(nextToken)
	suite.Equal(next, *nextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
