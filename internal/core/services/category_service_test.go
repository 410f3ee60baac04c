package services_test

import (
	"context"
	"testing"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/core/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
	ownerID  string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
	suite.ownerID = uuid.NewString()
}

// --- Test Cases ---

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Hobbies", Type: "EXPENSE", Color: "#123abc"}

	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.OwnerID == suite.ownerID && c.Name == "Hobbies" && c.Type == domain.CategoryExpense
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(category)
	suite.NotEmpty(category.CategoryID)
	suite.False(category.IsDefault())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_InvalidType() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Hobbies", Type: "TRANSFER"}

	category, err := suite.service.CreateCategory(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestListCategories_FilterByType() {
	ctx := context.Background()
	cType := domain.CategoryExpense
	expected := []domain.Category{{CategoryID: uuid.NewString(), Name: "Groceries", Type: domain.CategoryExpense}}

	suite.mockRepo.On("ListEffectiveCategories", ctx, suite.ownerID, &cType).Return(expected, nil).Once()

	categories, err := suite.service.ListCategories(ctx, suite.ownerID, &cType)

	suite.Require().NoError(err)
	suite.Equal(expected, categories)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_DefaultForbidden() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	systemDefault := &domain.Category{CategoryID: categoryID, OwnerID: "", Name: "Groceries", Type: domain.CategoryExpense}

	suite.mockRepo.On("FindCategoryByID", ctx, suite.ownerID, categoryID).Return(systemDefault, nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.ownerID, categoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_OwnedSucceeds() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	owned := &domain.Category{CategoryID: categoryID, OwnerID: suite.ownerID, Name: "Hobbies", Type: domain.CategoryExpense}

	suite.mockRepo.On("FindCategoryByID", ctx, suite.ownerID, categoryID).Return(owned, nil).Once()
	suite.mockRepo.On("DeleteCategory", ctx, suite.ownerID, categoryID).Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.ownerID, categoryID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestEnsureDefaultCategories_SeedsOnce() {
	ctx := context.Background()

	suite.mockRepo.On("CountDefaults", ctx).Return(int64(0), nil).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.IsDefault() && c.Name != ""
	})).Return(nil)

	err := suite.service.EnsureDefaultCategories(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestEnsureDefaultCategories_NoOpWhenSeeded() {
	ctx := context.Background()

	suite.mockRepo.On("CountDefaults", ctx).Return(int64(11), nil).Once()

	err := suite.service.EnsureDefaultCategories(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestCategoryService(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
