package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PredictionServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	txnRepo    *MockTransactionRepository
	authorizer *MockWalletAuthorizer
	service    portssvc.PredictionService
}

func (suite *PredictionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.txnRepo = new(MockTransactionRepository)
	suite.authorizer = new(MockWalletAuthorizer)
	suite.service = services.NewPredictionService(suite.txnRepo, suite.authorizer)
}

func (suite *PredictionServiceTestSuite) TearDownTest() {
	suite.txnRepo.AssertExpectations(suite.T())
	suite.authorizer.AssertExpectations(suite.T())
}

func (suite *PredictionServiceTestSuite) TestGetPredictions_MergesFiltersAndSorts() {
	wallets := []int64{1}
	oldest := day(2024, time.January, 15)
	start, end := day(2024, time.March, 1), day(2024, time.March, 31)

	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, (*int64)(nil)).Return(wallets, nil).Once()
	suite.txnRepo.On("FindOldestRecurringDate", mock.Anything, wallets).Return(&oldest, nil).Once()
	suite.txnRepo.On("ListRecurringAnchors", mock.Anything, wallets, end, oldest).Return([]domain.Transaction{
		recurring(2, domain.Outcome, "20", day(2024, time.March, 1), domain.Weekly, dayPtr(2024, time.March, 20)),
		recurring(1, domain.Income, "100", oldest, domain.Monthly, nil),
	}, nil).Once()

	got, err := suite.service.GetPredictions(suite.ctx, testUserID, domain.PredictionQuery{StartDate: start, EndDate: end})

	suite.Require().NoError(err)
	suite.Require().Len(got, 3)

	suite.Equal("2-2024-03-08", got[0].ID)
	suite.Equal("1-2024-03-15", got[1].ID)
	suite.Equal("2-2024-03-15", got[2].ID)
	for _, p := range got {
		suite.True(p.IsPredicted)
		suite.False(p.Date.Before(start))
		suite.False(p.Date.After(end))
	}
	suite.Equal(domain.Income, got[1].Type)
	suite.True(got[1].Amount.Equal(dec("100")))
}

func (suite *PredictionServiceTestSuite) TestGetPredictions_AnchorDateIsNeverPredicted() {
	wallets := []int64{1}
	anchorDate := day(2024, time.March, 10)

	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, (*int64)(nil)).Return(wallets, nil).Once()
	suite.txnRepo.On("FindOldestRecurringDate", mock.Anything, wallets).Return(&anchorDate, nil).Once()
	suite.txnRepo.On("ListRecurringAnchors", mock.Anything, wallets, mock.Anything, anchorDate).Return([]domain.Transaction{
		recurring(5, domain.Outcome, "9.99", anchorDate, domain.Monthly, nil),
	}, nil).Once()

	got, err := suite.service.GetPredictions(suite.ctx, testUserID, domain.PredictionQuery{
		StartDate: day(2024, time.March, 1),
		EndDate:   day(2024, time.May, 31),
	})

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(day(2024, time.April, 10), got[0].Date)
	suite.Equal(day(2024, time.May, 10), got[1].Date)
}

func (suite *PredictionServiceTestSuite) TestGetPredictions_NoRecurringTransactions() {
	wallets := []int64{1, 2}
	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, (*int64)(nil)).Return(wallets, nil).Once()
	suite.txnRepo.On("FindOldestRecurringDate", mock.Anything, wallets).Return(nil, nil).Once()

	got, err := suite.service.GetPredictions(suite.ctx, testUserID, domain.PredictionQuery{
		StartDate: day(2024, time.March, 1),
		EndDate:   day(2024, time.March, 31),
	})

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
	suite.txnRepo.AssertNotCalled(suite.T(), "ListRecurringAnchors", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PredictionServiceTestSuite) TestGetPredictions_NoReadableWallets() {
	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, (*int64)(nil)).Return([]int64{}, nil).Once()

	got, err := suite.service.GetPredictions(suite.ctx, testUserID, domain.PredictionQuery{
		StartDate: day(2024, time.March, 1),
		EndDate:   day(2024, time.March, 31),
	})

	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *PredictionServiceTestSuite) TestGetPredictions_MissingDates() {
	_, err := suite.service.GetPredictions(suite.ctx, testUserID, domain.PredictionQuery{EndDate: day(2024, time.March, 31)})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "startDate and endDate are required")
}

func (suite *PredictionServiceTestSuite) TestGetPredictions_ForbiddenWallet() {
	walletID := int64(8)
	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, &walletID).Return(nil, apperrors.ErrForbidden).Once()

	_, err := suite.service.GetPredictions(suite.ctx, testUserID, domain.PredictionQuery{
		WalletID:  &walletID,
		StartDate: day(2024, time.March, 1),
		EndDate:   day(2024, time.March, 31),
	})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PredictionServiceTestSuite) TestGetPredictions_StoreFailure() {
	wallets := []int64{1}
	storeErr := errors.New("db down")
	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, (*int64)(nil)).Return(wallets, nil).Once()
	suite.txnRepo.On("FindOldestRecurringDate", mock.Anything, wallets).Return(nil, storeErr).Once()

	got, err := suite.service.GetPredictions(suite.ctx, testUserID, domain.PredictionQuery{
		StartDate: day(2024, time.March, 1),
		EndDate:   day(2024, time.March, 31),
	})

	suite.Nil(got)
	suite.ErrorIs(err, storeErr)
}

func TestPredictionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PredictionServiceTestSuite))
}
