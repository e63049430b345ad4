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

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	reportingRepo *MockReportingRepository
	txnRepo       *MockTransactionRepository
	predictions   *MockPredictionService
	authorizer    *MockWalletAuthorizer
	service       portssvc.ReportingService

	wallets []int64
	start   *time.Time
	end     *time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.reportingRepo = new(MockReportingRepository)
	suite.txnRepo = new(MockTransactionRepository)
	suite.predictions = new(MockPredictionService)
	suite.authorizer = new(MockWalletAuthorizer)
	suite.service = services.NewReportingService(
		suite.reportingRepo,
		services.WithReportingWalletAuthorizer(suite.authorizer),
		services.WithPredictions(suite.txnRepo, suite.predictions),
	)

	suite.wallets = []int64{1, 2}
	suite.start = dayPtr(2024, time.March, 1)
	suite.end = dayPtr(2024, time.March, 31)
}

func (suite *ReportingServiceTestSuite) TearDownTest() {
	suite.reportingRepo.AssertExpectations(suite.T())
	suite.txnRepo.AssertExpectations(suite.T())
	suite.predictions.AssertExpectations(suite.T())
	suite.authorizer.AssertExpectations(suite.T())
}

// expectRealFigures wires period totals 500/200, cumulative totals 1500/700
// and an initial balance of 1000 across the wallets.
func (suite *ReportingServiceTestSuite) expectRealFigures() {
	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, (*int64)(nil)).Return(suite.wallets, nil).Once()
	suite.reportingRepo.On("GetTotals", mock.Anything, suite.wallets, suite.start, suite.end).
		Return(domain.Totals{Income: dec("500"), Outcome: dec("200")}, nil).Once()
	suite.reportingRepo.On("GetTotals", mock.Anything, suite.wallets, (*time.Time)(nil), suite.end).
		Return(domain.Totals{Income: dec("1500"), Outcome: dec("700")}, nil).Once()
	suite.reportingRepo.On("GetInitialBalanceTotal", mock.Anything, suite.wallets).Return(dec("1000"), nil).Once()
	suite.reportingRepo.On("GetMonthlyTotals", mock.Anything, suite.wallets, suite.start, suite.end).Return([]domain.MonthlyStat{
		{Month: "2024-03", Income: dec("500"), Outcome: dec("200"), Balance: dec("300")},
	}, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestGetStats_RealTransactionsOnly() {
	suite.expectRealFigures()

	stats, err := suite.service.GetStats(suite.ctx, testUserID, domain.StatsQuery{StartDate: suite.start, EndDate: suite.end})

	suite.Require().NoError(err)
	suite.True(stats.TotalIncome.Equal(dec("500")))
	suite.True(stats.TotalOutcome.Equal(dec("200")))
	suite.True(stats.Balance.Equal(dec("1800")), "initial 1000 + 1500 - 700, got %s", stats.Balance)
	suite.Require().Len(stats.MonthlyData, 1)
	suite.Equal("2024-03", stats.MonthlyData[0].Month)
	suite.True(stats.MonthlyData[0].CumulativeBalance.IsZero())
	suite.True(stats.MonthlyData[0].PredictedIncome.IsZero())
	suite.True(stats.MonthlyData[0].PredictedOutcome.IsZero())
	suite.predictions.AssertNotCalled(suite.T(), "GetPredictions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetStats_PredictionWindowsDiffer() {
	suite.expectRealFigures()
	oldest := day(2024, time.January, 15)
	suite.txnRepo.On("FindOldestRecurringDate", mock.Anything, suite.wallets).Return(&oldest, nil).Once()

	// Since inception: two salaries and one subscription.
	suite.predictions.On("GetPredictions", mock.Anything, testUserID, mock.MatchedBy(func(q domain.PredictionQuery) bool {
		return q.StartDate.Equal(oldest) && q.EndDate.Equal(*suite.end)
	})).Return([]domain.PredictedOccurrence{
		occurrence(1, domain.Income, "100", day(2024, time.February, 15)),
		occurrence(2, domain.Outcome, "20", day(2024, time.March, 8)),
		occurrence(1, domain.Income, "100", day(2024, time.March, 15)),
	}, nil).Once()
	// Displayed period only.
	suite.predictions.On("GetPredictions", mock.Anything, testUserID, mock.MatchedBy(func(q domain.PredictionQuery) bool {
		return q.StartDate.Equal(*suite.start) && q.EndDate.Equal(*suite.end)
	})).Return([]domain.PredictedOccurrence{
		occurrence(2, domain.Outcome, "20", day(2024, time.March, 8)),
		occurrence(1, domain.Income, "100", day(2024, time.March, 15)),
	}, nil).Once()

	stats, err := suite.service.GetStats(suite.ctx, testUserID, domain.StatsQuery{
		StartDate:          suite.start,
		EndDate:            suite.end,
		IncludePredictions: true,
	})

	suite.Require().NoError(err)
	suite.True(stats.TotalIncome.Equal(dec("600")), "got %s", stats.TotalIncome)
	suite.True(stats.TotalOutcome.Equal(dec("220")), "got %s", stats.TotalOutcome)
	suite.True(stats.Balance.Equal(dec("1980")), "1800 + 100 + 100 - 20, got %s", stats.Balance)
}

func (suite *ReportingServiceTestSuite) TestGetStats_PredictionFailureDegrades() {
	suite.expectRealFigures()
	oldest := day(2024, time.January, 15)
	suite.txnRepo.On("FindOldestRecurringDate", mock.Anything, suite.wallets).Return(&oldest, nil).Once()
	suite.predictions.On("GetPredictions", mock.Anything, testUserID, mock.AnythingOfType("domain.PredictionQuery")).
		Return(nil, errors.New("projection exploded")).Once()

	stats, err := suite.service.GetStats(suite.ctx, testUserID, domain.StatsQuery{
		StartDate:          suite.start,
		EndDate:            suite.end,
		IncludePredictions: true,
	})

	suite.Require().NoError(err)
	suite.True(stats.TotalIncome.Equal(dec("500")))
	suite.True(stats.TotalOutcome.Equal(dec("200")))
	suite.True(stats.Balance.Equal(dec("1800")))
}

func (suite *ReportingServiceTestSuite) TestGetStats_NoRecurringTransactionsSkipsFoldIn() {
	suite.expectRealFigures()
	suite.txnRepo.On("FindOldestRecurringDate", mock.Anything, suite.wallets).Return(nil, nil).Once()

	stats, err := suite.service.GetStats(suite.ctx, testUserID, domain.StatsQuery{
		StartDate:          suite.start,
		EndDate:            suite.end,
		IncludePredictions: true,
	})

	suite.Require().NoError(err)
	suite.True(stats.Balance.Equal(dec("1800")))
	suite.predictions.AssertNotCalled(suite.T(), "GetPredictions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetStats_WithoutEndDateIgnoresPredictions() {
	noDate := (*time.Time)(nil)
	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, (*int64)(nil)).Return(suite.wallets, nil).Once()
	// Period and cumulative totals both cover everything.
	suite.reportingRepo.On("GetTotals", mock.Anything, suite.wallets, noDate, noDate).
		Return(domain.Totals{Income: dec("1500"), Outcome: dec("700")}, nil).Twice()
	suite.reportingRepo.On("GetInitialBalanceTotal", mock.Anything, suite.wallets).Return(dec("0"), nil).Once()
	suite.reportingRepo.On("GetMonthlyTotals", mock.Anything, suite.wallets, suite.start, noDate).Return(nil, nil).Once()

	stats, err := suite.service.GetStats(suite.ctx, testUserID, domain.StatsQuery{
		StartDate:          suite.start,
		IncludePredictions: true,
	})

	suite.Require().NoError(err)
	suite.True(stats.TotalIncome.Equal(dec("1500")))
	suite.True(stats.Balance.Equal(dec("800")))
	suite.NotNil(stats.MonthlyData)
	suite.Empty(stats.MonthlyData)
	suite.txnRepo.AssertNotCalled(suite.T(), "FindOldestRecurringDate", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetStats_InvertedWindow() {
	_, err := suite.service.GetStats(suite.ctx, testUserID, domain.StatsQuery{StartDate: suite.end, EndDate: suite.start})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestGetStats_TotalsFailure() {
	storeErr := errors.New("db down")
	suite.authorizer.On("ResolveReadableWallets", mock.Anything, testUserID, (*int64)(nil)).Return(suite.wallets, nil).Once()
	suite.reportingRepo.On("GetTotals", mock.Anything, suite.wallets, suite.start, suite.end).
		Return(domain.Totals{}, storeErr).Once()

	_, err := suite.service.GetStats(suite.ctx, testUserID, domain.StatsQuery{StartDate: suite.start, EndDate: suite.end})

	suite.ErrorIs(err, storeErr)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
