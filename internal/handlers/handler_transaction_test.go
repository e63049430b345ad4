package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
	"github.com/ThibautWa/grigou-sub000/internal/handlers"
	"github.com/ThibautWa/grigou-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	mockCategoryService    *MockCategoryService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testJWTSecret))

	suite.mockTransactionService = new(MockTransactionService)
	suite.mockCategoryService = new(MockCategoryService)
	api := suite.router.Group("/api")
	handlers.RegisterTransactionRoutes(api, suite.mockTransactionService)
	handlers.RegisterCategoryRoutes(api, suite.mockCategoryService)
}

func (suite *TransactionHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+generateTestToken("user-1"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Recurring() {
	monthly := domain.Monthly
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, "user-1", mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
		return r.WalletID == 3 && r.IsRecurring && r.RecurrenceType != nil && *r.RecurrenceType == domain.Monthly
	})).Return(&domain.Transaction{
		TransactionID:  11,
		WalletID:       3,
		Type:           domain.Outcome,
		Amount:         decimal.NewFromInt(800),
		Date:           day(2024, 1, 31),
		IsRecurring:    true,
		RecurrenceType: &monthly,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/transactions",
		`{"walletId":3,"type":"outcome","amount":800,"date":"2024-01-31","isRecurring":true,"recurrenceType":"monthly"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(11), resp.TransactionID)
	suite.Equal("2024-01-31", resp.Date)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_InvalidBodies() {
	for _, body := range []string{
		`{"walletId":3,"type":"transfer","amount":1,"date":"2024-01-31"}`,
		`{"walletId":3,"type":"income","amount":1,"date":"2024-02-30"}`,
		`{"walletId":3,"type":"income","amount":1,"date":"2024-01-31","isRecurring":true,"recurrenceType":"hourly"}`,
		`{"type":"income","amount":1,"date":"2024-01-31"}`,
	} {
		w := suite.do(http.MethodPost, "/api/transactions", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.mockTransactionService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_DefaultLimit() {
	next := "MjAyNC0wMS0zMXwxMQ=="
	suite.mockTransactionService.On("ListTransactions", mock.Anything, "user-1", mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 50 && p.WalletID != nil && *p.WalletID == 3
	})).Return(&dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{{TransactionID: 11}},
		NextToken:    &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/transactions?walletId=3", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_NotFound() {
	suite.mockTransactionService.On("UpdateTransaction", mock.Anything, "user-1", int64(77), mock.Anything).
		Return(nil, fmt.Errorf("transaction 77: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodPatch, "/api/transactions/77", `{"amount": 12.5}`)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction() {
	suite.mockTransactionService.On("DeleteTransaction", mock.Anything, "user-1", int64(11)).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/transactions/11", "")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_InvalidID() {
	w := suite.do(http.MethodDelete, "/api/transactions/0", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Invalid transaction ID"}`, w.Body.String())
}

func (suite *TransactionHandlerTestSuite) TestListCategories() {
	color := "#22c55e"
	suite.mockCategoryService.On("ListCategories", mock.Anything, "user-1").Return([]domain.Category{
		{CategoryID: 1, Name: domain.AdjustmentCategoryName, Type: domain.CategoryBoth, IsSystem: true},
		{CategoryID: 9, Name: "Salary", Type: domain.CategoryIncome, Color: &color},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/categories", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CategoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.True(resp[0].IsSystem)
}

func (suite *TransactionHandlerTestSuite) TestCreateCategory_Duplicate() {
	suite.mockCategoryService.On("CreateCategory", mock.Anything, "user-1", mock.Anything).
		Return(nil, fmt.Errorf("category: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/categories", `{"name":"Salary","type":"income"}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
