package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

type WalletHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockWalletService *MockWalletService
}

func (suite *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testJWTSecret))

	suite.mockWalletService = new(MockWalletService)
	handlers.RegisterWalletRoutes(suite.router.Group("/api"), suite.mockWalletService)
}

func (suite *WalletHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
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

func (suite *WalletHandlerTestSuite) TestAdjustBalance_CreatesTransaction() {
	today := domain.DateOf(time.Now())
	description := domain.AdjustmentDescription(decimal.NewFromInt(50))
	adjustment := &domain.BalanceAdjustment{
		PreviousBalance:    decimal.NewFromInt(100),
		NewBalance:         decimal.NewFromInt(150),
		Difference:         decimal.NewFromInt(50),
		TransactionCreated: true,
		Transaction: &domain.Transaction{
			TransactionID: 42,
			WalletID:      5,
			Type:          domain.Income,
			Amount:        decimal.NewFromInt(50),
			Description:   &description,
			Date:          today,
		},
	}
	suite.mockWalletService.On("AdjustBalance", mock.Anything, "user-1", int64(5),
		mock.MatchedBy(func(cmd domain.AdjustBalanceCommand) bool {
			return cmd.NewBalance.Equal(decimal.NewFromInt(150)) &&
				cmd.CurrentBalance == nil &&
				cmd.Date != nil && cmd.Date.Equal(today)
		}),
	).Return(adjustment, nil).Once()

	body := fmt.Sprintf(`{"newBalance": 150, "date": %q}`, domain.FormatDate(today))
	w := suite.do(http.MethodPost, "/api/wallets/5/adjust", body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AdjustBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.TransactionCreated)
	suite.True(decimal.NewFromInt(50).Equal(resp.Difference))
	suite.Require().NotNil(resp.Transaction)
	suite.Equal(int64(42), resp.Transaction.TransactionID)
	suite.Equal("Balance adjustment: +50.00", resp.Message)
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestAdjustBalance_NothingToDo() {
	current := decimal.RequireFromString("99.995")
	suite.mockWalletService.On("AdjustBalance", mock.Anything, "user-1", int64(5),
		mock.MatchedBy(func(cmd domain.AdjustBalanceCommand) bool {
			return cmd.CurrentBalance != nil && cmd.CurrentBalance.Equal(current) && cmd.Date == nil
		}),
	).Return(&domain.BalanceAdjustment{
		PreviousBalance: current,
		NewBalance:      decimal.NewFromInt(100),
		Difference:      decimal.RequireFromString("0.005"),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/wallets/5/adjust", `{"newBalance": "100", "currentBalance": "99.995"}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AdjustBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.TransactionCreated)
	suite.Nil(resp.Transaction)
}

func (suite *WalletHandlerTestSuite) TestAdjustBalance_InvalidBodies() {
	for _, body := range []string{
		`{}`,
		`{"newBalance": "abc"}`,
		`{"newBalance": 10, "date": "15/06/2024"}`,
		`not json`,
	} {
		w := suite.do(http.MethodPost, "/api/wallets/5/adjust", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.mockWalletService.AssertNotCalled(suite.T(), "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletHandlerTestSuite) TestAdjustBalance_ServiceErrors() {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"date not today", fmt.Errorf("%w: adjustment date must be today (2024-06-15)", apperrors.ErrValidation), http.StatusBadRequest},
		{"read-only share", fmt.Errorf("%w: write access to wallet 5 required", apperrors.ErrForbidden), http.StatusForbidden},
		{"missing wallet", fmt.Errorf("wallet 5: %w", apperrors.ErrNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockWalletService.On("AdjustBalance", mock.Anything, "user-1", int64(5), mock.Anything).
				Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/wallets/5/adjust", `{"newBalance": 10}`)

			suite.Equal(tc.code, w.Code)
		})
	}
}

func (suite *WalletHandlerTestSuite) TestAdjustBalance_InvalidWalletID() {
	w := suite.do(http.MethodPost, "/api/wallets/abc/adjust", `{"newBalance": 10}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Invalid wallet ID"}`, w.Body.String())
}

func (suite *WalletHandlerTestSuite) TestGetBalance() {
	suite.mockWalletService.On("GetBalance", mock.Anything, "user-1", int64(5)).Return(&domain.WalletBalance{
		WalletID:          5,
		CurrentBalance:    decimal.NewFromInt(1200),
		InitialBalance:    decimal.NewFromInt(1000),
		TransactionsTotal: decimal.NewFromInt(200),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/wallets/5/adjust", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WalletBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(5), resp.WalletID)
	suite.True(decimal.NewFromInt(1200).Equal(resp.CurrentBalance))
}

func (suite *WalletHandlerTestSuite) TestCreateWallet() {
	req := dto.CreateWalletRequest{Name: "Main", InitialBalance: decimal.NewFromInt(1000), CurrencyCode: "EUR"}
	suite.mockWalletService.On("CreateWallet", mock.Anything, "user-1", mock.MatchedBy(func(r dto.CreateWalletRequest) bool {
		return r.Name == req.Name && r.InitialBalance.Equal(req.InitialBalance) && r.CurrencyCode == "EUR"
	})).Return(&domain.Wallet{WalletID: 8, OwnerID: "user-1", Name: "Main", InitialBalance: decimal.NewFromInt(1000), CurrencyCode: "EUR"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/wallets", `{"name":"Main","initialBalance":1000,"currencyCode":"EUR"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(8), resp.WalletID)
	suite.Equal(domain.PermissionAdmin, resp.Permission)
}

func (suite *WalletHandlerTestSuite) TestListWallets() {
	suite.mockWalletService.On("ListWallets", mock.Anything, "user-1").Return([]domain.WalletAccess{
		{Wallet: domain.Wallet{WalletID: 1, Name: "Own"}, Permission: domain.PermissionAdmin},
		{Wallet: domain.Wallet{WalletID: 2, Name: "Shared"}, Permission: domain.PermissionRead},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/wallets", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal(domain.PermissionRead, resp[1].Permission)
}

func (suite *WalletHandlerTestSuite) TestGetWallet_Forbidden() {
	suite.mockWalletService.On("GetWallet", mock.Anything, "user-1", int64(3)).
		Return(nil, fmt.Errorf("%w: read access to wallet 3 required", apperrors.ErrForbidden)).Once()

	w := suite.do(http.MethodGet, "/api/wallets/3", "")

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestWalletHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}
