package services_test

import (
	"context"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a pgx transaction; the mocks never call into it.
type fakeTx struct {
	pgx.Tx
}

// --- Wallet repository ---

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletPermission(ctx context.Context, userID string, walletID int64) (domain.WalletPermission, error) {
	args := m.Called(ctx, userID, walletID)
	return args.Get(0).(domain.WalletPermission), args.Error(1)
}

func (m *MockWalletRepository) ListAccessibleWallets(ctx context.Context, userID string) ([]domain.WalletAccess, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletAccess), args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByIDForUpdate(ctx context.Context, tx pgx.Tx, walletID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, tx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockWalletRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

var _ portsrepo.WalletRepositoryWithTx = (*MockWalletRepository)(nil)

// --- Transaction repository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionRepository) FindOldestRecurringDate(ctx context.Context, walletIDs []int64) (*time.Time, error) {
	args := m.Called(ctx, walletIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockTransactionRepository) ListRecurringAnchors(ctx context.Context, walletIDs []int64, endDate, activeSince time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, walletIDs, endDate, activeSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, transaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, transaction domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, transaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumWalletTransactionsInTx(ctx context.Context, tx pgx.Tx, walletID int64) (domain.Totals, error) {
	args := m.Called(ctx, tx, walletID)
	return args.Get(0).(domain.Totals), args.Error(1)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Category repository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindOrCreateSystemCategoryInTx(ctx context.Context, tx pgx.Tx, name string, categoryType domain.CategoryType) (*domain.Category, error) {
	args := m.Called(ctx, tx, name, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

var _ portsrepo.CategoryRepository = (*MockCategoryRepository)(nil)

// --- Reporting repository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetTotals(ctx context.Context, walletIDs []int64, from, to *time.Time) (domain.Totals, error) {
	args := m.Called(ctx, walletIDs, from, to)
	return args.Get(0).(domain.Totals), args.Error(1)
}

func (m *MockReportingRepository) GetInitialBalanceTotal(ctx context.Context, walletIDs []int64) (decimal.Decimal, error) {
	args := m.Called(ctx, walletIDs)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyTotals(ctx context.Context, walletIDs []int64, from, to *time.Time) ([]domain.MonthlyStat, error) {
	args := m.Called(ctx, walletIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyStat), args.Error(1)
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

// --- Services ---

type MockWalletAuthorizer struct {
	mock.Mock
}

func (m *MockWalletAuthorizer) AuthorizeWalletAction(ctx context.Context, userID string, walletID int64, required domain.WalletPermission) error {
	args := m.Called(ctx, userID, walletID, required)
	return args.Error(0)
}

func (m *MockWalletAuthorizer) ResolveReadableWallets(ctx context.Context, userID string, walletID *int64) ([]int64, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) GetPredictions(ctx context.Context, userID string, q domain.PredictionQuery) ([]domain.PredictedOccurrence, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PredictedOccurrence), args.Error(1)
}

// --- Helpers ---

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEq(want string) func(decimal.Decimal) bool {
	return func(got decimal.Decimal) bool { return got.Equal(dec(want)) }
}

func strPtr(s string) *string { return &s }

func recurring(id int64, txnType domain.TransactionType, amount string, date time.Time, freq domain.RecurrenceType, end *time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID:     id,
		WalletID:          1,
		Type:              txnType,
		Amount:            dec(amount),
		Date:              date,
		IsRecurring:       true,
		RecurrenceType:    &freq,
		RecurrenceEndDate: end,
	}
}

func occurrence(sourceID int64, txnType domain.TransactionType, amount string, date time.Time) domain.PredictedOccurrence {
	return domain.PredictedOccurrence{
		ID:                  domain.OccurrenceID(sourceID, date),
		SourceTransactionID: sourceID,
		WalletID:            1,
		Type:                txnType,
		Amount:              dec(amount),
		Date:                date,
		IsPredicted:         true,
	}
}
