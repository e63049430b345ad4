package repositories

import (
	"context"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionListFilter narrows ListTransactions. Nil dates are unbounded.
type TransactionListFilter struct {
	WalletIDs []int64
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	NextToken *string
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction with its category labels.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves transactions newest first using token based pagination.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, filter TransactionListFilter) ([]domain.Transaction, *string, error)
}

// RecurringTransactionReader exposes the anchors the projection engine reads.
type RecurringTransactionReader interface {
	// FindOldestRecurringDate returns the earliest date of any recurring
	// transaction in the given wallets, or nil when there is none.
	FindOldestRecurringDate(ctx context.Context, walletIDs []int64) (*time.Time, error)

	// ListRecurringAnchors returns the recurring transactions dated on or before
	// endDate whose recurrence has not ended before activeSince.
	ListRecurringAnchors(ctx context.Context, walletIDs []int64, endDate, activeSince time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction inserts a transaction and returns it with its generated ID.
	SaveTransaction(ctx context.Context, transaction domain.Transaction) (*domain.Transaction, error)

	// UpdateTransaction overwrites the mutable fields of a transaction.
	UpdateTransaction(ctx context.Context, transaction domain.Transaction) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID int64) error
}

// TransactionTxSupport defines operations that run inside a caller owned transaction.
type TransactionTxSupport interface {
	// SaveTransactionInTx inserts a transaction within tx.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, transaction domain.Transaction) (*domain.Transaction, error)

	// SumWalletTransactionsInTx totals every real transaction of a wallet within tx.
	SumWalletTransactionsInTx(ctx context.Context, tx pgx.Tx, walletID int64) (domain.Totals, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	RecurringTransactionReader
	TransactionWriter
	TransactionTxSupport
}
