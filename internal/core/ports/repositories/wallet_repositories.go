package repositories

import (
	"context"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a wallet by its identifier.
	FindWalletByID(ctx context.Context, walletID int64) (*domain.Wallet, error)

	// FindWalletPermission returns the permission userID holds on walletID.
	// Owners hold admin. Returns apperrors.ErrNotFound when the wallet does not
	// exist and domain.PermissionNone when it exists but is not shared with the user.
	FindWalletPermission(ctx context.Context, userID string, walletID int64) (domain.WalletPermission, error)

	// ListAccessibleWallets lists every wallet the user owns or has been shared.
	ListAccessibleWallets(ctx context.Context, userID string) ([]domain.WalletAccess, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet inserts a wallet and returns it with its generated ID.
	SaveWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error)
}

// WalletTxSupport defines operations that run inside a caller owned transaction.
type WalletTxSupport interface {
	// FindWalletByIDForUpdate selects the wallet row and locks it until tx ends.
	FindWalletByIDForUpdate(ctx context.Context, tx pgx.Tx, walletID int64) (*domain.Wallet, error)
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTxSupport
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
