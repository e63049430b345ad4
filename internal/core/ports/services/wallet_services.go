package services

import (
	"context"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
)

// WalletReaderSvc defines read operations for wallet data
type WalletReaderSvc interface {
	// GetWallet retrieves a wallet the user can read, with the user's permission.
	GetWallet(ctx context.Context, userID string, walletID int64) (*domain.WalletAccess, error)

	// ListWallets lists the wallets the user owns or has been shared.
	ListWallets(ctx context.Context, userID string) ([]domain.WalletAccess, error)
}

// WalletWriterSvc defines write operations for wallet data
type WalletWriterSvc interface {
	// CreateWallet creates a wallet owned by the user.
	CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error)
}

// WalletAuthorizerSvc answers canRead/canWrite/canAdmin questions about wallets.
type WalletAuthorizerSvc interface {
	// AuthorizeWalletAction returns apperrors.ErrNotFound when the wallet does not
	// exist and apperrors.ErrForbidden when the user's permission is insufficient.
	AuthorizeWalletAction(ctx context.Context, userID string, walletID int64, required domain.WalletPermission) error

	// ResolveReadableWallets returns the wallet scope of a read request: the
	// given wallet after a read check, or every wallet the user can read.
	ResolveReadableWallets(ctx context.Context, userID string, walletID *int64) ([]int64, error)
}

// WalletBalanceSvc defines the balance probe and reconciliation operations
type WalletBalanceSvc interface {
	// GetBalance computes initial balance plus every real transaction.
	GetBalance(ctx context.Context, userID string, walletID int64) (*domain.WalletBalance, error)

	// AdjustBalance records one corrective transaction so the wallet balance
	// matches the declared one.
	AdjustBalance(ctx context.Context, userID string, walletID int64, cmd domain.AdjustBalanceCommand) (*domain.BalanceAdjustment, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
	WalletAuthorizerSvc
	WalletBalanceSvc
}
