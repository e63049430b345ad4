package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
)

const defaultCurrencyCode = "EUR"

// walletService implements the WalletSvcFacade interface
type walletService struct {
	BaseService
	walletRepo    portsrepo.WalletRepositoryWithTx
	txnRepo       portsrepo.TransactionRepositoryFacade
	categoryRepo  portsrepo.CategoryRepository
	reportingRepo portsrepo.ReportingRepository
	now           func() time.Time
}

// WalletServiceOption is a functional option for configuring the wallet service
type WalletServiceOption func(*walletService)

// WithClock replaces the clock used to decide what "today" is.
func WithClock(now func() time.Time) WalletServiceOption {
	return func(s *walletService) {
		s.now = now
	}
}

// NewWalletService creates a new wallet service. It is its own wallet authorizer.
func NewWalletService(
	walletRepo portsrepo.WalletRepositoryWithTx,
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryRepository,
	reportingRepo portsrepo.ReportingRepository,
	options ...WalletServiceOption,
) portssvc.WalletSvcFacade {
	svc := &walletService{
		walletRepo:    walletRepo,
		txnRepo:       txnRepo,
		categoryRepo:  categoryRepo,
		reportingRepo: reportingRepo,
		now:           time.Now,
	}
	svc.WalletAuthorizer = svc
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// permissionFor returns the user's permission after checking it covers required.
func (s *walletService) permissionFor(ctx context.Context, userID string, walletID int64, required domain.WalletPermission) (domain.WalletPermission, error) {
	permission, err := s.walletRepo.FindWalletPermission(ctx, userID, walletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.PermissionNone, fmt.Errorf("wallet %d: %w", walletID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to look up wallet permission",
			slog.String("user_id", userID),
			slog.Int64("wallet_id", walletID))
		return domain.PermissionNone, err
	}
	if !permission.Allows(required) {
		s.LogDebug(ctx, "Wallet permission insufficient",
			slog.String("user_id", userID),
			slog.Int64("wallet_id", walletID),
			slog.String("held", string(permission)),
			slog.String("required", string(required)))
		return permission, fmt.Errorf("%w: %s access to wallet %d required", apperrors.ErrForbidden, required, walletID)
	}
	return permission, nil
}

// AuthorizeWalletAction checks the user's permission on the wallet.
func (s *walletService) AuthorizeWalletAction(ctx context.Context, userID string, walletID int64, required domain.WalletPermission) error {
	_, err := s.permissionFor(ctx, userID, walletID, required)
	return err
}

// ResolveReadableWallets returns the single requested wallet after a read
// check, or every wallet the user can read.
func (s *walletService) ResolveReadableWallets(ctx context.Context, userID string, walletID *int64) ([]int64, error) {
	if walletID != nil {
		if err := s.AuthorizeWalletAction(ctx, userID, *walletID, domain.PermissionRead); err != nil {
			return nil, err
		}
		return []int64{*walletID}, nil
	}

	wallets, err := s.walletRepo.ListAccessibleWallets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accessible wallets", slog.String("user_id", userID))
		return nil, err
	}
	ids := make([]int64, 0, len(wallets))
	for _, w := range wallets {
		if w.Permission.Allows(domain.PermissionRead) {
			ids = append(ids, w.WalletID)
		}
	}
	return ids, nil
}

func (s *walletService) GetWallet(ctx context.Context, userID string, walletID int64) (*domain.WalletAccess, error) {
	permission, err := s.permissionFor(ctx, userID, walletID, domain.PermissionRead)
	if err != nil {
		return nil, err
	}
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find wallet", slog.Int64("wallet_id", walletID))
		}
		return nil, err
	}
	return &domain.WalletAccess{Wallet: *wallet, Permission: permission}, nil
}

func (s *walletService) ListWallets(ctx context.Context, userID string) ([]domain.WalletAccess, error) {
	wallets, err := s.walletRepo.ListAccessibleWallets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallets", slog.String("user_id", userID))
		return nil, err
	}
	if wallets == nil {
		return []domain.WalletAccess{}, nil
	}
	return wallets, nil
}

func (s *walletService) CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", apperrors.ErrValidation)
	}
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = defaultCurrencyCode
	}

	wallet, err := s.walletRepo.SaveWallet(ctx, domain.Wallet{
		OwnerID:        userID,
		Name:           name,
		Description:    req.Description,
		InitialBalance: req.InitialBalance,
		CurrencyCode:   currency,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save wallet", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Wallet created successfully",
		slog.Int64("wallet_id", wallet.WalletID),
		slog.String("owner_id", userID))
	return wallet, nil
}

// GetBalance computes initial balance plus every real transaction of the wallet.
func (s *walletService) GetBalance(ctx context.Context, userID string, walletID int64) (*domain.WalletBalance, error) {
	if err := s.AuthorizeWalletAction(ctx, userID, walletID, domain.PermissionRead); err != nil {
		return nil, err
	}
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	totals, err := s.reportingRepo.GetTotals(ctx, []int64{walletID}, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to total wallet transactions", slog.Int64("wallet_id", walletID))
		return nil, err
	}

	net := totals.Net()
	return &domain.WalletBalance{
		WalletID:          walletID,
		CurrentBalance:    wallet.InitialBalance.Add(net),
		InitialBalance:    wallet.InitialBalance,
		TransactionsTotal: net,
	}, nil
}

// AdjustBalance records the corrective transaction inside one database
// transaction holding the wallet row lock.
func (s *walletService) AdjustBalance(ctx context.Context, userID string, walletID int64, cmd domain.AdjustBalanceCommand) (*domain.BalanceAdjustment, error) {
	if err := s.AuthorizeWalletAction(ctx, userID, walletID, domain.PermissionWrite); err != nil {
		return nil, err
	}

	today := domain.DateOf(s.now())
	if cmd.Date != nil && !domain.DateOf(*cmd.Date).Equal(today) {
		return nil, fmt.Errorf("%w: adjustment date must be today (%s)", apperrors.ErrValidation, domain.FormatDate(today))
	}

	tx, err := s.walletRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin adjustment transaction", slog.Int64("wallet_id", walletID))
		return nil, err
	}
	defer func() {
		if rbErr := s.walletRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back adjustment transaction", slog.Int64("wallet_id", walletID))
		}
	}()

	wallet, err := s.walletRepo.FindWalletByIDForUpdate(ctx, tx, walletID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock wallet", slog.Int64("wallet_id", walletID))
		}
		return nil, err
	}

	current := wallet.InitialBalance
	if cmd.CurrentBalance != nil {
		current = *cmd.CurrentBalance
	} else {
		totals, err := s.txnRepo.SumWalletTransactionsInTx(ctx, tx, walletID)
		if err != nil {
			s.LogError(ctx, err, "Failed to total wallet transactions", slog.Int64("wallet_id", walletID))
			return nil, err
		}
		current = current.Add(totals.Net())
	}

	result := &domain.BalanceAdjustment{
		PreviousBalance: current,
		NewBalance:      cmd.NewBalance,
		Difference:      cmd.NewBalance.Sub(current),
	}
	if !result.NeedsTransaction() {
		s.LogDebug(ctx, "Balance already matches, no adjustment recorded",
			slog.Int64("wallet_id", walletID),
			slog.String("difference", result.Difference.String()))
		return result, nil
	}

	category, err := s.categoryRepo.FindOrCreateSystemCategoryInTx(ctx, tx, domain.AdjustmentCategoryName, domain.CategoryBoth)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve adjustment category", slog.Int64("wallet_id", walletID))
		return nil, err
	}

	txnType := domain.Income
	if result.Difference.IsNegative() {
		txnType = domain.Outcome
	}
	description := domain.AdjustmentDescription(result.Difference)
	saved, err := s.txnRepo.SaveTransactionInTx(ctx, tx, domain.Transaction{
		WalletID:    walletID,
		Type:        txnType,
		Amount:      result.Difference.Abs(),
		Description: &description,
		CategoryID:  &category.CategoryID,
		Date:        today,
		CreatedBy:   userID,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to insert adjustment transaction", slog.Int64("wallet_id", walletID))
		return nil, err
	}
	saved.CategoryName = &category.Name
	saved.CategoryColor = category.Color

	if err := s.walletRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit adjustment", slog.Int64("wallet_id", walletID))
		return nil, err
	}

	result.TransactionCreated = true
	result.Transaction = saved
	s.LogInfo(ctx, "Wallet balance adjusted",
		slog.Int64("wallet_id", walletID),
		slog.Int64("transaction_id", saved.TransactionID),
		slog.String("difference", result.Difference.String()))
	return result, nil
}
