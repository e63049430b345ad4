package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	"github.com/ThibautWa/grigou-sub000/internal/models"
	"github.com/ThibautWa/grigou-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const walletColumns = `w.id, w.owner_id, w.name, w.description, w.initial_balance, w.currency_code, w.created_at, w.updated_at`

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryWithTx {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryWithTx = (*PgxWalletRepository)(nil)

func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID int64) (*domain.Wallet, error) {
	return r.findWallet(ctx, r.Pool, `SELECT `+walletColumns+` FROM wallets w WHERE w.id = $1`, walletID)
}

func (r *PgxWalletRepository) FindWalletByIDForUpdate(ctx context.Context, tx pgx.Tx, walletID int64) (*domain.Wallet, error) {
	return r.findWallet(ctx, tx, `SELECT `+walletColumns+` FROM wallets w WHERE w.id = $1 FOR UPDATE`, walletID)
}

func (r *PgxWalletRepository) findWallet(ctx context.Context, q querier, query string, walletID int64) (*domain.Wallet, error) {
	rows, err := q.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet %d: %w", walletID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Wallet])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan wallet %d: %w", walletID, err)
	}
	d := mapping.ToDomainWallet(m)
	return &d, nil
}

func (r *PgxWalletRepository) FindWalletPermission(ctx context.Context, userID string, walletID int64) (domain.WalletPermission, error) {
	query := `
		SELECT CASE WHEN w.owner_id = $1 THEN 'admin' ELSE COALESCE(s.permission, '') END
		FROM wallets w
		LEFT JOIN wallet_shares s ON s.wallet_id = w.id AND s.user_id = $1
		WHERE w.id = $2;
	`
	var permission string
	if err := r.Pool.QueryRow(ctx, query, userID, walletID).Scan(&permission); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PermissionNone, apperrors.ErrNotFound
		}
		return domain.PermissionNone, fmt.Errorf("failed to query permission on wallet %d: %w", walletID, err)
	}
	return domain.WalletPermission(permission), nil
}

func (r *PgxWalletRepository) ListAccessibleWallets(ctx context.Context, userID string) ([]domain.WalletAccess, error) {
	query := `
		SELECT ` + walletColumns + `,
		       CASE WHEN w.owner_id = $1 THEN 'admin' ELSE s.permission END AS permission
		FROM wallets w
		LEFT JOIN wallet_shares s ON s.wallet_id = w.id AND s.user_id = $1
		WHERE w.owner_id = $1 OR s.user_id IS NOT NULL
		ORDER BY w.name, w.id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets for user %s: %w", userID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WalletAccess])
	if err != nil {
		return nil, fmt.Errorf("failed to scan wallets: %w", err)
	}

	wallets := make([]domain.WalletAccess, len(ms))
	for i, m := range ms {
		wallets[i] = mapping.ToDomainWalletAccess(m)
	}
	return wallets, nil
}

func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	m := mapping.ToModelWallet(wallet)
	query := `
		INSERT INTO wallets (owner_id, name, description, initial_balance, currency_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at;
	`
	err := r.Pool.QueryRow(ctx, query, m.OwnerID, m.Name, m.Description, m.InitialBalance, m.CurrencyCode).
		Scan(&m.WalletID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, translatePgError(fmt.Errorf("failed to insert wallet: %w", err), "wallet")
	}
	d := mapping.ToDomainWallet(m)
	return &d, nil
}
