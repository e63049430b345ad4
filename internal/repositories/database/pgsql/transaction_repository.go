package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	"github.com/ThibautWa/grigou-sub000/internal/models"
	"github.com/ThibautWa/grigou-sub000/internal/utils/mapping"
	"github.com/ThibautWa/grigou-sub000/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionSelect = `
	SELECT t.id, t.wallet_id, t.type, t.amount, t.description, t.category_id,
	       c.name AS category_name, c.color AS category_color,
	       t.date, t.is_recurring, t.recurrence_type, t.recurrence_end_date,
	       t.created_by, t.created_at, t.updated_at
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, transactionSelect+` WHERE t.id = $1`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", transactionID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction %d: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactions pages newest first on the (date, id) key.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, *string, error) {
	if len(filter.WalletIDs) == 0 {
		return []domain.Transaction{}, nil, nil
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var afterDate *time.Time
	var afterID int64
	if filter.NextToken != nil && *filter.NextToken != "" {
		date, id, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, err.Error(), apperrors.ErrValidation)
		}
		afterDate, afterID = &date, id
	}

	query := transactionSelect + `
	WHERE t.wallet_id = ANY($1)
	  AND ($2::date IS NULL OR t.date >= $2)
	  AND ($3::date IS NULL OR t.date <= $3)
	  AND ($4::date IS NULL OR (t.date, t.id) < ($4::date, $5::bigint))
	ORDER BY t.date DESC, t.id DESC
	LIMIT $6`

	rows, err := r.Pool.Query(ctx, query, filter.WalletIDs, filter.StartDate, filter.EndDate, afterDate, afterID, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	var nextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.Date, last.TransactionID)
		nextToken = &token
	}
	return mapping.ToDomainTransactions(ms), nextToken, nil
}

func (r *PgxTransactionRepository) FindOldestRecurringDate(ctx context.Context, walletIDs []int64) (*time.Time, error) {
	if len(walletIDs) == 0 {
		return nil, nil
	}
	var oldest *time.Time
	err := r.Pool.QueryRow(ctx,
		`SELECT MIN(date) FROM transactions WHERE is_recurring AND wallet_id = ANY($1)`,
		walletIDs,
	).Scan(&oldest)
	if err != nil {
		return nil, fmt.Errorf("failed to query oldest recurring date: %w", err)
	}
	if oldest != nil {
		d := domain.DateOf(*oldest)
		oldest = &d
	}
	return oldest, nil
}

func (r *PgxTransactionRepository) ListRecurringAnchors(ctx context.Context, walletIDs []int64, endDate, activeSince time.Time) ([]domain.Transaction, error) {
	if len(walletIDs) == 0 {
		return []domain.Transaction{}, nil
	}
	query := transactionSelect + `
	WHERE t.is_recurring
	  AND t.wallet_id = ANY($1)
	  AND t.date <= $2
	  AND (t.recurrence_end_date IS NULL OR t.recurrence_end_date >= $3)
	ORDER BY t.date, t.id`

	rows, err := r.Pool.Query(ctx, query, walletIDs, endDate, activeSince)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan recurring transactions: %w", err)
	}
	return mapping.ToDomainTransactions(ms), nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) (*domain.Transaction, error) {
	return r.insertTransaction(ctx, r.Pool, transaction)
}

func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, transaction domain.Transaction) (*domain.Transaction, error) {
	return r.insertTransaction(ctx, tx, transaction)
}

func (r *PgxTransactionRepository) insertTransaction(ctx context.Context, q querier, transaction domain.Transaction) (*domain.Transaction, error) {
	m := mapping.ToModelTransaction(transaction)
	query := `
		INSERT INTO transactions (
			wallet_id, type, amount, description, category_id, date,
			is_recurring, recurrence_type, recurrence_end_date, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at;
	`
	err := q.QueryRow(ctx, query,
		m.WalletID,
		m.Type,
		m.Amount,
		m.Description,
		m.CategoryID,
		m.Date,
		m.IsRecurring,
		m.RecurrenceType,
		m.RecurrenceEndDate,
		m.CreatedBy,
	).Scan(&m.TransactionID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, translatePgError(fmt.Errorf("failed to insert transaction: %w", err), "transaction")
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)
	query := `
		UPDATE transactions
		SET type = $2, amount = $3, description = $4, category_id = $5, date = $6,
		    is_recurring = $7, recurrence_type = $8, recurrence_end_date = $9, updated_at = NOW()
		WHERE id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Type,
		m.Amount,
		m.Description,
		m.CategoryID,
		m.Date,
		m.IsRecurring,
		m.RecurrenceType,
		m.RecurrenceEndDate,
	)
	if err != nil {
		return translatePgError(fmt.Errorf("failed to update transaction %d: %w", m.TransactionID, err), "transaction")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) SumWalletTransactionsInTx(ctx context.Context, tx pgx.Tx, walletID int64) (domain.Totals, error) {
	var totals domain.Totals
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0),
		       COALESCE(SUM(CASE WHEN type = 'outcome' THEN amount END), 0)
		FROM transactions
		WHERE wallet_id = $1`,
		walletID,
	).Scan(&totals.Income, &totals.Outcome)
	if err != nil {
		return domain.Totals{}, fmt.Errorf("failed to sum transactions of wallet %d: %w", walletID, err)
	}
	return totals, nil
}
