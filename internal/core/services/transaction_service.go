package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryRepository,
	authorizer portssvc.WalletAuthorizerSvc,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService:  BaseService{WalletAuthorizer: authorizer},
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransaction(ctx context.Context, userID string, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.Int64("transaction_id", transactionID))
		}
		return nil, err
	}
	if err := s.AuthorizeWallet(ctx, userID, txn.WalletID, domain.PermissionRead); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	walletIDs, err := s.ReadableWallets(ctx, userID, params.WalletID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.TransactionListFilter{
		WalletIDs: walletIDs,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if filter.StartDate, err = parseOptionalDate(params.StartDate); err != nil {
		return nil, err
	}
	if filter.EndDate, err = parseOptionalDate(params.EndDate); err != nil {
		return nil, err
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		}
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToListTransactionResponse(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.AuthorizeWallet(ctx, userID, req.WalletID, domain.PermissionWrite); err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	txn := domain.Transaction{
		WalletID:       req.WalletID,
		Type:           req.Type,
		Amount:         req.Amount,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		Date:           date,
		IsRecurring:    req.IsRecurring,
		RecurrenceType: req.RecurrenceType,
		CreatedBy:      userID,
	}
	if txn.RecurrenceEndDate, err = parseOptionalDate(req.RecurrenceEndDate); err != nil {
		return nil, err
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	category, err := s.checkCategory(ctx, userID, txn)
	if err != nil {
		return nil, err
	}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.Int64("wallet_id", txn.WalletID))
		return nil, err
	}
	if category != nil {
		saved.CategoryName = &category.Name
		saved.CategoryColor = category.Color
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.Int64("transaction_id", saved.TransactionID),
		slog.Int64("wallet_id", saved.WalletID),
		slog.Bool("recurring", saved.IsRecurring))
	return saved, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeWallet(ctx, userID, txn.WalletID, domain.PermissionWrite); err != nil {
		return nil, err
	}

	if err := applyTransactionUpdate(txn, req); err != nil {
		return nil, err
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.checkCategory(ctx, userID, *txn); err != nil {
		return nil, err
	}

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated successfully", slog.Int64("transaction_id", transactionID))
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID int64) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeWallet(ctx, userID, txn.WalletID, domain.PermissionWrite); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", transactionID))
		}
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", transactionID))
	return nil
}

// checkCategory ensures the referenced category is visible to the user and
// accepts the transaction's type.
func (s *transactionService) checkCategory(ctx context.Context, userID string, txn domain.Transaction) (*domain.Category, error) {
	if txn.CategoryID == nil {
		return nil, nil
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, *txn.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, *txn.CategoryID)
		}
		return nil, err
	}
	if !category.IsSystem && (category.UserID == nil || *category.UserID != userID) {
		return nil, fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, *txn.CategoryID)
	}
	if !category.Accepts(txn.Type) {
		return nil, fmt.Errorf("%w: category %q cannot be used for %s transactions", apperrors.ErrValidation, category.Name, txn.Type)
	}
	return category, nil
}

// applyTransactionUpdate copies the non-nil request fields onto txn.
func applyTransactionUpdate(txn *domain.Transaction, req dto.UpdateTransactionRequest) error {
	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		txn.Description = req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			txn.CategoryID = nil
		} else {
			txn.CategoryID = req.CategoryID
		}
		txn.CategoryName, txn.CategoryColor = nil, nil
	}
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			return err
		}
		txn.Date = date
	}
	if req.IsRecurring != nil {
		txn.IsRecurring = *req.IsRecurring
		if !txn.IsRecurring {
			txn.RecurrenceType = nil
			txn.RecurrenceEndDate = nil
		}
	}
	if req.RecurrenceType != nil {
		txn.RecurrenceType = req.RecurrenceType
	}
	if req.RecurrenceEndDate != nil {
		end, err := parseOptionalDate(req.RecurrenceEndDate)
		if err != nil {
			return err
		}
		txn.RecurrenceEndDate = end
	}
	return nil
}

// parseOptionalDate treats nil and "" as absent.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
