package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThibautWa/grigou-sub000/internal/apperrors"
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	WalletAuthorizer portssvc.WalletAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a recoverable failure
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeWallet checks that the user holds at least the required permission on a wallet.
// Without an authorizer every action is refused.
func (s *BaseService) AuthorizeWallet(ctx context.Context, userID string, walletID int64, required domain.WalletPermission) error {
	if s.WalletAuthorizer == nil {
		return fmt.Errorf("%w: no wallet authorizer configured", apperrors.ErrForbidden)
	}
	return s.WalletAuthorizer.AuthorizeWalletAction(ctx, userID, walletID, required)
}

// ReadableWallets resolves the wallet scope of a read request.
func (s *BaseService) ReadableWallets(ctx context.Context, userID string, walletID *int64) ([]int64, error) {
	if s.WalletAuthorizer == nil {
		return nil, fmt.Errorf("%w: no wallet authorizer configured", apperrors.ErrForbidden)
	}
	return s.WalletAuthorizer.ResolveReadableWallets(ctx, userID, walletID)
}
