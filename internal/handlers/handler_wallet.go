package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
	"github.com/ThibautWa/grigou-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles wallet management and balance reconciliation
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{
		walletService: ws,
	}
}

// RegisterWalletRoutes registers the wallet endpoints on rg.
func RegisterWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	registerValidators()
	h := newWalletHandler(walletService)

	walletGroup := rg.Group("/wallets")
	{
		walletGroup.POST("", h.createWallet)
		walletGroup.GET("", h.listWallets)
		walletGroup.GET("/:id", h.getWallet)
		walletGroup.POST("/:id/adjust", h.adjustBalance)
		walletGroup.GET("/:id/adjust", h.getBalance)
	}
}

// createWallet godoc
// @Summary Create a wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param wallet body dto.CreateWalletRequest true "Wallet details"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create wallet"
// @Security BearerAuth
// @Router /wallets [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create wallet")
		return
	}

	logger.Info("Wallet created", slog.Int64("wallet_id", wallet.WalletID))
	resp := dto.ToWalletResponse(wallet)
	resp.Permission = domain.PermissionAdmin
	c.JSON(http.StatusCreated, resp)
}

// listWallets godoc
// @Summary List accessible wallets
// @Description Wallets the user owns or has been shared, with the user's permission
// @Tags wallets
// @Produce json
// @Success 200 {array} dto.WalletResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list wallets"
// @Security BearerAuth
// @Router /wallets [get]
func (h *walletHandler) listWallets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	wallets, err := h.walletService.ListWallets(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list wallets")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWalletResponse(wallets))
}

// getWallet godoc
// @Summary Get a wallet
// @Tags wallets
// @Produce json
// @Param id path int true "Wallet ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid wallet ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to get wallet"
// @Security BearerAuth
// @Router /wallets/{id} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	walletID, ok := pathID(c, "id", "wallet")
	if !ok {
		return
	}

	wallet, err := h.walletService.GetWallet(c.Request.Context(), userID, walletID)
	if err != nil {
		respondServiceError(c, err, "Failed to get wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletAccessResponse(wallet))
}

// adjustBalance godoc
// @Summary Reconcile a wallet balance
// @Description Records one "Adjustment" transaction dated today so the wallet balance equals newBalance.
// @Description Differences below 0.01 create nothing. Requires write permission.
// @Tags wallets
// @Accept json
// @Produce json
// @Param id path int true "Wallet ID"
// @Param adjustment body dto.AdjustBalanceRequest true "Declared balance"
// @Success 200 {object} dto.AdjustBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to adjust balance"
// @Security BearerAuth
// @Router /wallets/{id}/adjust [post]
func (h *walletHandler) adjustBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	walletID, ok := pathID(c, "id", "wallet")
	if !ok {
		return
	}

	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	cmd := domain.AdjustBalanceCommand{
		NewBalance:     *req.NewBalance,
		CurrentBalance: req.CurrentBalance,
	}
	date, err := optionalDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	cmd.Date = date

	logger = logger.With(slog.Int64("wallet_id", walletID))
	adjustment, err := h.walletService.AdjustBalance(c.Request.Context(), userID, walletID, cmd)
	if err != nil {
		respondServiceError(c, err, "Failed to adjust balance")
		return
	}

	logger.Info("Balance adjusted",
		slog.String("difference", adjustment.Difference.String()),
		slog.Bool("transaction_created", adjustment.TransactionCreated))
	c.JSON(http.StatusOK, dto.ToAdjustBalanceResponse(adjustment))
}

// getBalance godoc
// @Summary Get a wallet's computed balance
// @Description Initial balance plus every recorded transaction; predictions are never included.
// @Tags wallets
// @Produce json
// @Param id path int true "Wallet ID"
// @Success 200 {object} dto.WalletBalanceResponse
// @Failure 400 {object} map[string]string "Invalid wallet ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /wallets/{id}/adjust [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	walletID, ok := pathID(c, "id", "wallet")
	if !ok {
		return
	}

	balance, err := h.walletService.GetBalance(c.Request.Context(), userID, walletID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletBalanceResponse(balance))
}
