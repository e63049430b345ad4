package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
	"github.com/ThibautWa/grigou-sub000/internal/middleware"
	"github.com/ThibautWa/grigou-sub000/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// predictionHandler serves projected occurrences of recurring transactions
type predictionHandler struct {
	predictionService portssvc.PredictionService
}

func newPredictionHandler(ps portssvc.PredictionService) *predictionHandler {
	return &predictionHandler{
		predictionService: ps,
	}
}

// RegisterPredictionRoutes registers the prediction endpoints on rg.
func RegisterPredictionRoutes(rg *gin.RouterGroup, predictionService portssvc.PredictionService) {
	registerValidators()
	h := newPredictionHandler(predictionService)

	predictionGroup := rg.Group("/predictions")
	{
		predictionGroup.GET("", h.listPredictions)
		predictionGroup.GET("/export", h.exportPredictions)
	}
}

// listPredictions godoc
// @Summary List predicted occurrences
// @Description Projects every recurring transaction readable by the user into [startDate, endDate]
// @Tags predictions
// @Produce json
// @Param startDate query string true "Window start (YYYY-MM-DD)"
// @Param endDate query string true "Window end (YYYY-MM-DD)"
// @Param walletId query int false "Restrict to one wallet"
// @Success 200 {array} dto.PredictionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to fetch predictions"
// @Security BearerAuth
// @Router /predictions [get]
func (h *predictionHandler) listPredictions(c *gin.Context) {
	predictions, ok := h.fetch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToPredictionResponses(predictions))
}

// exportPredictions godoc
// @Summary Export predicted occurrences
// @Description Same selection as GET /predictions, rendered as an XLSX workbook
// @Tags predictions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param startDate query string true "Window start (YYYY-MM-DD)"
// @Param endDate query string true "Window end (YYYY-MM-DD)"
// @Param walletId query int false "Restrict to one wallet"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to export predictions"
// @Security BearerAuth
// @Router /predictions/export [get]
func (h *predictionHandler) exportPredictions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	predictions, ok := h.fetch(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WritePredictionsXLSX(&buf, predictions); err != nil {
		logger.Error("Failed to render predictions workbook", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export predictions"})
		return
	}

	filename := fmt.Sprintf("predictions_%s_%s.xlsx", c.Query("startDate"), c.Query("endDate"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}

// fetch binds the query and runs the projection. It writes the error
// response itself and returns false on failure.
func (h *predictionHandler) fetch(c *gin.Context) ([]domain.PredictedOccurrence, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return nil, false
	}

	var params dto.PredictionsQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind prediction query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return nil, false
	}

	start, startErr := domain.ParseDate(params.StartDate)
	end, endErr := domain.ParseDate(params.EndDate)
	if startErr != nil || endErr != nil {
		logger.Warn("Prediction window missing or malformed",
			slog.String("startDate", params.StartDate), slog.String("endDate", params.EndDate))
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required"})
		return nil, false
	}

	predictions, err := h.predictionService.GetPredictions(c.Request.Context(), userID, domain.PredictionQuery{
		WalletID:  params.WalletID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to fetch predictions")
		return nil, false
	}

	logger.Debug("Predictions computed", slog.Int("count", len(predictions)))
	return predictions, true
}
