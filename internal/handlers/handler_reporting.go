package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
	"github.com/ThibautWa/grigou-sub000/internal/dto"
	"github.com/ThibautWa/grigou-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the statistics dashboard
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to statistics
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	registerValidators()
	h := newReportingHandler(reportingService)

	rg.GET("/stats", h.getStats)
}

// getStats godoc
// @Summary Get income/outcome statistics
// @Description Totals for the window, the cumulative balance up to endDate and a monthly breakdown.
// @Description With includePredictions=true and an endDate, projected recurring occurrences are added.
// @Tags stats
// @Produce json
// @Param startDate query string false "Window start (YYYY-MM-DD)"
// @Param endDate query string false "Window end (YYYY-MM-DD)"
// @Param includePredictions query bool false "Fold projected occurrences into the totals"
// @Param walletId query int false "Restrict to one wallet"
// @Success 200 {object} dto.StatsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Security BearerAuth
// @Router /stats [get]
func (h *reportingHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.StatsQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind stats query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	q := domain.StatsQuery{
		WalletID:           params.WalletID,
		IncludePredictions: params.IncludePredictions,
	}
	var err error
	if q.StartDate, err = optionalDate(params.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	if q.EndDate, err = optionalDate(params.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.Bool("include_predictions", q.IncludePredictions))
	stats, err := h.reportingService.GetStats(c.Request.Context(), userID, q)
	if err != nil {
		respondServiceError(c, err, "Failed to compute statistics")
		return
	}

	logger.Debug("Statistics computed", slog.Int("months", len(stats.MonthlyData)))
	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}

// optionalDate treats nil and "" as absent.
func optionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
