package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/fintrackhq/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles the owner-scoped aggregation endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/breakdown", h.getBreakdown)
		reports.GET("/monthly", h.getMonthlySeries)
		reports.GET("/daily", h.getDailyTrend)
	}
}

// parseDateRange reads the from/to query parameters as calendar dates.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(reportDateLayout, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be a date in YYYY-MM-DD format")
	}
	to, err := time.Parse(reportDateLayout, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be a date in YYYY-MM-DD format")
	}
	return from, to, nil
}

// resolvePeriod turns the period preset into a date range, or falls back to
// explicit from/to. Weeks start on Sunday.
func resolvePeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch c.Query("period") {
	case "":
		return parseDateRange(c)
	case "week":
		return today.AddDate(0, 0, -int(today.Weekday())), today, nil
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), today, nil
	case "year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), today, nil
	default:
		return time.Time{}, time.Time{}, errors.New("period must be one of week, month, year")
	}
}

// getSummary godoc
// @Summary Income/expense summary for a period
// @Description Returns total income, total expenses and balance for [from, to] or a named period
// @Tags reports
// @Produce  json
// @Param   period query string false "Preset period (week, month or year); overrides from/to"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodSummaryResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, to, err := resolvePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.reportingService.PeriodSummary(c.Request.Context(), ownerID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute period summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(summary, from, to))
}

// getBreakdown godoc
// @Summary Category breakdown for a period
// @Description Returns the top categories of one transaction type, with per-category totals and shares
// @Tags reports
// @Produce  json
// @Param   type query string true "Transaction type (INCOME or EXPENSE)"
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute breakdown"
// @Security BearerAuth
// @Router /reports/breakdown [get]
func (h *reportingHandler) getBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txnType := domain.TransactionType(c.DefaultQuery("type", string(domain.Expense)))

	rows, err := h.reportingService.CategoryBreakdown(c.Request.Context(), ownerID, txnType, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute category breakdown", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute breakdown"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(rows, txnType, from, to))
}

// getMonthlySeries godoc
// @Summary Dense monthly income/expense series
// @Description Returns one point per trailing month ending now, zero-filled for empty months
// @Tags reports
// @Produce  json
// @Param   months query int false "Window size in months" default(6)
// @Success 200 {object} dto.MonthlySeriesResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute series"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlySeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months, err := strconv.Atoi(c.DefaultQuery("months", "6"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months must be an integer"})
		return
	}

	series, err := h.reportingService.MonthlySeries(c.Request.Context(), ownerID, months)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute monthly series", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute series"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySeriesResponse(series))
}

// getDailyTrend godoc
// @Summary Sparse daily income/expense trend
// @Description Returns per-day totals for [from, to]; days without activity are omitted
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyTrendResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute trend"
// @Security BearerAuth
// @Router /reports/daily [get]
func (h *reportingHandler) getDailyTrend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.reportingService.DailyTrend(c.Request.Context(), ownerID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute daily trend", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trend"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyTrendResponse(points, from, to))
}
