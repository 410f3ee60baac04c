package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler serves the unscoped analytics endpoints. The router mounts it
// behind RequireAdmin, so every request here is already admin-verified.
type adminHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newAdminHandler(rs portssvc.ReportingSvcFacade) *adminHandler {
	return &adminHandler{reportingService: rs}
}

// registerAdminRoutes registers the admin analytics routes.
func registerAdminRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newAdminHandler(reportingService)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/summary", h.getSystemSummary)
		analytics.GET("/monthly", h.getSystemMonthlySeries)
		analytics.GET("/top-spenders", h.getTopSpenders)
		analytics.GET("/categories", h.getMostUsedCategories)
	}
}

// getSystemSummary godoc
// @Summary System-wide income/expense summary
// @Description Returns totals across all users for [from, to]
// @Tags admin
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodSummaryResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /admin/analytics/summary [get]
func (h *adminHandler) getSystemSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.reportingService.AdminPeriodSummary(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute system summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(summary, from, to))
}

// getSystemMonthlySeries godoc
// @Summary System-wide dense monthly series
// @Description Returns one point per trailing month across all users
// @Tags admin
// @Produce  json
// @Param   months query int false "Window size in months" default(6)
// @Success 200 {object} dto.MonthlySeriesResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to compute series"
// @Security BearerAuth
// @Router /admin/analytics/monthly [get]
func (h *adminHandler) getSystemMonthlySeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	months, err := strconv.Atoi(c.DefaultQuery("months", "6"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "months must be an integer"})
		return
	}

	series, err := h.reportingService.AdminMonthlySeries(c.Request.Context(), months)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute system monthly series", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute series"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySeriesResponse(series))
}

// getTopSpenders godoc
// @Summary Top spending users
// @Description Returns the users with the highest expense totals in [from, to]
// @Tags admin
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.TopSpenderResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to compute top spenders"
// @Security BearerAuth
// @Router /admin/analytics/top-spenders [get]
func (h *adminHandler) getTopSpenders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reportingService.TopSpenders(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute top spenders", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute top spenders"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTopSpenderResponses(rows))
}

// getMostUsedCategories godoc
// @Summary Most used categories
// @Description Returns categories ordered by system-wide transaction count
// @Tags admin
// @Produce  json
// @Success 200 {array} dto.CategoryUsageResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Failed to compute category usage"
// @Security BearerAuth
// @Router /admin/analytics/categories [get]
func (h *adminHandler) getMostUsedCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.reportingService.MostUsedCategories(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute category usage", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute category usage"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryUsageResponses(rows))
}
