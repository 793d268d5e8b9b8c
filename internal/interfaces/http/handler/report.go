package handler

import (
	"strconv"
	"time"

	reportapp "github.com/gestor-erp/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard and report endpoints
type ReportHandler struct {
	BaseHandler
	reports *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes mounts the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/reports")
	group.GET("/dashboard", h.Dashboard)
	group.GET("/monthly-revenue", h.MonthlyRevenue)
	group.GET("/income-statement", h.IncomeStatement)
}

// Dashboard returns the headline numbers for the home screen
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reports.Dashboard(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// MonthlyRevenue returns the invoiced revenue series for the last N months
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	months := 12
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid months, expected a positive integer")
			return
		}
		months = parsed
	}
	series, err := h.reports.MonthlyRevenueSeries(c.Request.Context(), companyID(c), months)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// IncomeStatement returns the monthly result statement
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 {
		h.BadRequest(c, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		h.BadRequest(c, "Invalid month, expected 1-12")
		return
	}
	rows, err := h.reports.IncomeStatement(c.Request.Context(), companyID(c), year, time.Month(month))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
