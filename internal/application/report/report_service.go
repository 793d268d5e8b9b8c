package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/report"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cacheTTL keeps report reads cheap without letting the numbers go stale
// for long
const cacheTTL = 2 * time.Minute

// maxSeriesMonths bounds the revenue series window
const maxSeriesMonths = 36

// ReportService serves the read-side aggregates. Results are cached per
// company with a short TTL; cache failures degrade to direct reads.
type ReportService struct {
	reports report.Repository
	cache   cache.ReportCache
	logger  *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reports report.Repository, reportCache cache.ReportCache, logger *zap.Logger) *ReportService {
	return &ReportService{reports: reports, cache: reportCache, logger: logger}
}

// Dashboard returns the landing-page KPIs as of now
func (s *ReportService) Dashboard(ctx context.Context, companyID uuid.UUID) (*report.Dashboard, error) {
	var cached report.Dashboard
	if s.cacheGet(ctx, companyID, "dashboard", &cached) {
		return &cached, nil
	}

	dashboard, err := s.reports.Dashboard(ctx, companyID, time.Now())
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, companyID, "dashboard", dashboard)
	return dashboard, nil
}

// MonthlyRevenueSeries returns the invoiced revenue of the last months,
// gap-filled and oldest first
func (s *ReportService) MonthlyRevenueSeries(ctx context.Context, companyID uuid.UUID, months int) ([]report.MonthlyRevenue, error) {
	if months < 1 || months > maxSeriesMonths {
		return nil, shared.NewDomainError("INVALID_RANGE", fmt.Sprintf("Months must be between 1 and %d", maxSeriesMonths))
	}

	key := fmt.Sprintf("revenue-series:%d", months)
	var cached []report.MonthlyRevenue
	if s.cacheGet(ctx, companyID, key, &cached) {
		return cached, nil
	}

	series, err := s.reports.MonthlyRevenueSeries(ctx, companyID, months)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, companyID, key, series)
	return series, nil
}

// IncomeStatement returns the month's DRE rows grouped by category
func (s *ReportService) IncomeStatement(ctx context.Context, companyID uuid.UUID, year int, month time.Month) ([]report.IncomeStatementRow, error) {
	if month < time.January || month > time.December {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}

	key := fmt.Sprintf("dre:%04d-%02d", year, month)
	var cached []report.IncomeStatementRow
	if s.cacheGet(ctx, companyID, key, &cached) {
		return cached, nil
	}

	rows, err := s.reports.IncomeStatement(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, companyID, key, rows)
	return rows, nil
}

// Invalidate drops the company's cached reports; called after writes that
// move the aggregates
func (s *ReportService) Invalidate(ctx context.Context, companyID uuid.UUID) {
	if err := s.cache.InvalidateCompany(ctx, companyID); err != nil {
		s.logger.Warn("report cache invalidation failed", zap.Error(err))
	}
}

func (s *ReportService) cacheGet(ctx context.Context, companyID uuid.UUID, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, companyID, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (s *ReportService) cacheSet(ctx context.Context, companyID uuid.UUID, key string, value interface{}) {
	if err := s.cache.Set(ctx, companyID, key, value, cacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
