package persistence

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/report"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository computes read-side aggregates with SQL
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Dashboard gathers the landing-page KPIs
func (r *GormReportRepository) Dashboard(ctx context.Context, companyID uuid.UUID, at time.Time) (*report.Dashboard, error) {
	monthStart := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	dash := &report.Dashboard{}
	db := r.db.WithContext(ctx)

	var err error
	dash.MonthRevenue, err = sumColumn(ctx, db.
		Model(&finance.CashFlowEntry{}).
		Where("company_id = ? AND type = ? AND date >= ? AND date < ?",
			companyID, finance.CashFlowTypeIn, monthStart, monthEnd), "amount")
	if err != nil {
		return nil, err
	}

	dash.OpenReceivables, err = sumColumn(ctx, db.
		Model(&finance.Receivable{}).
		Where("company_id = ? AND status = ?", companyID, finance.ReceivableStatusOpen), "amount")
	if err != nil {
		return nil, err
	}

	dash.OpenPayables, err = sumColumn(ctx, db.
		Model(&finance.Payable{}).
		Where("company_id = ? AND status = ?", companyID, finance.PayableStatusOpen), "amount")
	if err != nil {
		return nil, err
	}

	var balance struct {
		Balance decimal.Decimal
	}
	err = db.Model(&finance.CashFlowEntry{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0) AS balance", finance.CashFlowTypeIn).
		Where("company_id = ? AND date <= ?", companyID, at).
		Scan(&balance).Error
	if err != nil {
		return nil, TranslateError("Report.Dashboard", err)
	}
	dash.CashBalance = balance.Balance

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&dash.OpenSalesOrders, db.Model(&trade.SalesOrder{}).
			Where("company_id = ? AND status = ?", companyID, trade.SalesOrderStatusOpen)},
		{&dash.OpenServiceOrders, db.Model(&trade.ServiceOrder{}).
			Where("company_id = ? AND status NOT IN ?", companyID,
				[]trade.ServiceOrderStatus{trade.ServiceOrderStatusDone, trade.ServiceOrderStatusCancelled})},
		{&dash.ClientCount, db.Model(&partner.Client{}).
			Where("company_id = ? AND active = true", companyID)},
		{&dash.ProductsBelowMin, db.Model(&catalog.Product{}).
			Where("company_id = ? AND active = true AND min_stock > 0 AND stock < min_stock", companyID)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, TranslateError("Report.Dashboard", err)
		}
	}
	return dash, nil
}

// MonthlyRevenueSeries returns one revenue point per month, oldest first
func (r *GormReportRepository) MonthlyRevenueSeries(ctx context.Context, companyID uuid.UUID, months int) ([]report.MonthlyRevenue, error) {
	if months <= 0 {
		months = 12
	}
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)

	var rows []struct {
		Year    int
		Month   int
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&finance.CashFlowEntry{}).
		Select("EXTRACT(YEAR FROM date)::int AS year, EXTRACT(MONTH FROM date)::int AS month, COALESCE(SUM(amount), 0) AS revenue").
		Where("company_id = ? AND type = ? AND date >= ?", companyID, finance.CashFlowTypeIn, from).
		Group("year, month").
		Order("year asc, month asc").
		Scan(&rows).Error
	if err != nil {
		return nil, TranslateError("Report.MonthlyRevenueSeries", err)
	}

	// fill the gaps so the chart always shows a continuous series
	byKey := make(map[[2]int]decimal.Decimal, len(rows))
	for _, row := range rows {
		byKey[[2]int{row.Year, row.Month}] = row.Revenue
	}
	series := make([]report.MonthlyRevenue, 0, months)
	for i := 0; i < months; i++ {
		point := from.AddDate(0, i, 0)
		revenue, ok := byKey[[2]int{point.Year(), int(point.Month())}]
		if !ok {
			revenue = decimal.Zero
		}
		series = append(series, report.MonthlyRevenue{
			Year:    point.Year(),
			Month:   int(point.Month()),
			Revenue: revenue,
		})
	}
	return series, nil
}

// IncomeStatement groups the month's ledger by category
func (r *GormReportRepository) IncomeStatement(ctx context.Context, companyID uuid.UUID, year int, month time.Month) ([]report.IncomeStatementRow, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var rows []struct {
		Category string
		Income   decimal.Decimal
		Expense  decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&finance.CashFlowEntry{}).
		Select(`COALESCE(NULLIF(category, ''), 'Outros') AS category,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS expense`,
			finance.CashFlowTypeIn, finance.CashFlowTypeOut).
		Where("company_id = ? AND date >= ? AND date < ?", companyID, from, to).
		Group("category").
		Order("category asc").
		Scan(&rows).Error
	if err != nil {
		return nil, TranslateError("Report.IncomeStatement", err)
	}

	result := make([]report.IncomeStatementRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, report.IncomeStatementRow(row))
	}
	return result, nil
}
