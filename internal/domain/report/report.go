package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dashboard aggregates the landing-page KPIs for one company
type Dashboard struct {
	MonthRevenue      decimal.Decimal `json:"month_revenue"`
	OpenReceivables   decimal.Decimal `json:"open_receivables"`
	OpenPayables      decimal.Decimal `json:"open_payables"`
	CashBalance       decimal.Decimal `json:"cash_balance"`
	OpenSalesOrders   int64           `json:"open_sales_orders"`
	OpenServiceOrders int64           `json:"open_service_orders"`
	ClientCount       int64           `json:"client_count"`
	ProductsBelowMin  int64           `json:"products_below_min"`
}

// MonthlyRevenue is one point of the revenue series
type MonthlyRevenue struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// IncomeStatementRow is one category line of the monthly DRE
type IncomeStatementRow struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
}

// Repository computes read-side aggregates straight from the database
type Repository interface {
	Dashboard(ctx context.Context, companyID uuid.UUID, at time.Time) (*Dashboard, error)
	MonthlyRevenueSeries(ctx context.Context, companyID uuid.UUID, months int) ([]MonthlyRevenue, error)
	IncomeStatement(ctx context.Context, companyID uuid.UUID, year int, month time.Month) ([]IncomeStatementRow, error)
}
