package persistence

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPayableRepository implements finance.PayableRepository using GORM
type GormPayableRepository struct {
	*CrudRepository[finance.Payable]
}

// NewGormPayableRepository creates a new GormPayableRepository
func NewGormPayableRepository(db *gorm.DB) *GormPayableRepository {
	return &GormPayableRepository{NewCrudRepository[finance.Payable](db, FinanceSortFields)}
}

// Settle writes the settled payable and its ledger entry in one transaction
// so the ledger never drifts from the document
func (r *GormPayableRepository) Settle(ctx context.Context, payable *finance.Payable, entry *finance.CashFlowEntry) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payable).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	return TranslateError("Payable.Settle", err)
}

// FindOpen lists unsettled payables, paginated
func (r *GormPayableRepository) FindOpen(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Payable], error) {
	query := r.DB().WithContext(ctx).
		Model(&finance.Payable{}).
		Where("company_id = ? AND status = ?", companyID, finance.PayableStatusOpen)
	return r.Paginate(ctx, query, filter)
}

// FindOverdue lists open payables whose due date has passed
func (r *GormPayableRepository) FindOverdue(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]finance.Payable, error) {
	var payables []finance.Payable
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND status = ? AND due_date < ?", companyID, finance.PayableStatusOpen, asOf).
		Order("due_date asc").
		Find(&payables).Error
	if err != nil {
		return nil, TranslateError("Payable.FindOverdue", err)
	}
	return payables, nil
}

// FindByPeriod lists payables due inside the window, inclusive
func (r *GormPayableRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]finance.Payable, error) {
	var payables []finance.Payable
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND due_date >= ? AND due_date <= ?", companyID, from, to).
		Order("due_date asc").
		Find(&payables).Error
	if err != nil {
		return nil, TranslateError("Payable.FindByPeriod", err)
	}
	return payables, nil
}

// SumOpen totals the outstanding amount
func (r *GormPayableRepository) SumOpen(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(ctx, r.DB().
		Model(&finance.Payable{}).
		Where("company_id = ? AND status = ?", companyID, finance.PayableStatusOpen), "amount")
}

// sumColumn runs a COALESCE'd SUM over the query
func sumColumn(ctx context.Context, query *gorm.DB, column string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := query.WithContext(ctx).
		Select("COALESCE(SUM(" + column + "), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, TranslateError("sumColumn", err)
	}
	return row.Total, nil
}
