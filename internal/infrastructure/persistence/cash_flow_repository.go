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

// GormCashFlowRepository implements finance.CashFlowRepository using GORM
type GormCashFlowRepository struct {
	*CrudRepository[finance.CashFlowEntry]
}

// NewGormCashFlowRepository creates a new GormCashFlowRepository
func NewGormCashFlowRepository(db *gorm.DB) *GormCashFlowRepository {
	return &GormCashFlowRepository{NewCrudRepository[finance.CashFlowEntry](db, map[string]bool{
		"date":       true,
		"amount":     true,
		"type":       true,
		"category":   true,
		"created_at": true,
	})}
}

// FindByPeriod lists ledger entries inside the window, paginated
func (r *GormCashFlowRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[finance.CashFlowEntry], error) {
	query := r.DB().WithContext(ctx).
		Model(&finance.CashFlowEntry{}).
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to)
	return r.Paginate(ctx, query, filter)
}

// BalanceAt computes the running balance up to and including the given moment
func (r *GormCashFlowRepository) BalanceAt(ctx context.Context, companyID uuid.UUID, at time.Time) (decimal.Decimal, error) {
	var row struct {
		Balance decimal.Decimal
	}
	err := r.DB().WithContext(ctx).
		Model(&finance.CashFlowEntry{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0) AS balance", finance.CashFlowTypeIn).
		Where("company_id = ? AND date <= ?", companyID, at).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, TranslateError("CashFlow.BalanceAt", err)
	}
	return row.Balance, nil
}

// SumByTypeAndPeriod totals entries of one type inside the window
func (r *GormCashFlowRepository) SumByTypeAndPeriod(ctx context.Context, companyID uuid.UUID, entryType finance.CashFlowType, from, to time.Time) (decimal.Decimal, error) {
	return sumColumn(ctx, r.DB().
		Model(&finance.CashFlowEntry{}).
		Where("company_id = ? AND type = ? AND date >= ? AND date <= ?", companyID, entryType, from, to), "amount")
}

// DeleteBySource removes the ledger entries created by a source document,
// used when a settlement is reopened
func (r *GormCashFlowRepository) DeleteBySource(ctx context.Context, companyID uuid.UUID, sourceType string, sourceID uuid.UUID) error {
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND source_type = ? AND source_id = ?", companyID, sourceType, sourceID).
		Delete(&finance.CashFlowEntry{}).Error
	return TranslateError("CashFlow.DeleteBySource", err)
}
