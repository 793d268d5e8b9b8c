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

// GormReceivableRepository implements finance.ReceivableRepository using GORM
type GormReceivableRepository struct {
	*CrudRepository[finance.Receivable]
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{NewCrudRepository[finance.Receivable](db, FinanceSortFields)}
}

// Settle writes the settled receivable and its ledger entry in one transaction
// so the ledger never drifts from the document
func (r *GormReceivableRepository) Settle(ctx context.Context, receivable *finance.Receivable, entry *finance.CashFlowEntry) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(receivable).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	return TranslateError("Receivable.Settle", err)
}

// FindOpen lists unsettled receivables, paginated
func (r *GormReceivableRepository) FindOpen(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Receivable], error) {
	query := r.DB().WithContext(ctx).
		Model(&finance.Receivable{}).
		Where("company_id = ? AND status = ?", companyID, finance.ReceivableStatusOpen)
	return r.Paginate(ctx, query, filter)
}

// FindOverdue lists open receivables whose due date has passed
func (r *GormReceivableRepository) FindOverdue(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]finance.Receivable, error) {
	var receivables []finance.Receivable
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND status = ? AND due_date < ?", companyID, finance.ReceivableStatusOpen, asOf).
		Order("due_date asc").
		Find(&receivables).Error
	if err != nil {
		return nil, TranslateError("Receivable.FindOverdue", err)
	}
	return receivables, nil
}

// FindByPeriod lists receivables due inside the window, inclusive
func (r *GormReceivableRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]finance.Receivable, error) {
	var receivables []finance.Receivable
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND due_date >= ? AND due_date <= ?", companyID, from, to).
		Order("due_date asc").
		Find(&receivables).Error
	if err != nil {
		return nil, TranslateError("Receivable.FindByPeriod", err)
	}
	return receivables, nil
}

// SumOpen totals the outstanding amount
func (r *GormReceivableRepository) SumOpen(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(ctx, r.DB().
		Model(&finance.Receivable{}).
		Where("company_id = ? AND status = ?", companyID, finance.ReceivableStatusOpen), "amount")
}

// ExistsForContractCompetency reports whether the contract was already billed
// for the competency
func (r *GormReceivableRepository) ExistsForContractCompetency(ctx context.Context, companyID, contractID uuid.UUID, competency string) (bool, error) {
	var count int64
	err := r.DB().WithContext(ctx).
		Model(&finance.Receivable{}).
		Where("company_id = ? AND contract_id = ? AND competency = ?", companyID, contractID, competency).
		Count(&count).Error
	if err != nil {
		return false, TranslateError("Receivable.ExistsForContractCompetency", err)
	}
	return count > 0, nil
}

// BulkCreate inserts a batch of receivables in one transaction
func (r *GormReceivableRepository) BulkCreate(ctx context.Context, receivables []*finance.Receivable) error {
	if len(receivables) == 0 {
		return nil
	}
	return TranslateError("Receivable.BulkCreate", r.DB().WithContext(ctx).Create(&receivables).Error)
}
