package persistence

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/commission"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCommissionRepository implements commission.CommissionRepository using GORM
type GormCommissionRepository struct {
	*CrudRepository[commission.Commission]
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{NewCrudRepository[commission.Commission](db, map[string]bool{
		"amount":     true,
		"status":     true,
		"created_at": true,
	})}
}

// FindBySeller lists commissions earned by a seller, paginated
func (r *GormCommissionRepository) FindBySeller(ctx context.Context, companyID, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[commission.Commission], error) {
	query := r.DB().WithContext(ctx).
		Model(&commission.Commission{}).
		Where("company_id = ? AND seller_id = ?", companyID, sellerID)
	return r.Paginate(ctx, query, filter)
}

// FindByOrder returns the commission generated by an invoiced order, or nil
func (r *GormCommissionRepository) FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) (*commission.Commission, error) {
	var c commission.Commission
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND order_id = ?", companyID, orderID).
		First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("Commission.FindByOrder", err)
	}
	return &c, nil
}

// SumPendingBySeller totals unpaid commissions for a seller
func (r *GormCommissionRepository) SumPendingBySeller(ctx context.Context, companyID, sellerID uuid.UUID) (decimal.Decimal, error) {
	return sumColumn(ctx, r.DB().
		Model(&commission.Commission{}).
		Where("company_id = ? AND seller_id = ? AND status = ?", companyID, sellerID, commission.CommissionStatusPending), "amount")
}

// FindByPeriod lists commissions created inside the window, inclusive
func (r *GormCommissionRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]commission.Commission, error) {
	var commissions []commission.Commission
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND created_at >= ? AND created_at <= ?", companyID, from, to).
		Order("created_at asc").
		Find(&commissions).Error
	if err != nil {
		return nil, TranslateError("Commission.FindByPeriod", err)
	}
	return commissions, nil
}
