package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseOrderRepository implements trade.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	*CrudRepository[trade.PurchaseOrder]
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{NewCrudRepository[trade.PurchaseOrder](db, OrderSortFields)}
}

// NextNumber allocates the next sequential number for the company within the
// current year
func (r *GormPurchaseOrderRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextOrderNumber(ctx, r.DB(), "purchase_orders", "PC", companyID)
}

// Save persists the order and replaces its item collection in one transaction
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&trade.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		return tx.Create(&order.Items).Error
	})
	return TranslateError("PurchaseOrder.Save", err)
}

// FindByIDForCompany loads the order with its items
func (r *GormPurchaseOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	err := r.DB().WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("PurchaseOrder.FindByIDForCompany", err)
	}
	return &order, nil
}

// FindByStatus lists orders in the given status, paginated
func (r *GormPurchaseOrderRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.PurchaseOrderStatus, filter shared.Filter) (*shared.Paginated[trade.PurchaseOrder], error) {
	query := r.DB().WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("company_id = ? AND status = ?", companyID, status)
	return r.Paginate(ctx, query, filter)
}

// FindBySupplier lists orders for a supplier, paginated
func (r *GormPurchaseOrderRepository) FindBySupplier(ctx context.Context, companyID, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.PurchaseOrder], error) {
	query := r.DB().WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("company_id = ? AND supplier_id = ?", companyID, supplierID)
	return r.Paginate(ctx, query, filter)
}

// DeleteForCompany removes the order and its items
func (r *GormPurchaseOrderRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&trade.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("company_id = ? AND id = ?", companyID, id).Delete(&trade.PurchaseOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return TranslateError("PurchaseOrder.DeleteForCompany", err)
}
