package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormServiceOrderRepository implements trade.ServiceOrderRepository using GORM
type GormServiceOrderRepository struct {
	*CrudRepository[trade.ServiceOrder]
}

// NewGormServiceOrderRepository creates a new GormServiceOrderRepository
func NewGormServiceOrderRepository(db *gorm.DB) *GormServiceOrderRepository {
	return &GormServiceOrderRepository{NewCrudRepository[trade.ServiceOrder](db, OrderSortFields)}
}

// NextNumber allocates the next sequential number for the company within the
// current year
func (r *GormServiceOrderRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextOrderNumber(ctx, r.DB(), "service_orders", "OS", companyID)
}

// Save persists the order and replaces its item collection in one transaction
func (r *GormServiceOrderRepository) Save(ctx context.Context, order *trade.ServiceOrder) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&trade.ServiceOrderItem{}).Error; err != nil {
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
	return TranslateError("ServiceOrder.Save", err)
}

// FindByIDForCompany loads the order with its items
func (r *GormServiceOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.ServiceOrder, error) {
	var order trade.ServiceOrder
	err := r.DB().WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("ServiceOrder.FindByIDForCompany", err)
	}
	return &order, nil
}

// FindBoard returns open orders for the kanban view, oldest first so columns
// read top-down in arrival order
func (r *GormServiceOrderRepository) FindBoard(ctx context.Context, companyID uuid.UUID) ([]trade.ServiceOrder, error) {
	var orders []trade.ServiceOrder
	err := r.DB().WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND status NOT IN ?", companyID,
			[]trade.ServiceOrderStatus{trade.ServiceOrderStatusDone, trade.ServiceOrderStatusCancelled}).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, TranslateError("ServiceOrder.FindBoard", err)
	}
	return orders, nil
}

// FindByStatus lists orders in the given status, paginated
func (r *GormServiceOrderRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.ServiceOrderStatus, filter shared.Filter) (*shared.Paginated[trade.ServiceOrder], error) {
	query := r.DB().WithContext(ctx).
		Model(&trade.ServiceOrder{}).
		Where("company_id = ? AND status = ?", companyID, status)
	return r.Paginate(ctx, query, filter)
}

// DeleteForCompany removes the order and its items
func (r *GormServiceOrderRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&trade.ServiceOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("company_id = ? AND id = ?", companyID, id).Delete(&trade.ServiceOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return TranslateError("ServiceOrder.DeleteForCompany", err)
}
