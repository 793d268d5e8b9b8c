package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSalesOrderRepository implements trade.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	*CrudRepository[trade.SalesOrder]
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{NewCrudRepository[trade.SalesOrder](db, OrderSortFields)}
}

// NextNumber allocates the next sequential number for the company within the
// current year
func (r *GormSalesOrderRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextOrderNumber(ctx, r.DB(), "sales_orders", "PV", companyID)
}

// Save persists the order and replaces its item collection in one transaction
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&trade.SalesOrderItem{}).Error; err != nil {
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
	return TranslateError("SalesOrder.Save", err)
}

// FindByIDForCompany loads the order with its items
func (r *GormSalesOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	err := r.DB().WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("SalesOrder.FindByIDForCompany", err)
	}
	return &order, nil
}

// FindByStatus lists orders in the given status, paginated
func (r *GormSalesOrderRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status trade.SalesOrderStatus, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	query := r.DB().WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Where("company_id = ? AND status = ?", companyID, status)
	return r.Paginate(ctx, query, filter)
}

// FindByClient lists orders for a client, paginated
func (r *GormSalesOrderRepository) FindByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[trade.SalesOrder], error) {
	query := r.DB().WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Where("company_id = ? AND client_id = ?", companyID, clientID)
	return r.Paginate(ctx, query, filter)
}

// DeleteForCompany removes the order and its items
func (r *GormSalesOrderRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&trade.SalesOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("company_id = ? AND id = ?", companyID, id).Delete(&trade.SalesOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return TranslateError("SalesOrder.DeleteForCompany", err)
}

// nextOrderNumber allocates a per-company sequential number within the current
// year. The scan happens inside a transaction so two concurrent callers do not
// receive the same sequence.
func nextOrderNumber(ctx context.Context, db *gorm.DB, table, prefix string, companyID uuid.UUID) (string, error) {
	year := time.Now().Year()
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)

	var number string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last struct {
			Number string
		}
		err := tx.Table(table).
			Select("number").
			Where("company_id = ? AND number LIKE ?", companyID, pattern).
			Order("number desc").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Limit(1).
			Scan(&last).Error
		if err != nil {
			return err
		}

		seq := 1
		if last.Number != "" {
			var lastYear int
			if _, err := fmt.Sscanf(last.Number, prefix+"-%d-%d", &lastYear, &seq); err == nil {
				seq++
			}
		}
		number = fmt.Sprintf("%s-%d-%05d", prefix, year, seq)
		return nil
	})
	if err != nil {
		return "", TranslateError("nextOrderNumber", err)
	}
	return number, nil
}
