package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormServiceRepository implements catalog.ServiceRepository using GORM
type GormServiceRepository struct {
	*CrudRepository[catalog.Service]
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{NewCrudRepository[catalog.Service](db, NameSortFields)}
}

// InUse reports whether any order line references the service
func (r *GormServiceRepository) InUse(ctx context.Context, companyID, serviceID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB().WithContext(ctx).
		Table("service_order_items").
		Joins("JOIN service_orders ON service_orders.id = service_order_items.service_order_id").
		Where("service_orders.company_id = ? AND service_order_items.service_id = ?", companyID, serviceID).
		Count(&count).Error
	if err != nil {
		return false, TranslateError("Service.InUse", err)
	}
	if count > 0 {
		return true, nil
	}
	err = r.DB().WithContext(ctx).
		Table("package_items").
		Joins("JOIN packages ON packages.id = package_items.package_id").
		Where("packages.company_id = ? AND package_items.service_id = ?", companyID, serviceID).
		Count(&count).Error
	if err != nil {
		return false, TranslateError("Service.InUse", err)
	}
	return count > 0, nil
}
