package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSellerRepository implements partner.SellerRepository using GORM
type GormSellerRepository struct {
	*CrudRepository[partner.Seller]
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{NewCrudRepository[partner.Seller](db, NameSortFields)}
}

// FindActive returns the company's active sellers ordered by name
func (r *GormSellerRepository) FindActive(ctx context.Context, companyID uuid.UUID) ([]partner.Seller, error) {
	var sellers []partner.Seller
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("name asc").
		Find(&sellers).Error
	if err != nil {
		return nil, TranslateError("Seller.FindActive", err)
	}
	return sellers, nil
}
