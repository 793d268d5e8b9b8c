package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	*CrudRepository[catalog.Product]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{NewCrudRepository[catalog.Product](db, NameSortFields)}
}

// SearchByName finds active products whose name or code matches
func (r *GormProductRepository) SearchByName(ctx context.Context, companyID uuid.UUID, name string, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	var products []catalog.Product
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Where("name ILIKE ? OR code ILIKE ?", "%"+name+"%", "%"+name+"%").
		Order("name asc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, TranslateError("Product.SearchByName", err)
	}
	return products, nil
}

// FindBelowMinimum returns active products whose stock sits below the
// configured minimum
func (r *GormProductRepository) FindBelowMinimum(ctx context.Context, companyID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND active = true AND min_stock > 0 AND stock < min_stock", companyID).
		Order("name asc").
		Find(&products).Error
	if err != nil {
		return nil, TranslateError("Product.FindBelowMinimum", err)
	}
	return products, nil
}

// AdjustStock applies a stock delta with a single UPDATE so concurrent
// movements never lose increments
func (r *GormProductRepository) AdjustStock(ctx context.Context, companyID, productID uuid.UUID, delta decimal.Decimal) error {
	result := r.DB().WithContext(ctx).
		Model(&catalog.Product{}).
		Where("company_id = ? AND id = ?", companyID, productID).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return TranslateError("Product.AdjustStock", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
