package persistence

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementRepository implements inventory.MovementRepository using GORM
type GormMovementRepository struct {
	*CrudRepository[inventory.Movement]
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{NewCrudRepository[inventory.Movement](db, map[string]bool{
		"date":       true,
		"type":       true,
		"quantity":   true,
		"created_at": true,
	})}
}

// FindByProduct lists movements of one product, paginated
func (r *GormMovementRepository) FindByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.Movement], error) {
	query := r.DB().WithContext(ctx).
		Model(&inventory.Movement{}).
		Where("company_id = ? AND product_id = ?", companyID, productID)
	return r.Paginate(ctx, query, filter)
}

// FindByPeriod lists movements inside the window, paginated
func (r *GormMovementRepository) FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[inventory.Movement], error) {
	query := r.DB().WithContext(ctx).
		Model(&inventory.Movement{}).
		Where("company_id = ? AND date >= ? AND date <= ?", companyID, from, to)
	return r.Paginate(ctx, query, filter)
}

// CreateAndApply writes the movement and its stock delta in one transaction
// so the ledger and the stored stock never diverge
func (r *GormMovementRepository) CreateAndApply(ctx context.Context, movement *inventory.Movement) error {
	err := r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyMovement(tx, movement)
	})
	return TranslateError("Movement.CreateAndApply", err)
}

// applyMovement inserts the movement and updates the product stock inside
// the caller's transaction
func applyMovement(tx *gorm.DB, movement *inventory.Movement) error {
	if err := tx.Create(movement).Error; err != nil {
		return err
	}
	result := tx.Model(&catalog.Product{}).
		Where("company_id = ? AND id = ?", movement.CompanyID, movement.ProductID).
		Update("stock", gorm.Expr("stock + ?", movement.StockDelta()))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
