package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/billing"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContractRepository implements billing.ContractRepository using GORM
type GormContractRepository struct {
	*CrudRepository[billing.Contract]
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{NewCrudRepository[billing.Contract](db, NameSortFields)}
}

// FindActive lists contracts eligible for billing runs
func (r *GormContractRepository) FindActive(ctx context.Context, companyID uuid.UUID) ([]billing.Contract, error) {
	var contracts []billing.Contract
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND active = true", companyID).
		Order("created_at asc").
		Find(&contracts).Error
	if err != nil {
		return nil, TranslateError("Contract.FindActive", err)
	}
	return contracts, nil
}

// FindByClient lists contracts for a client, paginated
func (r *GormContractRepository) FindByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[billing.Contract], error) {
	query := r.DB().WithContext(ctx).
		Model(&billing.Contract{}).
		Where("company_id = ? AND client_id = ?", companyID, clientID)
	return r.Paginate(ctx, query, filter)
}
