package persistence

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/crm"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// closedCardWindow keeps recently won and lost cards visible on the board
const closedCardWindow = 30 * 24 * time.Hour

// GormOpportunityRepository implements crm.OpportunityRepository using GORM
type GormOpportunityRepository struct {
	*CrudRepository[crm.Opportunity]
}

// NewGormOpportunityRepository creates a new GormOpportunityRepository
func NewGormOpportunityRepository(db *gorm.DB) *GormOpportunityRepository {
	return &GormOpportunityRepository{NewCrudRepository[crm.Opportunity](db, map[string]bool{
		"title":          true,
		"stage":          true,
		"expected_value": true,
		"position":       true,
		"created_at":     true,
	})}
}

// FindBoard returns open cards plus cards closed inside the retention window,
// ordered by stage and position
func (r *GormOpportunityRepository) FindBoard(ctx context.Context, companyID uuid.UUID) ([]crm.Opportunity, error) {
	cutoff := time.Now().Add(-closedCardWindow)
	var cards []crm.Opportunity
	err := r.DB().WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("closed_at IS NULL OR closed_at >= ?", cutoff).
		Order("stage asc, position asc, created_at asc").
		Find(&cards).Error
	if err != nil {
		return nil, TranslateError("Opportunity.FindBoard", err)
	}
	return cards, nil
}

// FindByStage lists cards in one column, paginated
func (r *GormOpportunityRepository) FindByStage(ctx context.Context, companyID uuid.UUID, stage crm.OpportunityStage, filter shared.Filter) (*shared.Paginated[crm.Opportunity], error) {
	query := r.DB().WithContext(ctx).
		Model(&crm.Opportunity{}).
		Where("company_id = ? AND stage = ?", companyID, stage)
	return r.Paginate(ctx, query, filter)
}

// CountByStage returns the number of cards per column
func (r *GormOpportunityRepository) CountByStage(ctx context.Context, companyID uuid.UUID) (map[crm.OpportunityStage]int64, error) {
	var rows []struct {
		Stage crm.OpportunityStage
		Count int64
	}
	err := r.DB().WithContext(ctx).
		Model(&crm.Opportunity{}).
		Select("stage, COUNT(*) AS count").
		Where("company_id = ?", companyID).
		Group("stage").
		Scan(&rows).Error
	if err != nil {
		return nil, TranslateError("Opportunity.CountByStage", err)
	}

	counts := make(map[crm.OpportunityStage]int64, len(rows))
	for _, row := range rows {
		counts[row.Stage] = row.Count
	}
	return counts, nil
}
