package crm

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OpportunityRepository defines persistence operations for pipeline cards
type OpportunityRepository interface {
	shared.CompanyRepository[Opportunity]

	// FindBoard returns every open card plus cards closed in the last days,
	// ordered by stage and position
	FindBoard(ctx context.Context, companyID uuid.UUID) ([]Opportunity, error)
	FindByStage(ctx context.Context, companyID uuid.UUID, stage OpportunityStage, filter shared.Filter) (*shared.Paginated[Opportunity], error)
	CountByStage(ctx context.Context, companyID uuid.UUID) (map[OpportunityStage]int64, error)
}
