package billing

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContractRepository defines persistence operations for contracts
type ContractRepository interface {
	shared.CompanyRepository[Contract]

	FindActive(ctx context.Context, companyID uuid.UUID) ([]Contract, error)
	FindByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[Contract], error)
}
