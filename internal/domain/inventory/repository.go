package inventory

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementRepository defines persistence operations for the stock ledger
type MovementRepository interface {
	shared.CompanyRepository[Movement]

	FindByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[Movement], error)
	FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[Movement], error)
	// CreateAndApply persists the movement and applies its delta to the
	// product's stored stock in one transaction
	CreateAndApply(ctx context.Context, movement *Movement) error
}

// IncomingNoteRepository defines persistence operations for incoming notes
type IncomingNoteRepository interface {
	shared.CompanyRepository[IncomingNote]

	// Post persists the posted note, its movements and the stock deltas atomically
	Post(ctx context.Context, note *IncomingNote, movements []*Movement) error
}
