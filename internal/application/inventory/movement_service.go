package inventory

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/inventory"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementService records manual stock movements. Movements born from
// invoicing, receiving and note posting are created by their source
// services.
type MovementService struct {
	movements inventory.MovementRepository
	products  catalog.ProductRepository
}

// NewMovementService creates a new MovementService
func NewMovementService(movements inventory.MovementRepository, products catalog.ProductRepository) *MovementService {
	return &MovementService{movements: movements, products: products}
}

// Create records a manual movement and applies its delta to the product
func (s *MovementService) Create(ctx context.Context, companyID uuid.UUID, req CreateMovementRequest) (*inventory.Movement, error) {
	product, err := s.products.FindByIDForCompany(ctx, companyID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	movement, err := inventory.NewMovement(companyID, product.ID, product.Name, inventory.MovementType(req.Type), req.Quantity, date)
	if err != nil {
		return nil, err
	}
	if req.UnitCost != nil {
		movement.UnitCost = *req.UnitCost
	}
	movement.Reason = req.Reason
	movement.SourceType = inventory.SourceTypeManual

	if err := s.movements.CreateAndApply(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// List returns a page of movements
func (s *MovementService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.Movement], error) {
	filter = filter.Normalize()
	items, err := s.movements.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.movements.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByProduct returns a page of the product's ledger
func (s *MovementService) ListByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventory.Movement], error) {
	return s.movements.FindByProduct(ctx, companyID, productID, filter.Normalize())
}

// ListByPeriod returns a page of movements inside the window
func (s *MovementService) ListByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[inventory.Movement], error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after its start")
	}
	return s.movements.FindByPeriod(ctx, companyID, from, to, filter.Normalize())
}

// BelowMinimum lists active products under their minimum stock
func (s *MovementService) BelowMinimum(ctx context.Context, companyID uuid.UUID) ([]catalog.Product, error) {
	return s.products.FindBelowMinimum(ctx, companyID)
}
