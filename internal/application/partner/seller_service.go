package partner

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SellerService handles seller registration
type SellerService struct {
	sellers partner.SellerRepository
}

// NewSellerService creates a new SellerService
func NewSellerService(sellers partner.SellerRepository) *SellerService {
	return &SellerService{sellers: sellers}
}

// Create registers a new seller
func (s *SellerService) Create(ctx context.Context, companyID uuid.UUID, req CreateSellerRequest) (*partner.Seller, error) {
	seller, err := partner.NewSeller(companyID, req.Name, req.CommissionPercent)
	if err != nil {
		return nil, err
	}
	seller.Email = req.Email
	seller.Phone = req.Phone

	if err := s.sellers.Save(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// Update modifies an existing seller
func (s *SellerService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateSellerRequest) (*partner.Seller, error) {
	seller, err := s.sellers.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		seller.Name = *req.Name
	}
	if req.Email != nil {
		seller.Email = *req.Email
	}
	if req.Phone != nil {
		seller.Phone = *req.Phone
	}
	if req.CommissionPercent != nil {
		if err := seller.SetCommissionPercent(*req.CommissionPercent); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			seller.Activate()
		} else {
			seller.Deactivate()
		}
	}

	if err := s.sellers.Save(ctx, seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// Get returns one seller
func (s *SellerService) Get(ctx context.Context, companyID, id uuid.UUID) (*partner.Seller, error) {
	seller, err := s.sellers.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, shared.ErrNotFound
	}
	return seller, nil
}

// List returns a page of sellers
func (s *SellerService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[partner.Seller], error) {
	filter = filter.Normalize()
	items, err := s.sellers.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.sellers.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListActive returns every active seller, used by order forms
func (s *SellerService) ListActive(ctx context.Context, companyID uuid.UUID) ([]partner.Seller, error) {
	return s.sellers.FindActive(ctx, companyID)
}

// Delete removes a seller
func (s *SellerService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.sellers.DeleteForCompany(ctx, companyID, id)
}
