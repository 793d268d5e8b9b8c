package catalog

import (
	"context"
	"strings"

	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ServiceService handles the service catalog. Services referenced by order
// history are deactivated on delete instead of removed.
type ServiceService struct {
	services catalog.ServiceRepository
}

// NewServiceService creates a new ServiceService
func NewServiceService(services catalog.ServiceRepository) *ServiceService {
	return &ServiceService{services: services}
}

// Create registers a new service
func (s *ServiceService) Create(ctx context.Context, companyID uuid.UUID, req CreateServiceRequest) (*catalog.Service, error) {
	service, err := catalog.NewService(companyID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	service.Code = req.Code
	service.Description = req.Description

	if err := s.services.Save(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// Update modifies an existing service
func (s *ServiceService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateServiceRequest) (*catalog.Service, error) {
	service, err := s.services.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
		}
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		service.Code = *req.Code
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil {
		if err := service.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			service.Activate()
		} else {
			service.Deactivate()
		}
	}

	if err := s.services.Save(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// Get returns one service
func (s *ServiceService) Get(ctx context.Context, companyID, id uuid.UUID) (*catalog.Service, error) {
	service, err := s.services.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, shared.ErrNotFound
	}
	return service, nil
}

// List returns a page of services
func (s *ServiceService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.Service], error) {
	filter = filter.Normalize()
	items, err := s.services.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.services.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes the service, or deactivates it when order lines still
// reference it
func (s *ServiceService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	service, err := s.services.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	if service == nil {
		return shared.ErrNotFound
	}

	inUse, err := s.services.InUse(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inUse {
		service.Deactivate()
		return s.services.Save(ctx, service)
	}
	return s.services.DeleteForCompany(ctx, companyID, id)
}
