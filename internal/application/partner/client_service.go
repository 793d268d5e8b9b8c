package partner

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client registration and lookup
type ClientService struct {
	clients partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clients partner.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, companyID uuid.UUID, req CreateClientRequest) (*partner.Client, error) {
	isCustomer := true
	if req.IsCustomer != nil {
		isCustomer = *req.IsCustomer
	}
	isSupplier := req.IsSupplier != nil && *req.IsSupplier

	client, err := partner.NewClient(companyID, req.Name, partner.PersonType(req.PersonType), isCustomer, isSupplier)
	if err != nil {
		return nil, err
	}

	client.TradeName = req.TradeName
	client.Document = req.Document
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.City = req.City
	client.State = req.State
	client.ZipCode = req.ZipCode
	client.Notes = req.Notes
	client.ReplaceContacts(contactsFromInput(req.Contacts))

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Update modifies an existing client; contacts replace the stored collection
func (s *ClientService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateClientRequest) (*partner.Client, error) {
	client, err := s.clients.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		if err := client.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.PersonType != nil {
		pt := partner.PersonType(*req.PersonType)
		if !pt.IsValid() {
			return nil, shared.NewDomainError("INVALID_PERSON_TYPE", "Person type must be FISICA or JURIDICA")
		}
		client.PersonType = pt
	}
	if req.TradeName != nil {
		client.TradeName = *req.TradeName
	}
	if req.Document != nil {
		client.Document = *req.Document
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.City != nil {
		client.City = *req.City
	}
	if req.State != nil {
		client.State = *req.State
	}
	if req.ZipCode != nil {
		client.ZipCode = *req.ZipCode
	}
	if req.IsCustomer != nil {
		client.IsCustomer = *req.IsCustomer
	}
	if req.IsSupplier != nil {
		client.IsSupplier = *req.IsSupplier
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.Active != nil {
		if *req.Active {
			client.Activate()
		} else {
			client.Deactivate()
		}
	}
	if req.Contacts != nil {
		client.ReplaceContacts(contactsFromInput(*req.Contacts))
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Get returns one client with contacts
func (s *ClientService) Get(ctx context.Context, companyID, id uuid.UUID) (*partner.Client, error) {
	client, err := s.clients.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}
	return client, nil
}

// List returns a page of clients
func (s *ClientService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[partner.Client], error) {
	filter = filter.Normalize()
	items, err := s.clients.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.clients.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Search performs a free-text lookup used by order forms
func (s *ClientService) Search(ctx context.Context, companyID uuid.UUID, term string, supplierOnly bool, limit int) ([]partner.Client, error) {
	return s.clients.SearchByName(ctx, companyID, term, supplierOnly, limit)
}

// Delete removes a client and its contacts
func (s *ClientService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.clients.DeleteForCompany(ctx, companyID, id)
}
