package billing

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/billing"
	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContractService handles recurring billing contracts
type ContractService struct {
	contracts     billing.ContractRepository
	clients       partner.ClientRepository
	defaultDueDay int
}

// NewContractService creates a new ContractService
func NewContractService(contracts billing.ContractRepository, clients partner.ClientRepository, defaultDueDay int) *ContractService {
	return &ContractService{contracts: contracts, clients: clients, defaultDueDay: defaultDueDay}
}

// Create opens a new active contract
func (s *ContractService) Create(ctx context.Context, companyID uuid.UUID, req CreateContractRequest) (*billing.Contract, error) {
	client, err := s.clients.FindByIDForCompany(ctx, companyID, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Client does not exist")
	}

	dueDay := s.defaultDueDay
	if req.DueDay != nil {
		dueDay = *req.DueDay
	}
	startsAt := time.Now()
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}

	contract, err := billing.NewContract(companyID, client.ID, client.Name, req.Description, req.Amount, dueDay, startsAt)
	if err != nil {
		return nil, err
	}
	contract.Notes = req.Notes

	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// Update modifies a contract
func (s *ContractService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateContractRequest) (*billing.Contract, error) {
	contract, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if *req.Description == "" {
			return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
		}
		contract.Description = *req.Description
	}
	if req.Amount != nil {
		if err := contract.SetAmount(*req.Amount); err != nil {
			return nil, err
		}
	}
	if req.DueDay != nil {
		if err := contract.SetDueDay(*req.DueDay); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		contract.Notes = *req.Notes
	}
	contract.Touch()

	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// Terminate closes the contract; future billing runs skip it
func (s *ContractService) Terminate(ctx context.Context, companyID, id uuid.UUID, endsAt time.Time) (*billing.Contract, error) {
	contract, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if endsAt.IsZero() {
		endsAt = time.Now()
	}
	if err := contract.Terminate(endsAt); err != nil {
		return nil, err
	}
	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// Reactivate reopens a terminated contract
func (s *ContractService) Reactivate(ctx context.Context, companyID, id uuid.UUID) (*billing.Contract, error) {
	contract, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	contract.Reactivate()
	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// Get returns one contract
func (s *ContractService) Get(ctx context.Context, companyID, id uuid.UUID) (*billing.Contract, error) {
	return s.find(ctx, companyID, id)
}

// List returns a page of contracts
func (s *ContractService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[billing.Contract], error) {
	filter = filter.Normalize()
	items, err := s.contracts.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.contracts.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByClient returns a page of the client's contracts
func (s *ContractService) ListByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[billing.Contract], error) {
	return s.contracts.FindByClient(ctx, companyID, clientID, filter.Normalize())
}

// Delete removes a contract. Receivables already issued stay.
func (s *ContractService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.contracts.DeleteForCompany(ctx, companyID, id)
}

func (s *ContractService) find(ctx context.Context, companyID, id uuid.UUID) (*billing.Contract, error) {
	contract, err := s.contracts.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, shared.ErrNotFound
	}
	return contract, nil
}
