package finance

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableService handles amounts to collect, mirroring PayableService
type ReceivableService struct {
	receivables finance.ReceivableRepository
	ledger      finance.CashFlowRepository
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(receivables finance.ReceivableRepository, ledger finance.CashFlowRepository) *ReceivableService {
	return &ReceivableService{receivables: receivables, ledger: ledger}
}

// Create registers a new open receivable
func (s *ReceivableService) Create(ctx context.Context, companyID uuid.UUID, req CreateReceivableRequest) (*finance.Receivable, error) {
	receivable, err := finance.NewReceivable(companyID, req.Description, req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}
	receivable.ClientID = req.ClientID
	receivable.Category = req.Category
	receivable.Notes = req.Notes
	receivable.SourceType = finance.SourceTypeManual

	if err := s.receivables.Save(ctx, receivable); err != nil {
		return nil, err
	}
	return receivable, nil
}

// Update modifies an open receivable
func (s *ReceivableService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateReceivableRequest) (*finance.Receivable, error) {
	receivable, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if receivable.IsSettled() {
		return nil, shared.ErrAlreadySettled
	}

	if req.Description != nil {
		receivable.Description = *req.Description
	}
	if req.ClientID != nil {
		receivable.ClientID = req.ClientID
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
		}
		receivable.Amount = *req.Amount
	}
	if req.DueDate != nil {
		receivable.DueDate = *req.DueDate
	}
	if req.Category != nil {
		receivable.Category = *req.Category
	}
	if req.Notes != nil {
		receivable.Notes = *req.Notes
	}
	receivable.Touch()

	if err := s.receivables.Save(ctx, receivable); err != nil {
		return nil, err
	}
	return receivable, nil
}

// Settle collects the receivable and writes the inflow ledger entry atomically
func (s *ReceivableService) Settle(ctx context.Context, companyID, id uuid.UUID, req SettleRequest) (*finance.Receivable, error) {
	receivable, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	amount := receivable.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	receivedAt := time.Now()
	if req.Date != nil {
		receivedAt = *req.Date
	}
	if err := receivable.Settle(receivedAt, amount); err != nil {
		return nil, err
	}
	entry, err := finance.EntryFromReceivableSettlement(receivable)
	if err != nil {
		return nil, err
	}
	if err := s.receivables.Settle(ctx, receivable, entry); err != nil {
		return nil, err
	}
	return receivable, nil
}

// Reopen reverts a settlement and removes the ledger entry it created
func (s *ReceivableService) Reopen(ctx context.Context, companyID, id uuid.UUID) (*finance.Receivable, error) {
	receivable, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := receivable.Reopen(); err != nil {
		return nil, err
	}
	if err := s.receivables.Save(ctx, receivable); err != nil {
		return nil, err
	}
	if err := s.ledger.DeleteBySource(ctx, companyID, finance.SourceTypeReceivable, receivable.ID); err != nil {
		return nil, err
	}
	return receivable, nil
}

// Get returns one receivable
func (s *ReceivableService) Get(ctx context.Context, companyID, id uuid.UUID) (*finance.Receivable, error) {
	return s.find(ctx, companyID, id)
}

// List returns a page of receivables
func (s *ReceivableService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Receivable], error) {
	filter = filter.Normalize()
	items, err := s.receivables.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.receivables.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListOpen returns a page of uncollected receivables
func (s *ReceivableService) ListOpen(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Receivable], error) {
	return s.receivables.FindOpen(ctx, companyID, filter.Normalize())
}

// ListOverdue returns the uncollected receivables past their due date
func (s *ReceivableService) ListOverdue(ctx context.Context, companyID uuid.UUID) ([]finance.Receivable, error) {
	return s.receivables.FindOverdue(ctx, companyID, time.Now())
}

// OpenTotal sums the uncollected receivables
func (s *ReceivableService) OpenTotal(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	return s.receivables.SumOpen(ctx, companyID)
}

// Delete removes an open receivable
func (s *ReceivableService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	receivable, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if receivable.IsSettled() {
		return shared.ErrAlreadySettled
	}
	return s.receivables.DeleteForCompany(ctx, companyID, id)
}

func (s *ReceivableService) find(ctx context.Context, companyID, id uuid.UUID) (*finance.Receivable, error) {
	receivable, err := s.receivables.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if receivable == nil {
		return nil, shared.ErrNotFound
	}
	return receivable, nil
}
