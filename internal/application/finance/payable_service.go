package finance

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableService handles bills to pay. Settling writes the ledger entry in
// the same transaction; reopening removes it again.
type PayableService struct {
	payables finance.PayableRepository
	ledger   finance.CashFlowRepository
}

// NewPayableService creates a new PayableService
func NewPayableService(payables finance.PayableRepository, ledger finance.CashFlowRepository) *PayableService {
	return &PayableService{payables: payables, ledger: ledger}
}

// Create registers a new open payable
func (s *PayableService) Create(ctx context.Context, companyID uuid.UUID, req CreatePayableRequest) (*finance.Payable, error) {
	payable, err := finance.NewPayable(companyID, req.Description, req.Amount, req.DueDate)
	if err != nil {
		return nil, err
	}
	payable.SupplierID = req.SupplierID
	payable.Category = req.Category
	payable.Notes = req.Notes
	payable.SourceType = finance.SourceTypeManual

	if err := s.payables.Save(ctx, payable); err != nil {
		return nil, err
	}
	return payable, nil
}

// Update modifies an open payable
func (s *PayableService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdatePayableRequest) (*finance.Payable, error) {
	payable, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if payable.IsSettled() {
		return nil, shared.ErrAlreadySettled
	}

	if req.Description != nil {
		payable.Description = *req.Description
	}
	if req.SupplierID != nil {
		payable.SupplierID = req.SupplierID
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
		}
		payable.Amount = *req.Amount
	}
	if req.DueDate != nil {
		payable.DueDate = *req.DueDate
	}
	if req.Category != nil {
		payable.Category = *req.Category
	}
	if req.Notes != nil {
		payable.Notes = *req.Notes
	}
	payable.Touch()

	if err := s.payables.Save(ctx, payable); err != nil {
		return nil, err
	}
	return payable, nil
}

// Settle pays the payable and writes the outflow ledger entry atomically
func (s *PayableService) Settle(ctx context.Context, companyID, id uuid.UUID, req SettleRequest) (*finance.Payable, error) {
	payable, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	amount := payable.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	paidAt := time.Now()
	if req.Date != nil {
		paidAt = *req.Date
	}
	if err := payable.Settle(paidAt, amount); err != nil {
		return nil, err
	}
	entry, err := finance.EntryFromPayableSettlement(payable)
	if err != nil {
		return nil, err
	}
	if err := s.payables.Settle(ctx, payable, entry); err != nil {
		return nil, err
	}
	return payable, nil
}

// Reopen reverts a settlement and removes the ledger entry it created
func (s *PayableService) Reopen(ctx context.Context, companyID, id uuid.UUID) (*finance.Payable, error) {
	payable, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := payable.Reopen(); err != nil {
		return nil, err
	}
	if err := s.payables.Save(ctx, payable); err != nil {
		return nil, err
	}
	if err := s.ledger.DeleteBySource(ctx, companyID, finance.SourceTypePayable, payable.ID); err != nil {
		return nil, err
	}
	return payable, nil
}

// Get returns one payable
func (s *PayableService) Get(ctx context.Context, companyID, id uuid.UUID) (*finance.Payable, error) {
	return s.find(ctx, companyID, id)
}

// List returns a page of payables
func (s *PayableService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Payable], error) {
	filter = filter.Normalize()
	items, err := s.payables.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.payables.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListOpen returns a page of unpaid payables
func (s *PayableService) ListOpen(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Payable], error) {
	return s.payables.FindOpen(ctx, companyID, filter.Normalize())
}

// ListOverdue returns the unpaid payables past their due date
func (s *PayableService) ListOverdue(ctx context.Context, companyID uuid.UUID) ([]finance.Payable, error) {
	return s.payables.FindOverdue(ctx, companyID, time.Now())
}

// OpenTotal sums the unpaid payables
func (s *PayableService) OpenTotal(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	return s.payables.SumOpen(ctx, companyID)
}

// Delete removes an open payable
func (s *PayableService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	payable, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}
	if payable.IsSettled() {
		return shared.ErrAlreadySettled
	}
	return s.payables.DeleteForCompany(ctx, companyID, id)
}

func (s *PayableService) find(ctx context.Context, companyID, id uuid.UUID) (*finance.Payable, error) {
	payable, err := s.payables.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if payable == nil {
		return nil, shared.ErrNotFound
	}
	return payable, nil
}
