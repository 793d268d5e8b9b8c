package finance

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowSummary aggregates a ledger period
type CashFlowSummary struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	Inflow         decimal.Decimal `json:"inflow"`
	Outflow        decimal.Decimal `json:"outflow"`
	Net            decimal.Decimal `json:"net"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// CashFlowService handles the company ledger. Entries born from settlements
// are managed by their source documents; this service only creates manual
// ones.
type CashFlowService struct {
	ledger finance.CashFlowRepository
}

// NewCashFlowService creates a new CashFlowService
func NewCashFlowService(ledger finance.CashFlowRepository) *CashFlowService {
	return &CashFlowService{ledger: ledger}
}

// Create records a manual ledger entry
func (s *CashFlowService) Create(ctx context.Context, companyID uuid.UUID, req CreateCashFlowEntryRequest) (*finance.CashFlowEntry, error) {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	entry, err := finance.NewCashFlowEntry(companyID, finance.CashFlowType(req.Type), req.Description, req.Amount, date)
	if err != nil {
		return nil, err
	}
	entry.Category = req.Category
	entry.SourceType = finance.SourceTypeManual

	if err := s.ledger.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByPeriod returns a page of entries inside the window
func (s *CashFlowService) ListByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[finance.CashFlowEntry], error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after its start")
	}
	return s.ledger.FindByPeriod(ctx, companyID, from, to, filter.Normalize())
}

// Summary aggregates inflow, outflow and running balances for the window
func (s *CashFlowService) Summary(ctx context.Context, companyID uuid.UUID, from, to time.Time) (*CashFlowSummary, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after its start")
	}

	inflow, err := s.ledger.SumByTypeAndPeriod(ctx, companyID, finance.CashFlowTypeIn, from, to)
	if err != nil {
		return nil, err
	}
	outflow, err := s.ledger.SumByTypeAndPeriod(ctx, companyID, finance.CashFlowTypeOut, from, to)
	if err != nil {
		return nil, err
	}
	opening, err := s.ledger.BalanceAt(ctx, companyID, from)
	if err != nil {
		return nil, err
	}

	net := inflow.Sub(outflow)
	return &CashFlowSummary{
		From:           from,
		To:             to,
		Inflow:         inflow,
		Outflow:        outflow,
		Net:            net,
		OpeningBalance: opening,
		ClosingBalance: opening.Add(net),
	}, nil
}

// Balance returns the running balance at a point in time
func (s *CashFlowService) Balance(ctx context.Context, companyID uuid.UUID, at time.Time) (decimal.Decimal, error) {
	return s.ledger.BalanceAt(ctx, companyID, at)
}

// Delete removes a manual entry. Entries tied to a settlement must be
// removed by reopening their source document.
func (s *CashFlowService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	entry, err := s.ledger.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return shared.ErrNotFound
	}
	if entry.SourceType != finance.SourceTypeManual && entry.SourceType != "" {
		return shared.NewDomainError("ENTRY_HAS_SOURCE", "Entry belongs to a source document; reopen it instead")
	}
	return s.ledger.DeleteForCompany(ctx, companyID, id)
}
