package commission

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/commission"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellerCommissionSummary aggregates a seller's commissions in a period
type SellerCommissionSummary struct {
	SellerID    uuid.UUID       `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	Count       int             `json:"count"`
	Total       decimal.Decimal `json:"total"`
	PendingOnly decimal.Decimal `json:"pending_total"`
}

// CommissionService reads and settles seller commissions. Creation happens
// when a sales order is invoiced, never directly.
type CommissionService struct {
	commissions commission.CommissionRepository
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(commissions commission.CommissionRepository) *CommissionService {
	return &CommissionService{commissions: commissions}
}

// Get returns one commission
func (s *CommissionService) Get(ctx context.Context, companyID, id uuid.UUID) (*commission.Commission, error) {
	c, err := s.commissions.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

// List returns a page of commissions
func (s *CommissionService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[commission.Commission], error) {
	filter = filter.Normalize()
	items, err := s.commissions.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.commissions.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListBySeller returns a page of the seller's commissions
func (s *CommissionService) ListBySeller(ctx context.Context, companyID, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[commission.Commission], error) {
	return s.commissions.FindBySeller(ctx, companyID, sellerID, filter.Normalize())
}

// PendingTotal sums the seller's unpaid commissions
func (s *CommissionService) PendingTotal(ctx context.Context, companyID, sellerID uuid.UUID) (decimal.Decimal, error) {
	return s.commissions.SumPendingBySeller(ctx, companyID, sellerID)
}

// MarkPaid settles a pending commission
func (s *CommissionService) MarkPaid(ctx context.Context, companyID, id uuid.UUID, paidAt time.Time) (*commission.Commission, error) {
	c, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := c.MarkPaid(paidAt); err != nil {
		return nil, err
	}
	if err := s.commissions.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// PeriodSummary aggregates commissions per seller inside the window
func (s *CommissionService) PeriodSummary(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]SellerCommissionSummary, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end must be after its start")
	}
	commissions, err := s.commissions.FindByPeriod(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]int)
	summaries := make([]SellerCommissionSummary, 0)
	for _, c := range commissions {
		pos, ok := index[c.SellerID]
		if !ok {
			pos = len(summaries)
			index[c.SellerID] = pos
			summaries = append(summaries, SellerCommissionSummary{
				SellerID:    c.SellerID,
				SellerName:  c.SellerName,
				Total:       decimal.Zero,
				PendingOnly: decimal.Zero,
			})
		}
		summaries[pos].Count++
		summaries[pos].Total = summaries[pos].Total.Add(c.Amount)
		if c.Status == commission.CommissionStatusPending {
			summaries[pos].PendingOnly = summaries[pos].PendingOnly.Add(c.Amount)
		}
	}
	return summaries, nil
}
