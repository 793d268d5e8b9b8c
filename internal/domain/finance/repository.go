package finance

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableRepository defines persistence operations for payables
type PayableRepository interface {
	shared.CompanyRepository[Payable]

	// Settle persists the settled payable and its ledger entry atomically
	Settle(ctx context.Context, payable *Payable, entry *CashFlowEntry) error
	FindOpen(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[Payable], error)
	FindOverdue(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]Payable, error)
	FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]Payable, error)
	SumOpen(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error)
}

// ReceivableRepository defines persistence operations for receivables
type ReceivableRepository interface {
	shared.CompanyRepository[Receivable]

	// Settle persists the settled receivable and its ledger entry atomically
	Settle(ctx context.Context, receivable *Receivable, entry *CashFlowEntry) error
	FindOpen(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[Receivable], error)
	FindOverdue(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]Receivable, error)
	FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]Receivable, error)
	SumOpen(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error)
	// ExistsForContractCompetency guards billing runs against duplicate issues
	ExistsForContractCompetency(ctx context.Context, companyID, contractID uuid.UUID, competency string) (bool, error)
	BulkCreate(ctx context.Context, receivables []*Receivable) error
}

// CashFlowRepository defines persistence operations for the ledger
type CashFlowRepository interface {
	shared.CompanyRepository[CashFlowEntry]

	FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[CashFlowEntry], error)
	BalanceAt(ctx context.Context, companyID uuid.UUID, at time.Time) (decimal.Decimal, error)
	SumByTypeAndPeriod(ctx context.Context, companyID uuid.UUID, entryType CashFlowType, from, to time.Time) (decimal.Decimal, error)
	DeleteBySource(ctx context.Context, companyID uuid.UUID, sourceType string, sourceID uuid.UUID) error
}
