package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/billing"
	"github.com/gestor-erp/backend/internal/domain/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillingRunService issues the monthly receivables of active contracts.
// A run is idempotent per competency: contracts already billed for the
// month are skipped, so it is safe to trigger twice.
type BillingRunService struct {
	contracts   billing.ContractRepository
	receivables finance.ReceivableRepository
	logger      *zap.Logger
}

// NewBillingRunService creates a new BillingRunService
func NewBillingRunService(contracts billing.ContractRepository, receivables finance.ReceivableRepository, logger *zap.Logger) *BillingRunService {
	return &BillingRunService{contracts: contracts, receivables: receivables, logger: logger}
}

// Run issues the receivables of one competency month for the company
func (s *BillingRunService) Run(ctx context.Context, companyID uuid.UUID, req BillingRunRequest) (*BillingRunResult, error) {
	comp := billing.CompetencyOf(time.Now())
	if req.Competency != "" {
		parsed, err := billing.ParseCompetency(req.Competency)
		if err != nil {
			return nil, err
		}
		comp = parsed
	}

	contracts, err := s.contracts.FindActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := &BillingRunResult{Competency: comp.String()}
	issued := make([]*finance.Receivable, 0, len(contracts))
	for i := range contracts {
		contract := &contracts[i]
		if !contract.BillsIn(comp) {
			result.OutOfRange++
			continue
		}
		exists, err := s.receivables.ExistsForContractCompetency(ctx, companyID, contract.ID, comp.String())
		if err != nil {
			return nil, err
		}
		if exists {
			result.Existing++
			continue
		}

		description := fmt.Sprintf("%s (%s)", contract.Description, comp.String())
		receivable, err := finance.NewContractReceivable(companyID, contract.ID, contract.ClientID, description, contract.Amount, contract.DueDateFor(comp), comp.String())
		if err != nil {
			return nil, err
		}
		issued = append(issued, receivable)
	}

	if err := s.receivables.BulkCreate(ctx, issued); err != nil {
		return nil, err
	}
	result.Created = len(issued)

	s.logger.Info("billing run finished",
		zap.String("company_id", companyID.String()),
		zap.String("competency", result.Competency),
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing),
		zap.Int("out_of_range", result.OutOfRange))
	return result, nil
}
