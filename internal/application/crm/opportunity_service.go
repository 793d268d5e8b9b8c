package crm

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/crm"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OpportunityService handles the sales pipeline kanban
type OpportunityService struct {
	opportunities crm.OpportunityRepository
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(opportunities crm.OpportunityRepository) *OpportunityService {
	return &OpportunityService{opportunities: opportunities}
}

// Create adds a card to the lead column
func (s *OpportunityService) Create(ctx context.Context, companyID uuid.UUID, req CreateOpportunityRequest) (*crm.Opportunity, error) {
	card, err := crm.NewOpportunity(companyID, req.Title)
	if err != nil {
		return nil, err
	}
	card.ClientID = req.ClientID
	card.ContactName = req.ContactName
	card.ContactPhone = req.ContactPhone
	card.ContactEmail = req.ContactEmail
	card.SellerID = req.SellerID
	card.Notes = req.Notes
	if req.ExpectedValue != nil {
		if err := card.SetExpectedValue(*req.ExpectedValue); err != nil {
			return nil, err
		}
	}

	if err := s.opportunities.Save(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Update modifies an open card
func (s *OpportunityService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateOpportunityRequest) (*crm.Opportunity, error) {
	card, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !card.IsOpen() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot update a closed opportunity")
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
		}
		card.Title = *req.Title
	}
	if req.ClientID != nil {
		card.ClientID = req.ClientID
	}
	if req.ContactName != nil {
		card.ContactName = *req.ContactName
	}
	if req.ContactPhone != nil {
		card.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		card.ContactEmail = *req.ContactEmail
	}
	if req.ExpectedValue != nil {
		if err := card.SetExpectedValue(*req.ExpectedValue); err != nil {
			return nil, err
		}
	}
	if req.SellerID != nil {
		card.SellerID = req.SellerID
	}
	if req.Notes != nil {
		card.Notes = *req.Notes
	}
	card.Touch()

	if err := s.opportunities.Save(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Move drags the card to another column and position. The change applies
// optimistically and rolls back in memory when persistence fails, so the
// returned card always matches the stored one.
func (s *OpportunityService) Move(ctx context.Context, companyID, id uuid.UUID, req MoveOpportunityRequest) (*crm.Opportunity, error) {
	card, err := s.find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	target := crm.OpportunityStage(req.Stage)
	type placement struct {
		card crm.Opportunity
	}
	var moveErr error
	update := shared.OptimisticUpdate[placement]{
		Snapshot: func() placement { return placement{card: *card} },
		Apply: func() {
			if target == crm.StageLost {
				moveErr = card.Lose(req.LostReason)
			} else {
				moveErr = card.MoveTo(target)
			}
			card.Position = req.Position
		},
		Commit: func(ctx context.Context) error {
			if moveErr != nil {
				return moveErr
			}
			return s.opportunities.Save(ctx, card)
		},
		Restore: func(snapshot placement) { *card = snapshot.card },
	}
	if _, err := update.Run(ctx); err != nil {
		return nil, err
	}
	return card, nil
}

// Board returns the kanban view: open cards plus recently closed ones,
// grouped by stage in board order
func (s *OpportunityService) Board(ctx context.Context, companyID uuid.UUID) (*PipelineBoard, error) {
	cards, err := s.opportunities.FindBoard(ctx, companyID)
	if err != nil {
		return nil, err
	}

	stages := []crm.OpportunityStage{
		crm.StageLead,
		crm.StageContact,
		crm.StageProposal,
		crm.StageNegotiation,
		crm.StageWon,
		crm.StageLost,
	}
	byStage := make(map[crm.OpportunityStage][]crm.Opportunity, len(stages))
	for _, card := range cards {
		byStage[card.Stage] = append(byStage[card.Stage], card)
	}

	board := &PipelineBoard{Columns: make([]PipelineColumn, 0, len(stages))}
	for _, stage := range stages {
		column := PipelineColumn{Stage: stage, Cards: byStage[stage]}
		if column.Cards == nil {
			column.Cards = make([]crm.Opportunity, 0)
		}
		board.Columns = append(board.Columns, column)
	}
	return board, nil
}

// StageCounts returns how many cards sit in each stage
func (s *OpportunityService) StageCounts(ctx context.Context, companyID uuid.UUID) (map[crm.OpportunityStage]int64, error) {
	return s.opportunities.CountByStage(ctx, companyID)
}

// Get returns one card
func (s *OpportunityService) Get(ctx context.Context, companyID, id uuid.UUID) (*crm.Opportunity, error) {
	return s.find(ctx, companyID, id)
}

// ListByStage returns a page of one column, closed cards included
func (s *OpportunityService) ListByStage(ctx context.Context, companyID uuid.UUID, stage crm.OpportunityStage, filter shared.Filter) (*shared.Paginated[crm.Opportunity], error) {
	if !stage.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", "Unknown pipeline stage")
	}
	return s.opportunities.FindByStage(ctx, companyID, stage, filter.Normalize())
}

// Delete removes a card
func (s *OpportunityService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.opportunities.DeleteForCompany(ctx, companyID, id)
}

func (s *OpportunityService) find(ctx context.Context, companyID, id uuid.UUID) (*crm.Opportunity, error) {
	card, err := s.opportunities.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, shared.ErrNotFound
	}
	return card, nil
}
