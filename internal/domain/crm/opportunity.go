package crm

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpportunityStage represents a column on the CRM pipeline board
type OpportunityStage string

const (
	StageLead        OpportunityStage = "LEAD"
	StageContact     OpportunityStage = "CONTATO"
	StageProposal    OpportunityStage = "PROPOSTA"
	StageNegotiation OpportunityStage = "NEGOCIACAO"
	StageWon         OpportunityStage = "GANHO"
	StageLost        OpportunityStage = "PERDIDO"
)

// PipelineStages lists the board columns in display order
var PipelineStages = []OpportunityStage{
	StageLead, StageContact, StageProposal, StageNegotiation, StageWon, StageLost,
}

// IsValid checks if the stage is a valid OpportunityStage
func (s OpportunityStage) IsValid() bool {
	switch s {
	case StageLead, StageContact, StageProposal, StageNegotiation, StageWon, StageLost:
		return true
	}
	return false
}

// IsClosed reports whether the stage ends the opportunity
func (s OpportunityStage) IsClosed() bool {
	return s == StageWon || s == StageLost
}

// Opportunity is a deal moving through the pipeline. Cards move freely
// between open columns; won and lost are final.
type Opportunity struct {
	shared.CompanyEntity
	Title         string           `gorm:"size:160;not null" json:"title"`
	ClientID      *uuid.UUID       `gorm:"type:uuid;index" json:"client_id,omitempty"`
	ContactName   string           `gorm:"size:160" json:"contact_name"`
	ContactPhone  string           `gorm:"size:30" json:"contact_phone"`
	ContactEmail  string           `gorm:"size:160" json:"contact_email"`
	Stage         OpportunityStage `gorm:"size:20;not null;default:LEAD;index" json:"stage"`
	ExpectedValue decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"expected_value"`
	SellerID      *uuid.UUID       `gorm:"type:uuid;index" json:"seller_id,omitempty"`
	Notes         string           `gorm:"type:text" json:"notes"`
	Position      int              `gorm:"not null;default:0" json:"position"`
	ClosedAt      *time.Time       `json:"closed_at,omitempty"`
	LostReason    string           `gorm:"size:200" json:"lost_reason,omitempty"`
}

// TableName returns the database table name
func (Opportunity) TableName() string {
	return "opportunities"
}

// NewOpportunity creates a new opportunity in the lead column
func NewOpportunity(companyID uuid.UUID, title string) (*Opportunity, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	return &Opportunity{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Title:         title,
		Stage:         StageLead,
		ExpectedValue: decimal.Zero,
	}, nil
}

// MoveTo moves the card to another pipeline column
func (o *Opportunity) MoveTo(stage OpportunityStage) error {
	if !stage.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", fmt.Sprintf("Unknown stage %s", stage))
	}
	if o.Stage.IsClosed() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Opportunity is closed as %s", o.Stage))
	}
	if stage == o.Stage {
		return nil
	}
	now := time.Now()
	o.Stage = stage
	if stage.IsClosed() {
		o.ClosedAt = &now
	}
	o.UpdatedAt = now
	return nil
}

// Lose closes the card as lost with a reason
func (o *Opportunity) Lose(reason string) error {
	if err := o.MoveTo(StageLost); err != nil {
		return err
	}
	o.LostReason = reason
	return nil
}

// SetExpectedValue updates the estimated deal value
func (o *Opportunity) SetExpectedValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Expected value cannot be negative")
	}
	o.ExpectedValue = value
	o.Touch()
	return nil
}

// IsOpen reports whether the card is still in play
func (o *Opportunity) IsOpen() bool {
	return !o.Stage.IsClosed()
}
