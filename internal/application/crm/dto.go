package crm

import (
	"github.com/gestor-erp/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOpportunityRequest adds a card to the lead column
type CreateOpportunityRequest struct {
	Title         string           `json:"title" binding:"required,min=1,max=160"`
	ClientID      *uuid.UUID       `json:"client_id"`
	ContactName   string           `json:"contact_name" binding:"max=160"`
	ContactPhone  string           `json:"contact_phone" binding:"max=30"`
	ContactEmail  string           `json:"contact_email" binding:"omitempty,email,max=160"`
	ExpectedValue *decimal.Decimal `json:"expected_value"`
	SellerID      *uuid.UUID       `json:"seller_id"`
	Notes         string           `json:"notes"`
}

// UpdateOpportunityRequest updates an open card
type UpdateOpportunityRequest struct {
	Title         *string          `json:"title" binding:"omitempty,min=1,max=160"`
	ClientID      *uuid.UUID       `json:"client_id"`
	ContactName   *string          `json:"contact_name" binding:"omitempty,max=160"`
	ContactPhone  *string          `json:"contact_phone" binding:"omitempty,max=30"`
	ContactEmail  *string          `json:"contact_email" binding:"omitempty,email,max=160"`
	ExpectedValue *decimal.Decimal `json:"expected_value"`
	SellerID      *uuid.UUID       `json:"seller_id"`
	Notes         *string          `json:"notes"`
}

// MoveOpportunityRequest drags a card to another column and position.
// LostReason only applies when the target stage is PERDIDO.
type MoveOpportunityRequest struct {
	Stage      string `json:"stage" binding:"required,oneof=LEAD CONTATO PROPOSTA NEGOCIACAO GANHO PERDIDO"`
	Position   int    `json:"position" binding:"min=0"`
	LostReason string `json:"lost_reason" binding:"max=200"`
}

// PipelineBoard is the kanban view: open cards plus recently closed ones
type PipelineBoard struct {
	Columns []PipelineColumn `json:"columns"`
}

// PipelineColumn is one pipeline stage with its cards in board order
type PipelineColumn struct {
	Stage crm.OpportunityStage `json:"stage"`
	Cards []crm.Opportunity    `json:"cards"`
}
