package inventory

import (
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomingNoteStatus represents the posting status of an incoming note
type IncomingNoteStatus string

const (
	IncomingNoteStatusDraft  IncomingNoteStatus = "RASCUNHO"
	IncomingNoteStatusPosted IncomingNoteStatus = "LANCADA"
)

// IncomingNoteItem is a product line on an incoming goods note
type IncomingNoteItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	NoteID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"note_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"size:160;not null" json:"product_name"`
	Quantity    decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	UnitCost    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_cost"`
}

// IncomingNote records goods arriving outside a purchase order (supplier
// invoice entry). Posting the note generates one entry movement per line
// and is not repeatable.
type IncomingNote struct {
	shared.CompanyEntity
	Number       string             `gorm:"size:50;not null" json:"number"`
	SupplierID   *uuid.UUID         `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	SupplierName string             `gorm:"size:160" json:"supplier_name"`
	Status       IncomingNoteStatus `gorm:"size:20;not null;default:RASCUNHO" json:"status"`
	IssuedAt     time.Time          `gorm:"not null" json:"issued_at"`
	PostedAt     *time.Time         `json:"posted_at,omitempty"`
	Notes        string             `gorm:"type:text" json:"notes"`

	Items []IncomingNoteItem `gorm:"foreignKey:NoteID" json:"items,omitempty"`
}

// TableName returns the database table name
func (IncomingNote) TableName() string {
	return "incoming_notes"
}

// NewIncomingNote creates a draft note
func NewIncomingNote(companyID uuid.UUID, number string, issuedAt time.Time) (*IncomingNote, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Note number cannot be empty")
	}
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	return &IncomingNote{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Number:        number,
		Status:        IncomingNoteStatusDraft,
		IssuedAt:      issuedAt,
		Items:         make([]IncomingNoteItem, 0),
	}, nil
}

// AddItem adds a product line to a draft note
func (n *IncomingNote) AddItem(productID uuid.UUID, productName string, quantity, unitCost decimal.Decimal) error {
	if n.Status != IncomingNoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change a posted note")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	n.Items = append(n.Items, IncomingNoteItem{
		ID:          uuid.New(),
		NoteID:      n.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitCost:    unitCost,
	})
	n.Touch()
	return nil
}

// Post marks the note as posted and returns the stock movements to persist,
// one entry per line. Posting twice is an error.
func (n *IncomingNote) Post() ([]*Movement, error) {
	if n.Status == IncomingNoteStatusPosted {
		return nil, shared.NewDomainError("INVALID_STATE", "Note is already posted")
	}
	if len(n.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot post a note without items")
	}

	now := time.Now()
	movements := make([]*Movement, 0, len(n.Items))
	for _, item := range n.Items {
		mv, err := NewMovement(n.CompanyID, item.ProductID, item.ProductName, MovementTypeIn, item.Quantity, now)
		if err != nil {
			return nil, err
		}
		mv.UnitCost = item.UnitCost
		mv.SourceType = SourceTypeIncomingNote
		noteID := n.ID
		mv.SourceID = &noteID
		mv.Reason = "Entrada de nota " + n.Number
		movements = append(movements, mv)
	}

	n.Status = IncomingNoteStatusPosted
	n.PostedAt = &now
	n.UpdatedAt = now
	return movements, nil
}

// TotalCost sums quantity times unit cost over the lines
func (n *IncomingNote) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range n.Items {
		total = total.Add(item.Quantity.Mul(item.UnitCost))
	}
	return total.Round(2)
}
