package inventory

import (
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "ENTRADA"
	MovementTypeOut        MovementType = "SAIDA"
	MovementTypeAdjustment MovementType = "AJUSTE"
)

// IsValid checks if the type is a valid MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// Source document types recorded on movements
const (
	SourceTypeSale         = "SALE"
	SourceTypePurchase     = "PURCHASE"
	SourceTypeIncomingNote = "INCOMING_NOTE"
	SourceTypePOS          = "POS"
	SourceTypeManual       = "MANUAL"
)

// Movement is an immutable stock ledger row. The product's stored quantity
// is the running sum of its movements.
type Movement struct {
	shared.CompanyEntity
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:160;not null" json:"product_name"`
	Type        MovementType    `gorm:"size:10;not null" json:"type"`
	Quantity    decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	UnitCost    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"unit_cost"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Reason      string          `gorm:"size:200" json:"reason"`
	SourceType  string          `gorm:"size:40;index:idx_movements_source" json:"source_type,omitempty"`
	SourceID    *uuid.UUID      `gorm:"type:uuid;index:idx_movements_source" json:"source_id,omitempty"`
}

// TableName returns the database table name
func (Movement) TableName() string {
	return "inventory_movements"
}

// NewMovement creates a stock movement
func NewMovement(companyID, productID uuid.UUID, productName string, movementType MovementType, quantity decimal.Decimal, date time.Time) (*Movement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown movement type")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
	if movementType != MovementTypeAdjustment && quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive for entries and exits")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &Movement{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		ProductID:     productID,
		ProductName:   productName,
		Type:          movementType,
		Quantity:      quantity,
		UnitCost:      decimal.Zero,
		Date:          date,
	}, nil
}

// StockDelta returns the signed effect on the product's stored quantity
func (m *Movement) StockDelta() decimal.Decimal {
	switch m.Type {
	case MovementTypeOut:
		return m.Quantity.Neg()
	default:
		// adjustments carry their own sign
		return m.Quantity
	}
}
