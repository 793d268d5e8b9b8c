package partner

import (
	"strings"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PersonType distinguishes individual and corporate clients
type PersonType string

const (
	PersonTypeIndividual PersonType = "FISICA"
	PersonTypeCorporate  PersonType = "JURIDICA"
)

// IsValid checks if the person type is valid
func (p PersonType) IsValid() bool {
	return p == PersonTypeIndividual || p == PersonTypeCorporate
}

// ContactPerson is a child record of a client. The collection is fully
// replaced on update rather than diffed.
type ContactPerson struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Name     string    `gorm:"size:120;not null" json:"name"`
	Role     string    `gorm:"size:80" json:"role"`
	Email    string    `gorm:"size:160" json:"email"`
	Phone    string    `gorm:"size:40" json:"phone"`
}

// TableName returns the database table name
func (ContactPerson) TableName() string {
	return "contact_persons"
}

// Client represents a business partner. The same record can act as a
// customer, a supplier, or both, selected by the two flags.
type Client struct {
	shared.CompanyEntity
	Name       string     `gorm:"size:160;not null;index" json:"name"`
	TradeName  string     `gorm:"size:160" json:"trade_name"`
	PersonType PersonType `gorm:"size:10;not null;default:JURIDICA" json:"person_type"`
	Document   string     `gorm:"size:20;index" json:"document"` // CPF or CNPJ
	Email      string     `gorm:"size:160" json:"email"`
	Phone      string     `gorm:"size:40" json:"phone"`
	Address    string     `gorm:"size:200" json:"address"`
	City       string     `gorm:"size:80" json:"city"`
	State      string     `gorm:"size:2" json:"state"`
	ZipCode    string     `gorm:"size:10" json:"zip_code"`
	IsCustomer bool       `gorm:"not null;default:true" json:"is_customer"`
	IsSupplier bool       `gorm:"not null;default:false" json:"is_supplier"`
	Active     bool       `gorm:"not null;default:true" json:"active"`
	Notes      string     `gorm:"type:text" json:"notes"`

	Contacts []ContactPerson `gorm:"foreignKey:ClientID" json:"contacts,omitempty"`
}

// TableName returns the database table name
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(companyID uuid.UUID, name string, personType PersonType, isCustomer, isSupplier bool) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if !personType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERSON_TYPE", "Person type must be FISICA or JURIDICA")
	}
	if !isCustomer && !isSupplier {
		return nil, shared.NewDomainError("INVALID_ROLE", "Client must be a customer, a supplier, or both")
	}

	return &Client{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Name:          strings.TrimSpace(name),
		PersonType:    personType,
		IsCustomer:    isCustomer,
		IsSupplier:    isSupplier,
		Active:        true,
		Contacts:      make([]ContactPerson, 0),
	}, nil
}

// Rename changes the client name
func (c *Client) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	c.Name = strings.TrimSpace(name)
	c.Touch()
	return nil
}

// ReplaceContacts swaps the whole contact collection
func (c *Client) ReplaceContacts(contacts []ContactPerson) {
	replaced := make([]ContactPerson, 0, len(contacts))
	for _, ct := range contacts {
		if ct.ID == uuid.Nil {
			ct.ID = uuid.New()
		}
		ct.ClientID = c.ID
		replaced = append(replaced, ct)
	}
	c.Contacts = replaced
	c.Touch()
}

// Activate marks the client active
func (c *Client) Activate() {
	c.Active = true
	c.Touch()
}

// Deactivate marks the client inactive. Clients are never physically
// deleted once referenced by documents.
func (c *Client) Deactivate() {
	c.Active = false
	c.Touch()
}
