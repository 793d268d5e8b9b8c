package partner

import (
	"github.com/gestor-erp/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactInput is one contact person in a client payload. The collection
// replaces the stored one wholesale.
type ContactInput struct {
	Name  string `json:"name" binding:"required,min=1,max=120"`
	Role  string `json:"role" binding:"max=80"`
	Email string `json:"email" binding:"omitempty,email,max=160"`
	Phone string `json:"phone" binding:"max=40"`
}

// CreateClientRequest creates a new client
type CreateClientRequest struct {
	Name       string         `json:"name" binding:"required,min=1,max=160"`
	TradeName  string         `json:"trade_name" binding:"max=160"`
	PersonType string         `json:"person_type" binding:"required,oneof=FISICA JURIDICA"`
	Document   string         `json:"document" binding:"max=20"`
	Email      string         `json:"email" binding:"omitempty,email,max=160"`
	Phone      string         `json:"phone" binding:"max=40"`
	Address    string         `json:"address" binding:"max=200"`
	City       string         `json:"city" binding:"max=80"`
	State      string         `json:"state" binding:"max=2"`
	ZipCode    string         `json:"zip_code" binding:"max=10"`
	IsCustomer *bool          `json:"is_customer"`
	IsSupplier *bool          `json:"is_supplier"`
	Notes      string         `json:"notes"`
	Contacts   []ContactInput `json:"contacts" binding:"dive"`
}

// UpdateClientRequest updates an existing client. Contacts, when present,
// replace the stored collection.
type UpdateClientRequest struct {
	Name       *string         `json:"name" binding:"omitempty,min=1,max=160"`
	TradeName  *string         `json:"trade_name" binding:"omitempty,max=160"`
	PersonType *string         `json:"person_type" binding:"omitempty,oneof=FISICA JURIDICA"`
	Document   *string         `json:"document" binding:"omitempty,max=20"`
	Email      *string         `json:"email" binding:"omitempty,email,max=160"`
	Phone      *string         `json:"phone" binding:"omitempty,max=40"`
	Address    *string         `json:"address" binding:"omitempty,max=200"`
	City       *string         `json:"city" binding:"omitempty,max=80"`
	State      *string         `json:"state" binding:"omitempty,max=2"`
	ZipCode    *string         `json:"zip_code" binding:"omitempty,max=10"`
	IsCustomer *bool           `json:"is_customer"`
	IsSupplier *bool           `json:"is_supplier"`
	Active     *bool           `json:"active"`
	Notes      *string         `json:"notes"`
	Contacts   *[]ContactInput `json:"contacts" binding:"omitempty,dive"`
}

// CreateSellerRequest creates a new seller
type CreateSellerRequest struct {
	Name              string          `json:"name" binding:"required,min=1,max=160"`
	Email             string          `json:"email" binding:"omitempty,email,max=160"`
	Phone             string          `json:"phone" binding:"max=40"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
}

// UpdateSellerRequest updates an existing seller
type UpdateSellerRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=160"`
	Email             *string          `json:"email" binding:"omitempty,email,max=160"`
	Phone             *string          `json:"phone" binding:"omitempty,max=40"`
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
	Active            *bool            `json:"active"`
}

// contactsFromInput maps payload contacts to domain records
func contactsFromInput(inputs []ContactInput) []partner.ContactPerson {
	contacts := make([]partner.ContactPerson, 0, len(inputs))
	for _, in := range inputs {
		contacts = append(contacts, partner.ContactPerson{
			ID:    uuid.New(),
			Name:  in.Name,
			Role:  in.Role,
			Email: in.Email,
			Phone: in.Phone,
		})
	}
	return contacts
}
