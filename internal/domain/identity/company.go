package identity

import (
	"strings"

	"github.com/gestor-erp/backend/internal/domain/shared"
)

// Company is a tenant. Every business row carries its company ID and
// queries are always scoped to one company.
type Company struct {
	shared.BaseEntity
	Name     string `gorm:"size:160;not null" json:"name"`
	Document string `gorm:"size:20" json:"document"`
	Email    string `gorm:"size:160" json:"email"`
	Phone    string `gorm:"size:30" json:"phone"`
	Address  string `gorm:"size:300" json:"address"`
	LogoPath string `gorm:"size:500" json:"logo_path"`
	Active   bool   `gorm:"not null;default:true" json:"active"`
}

// TableName returns the database table name
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates an active company
func NewCompany(name string) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	return &Company{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Active:     true,
	}, nil
}

// Deactivate suspends the company
func (c *Company) Deactivate() {
	c.Active = false
	c.Touch()
}
