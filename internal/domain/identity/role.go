package identity

import (
	"strings"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Permission codes follow a "resource:action" pattern ("clientes:editar")
const permissionSeparator = ":"

// ValidPermissionCode checks the "resource:action" shape
func ValidPermissionCode(code string) bool {
	parts := strings.SplitN(code, permissionSeparator, 2)
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

// Role is a named permission set scoped to a company
type Role struct {
	shared.CompanyEntity
	Name        string         `gorm:"size:80;not null" json:"name"`
	Description string         `gorm:"size:200" json:"description"`
	Permissions pq.StringArray `gorm:"type:text[]" json:"permissions"`
	System      bool           `gorm:"not null;default:false" json:"system"`
}

// TableName returns the database table name
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a role with a validated permission set
func NewRole(companyID uuid.UUID, name string, permissions []string) (*Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	role := &Role{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Name:          strings.TrimSpace(name),
		Permissions:   pq.StringArray{},
	}
	if err := role.SetPermissions(permissions); err != nil {
		return nil, err
	}
	return role, nil
}

// SetPermissions replaces the permission set, deduplicated
func (r *Role) SetPermissions(permissions []string) error {
	seen := make(map[string]struct{}, len(permissions))
	validated := make(pq.StringArray, 0, len(permissions))
	for _, code := range permissions {
		code = strings.ToLower(strings.TrimSpace(code))
		if !ValidPermissionCode(code) {
			return shared.NewDomainError("INVALID_PERMISSION", "Permission must be in resource:action format")
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		validated = append(validated, code)
	}
	r.Permissions = validated
	r.Touch()
	return nil
}

// Grants reports whether the role carries the permission. A role holding
// "resource:*" grants every action on the resource.
func (r *Role) Grants(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	resource, _, found := strings.Cut(code, permissionSeparator)
	wildcard := resource + permissionSeparator + "*"
	for _, p := range r.Permissions {
		if p == code {
			return true
		}
		if found && p == wildcard {
			return true
		}
	}
	return false
}
