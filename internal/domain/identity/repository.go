package identity

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	shared.Repository[User]

	FindByEmail(ctx context.Context, email string) (*User, error)
}

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	shared.Repository[Company]

	FindByUser(ctx context.Context, userID uuid.UUID) ([]Company, error)
}

// MemberRepository defines persistence operations for company membership
type MemberRepository interface {
	shared.Repository[CompanyMember]

	FindByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (*CompanyMember, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]CompanyMember, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

// RoleRepository defines persistence operations for roles
type RoleRepository interface {
	shared.CompanyRepository[Role]

	FindByName(ctx context.Context, companyID uuid.UUID, name string) (*Role, error)
}
