package identity

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/identity"
	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyService handles tenants and their membership. Creating a company
// links the creator as owner; only members can touch a company and only
// the owner can delete it.
type CompanyService struct {
	companies identity.CompanyRepository
	members   identity.MemberRepository
	users     identity.UserRepository
	roles     identity.RoleRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companies identity.CompanyRepository, members identity.MemberRepository, users identity.UserRepository, roles identity.RoleRepository) *CompanyService {
	return &CompanyService{companies: companies, members: members, users: users, roles: roles}
}

// Create registers a company with the requesting user as owner
func (s *CompanyService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCompanyRequest) (*identity.Company, error) {
	company, err := identity.NewCompany(req.Name)
	if err != nil {
		return nil, err
	}
	company.Document = req.Document
	company.Email = req.Email
	company.Phone = req.Phone
	company.Address = req.Address

	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}

	member, err := identity.NewCompanyMember(company.ID, ownerID, true)
	if err != nil {
		return nil, err
	}
	if err := s.members.Save(ctx, member); err != nil {
		return nil, err
	}
	return company, nil
}

// Update modifies a company's registration data; members only
func (s *CompanyService) Update(ctx context.Context, companyID, userID uuid.UUID, req UpdateCompanyRequest) (*identity.Company, error) {
	if _, err := s.RequireMembership(ctx, companyID, userID); err != nil {
		return nil, err
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
		}
		company.Name = *req.Name
	}
	if req.Document != nil {
		company.Document = *req.Document
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	company.Touch()

	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company; the owner only
func (s *CompanyService) Delete(ctx context.Context, companyID, userID uuid.UUID) error {
	member, err := s.RequireMembership(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if !member.Owner {
		return shared.ErrForbidden
	}
	return s.companies.Delete(ctx, companyID)
}

// ListForUser returns the companies the user belongs to
func (s *CompanyService) ListForUser(ctx context.Context, userID uuid.UUID) ([]identity.Company, error) {
	return s.companies.FindByUser(ctx, userID)
}

// Get returns a company; members only
func (s *CompanyService) Get(ctx context.Context, companyID, userID uuid.UUID) (*identity.Company, error) {
	if _, err := s.RequireMembership(ctx, companyID, userID); err != nil {
		return nil, err
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}
	return company, nil
}

// RequireMembership returns the user's membership or ErrForbidden
func (s *CompanyService) RequireMembership(ctx context.Context, companyID, userID uuid.UUID) (*identity.CompanyMember, error) {
	member, err := s.members.FindByCompanyAndUser(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, shared.ErrForbidden
	}
	return member, nil
}

// AddMember links a user to the company by email; members only
func (s *CompanyService) AddMember(ctx context.Context, companyID, requesterID uuid.UUID, req AddMemberRequest) (*identity.CompanyMember, error) {
	if _, err := s.RequireMembership(ctx, companyID, requesterID); err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "No account with this email")
	}
	existing, err := s.members.FindByCompanyAndUser(ctx, companyID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	member, err := identity.NewCompanyMember(companyID, user.ID, false)
	if err != nil {
		return nil, err
	}
	if req.RoleID != nil {
		if err := member.AssignRole(*req.RoleID); err != nil {
			return nil, err
		}
	}
	if err := s.members.Save(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember unlinks a user from the company. The owner membership
// cannot be removed.
func (s *CompanyService) RemoveMember(ctx context.Context, companyID, requesterID, memberID uuid.UUID) error {
	if _, err := s.RequireMembership(ctx, companyID, requesterID); err != nil {
		return err
	}
	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil || member.CompanyID != companyID {
		return shared.ErrNotFound
	}
	if member.Owner {
		return shared.NewDomainError("OWNER_MEMBERSHIP", "The owner membership cannot be removed")
	}
	return s.members.Delete(ctx, memberID)
}

// ListMembers returns the company's memberships; members only
func (s *CompanyService) ListMembers(ctx context.Context, companyID, requesterID uuid.UUID) ([]identity.CompanyMember, error) {
	if _, err := s.RequireMembership(ctx, companyID, requesterID); err != nil {
		return nil, err
	}
	return s.members.FindByCompany(ctx, companyID)
}

// CreateRole creates a permission role inside the company; members only
func (s *CompanyService) CreateRole(ctx context.Context, companyID, requesterID uuid.UUID, req CreateRoleRequest) (*identity.Role, error) {
	if _, err := s.RequireMembership(ctx, companyID, requesterID); err != nil {
		return nil, err
	}
	existing, err := s.roles.FindByName(ctx, companyID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	role, err := identity.NewRole(companyID, req.Name, req.Permissions)
	if err != nil {
		return nil, err
	}
	if err := s.roles.Save(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// UpdateRole updates a role's name or permission set; members only
func (s *CompanyService) UpdateRole(ctx context.Context, companyID, requesterID, roleID uuid.UUID, req UpdateRoleRequest) (*identity.Role, error) {
	if _, err := s.RequireMembership(ctx, companyID, requesterID); err != nil {
		return nil, err
	}
	role, err := s.roles.FindByIDForCompany(ctx, companyID, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
		}
		role.Name = *req.Name
	}
	if req.Permissions != nil {
		if err := role.SetPermissions(*req.Permissions); err != nil {
			return nil, err
		}
	}
	role.Touch()

	if err := s.roles.Save(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Permissions returns the permission codes the user holds in the company.
// The owner and members without a role get the wildcard.
func (s *CompanyService) Permissions(ctx context.Context, companyID, userID uuid.UUID) ([]string, error) {
	member, err := s.RequireMembership(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if member.Owner || member.RoleID == nil {
		return []string{"*"}, nil
	}
	role, err := s.roles.FindByIDForCompany(ctx, companyID, *member.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return []string{}, nil
	}
	return role.Permissions, nil
}
