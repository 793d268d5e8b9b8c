package persistence

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/identity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements identity.CompanyRepository using GORM
type GormCompanyRepository struct {
	*CrudRepository[identity.Company]
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{NewCrudRepository[identity.Company](db, NameSortFields)}
}

// FindByUser returns the companies the user belongs to
func (r *GormCompanyRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Company, error) {
	var companies []identity.Company
	err := r.DB().WithContext(ctx).
		Joins("JOIN company_members ON company_members.company_id = companies.id").
		Where("company_members.user_id = ?", userID).
		Order("companies.name asc").
		Find(&companies).Error
	if err != nil {
		return nil, TranslateError("Company.FindByUser", err)
	}
	return companies, nil
}

// GormMemberRepository implements identity.MemberRepository using GORM
type GormMemberRepository struct {
	*CrudRepository[identity.CompanyMember]
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{NewCrudRepository[identity.CompanyMember](db, CommonSortFields)}
}

// FindByCompanyAndUser returns the membership record, or nil
func (r *GormMemberRepository) FindByCompanyAndUser(ctx context.Context, companyID, userID uuid.UUID) (*identity.CompanyMember, error) {
	var member identity.CompanyMember
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("Member.FindByCompanyAndUser", err)
	}
	return &member, nil
}

// FindByCompany lists the company's members
func (r *GormMemberRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]identity.CompanyMember, error) {
	var members []identity.CompanyMember
	err := r.DB().WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at asc").
		Find(&members).Error
	if err != nil {
		return nil, TranslateError("Member.FindByCompany", err)
	}
	return members, nil
}

// CountByCompany returns the number of members in a company
func (r *GormMemberRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).
		Model(&identity.CompanyMember{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	if err != nil {
		return 0, TranslateError("Member.CountByCompany", err)
	}
	return count, nil
}

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	*CrudRepository[identity.Role]
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{NewCrudRepository[identity.Role](db, NameSortFields)}
}

// FindByName returns the company role with the given name, or nil
func (r *GormRoleRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*identity.Role, error) {
	var role identity.Role
	err := r.DB().WithContext(ctx).
		Where("company_id = ? AND name = ?", companyID, name).
		First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, TranslateError("Role.FindByName", err)
	}
	return &role, nil
}
