package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an account that signs in to the system. A user may belong to
// several companies through CompanyMember rows.
type User struct {
	shared.BaseEntity
	Email        string     `gorm:"size:160;not null;uniqueIndex" json:"email"`
	Name         string     `gorm:"size:160;not null" json:"name"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Phone        string     `gorm:"size:30" json:"phone"`
	AvatarPath   string     `gorm:"size:500" json:"avatar_path"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Active:       true,
	}, nil
}

// VerifyPassword reports whether the plaintext matches the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the password (admin reset, no old password check)
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// ChangePassword replaces the password after checking the current one
func (u *User) ChangePassword(current, next string) error {
	if !u.VerifyPassword(current) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(next)
}

// RecordLogin stamps a successful sign-in
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// Deactivate blocks the account from signing in
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

// Activate re-enables the account
func (u *User) Activate() {
	u.Active = true
	u.Touch()
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must have at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

// CompanyMember links a user to a company. The owner flag marks the member
// who created the company and cannot be removed.
type CompanyMember struct {
	shared.BaseEntity
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_company_members_user" json:"company_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_company_members_user" json:"user_id"`
	RoleID    *uuid.UUID `gorm:"type:uuid" json:"role_id,omitempty"`
	Owner     bool       `gorm:"not null;default:false" json:"owner"`
}

// TableName returns the database table name
func (CompanyMember) TableName() string {
	return "company_members"
}

// NewCompanyMember links a user to a company
func NewCompanyMember(companyID, userID uuid.UUID, owner bool) (*CompanyMember, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &CompanyMember{
		BaseEntity: shared.NewBaseEntity(),
		CompanyID:  companyID,
		UserID:     userID,
		Owner:      owner,
	}, nil
}

// AssignRole sets the member's role
func (m *CompanyMember) AssignRole(roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return shared.NewDomainError("INVALID_ROLE", "Role ID cannot be empty")
	}
	m.RoleID = &roleID
	m.Touch()
	return nil
}
