package identity

import (
	"github.com/gestor-erp/backend/internal/domain/identity"
	"github.com/gestor-erp/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// RegisterRequest creates a user account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=160"`
	Email    string `json:"email" binding:"required,email,max=160"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"max=30"`
}

// LoginRequest signs a user in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest replaces the signed-in user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest updates the signed-in user's profile
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=160"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
}

// AuthResult is the signed-in user plus their session tokens
type AuthResult struct {
	User   *identity.User  `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// CreateCompanyRequest creates a company owned by the requesting user
type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=160"`
	Document string `json:"document" binding:"max=20"`
	Email    string `json:"email" binding:"omitempty,email,max=160"`
	Phone    string `json:"phone" binding:"max=30"`
	Address  string `json:"address" binding:"max=300"`
}

// UpdateCompanyRequest updates a company's registration data
type UpdateCompanyRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=160"`
	Document *string `json:"document" binding:"omitempty,max=20"`
	Email    *string `json:"email" binding:"omitempty,email,max=160"`
	Phone    *string `json:"phone" binding:"omitempty,max=30"`
	Address  *string `json:"address" binding:"omitempty,max=300"`
}

// AddMemberRequest links a user to a company by email
type AddMemberRequest struct {
	Email  string     `json:"email" binding:"required,email"`
	RoleID *uuid.UUID `json:"role_id"`
}

// CreateRoleRequest creates a permission role inside a company
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=80"`
	Permissions []string `json:"permissions" binding:"required"`
}

// UpdateRoleRequest updates a role's permission set
type UpdateRoleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=80"`
	Permissions *[]string `json:"permissions"`
}
