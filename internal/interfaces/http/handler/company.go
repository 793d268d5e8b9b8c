package handler

import (
	identityapp "github.com/gestor-erp/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler serves company, membership and role endpoints. These are
// scoped by the signed-in user, not by the company header: they are how a
// user discovers and manages the companies they belong to.
type CompanyHandler struct {
	BaseHandler
	companies *identityapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companies *identityapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// RegisterRoutes mounts the company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/companies")
	group.POST("", h.Create)
	group.GET("", h.ListMine)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.GET("/:id/members", h.ListMembers)
	group.POST("/:id/members", h.AddMember)
	group.DELETE("/:id/members/:memberId", h.RemoveMember)
	group.POST("/:id/roles", h.CreateRole)
	group.PUT("/:id/roles/:roleId", h.UpdateRole)
	group.GET("/:id/permissions", h.Permissions)
}

// Create opens a new company owned by the signed-in user
func (h *CompanyHandler) Create(c *gin.Context) {
	var req identityapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	company, err := h.companies.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// ListMine lists the companies the signed-in user belongs to
func (h *CompanyHandler) ListMine(c *gin.Context) {
	companies, err := h.companies.ListForUser(c.Request.Context(), userID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, companies)
}

// Get returns one company the user is a member of
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	company, err := h.companies.Get(c.Request.Context(), id, userID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Update changes a company's profile
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	var req identityapp.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	company, err := h.companies.Update(c.Request.Context(), id, userID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Delete removes an empty company; owner only
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	if err := h.companies.Delete(c.Request.Context(), id, userID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListMembers lists the company's members
func (h *CompanyHandler) ListMembers(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	members, err := h.companies.ListMembers(c.Request.Context(), id, userID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// AddMember invites an existing user into the company by email
func (h *CompanyHandler) AddMember(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	var req identityapp.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	member, err := h.companies.AddMember(c.Request.Context(), id, userID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// RemoveMember removes a member from the company
func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		h.BadRequest(c, "Invalid member id")
		return
	}
	if err := h.companies.RemoveMember(c.Request.Context(), id, userID(c), memberID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateRole defines a permission role in the company
func (h *CompanyHandler) CreateRole(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	var req identityapp.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	role, err := h.companies.CreateRole(c.Request.Context(), id, userID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// UpdateRole changes a role's name or permissions
func (h *CompanyHandler) UpdateRole(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	roleID, err := uuid.Parse(c.Param("roleId"))
	if err != nil {
		h.BadRequest(c, "Invalid role id")
		return
	}
	var req identityapp.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	role, err := h.companies.UpdateRole(c.Request.Context(), id, userID(c), roleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Permissions returns the signed-in user's permissions in the company
func (h *CompanyHandler) Permissions(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company id")
		return
	}
	permissions, err := h.companies.Permissions(c.Request.Context(), id, userID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"permissions": permissions})
}
