package handler

import (
	"strconv"

	partnerapp "github.com/gestor-erp/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerHandler serves clients, suppliers and sellers
type PartnerHandler struct {
	BaseHandler
	clients *partnerapp.ClientService
	sellers *partnerapp.SellerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(clients *partnerapp.ClientService, sellers *partnerapp.SellerService) *PartnerHandler {
	return &PartnerHandler{clients: clients, sellers: sellers}
}

// RegisterRoutes mounts the partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	clients.POST("", h.CreateClient)
	clients.GET("", h.ListClients)
	clients.GET("/search", h.SearchClients)
	clients.GET("/:id", h.GetClient)
	clients.PUT("/:id", h.UpdateClient)
	clients.DELETE("/:id", h.DeleteClient)

	sellers := rg.Group("/sellers")
	sellers.POST("", h.CreateSeller)
	sellers.GET("", h.ListSellers)
	sellers.GET("/active", h.ListActiveSellers)
	sellers.GET("/:id", h.GetSeller)
	sellers.PUT("/:id", h.UpdateSeller)
	sellers.DELETE("/:id", h.DeleteSeller)
}

// CreateClient registers a client or supplier
func (h *PartnerHandler) CreateClient(c *gin.Context) {
	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	client, err := h.clients.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// ListClients lists clients with pagination
func (h *PartnerHandler) ListClients(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.clients.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// SearchClients does a typeahead lookup by name
func (h *PartnerHandler) SearchClients(c *gin.Context) {
	term := c.Query("q")
	supplierOnly, _ := strconv.ParseBool(c.Query("supplier_only"))
	results, err := h.clients.Search(c.Request.Context(), companyID(c), term, supplierOnly, 10)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// GetClient returns one client
func (h *PartnerHandler) GetClient(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client id")
		return
	}
	client, err := h.clients.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// UpdateClient updates a client's registration data
func (h *PartnerHandler) UpdateClient(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client id")
		return
	}
	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	client, err := h.clients.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// DeleteClient removes a client
func (h *PartnerHandler) DeleteClient(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client id")
		return
	}
	if err := h.clients.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSeller registers a seller
func (h *PartnerHandler) CreateSeller(c *gin.Context) {
	var req partnerapp.CreateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	seller, err := h.sellers.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, seller)
}

// ListSellers lists sellers with pagination
func (h *PartnerHandler) ListSellers(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.sellers.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// ListActiveSellers lists the sellers available for assignment
func (h *PartnerHandler) ListActiveSellers(c *gin.Context) {
	sellers, err := h.sellers.ListActive(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sellers)
}

// GetSeller returns one seller
func (h *PartnerHandler) GetSeller(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid seller id")
		return
	}
	seller, err := h.sellers.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, seller)
}

// UpdateSeller updates a seller
func (h *PartnerHandler) UpdateSeller(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid seller id")
		return
	}
	var req partnerapp.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	seller, err := h.sellers.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, seller)
}

// DeleteSeller removes a seller
func (h *PartnerHandler) DeleteSeller(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid seller id")
		return
	}
	if err := h.sellers.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
