package handler

import (
	"time"

	billingapp "github.com/gestor-erp/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillingHandler serves the contract and billing run endpoints
type BillingHandler struct {
	BaseHandler
	contracts *billingapp.ContractService
	runs      *billingapp.BillingRunService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(contracts *billingapp.ContractService, runs *billingapp.BillingRunService) *BillingHandler {
	return &BillingHandler{contracts: contracts, runs: runs}
}

// RegisterRoutes mounts the billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/contracts")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.POST("/:id/terminate", h.Terminate)
	group.POST("/:id/reactivate", h.Reactivate)
	group.DELETE("/:id", h.Delete)

	rg.POST("/billing-runs", h.Run)
}

// Create opens a recurring billing contract
func (h *BillingHandler) Create(c *gin.Context) {
	var req billingapp.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	contract, err := h.contracts.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contract)
}

// List lists contracts, optionally filtered by client
func (h *BillingHandler) List(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid client_id")
			return
		}
		page, err := h.contracts.ListByClient(c.Request.Context(), companyID(c), clientID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Paginated(c, page)
		return
	}

	page, err := h.contracts.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get returns one contract
func (h *BillingHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid contract id")
		return
	}
	contract, err := h.contracts.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Update edits an active contract
func (h *BillingHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid contract id")
		return
	}
	var req billingapp.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	contract, err := h.contracts.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

type terminateContractRequest struct {
	EndsAt time.Time `json:"ends_at" binding:"required"`
}

// Terminate closes a contract; future runs stop billing it
func (h *BillingHandler) Terminate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid contract id")
		return
	}
	var req terminateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	contract, err := h.contracts.Terminate(c.Request.Context(), companyID(c), id, req.EndsAt)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Reactivate puts a terminated contract back in billing
func (h *BillingHandler) Reactivate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid contract id")
		return
	}
	contract, err := h.contracts.Reactivate(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Delete removes a contract
func (h *BillingHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid contract id")
		return
	}
	if err := h.contracts.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Run issues receivables for every active contract in a competency month
func (h *BillingHandler) Run(c *gin.Context) {
	var req billingapp.BillingRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.runs.Run(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
