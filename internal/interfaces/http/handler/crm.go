package handler

import (
	crmapp "github.com/gestor-erp/backend/internal/application/crm"
	"github.com/gestor-erp/backend/internal/domain/crm"
	"github.com/gin-gonic/gin"
)

// CRMHandler serves the sales pipeline endpoints
type CRMHandler struct {
	BaseHandler
	opportunities *crmapp.OpportunityService
}

// NewCRMHandler creates a new CRMHandler
func NewCRMHandler(opportunities *crmapp.OpportunityService) *CRMHandler {
	return &CRMHandler{opportunities: opportunities}
}

// RegisterRoutes mounts the pipeline routes
func (h *CRMHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/opportunities")
	group.POST("", h.Create)
	group.GET("", h.ListByStage)
	group.GET("/board", h.Board)
	group.GET("/stage-counts", h.StageCounts)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.POST("/:id/move", h.Move)
	group.DELETE("/:id", h.Delete)
}

// Create adds a card to the pipeline
func (h *CRMHandler) Create(c *gin.Context) {
	var req crmapp.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	card, err := h.opportunities.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, card)
}

// ListByStage lists the cards in one pipeline column
func (h *CRMHandler) ListByStage(c *gin.Context) {
	stage := c.Query("stage")
	if stage == "" {
		h.BadRequest(c, "Query parameter stage is required")
		return
	}
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.opportunities.ListByStage(c.Request.Context(), companyID(c), crm.OpportunityStage(stage), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Board returns the whole kanban board ordered by stage and position
func (h *CRMHandler) Board(c *gin.Context) {
	board, err := h.opportunities.Board(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, board)
}

// StageCounts returns the number of cards per pipeline stage
func (h *CRMHandler) StageCounts(c *gin.Context) {
	counts, err := h.opportunities.StageCounts(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// Get returns one card
func (h *CRMHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid opportunity id")
		return
	}
	card, err := h.opportunities.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, card)
}

// Update edits an open card
func (h *CRMHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid opportunity id")
		return
	}
	var req crmapp.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	card, err := h.opportunities.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, card)
}

// Move drags a card to another column or position
func (h *CRMHandler) Move(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid opportunity id")
		return
	}
	var req crmapp.MoveOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	card, err := h.opportunities.Move(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, card)
}

// Delete removes a card
func (h *CRMHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid opportunity id")
		return
	}
	if err := h.opportunities.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
