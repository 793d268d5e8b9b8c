package handler

import (
	"time"

	inventoryapp "github.com/gestor-erp/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryHandler serves the stock movement and incoming note endpoints
type InventoryHandler struct {
	BaseHandler
	movements *inventoryapp.MovementService
	notes     *inventoryapp.IncomingNoteService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(movements *inventoryapp.MovementService, notes *inventoryapp.IncomingNoteService) *InventoryHandler {
	return &InventoryHandler{movements: movements, notes: notes}
}

// RegisterRoutes mounts the inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	movements := rg.Group("/stock-movements")
	movements.POST("", h.CreateMovement)
	movements.GET("", h.ListMovements)

	notes := rg.Group("/incoming-notes")
	notes.POST("", h.CreateNote)
	notes.GET("", h.ListNotes)
	notes.GET("/:id", h.GetNote)
	notes.PUT("/:id", h.UpdateNote)
	notes.POST("/:id/post", h.PostNote)
	notes.DELETE("/:id", h.DeleteNote)
}

// CreateMovement records a manual stock adjustment
func (h *InventoryHandler) CreateMovement(c *gin.Context) {
	var req inventoryapp.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	movement, err := h.movements.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}

// ListMovements lists movements, filterable by product or period
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("product_id"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		page, err := h.movements.ListByProduct(c.Request.Context(), companyID(c), productID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Paginated(c, page)
		return
	}

	if c.Query("from") != "" || c.Query("to") != "" {
		from, err := time.Parse("2006-01-02", c.Query("from"))
		if err != nil {
			h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		to, err := time.Parse("2006-01-02", c.Query("to"))
		if err != nil {
			h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		page, err := h.movements.ListByPeriod(c.Request.Context(), companyID(c), from, to, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Paginated(c, page)
		return
	}

	page, err := h.movements.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// CreateNote drafts an incoming goods note
func (h *InventoryHandler) CreateNote(c *gin.Context) {
	var req inventoryapp.CreateIncomingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	note, err := h.notes.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// ListNotes lists incoming notes
func (h *InventoryHandler) ListNotes(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.notes.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetNote returns one incoming note
func (h *InventoryHandler) GetNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid note id")
		return
	}
	note, err := h.notes.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// UpdateNote edits a draft note
func (h *InventoryHandler) UpdateNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid note id")
		return
	}
	var req inventoryapp.UpdateIncomingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	note, err := h.notes.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// PostNote applies the note's lines to stock
func (h *InventoryHandler) PostNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid note id")
		return
	}
	note, err := h.notes.Post(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// DeleteNote removes a draft note
func (h *InventoryHandler) DeleteNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid note id")
		return
	}
	if err := h.notes.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
