package handler

import (
	tradeapp "github.com/gestor-erp/backend/internal/application/trade"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesOrderHandler serves the sales order endpoints
type SalesOrderHandler struct {
	BaseHandler
	orders *tradeapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orders *tradeapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orders: orders}
}

// RegisterRoutes mounts the sales order routes
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sales-orders")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.POST("/:id/invoice", h.Invoice)
	group.POST("/:id/deliver", h.Deliver)
	group.POST("/:id/cancel", h.Cancel)
	group.DELETE("/:id", h.Delete)
}

// Create opens a sales order
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	order, err := h.orders.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List lists sales orders, optionally filtered by status or client
func (h *SalesOrderHandler) List(c *gin.Context) {
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
		page, err := h.orders.ListByClient(c.Request.Context(), companyID(c), clientID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Paginated(c, page)
		return
	}

	if status := c.Query("status"); status != "" {
		page, err := h.orders.ListByStatus(c.Request.Context(), companyID(c), trade.SalesOrderStatus(status), filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Paginated(c, page)
		return
	}

	page, err := h.orders.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get returns one sales order
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	order, err := h.orders.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Update rewrites an open order's items and adjustments
func (h *SalesOrderHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	var req tradeapp.UpdateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	order, err := h.orders.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Invoice closes the sale: stock leaves and the seller commission is due
func (h *SalesOrderHandler) Invoice(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	order, err := h.orders.Invoice(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Deliver marks an invoiced order as delivered
func (h *SalesOrderHandler) Deliver(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	order, err := h.orders.Deliver(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel voids an open order
func (h *SalesOrderHandler) Cancel(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	order, err := h.orders.Cancel(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes an order that was never invoiced
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	if err := h.orders.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
