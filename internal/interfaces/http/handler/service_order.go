package handler

import (
	tradeapp "github.com/gestor-erp/backend/internal/application/trade"
	"github.com/gestor-erp/backend/internal/domain/trade"
	"github.com/gin-gonic/gin"
)

// ServiceOrderHandler serves the service order endpoints
type ServiceOrderHandler struct {
	BaseHandler
	orders *tradeapp.ServiceOrderService
}

// NewServiceOrderHandler creates a new ServiceOrderHandler
func NewServiceOrderHandler(orders *tradeapp.ServiceOrderService) *ServiceOrderHandler {
	return &ServiceOrderHandler{orders: orders}
}

// RegisterRoutes mounts the service order routes
func (h *ServiceOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/service-orders")
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/board", h.Board)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.POST("/:id/move", h.Move)
	group.DELETE("/:id", h.Delete)
}

// Create opens a service order
func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateServiceOrderRequest
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

// List lists service orders, optionally filtered by status
func (h *ServiceOrderHandler) List(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if status := c.Query("status"); status != "" {
		page, err := h.orders.ListByStatus(c.Request.Context(), companyID(c), trade.ServiceOrderStatus(status), filter)
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

// Board returns the workshop board grouped by status
func (h *ServiceOrderHandler) Board(c *gin.Context) {
	board, err := h.orders.Board(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, board)
}

// Get returns one service order
func (h *ServiceOrderHandler) Get(c *gin.Context) {
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

// Update rewrites an order's lines and description
func (h *ServiceOrderHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	var req tradeapp.UpdateServiceOrderRequest
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

// Move advances the order to another board column
func (h *ServiceOrderHandler) Move(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	var req tradeapp.MoveServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	order, err := h.orders.Move(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes an order that is not finished
func (h *ServiceOrderHandler) Delete(c *gin.Context) {
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
