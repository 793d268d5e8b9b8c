package handler

import (
	posapp "github.com/gestor-erp/backend/internal/application/pos"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POSHandler serves the point of sale endpoints. The cart belongs to
// the authenticated operator, so every route keys off the session user.
type POSHandler struct {
	BaseHandler
	pos *posapp.PosService
}

// NewPOSHandler creates a new POSHandler
func NewPOSHandler(pos *posapp.PosService) *POSHandler {
	return &POSHandler{pos: pos}
}

// RegisterRoutes mounts the POS routes
func (h *POSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/pos")
	group.GET("/cart", h.Cart)
	group.POST("/cart/items", h.AddItem)
	group.PUT("/cart/items/:productId", h.UpdateItemQuantity)
	group.PUT("/cart/client", h.SetClient)
	group.DELETE("/cart", h.Clear)
	group.POST("/checkout", h.Checkout)
}

// Cart returns the operator's current cart
func (h *POSHandler) Cart(c *gin.Context) {
	h.Success(c, h.pos.Cart(companyID(c), userID(c)))
}

// AddItem adds a product to the cart, merging repeated lines
func (h *POSHandler) AddItem(c *gin.Context) {
	var req posapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	cart, err := h.pos.AddItem(c.Request.Context(), companyID(c), userID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

type updateCartItemRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// UpdateItemQuantity changes a line's quantity; zero removes the line
func (h *POSHandler) UpdateItemQuantity(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	cart, err := h.pos.UpdateItemQuantity(companyID(c), userID(c), productID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// SetClient attaches a client to the cart
func (h *POSHandler) SetClient(c *gin.Context) {
	var req posapp.SetCartClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	cart, err := h.pos.SetClient(c.Request.Context(), companyID(c), userID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear drops the operator's cart
func (h *POSHandler) Clear(c *gin.Context) {
	h.pos.Clear(companyID(c), userID(c))
	h.NoContent(c)
}

// Checkout invoices the cart as a sale and records the payment
func (h *POSHandler) Checkout(c *gin.Context) {
	var req posapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.pos.Checkout(c.Request.Context(), companyID(c), userID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
