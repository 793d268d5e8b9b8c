package handler

import (
	"time"

	commissionapp "github.com/gestor-erp/backend/internal/application/commission"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommissionHandler serves the seller commission endpoints
type CommissionHandler struct {
	BaseHandler
	commissions *commissionapp.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissions *commissionapp.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissions: commissions}
}

// RegisterRoutes mounts the commission routes
func (h *CommissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/commissions")
	group.GET("", h.List)
	group.GET("/summary", h.PeriodSummary)
	group.GET("/:id", h.Get)
	group.POST("/:id/pay", h.MarkPaid)
	group.GET("/sellers/:sellerId/pending-total", h.PendingTotal)
}

// List lists commissions, optionally filtered by seller
func (h *CommissionHandler) List(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("seller_id"); raw != "" {
		sellerID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid seller_id")
			return
		}
		page, err := h.commissions.ListBySeller(c.Request.Context(), companyID(c), sellerID, filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Paginated(c, page)
		return
	}

	page, err := h.commissions.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// PeriodSummary totals commissions per seller over a period
func (h *CommissionHandler) PeriodSummary(c *gin.Context) {
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
	summary, err := h.commissions.PeriodSummary(c.Request.Context(), companyID(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Get returns one commission
func (h *CommissionHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid commission id")
		return
	}
	entry, err := h.commissions.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

type payCommissionRequest struct {
	PaidAt *time.Time `json:"paid_at"`
}

// MarkPaid settles a pending commission
func (h *CommissionHandler) MarkPaid(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid commission id")
		return
	}
	var req payCommissionRequest
	_ = c.ShouldBindJSON(&req)
	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	entry, err := h.commissions.MarkPaid(c.Request.Context(), companyID(c), id, paidAt)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// PendingTotal sums a seller's unpaid commissions
func (h *CommissionHandler) PendingTotal(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("sellerId"))
	if err != nil {
		h.BadRequest(c, "Invalid seller id")
		return
	}
	total, err := h.commissions.PendingTotal(c.Request.Context(), companyID(c), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"total": total})
}
