package handler

import (
	"time"

	financeapp "github.com/gestor-erp/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// FinanceHandler serves the payables, receivables and cash flow endpoints
type FinanceHandler struct {
	BaseHandler
	payables    *financeapp.PayableService
	receivables *financeapp.ReceivableService
	cashFlow    *financeapp.CashFlowService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(payables *financeapp.PayableService, receivables *financeapp.ReceivableService, cashFlow *financeapp.CashFlowService) *FinanceHandler {
	return &FinanceHandler{payables: payables, receivables: receivables, cashFlow: cashFlow}
}

// RegisterRoutes mounts the finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payables := rg.Group("/payables")
	payables.POST("", h.CreatePayable)
	payables.GET("", h.ListPayables)
	payables.GET("/overdue", h.ListOverduePayables)
	payables.GET("/open-total", h.PayableOpenTotal)
	payables.GET("/:id", h.GetPayable)
	payables.PUT("/:id", h.UpdatePayable)
	payables.POST("/:id/settle", h.SettlePayable)
	payables.POST("/:id/reopen", h.ReopenPayable)
	payables.DELETE("/:id", h.DeletePayable)

	receivables := rg.Group("/receivables")
	receivables.POST("", h.CreateReceivable)
	receivables.GET("", h.ListReceivables)
	receivables.GET("/overdue", h.ListOverdueReceivables)
	receivables.GET("/open-total", h.ReceivableOpenTotal)
	receivables.GET("/:id", h.GetReceivable)
	receivables.PUT("/:id", h.UpdateReceivable)
	receivables.POST("/:id/settle", h.SettleReceivable)
	receivables.POST("/:id/reopen", h.ReopenReceivable)
	receivables.DELETE("/:id", h.DeleteReceivable)

	cashFlow := rg.Group("/cash-flow")
	cashFlow.POST("", h.CreateCashFlowEntry)
	cashFlow.GET("", h.ListCashFlow)
	cashFlow.GET("/summary", h.CashFlowSummary)
	cashFlow.GET("/balance", h.CashFlowBalance)
	cashFlow.DELETE("/:id", h.DeleteCashFlowEntry)
}

// CreatePayable records a bill to pay
func (h *FinanceHandler) CreatePayable(c *gin.Context) {
	var req financeapp.CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	payable, err := h.payables.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payable)
}

// ListPayables lists payables; open=true narrows to unsettled ones
func (h *FinanceHandler) ListPayables(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if c.Query("open") == "true" {
		page, err := h.payables.ListOpen(c.Request.Context(), companyID(c), filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Paginated(c, page)
		return
	}
	page, err := h.payables.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// ListOverduePayables lists open payables past their due date
func (h *FinanceHandler) ListOverduePayables(c *gin.Context) {
	payables, err := h.payables.ListOverdue(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payables)
}

// PayableOpenTotal sums the outstanding payable amount
func (h *FinanceHandler) PayableOpenTotal(c *gin.Context) {
	total, err := h.payables.OpenTotal(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"total": total})
}

// GetPayable returns one payable
func (h *FinanceHandler) GetPayable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid payable id")
		return
	}
	payable, err := h.payables.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payable)
}

// UpdatePayable edits an open payable
func (h *FinanceHandler) UpdatePayable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid payable id")
		return
	}
	var req financeapp.UpdatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	payable, err := h.payables.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payable)
}

// SettlePayable marks a payable paid and writes the ledger entry
func (h *FinanceHandler) SettlePayable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid payable id")
		return
	}
	var req financeapp.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	payable, err := h.payables.Settle(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payable)
}

// ReopenPayable reverts a settlement and removes its ledger entry
func (h *FinanceHandler) ReopenPayable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid payable id")
		return
	}
	payable, err := h.payables.Reopen(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payable)
}

// DeletePayable removes an open payable
func (h *FinanceHandler) DeletePayable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid payable id")
		return
	}
	if err := h.payables.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateReceivable records an amount to collect
func (h *FinanceHandler) CreateReceivable(c *gin.Context) {
	var req financeapp.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	receivable, err := h.receivables.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receivable)
}

// ListReceivables lists receivables; open=true narrows to unsettled ones
func (h *FinanceHandler) ListReceivables(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if c.Query("open") == "true" {
		page, err := h.receivables.ListOpen(c.Request.Context(), companyID(c), filter)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		Paginated(c, page)
		return
	}
	page, err := h.receivables.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// ListOverdueReceivables lists open receivables past their due date
func (h *FinanceHandler) ListOverdueReceivables(c *gin.Context) {
	receivables, err := h.receivables.ListOverdue(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivables)
}

// ReceivableOpenTotal sums the outstanding receivable amount
func (h *FinanceHandler) ReceivableOpenTotal(c *gin.Context) {
	total, err := h.receivables.OpenTotal(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"total": total})
}

// GetReceivable returns one receivable
func (h *FinanceHandler) GetReceivable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receivable id")
		return
	}
	receivable, err := h.receivables.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivable)
}

// UpdateReceivable edits an open receivable
func (h *FinanceHandler) UpdateReceivable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receivable id")
		return
	}
	var req financeapp.UpdateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	receivable, err := h.receivables.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivable)
}

// SettleReceivable marks a receivable collected and writes the ledger entry
func (h *FinanceHandler) SettleReceivable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receivable id")
		return
	}
	var req financeapp.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	receivable, err := h.receivables.Settle(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivable)
}

// ReopenReceivable reverts a settlement and removes its ledger entry
func (h *FinanceHandler) ReopenReceivable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receivable id")
		return
	}
	receivable, err := h.receivables.Reopen(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivable)
}

// DeleteReceivable removes an open receivable
func (h *FinanceHandler) DeleteReceivable(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid receivable id")
		return
	}
	if err := h.receivables.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCashFlowEntry records a manual ledger entry
func (h *FinanceHandler) CreateCashFlowEntry(c *gin.Context) {
	var req financeapp.CreateCashFlowEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	entry, err := h.cashFlow.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// ListCashFlow lists ledger entries inside a period
func (h *FinanceHandler) ListCashFlow(c *gin.Context) {
	from, to, ok := h.bindPeriod(c)
	if !ok {
		return
	}
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.cashFlow.ListByPeriod(c.Request.Context(), companyID(c), from, to, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// CashFlowSummary totals inflow, outflow and balances for a period
func (h *FinanceHandler) CashFlowSummary(c *gin.Context) {
	from, to, ok := h.bindPeriod(c)
	if !ok {
		return
	}
	summary, err := h.cashFlow.Summary(c.Request.Context(), companyID(c), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// CashFlowBalance returns the running balance at a date
func (h *FinanceHandler) CashFlowBalance(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid at date, expected YYYY-MM-DD")
			return
		}
		at = parsed
	}
	balance, err := h.cashFlow.Balance(c.Request.Context(), companyID(c), at)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"balance": balance, "at": at.Format("2006-01-02")})
}

// DeleteCashFlowEntry removes a manual ledger entry
func (h *FinanceHandler) DeleteCashFlowEntry(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid entry id")
		return
	}
	if err := h.cashFlow.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *FinanceHandler) bindPeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
