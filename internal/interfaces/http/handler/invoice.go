package handler

import (
	billingapp "github.com/dukabook/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoices *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.GET("/:id", h.Get)
		invoices.POST("", h.CreateDraft)
		invoices.POST("/:id/lines", h.AddLine)
		invoices.PUT("/:id/lines/:index/quantity", h.UpdateLineQuantity)
		invoices.PUT("/:id/lines/:index/price", h.UpdateLinePrice)
		invoices.PUT("/:id/lines/:index/item", h.SelectLineItem)
		invoices.DELETE("/:id/lines/:index", h.RemoveLine)
		invoices.POST("/:id/payments", h.RecordPayment)
		invoices.POST("/:id/issue", h.Issue)
		invoices.POST("/:id/cancel", h.Cancel)
	}
}

func (h *InvoiceHandler) CreateDraft(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inv, err := h.invoices.CreateDraft(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, inv)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	inv, err := h.invoices.Get(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.invoices.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// AddLine appends a line. A body with item_id adds a catalog line,
// an empty body adds a blank line for manual entry.
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var body struct {
		ItemID *uuid.UUID `json:"item_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	if body.ItemID == nil {
		inv, err := h.invoices.AddBlankLine(c.Request.Context(), tenantID, invoiceID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, inv)
		return
	}

	inv, err := h.invoices.AddCatalogLine(c.Request.Context(), tenantID, invoiceID, billingapp.AddCatalogLineRequest{ItemID: *body.ItemID})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}

func (h *InvoiceHandler) UpdateLineQuantity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req billingapp.UpdateLineQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inv, err := h.invoices.UpdateLineQuantity(c.Request.Context(), tenantID, invoiceID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}

func (h *InvoiceHandler) UpdateLinePrice(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req billingapp.UpdateLinePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inv, err := h.invoices.UpdateLinePrice(c.Request.Context(), tenantID, invoiceID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}

func (h *InvoiceHandler) SelectLineItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req billingapp.SelectLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inv, err := h.invoices.SelectLineItem(c.Request.Context(), tenantID, invoiceID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}

func (h *InvoiceHandler) RemoveLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inv, err := h.invoices.RemoveLine(c.Request.Context(), tenantID, invoiceID, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}

func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inv, err := h.invoices.RecordPayment(c.Request.Context(), tenantID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}

func (h *InvoiceHandler) Issue(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	inv, err := h.invoices.Issue(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}

func (h *InvoiceHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	inv, err := h.invoices.Cancel(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}
