package handler

import (
	"context"

	billingapp "github.com/dukabook/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuotationHandler handles quotation endpoints
type QuotationHandler struct {
	BaseHandler
	quotations *billingapp.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotations *billingapp.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotations: quotations}
}

// RegisterRoutes registers quotation routes
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/quotations")
	{
		quotations.GET("", h.List)
		quotations.GET("/:id", h.Get)
		quotations.POST("", h.CreateDraft)
		quotations.POST("/:id/lines", h.AddLine)
		quotations.PUT("/:id/lines/:index/quantity", h.UpdateLineQuantity)
		quotations.PUT("/:id/lines/:index/price", h.UpdateLinePrice)
		quotations.PUT("/:id/lines/:index/item", h.SelectLineItem)
		quotations.DELETE("/:id/lines/:index", h.RemoveLine)
		quotations.POST("/:id/send", h.Send)
		quotations.POST("/:id/accept", h.Accept)
		quotations.POST("/:id/decline", h.Decline)
		quotations.POST("/:id/convert", h.Convert)
	}
}

func (h *QuotationHandler) CreateDraft(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quo, err := h.quotations.CreateDraft(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, quo)
}

func (h *QuotationHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quo, err := h.quotations.Get(c.Request.Context(), tenantID, quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quo)
}

func (h *QuotationHandler) List(c *gin.Context) {
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

	page, err := h.quotations.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

func (h *QuotationHandler) AddLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
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
		quo, err := h.quotations.AddBlankLine(c.Request.Context(), tenantID, quotationID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, quo)
		return
	}

	quo, err := h.quotations.AddCatalogLine(c.Request.Context(), tenantID, quotationID, billingapp.AddCatalogLineRequest{ItemID: *body.ItemID})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quo)
}

func (h *QuotationHandler) UpdateLineQuantity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
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

	quo, err := h.quotations.UpdateLineQuantity(c.Request.Context(), tenantID, quotationID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quo)
}

func (h *QuotationHandler) UpdateLinePrice(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
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

	quo, err := h.quotations.UpdateLinePrice(c.Request.Context(), tenantID, quotationID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quo)
}

func (h *QuotationHandler) SelectLineItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
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

	quo, err := h.quotations.SelectLineItem(c.Request.Context(), tenantID, quotationID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quo)
}

func (h *QuotationHandler) RemoveLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quo, err := h.quotations.RemoveLine(c.Request.Context(), tenantID, quotationID, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quo)
}

func (h *QuotationHandler) Send(c *gin.Context) {
	h.transition(c, h.quotations.Send)
}

func (h *QuotationHandler) Accept(c *gin.Context) {
	h.transition(c, h.quotations.Accept)
}

func (h *QuotationHandler) Decline(c *gin.Context) {
	h.transition(c, h.quotations.Decline)
}

// Convert turns an accepted quotation into a draft invoice
func (h *QuotationHandler) Convert(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	inv, err := h.quotations.Convert(c.Request.Context(), tenantID, quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, inv)
}

func (h *QuotationHandler) transition(c *gin.Context, apply func(ctx context.Context, tenantID, quotationID uuid.UUID) (*billingapp.QuotationResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	quotationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quotation ID format")
		return
	}

	quo, err := apply(c.Request.Context(), tenantID, quotationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quo)
}
