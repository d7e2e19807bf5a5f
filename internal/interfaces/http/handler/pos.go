package handler

import (
	billingapp "github.com/dukabook/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// POSHandler handles point-of-sale endpoints
type POSHandler struct {
	BaseHandler
	sales *billingapp.POSService
}

// NewPOSHandler creates a new POSHandler
func NewPOSHandler(sales *billingapp.POSService) *POSHandler {
	return &POSHandler{sales: sales}
}

// RegisterRoutes registers POS routes
func (h *POSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/pos/sales")
	{
		sales.GET("", h.List)
		sales.GET("/:id", h.Get)
		sales.POST("", h.OpenSale)
		sales.POST("/:id/lines", h.AddLine)
		sales.PUT("/:id/lines/:index/quantity", h.UpdateLineQuantity)
		sales.DELETE("/:id/lines/:index", h.RemoveLine)
		sales.POST("/:id/complete", h.Complete)
		sales.POST("/:id/void", h.Void)
	}
}

func (h *POSHandler) OpenSale(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req billingapp.OpenSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.OpenSale(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

func (h *POSHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.sales.Get(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

func (h *POSHandler) List(c *gin.Context) {
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

	page, err := h.sales.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

func (h *POSHandler) AddLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req billingapp.AddCatalogLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.AddCatalogLine(c.Request.Context(), tenantID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

func (h *POSHandler) UpdateLineQuantity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
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

	sale, err := h.sales.UpdateLineQuantity(c.Request.Context(), tenantID, saleID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

func (h *POSHandler) RemoveLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.RemoveLine(c.Request.Context(), tenantID, saleID, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

func (h *POSHandler) Complete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req billingapp.CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.Complete(c.Request.Context(), tenantID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

func (h *POSHandler) Void(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req billingapp.VoidSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.Void(c.Request.Context(), tenantID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}
