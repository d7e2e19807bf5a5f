package handler

import (
	adjustmentapp "github.com/dukabook/backend/internal/application/adjustment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdjustmentHandler handles goods return and damage write-off endpoints
type AdjustmentHandler struct {
	BaseHandler
	returns *adjustmentapp.ReturnService
	damages *adjustmentapp.DamageService
}

// NewAdjustmentHandler creates a new AdjustmentHandler
func NewAdjustmentHandler(returns *adjustmentapp.ReturnService, damages *adjustmentapp.DamageService) *AdjustmentHandler {
	return &AdjustmentHandler{returns: returns, damages: damages}
}

// RegisterRoutes registers return and damage routes
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/returns")
	{
		returns.GET("", h.ListReturns)
		returns.GET("/:id", h.GetReturn)
		returns.POST("", h.CreateReturn)
		returns.PUT("/:id/lines/:index/quantity", h.SetReturnQuantity)
		returns.PUT("/:id/reason", h.SetReturnReason)
		returns.POST("/:id/process", h.ProcessReturn)
		returns.POST("/:id/cancel", h.CancelReturn)
	}

	damages := rg.Group("/damages")
	{
		damages.GET("", h.ListDamages)
		damages.GET("/:id", h.GetDamage)
		damages.POST("", h.CreateDamage)
		damages.POST("/:id/lines", h.AddDamageLine)
		damages.PUT("/:id/lines/:index/quantity", h.UpdateDamageLineQuantity)
		damages.DELETE("/:id/lines/:index", h.RemoveDamageLine)
		damages.PUT("/:id/reason", h.SetDamageReason)
		damages.POST("/:id/process", h.ProcessDamage)
		damages.POST("/:id/cancel", h.CancelDamage)
	}
}

func (h *AdjustmentHandler) CreateReturn(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req adjustmentapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returns.CreateFromInvoice(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ret)
}

func (h *AdjustmentHandler) GetReturn(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	returnID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returns.Get(c.Request.Context(), tenantID, returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

// ListReturns lists goods returns. An invoice_id query parameter narrows
// the listing to returns raised against that invoice.
func (h *AdjustmentHandler) ListReturns(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if raw := c.Query("invoice_id"); raw != "" {
		invoiceID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid invoice ID format")
			return
		}
		rets, err := h.returns.ListByInvoice(c.Request.Context(), tenantID, invoiceID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, rets)
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.returns.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

func (h *AdjustmentHandler) SetReturnQuantity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	returnID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req adjustmentapp.SetReturnQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returns.SetLineQuantity(c.Request.Context(), tenantID, returnID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

func (h *AdjustmentHandler) SetReturnReason(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	returnID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req adjustmentapp.SetReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ret, err := h.returns.SetReason(c.Request.Context(), tenantID, returnID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

func (h *AdjustmentHandler) ProcessReturn(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	returnID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returns.Process(c.Request.Context(), tenantID, returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

func (h *AdjustmentHandler) CancelReturn(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	returnID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returns.Cancel(c.Request.Context(), tenantID, returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

func (h *AdjustmentHandler) CreateDamage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req adjustmentapp.CreateDamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rec, err := h.damages.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rec)
}

func (h *AdjustmentHandler) GetDamage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid damage record ID format")
		return
	}

	rec, err := h.damages.Get(c.Request.Context(), tenantID, recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

func (h *AdjustmentHandler) ListDamages(c *gin.Context) {
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

	page, err := h.damages.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

func (h *AdjustmentHandler) AddDamageLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid damage record ID format")
		return
	}

	var req adjustmentapp.AddCatalogLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rec, err := h.damages.AddCatalogLine(c.Request.Context(), tenantID, recordID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

func (h *AdjustmentHandler) UpdateDamageLineQuantity(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid damage record ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req adjustmentapp.UpdateLineQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rec, err := h.damages.UpdateLineQuantity(c.Request.Context(), tenantID, recordID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

func (h *AdjustmentHandler) RemoveDamageLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid damage record ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rec, err := h.damages.RemoveLine(c.Request.Context(), tenantID, recordID, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

func (h *AdjustmentHandler) SetDamageReason(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid damage record ID format")
		return
	}

	var req adjustmentapp.SetReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rec, err := h.damages.SetReason(c.Request.Context(), tenantID, recordID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

func (h *AdjustmentHandler) ProcessDamage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid damage record ID format")
		return
	}

	rec, err := h.damages.Process(c.Request.Context(), tenantID, recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

func (h *AdjustmentHandler) CancelDamage(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid damage record ID format")
		return
	}

	rec, err := h.damages.Cancel(c.Request.Context(), tenantID, recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}
