package handler

import (
	salonapp "github.com/dukabook/backend/internal/application/salon"
	"github.com/gin-gonic/gin"
)

// ShiftHandler handles staff shift endpoints
type ShiftHandler struct {
	BaseHandler
	shifts *salonapp.ShiftService
}

// NewShiftHandler creates a new ShiftHandler
func NewShiftHandler(shifts *salonapp.ShiftService) *ShiftHandler {
	return &ShiftHandler{shifts: shifts}
}

// RegisterRoutes registers shift routes
func (h *ShiftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shifts := rg.Group("/shifts")
	{
		shifts.GET("", h.List)
		shifts.GET("/:id", h.Get)
		shifts.GET("/:id/report", h.Report)
		shifts.POST("", h.Open)
		shifts.POST("/:id/close", h.Close)
	}
}

func (h *ShiftHandler) Open(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req salonapp.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	shift, err := h.shifts.Open(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shift)
}

func (h *ShiftHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	shiftID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shift ID format")
		return
	}

	shift, err := h.shifts.Get(c.Request.Context(), tenantID, shiftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shift)
}

func (h *ShiftHandler) List(c *gin.Context) {
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

	page, err := h.shifts.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

func (h *ShiftHandler) Close(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	shiftID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shift ID format")
		return
	}

	shift, err := h.shifts.Close(c.Request.Context(), tenantID, shiftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shift)
}

// Report returns the shift with the completed sales recorded against it
func (h *ShiftHandler) Report(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	shiftID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shift ID format")
		return
	}

	report, err := h.shifts.Report(c.Request.Context(), tenantID, shiftID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
