package handler

import (
	hospitalapp "github.com/dukabook/backend/internal/application/hospital"
	"github.com/gin-gonic/gin"
)

// HospitalHandler handles patient visit and prescription endpoints
type HospitalHandler struct {
	BaseHandler
	visits        *hospitalapp.VisitService
	prescriptions *hospitalapp.PrescriptionService
}

// NewHospitalHandler creates a new HospitalHandler
func NewHospitalHandler(visits *hospitalapp.VisitService, prescriptions *hospitalapp.PrescriptionService) *HospitalHandler {
	return &HospitalHandler{visits: visits, prescriptions: prescriptions}
}

// RegisterRoutes registers hospital routes
func (h *HospitalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	visits := rg.Group("/visits")
	{
		visits.GET("", h.ListVisits)
		visits.GET("/queue/:stage", h.Queue)
		visits.GET("/:id", h.GetVisit)
		visits.GET("/:id/prescriptions", h.ListPrescriptions)
		visits.POST("", h.RegisterVisit)
		visits.POST("/:id/advance", h.AdvanceVisit)
		visits.POST("/:id/doctor", h.AssignDoctor)
		visits.POST("/:id/bill", h.BillVisit)
	}

	prescriptions := rg.Group("/prescriptions")
	{
		prescriptions.GET("/:id", h.GetPrescription)
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.POST("/:id/lines", h.AddPrescriptionLine)
		prescriptions.PUT("/:id/lines/:index/quantity", h.SetEnteredQty)
		prescriptions.PUT("/:id/lines/:index/availability", h.SetAvailability)
		prescriptions.POST("/:id/fulfill", h.FulfillPrescription)
	}
}

func (h *HospitalHandler) RegisterVisit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req hospitalapp.RegisterVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visits.Register(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, visit)
}

func (h *HospitalHandler) GetVisit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	visitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid visit ID format")
		return
	}

	visit, err := h.visits.Get(c.Request.Context(), tenantID, visitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, visit)
}

func (h *HospitalHandler) ListVisits(c *gin.Context) {
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

	page, err := h.visits.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Queue lists open visits waiting at a pipeline stage
func (h *HospitalHandler) Queue(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	visits, err := h.visits.Queue(c.Request.Context(), tenantID, c.Param("stage"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, visits)
}

func (h *HospitalHandler) AdvanceVisit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	visitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid visit ID format")
		return
	}

	var req hospitalapp.AdvanceVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visits.Advance(c.Request.Context(), tenantID, visitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, visit)
}

func (h *HospitalHandler) AssignDoctor(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	visitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid visit ID format")
		return
	}

	var req hospitalapp.AssignDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visit, err := h.visits.AssignDoctor(c.Request.Context(), tenantID, visitID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, visit)
}

// BillVisit closes the visit by issuing an invoice for its fulfilled
// prescriptions
func (h *HospitalHandler) BillVisit(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	visitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid visit ID format")
		return
	}

	result, err := h.visits.Bill(c.Request.Context(), tenantID, visitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *HospitalHandler) CreatePrescription(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req hospitalapp.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.prescriptions.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

func (h *HospitalHandler) GetPrescription(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	prescriptionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	p, err := h.prescriptions.Get(c.Request.Context(), tenantID, prescriptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func (h *HospitalHandler) ListPrescriptions(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	visitID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid visit ID format")
		return
	}

	ps, err := h.prescriptions.ListByVisit(c.Request.Context(), tenantID, visitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ps)
}

func (h *HospitalHandler) AddPrescriptionLine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	prescriptionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	var req hospitalapp.AddPrescriptionLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.prescriptions.AddLine(c.Request.Context(), tenantID, prescriptionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func (h *HospitalHandler) SetEnteredQty(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	prescriptionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req hospitalapp.SetEnteredQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.prescriptions.SetEnteredQty(c.Request.Context(), tenantID, prescriptionID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func (h *HospitalHandler) SetAvailability(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	prescriptionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	index, err := parseLineIndex(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req hospitalapp.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.prescriptions.SetAvailability(c.Request.Context(), tenantID, prescriptionID, index, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func (h *HospitalHandler) FulfillPrescription(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	prescriptionID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid prescription ID format")
		return
	}

	p, err := h.prescriptions.Fulfill(c.Request.Context(), tenantID, prescriptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}
