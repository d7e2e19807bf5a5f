package hospital

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/hospital"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
)

// VisitService handles patient-flow business operations
type VisitService struct {
	visits         hospital.VisitRepository
	prescriptions  hospital.PrescriptionRepository
	invoices       billing.InvoiceRepository
	labs           hospital.LabResultSource
	tx             TransactionScope
	defaultTaxRate decimal.Decimal
}

// NewVisitService creates a new VisitService
func NewVisitService(visits hospital.VisitRepository, prescriptions hospital.PrescriptionRepository, invoices billing.InvoiceRepository, labs hospital.LabResultSource, tx TransactionScope, defaultTaxRate decimal.Decimal) *VisitService {
	return &VisitService{
		visits:         visits,
		prescriptions:  prescriptions,
		invoices:       invoices,
		labs:           labs,
		tx:             tx,
		defaultTaxRate: defaultTaxRate,
	}
}

// Register checks a patient into the waiting queue
func (s *VisitService) Register(ctx context.Context, tenantID uuid.UUID, req RegisterVisitRequest) (*VisitResponse, error) {
	visit, err := hospital.NewVisit(tenantID, req.PatientID, req.PatientName)
	if err != nil {
		return nil, err
	}
	visit.Complaint = req.Complaint

	if err := s.visits.Save(ctx, visit); err != nil {
		return nil, err
	}
	return ToVisitResponse(visit), nil
}

// Get returns a single visit for a tenant
func (s *VisitService) Get(ctx context.Context, tenantID, visitID uuid.UUID) (*VisitResponse, error) {
	visit, err := s.visits.FindByIDForTenant(ctx, tenantID, visitID)
	if err != nil {
		return nil, err
	}
	return ToVisitResponse(visit), nil
}

// List returns a page of visits for a tenant
func (s *VisitService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[VisitResponse], error) {
	visits, err := s.visits.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	countFilter := filter
	countFilter.Filters = map[string]interface{}{"tenant_id": tenantID}
	total, err := s.visits.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]VisitResponse, len(visits))
	for i := range visits {
		responses[i] = *ToVisitResponse(&visits[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Queue returns the open visits sitting at one pipeline stage
func (s *VisitService) Queue(ctx context.Context, tenantID uuid.UUID, stage string) ([]VisitResponse, error) {
	target := hospital.VisitStage(strings.ToUpper(stage))
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", fmt.Sprintf("Unknown visit stage %q", stage))
	}

	visits, err := s.visits.FindOpenByStage(ctx, tenantID, target)
	if err != nil {
		return nil, err
	}

	responses := make([]VisitResponse, len(visits))
	for i := range visits {
		responses[i] = *ToVisitResponse(&visits[i])
	}
	return responses, nil
}

// Advance moves a visit to the target stage
func (s *VisitService) Advance(ctx context.Context, tenantID, visitID uuid.UUID, req AdvanceVisitRequest) (*VisitResponse, error) {
	target := hospital.VisitStage(strings.ToUpper(req.Stage))
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", fmt.Sprintf("Unknown visit stage %q", req.Stage))
	}

	visit, err := s.visits.FindByIDForTenant(ctx, tenantID, visitID)
	if err != nil {
		return nil, err
	}

	if err := visit.Advance(target); err != nil {
		return nil, err
	}

	if err := s.visits.Save(ctx, visit); err != nil {
		return nil, err
	}
	return ToVisitResponse(visit), nil
}

// AssignDoctor records the attending doctor on a visit
func (s *VisitService) AssignDoctor(ctx context.Context, tenantID, visitID uuid.UUID, req AssignDoctorRequest) (*VisitResponse, error) {
	visit, err := s.visits.FindByIDForTenant(ctx, tenantID, visitID)
	if err != nil {
		return nil, err
	}

	if err := visit.AssignDoctor(req.DoctorID); err != nil {
		return nil, err
	}

	if err := s.visits.Save(ctx, visit); err != nil {
		return nil, err
	}
	return ToVisitResponse(visit), nil
}

// Bill closes out a visit into an issued invoice built from the visit's
// fulfilled prescriptions. Dispensing already moved the stock, so the
// invoice is issued without a second deduction. VAT applies at the
// configured rate like any other invoice.
func (s *VisitService) Bill(ctx context.Context, tenantID, visitID uuid.UUID) (*InvoiceResult, error) {
	visit, err := s.visits.FindByIDForTenant(ctx, tenantID, visitID)
	if err != nil {
		return nil, err
	}

	prescriptions, err := s.prescriptions.FindByVisit(ctx, tenantID, visitID)
	if err != nil {
		return nil, err
	}

	number, err := s.invoices.GenerateNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(tenantID, number, visit.PatientID, visit.PatientName, s.defaultTaxRate)
	if err != nil {
		return nil, err
	}

	// The same drug may appear on more than one prescription; bill it as a
	// single line with the quantities summed.
	type billable struct {
		line hospital.PrescriptionLine
		qty  decimal.Decimal
	}
	var order []uuid.UUID
	byItem := make(map[uuid.UUID]*billable)
	for i := range prescriptions {
		p := &prescriptions[i]
		if p.Status != hospital.PrescriptionStatusFulfilled {
			return nil, shared.NewDomainError("PENDING_PRESCRIPTION", "All prescriptions must be fulfilled before billing")
		}
		for _, line := range p.Lines {
			if !line.Available || !line.FinalQty().IsPositive() {
				continue
			}
			if b, ok := byItem[line.ItemID]; ok {
				b.qty = b.qty.Add(line.FinalQty())
				continue
			}
			byItem[line.ItemID] = &billable{line: line, qty: line.FinalQty()}
			order = append(order, line.ItemID)
		}
	}

	led := inv.Ledger()
	for i, itemID := range order {
		b := byItem[itemID]
		led.AddFromCatalog(ledger.Pick{
			ItemID:      b.line.ItemID,
			Description: b.line.DrugName,
			Prices:      map[ledger.PriceField]string{ledger.FieldUnitPrice: b.line.UnitPrice.String()},
		})
		led.UpdateQuantity(i, b.qty)
	}
	if err := inv.SetLines(led.Entries()); err != nil {
		return nil, err
	}

	if err := inv.Issue(); err != nil {
		return nil, err
	}

	if err := visit.Advance(hospital.StageBilled); err != nil {
		return nil, err
	}

	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Invoices().Save(ctx, inv); err != nil {
			return err
		}
		return repos.Visits().Save(ctx, visit)
	})
	if err != nil {
		return nil, err
	}

	return &InvoiceResult{
		Visit:         *ToVisitResponse(visit),
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.Number,
		GrandTotal:    inv.Totals().GrandTotal.StringFixed(2),
	}, nil
}

// InvoiceResult is returned when a visit bills out
type InvoiceResult struct {
	Visit         VisitResponse `json:"visit"`
	InvoiceID     uuid.UUID     `json:"invoice_id"`
	InvoiceNumber string        `json:"invoice_number"`
	GrandTotal    string        `json:"grand_total"`
}

// PollLabResults moves visits waiting at the lab back to the doctor once
// their results arrive. It is wired as a background poll and keeps going
// past individual failures.
func (s *VisitService) PollLabResults(ctx context.Context) error {
	waiting, err := s.visits.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{"stage": string(hospital.StageLab)},
	})
	if err != nil {
		return err
	}

	var firstErr error
	for i := range waiting {
		visit := &waiting[i]
		results, err := s.labs.FetchResults(ctx, visit.TenantID, visit.ID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(results) == 0 {
			continue
		}

		if err := visit.Advance(hospital.StageDoctor); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := s.visits.Save(ctx, visit); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
