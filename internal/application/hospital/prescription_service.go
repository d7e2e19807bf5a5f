package hospital

import (
	"context"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/hospital"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
)

// PrescriptionService handles pharmacy fulfillment operations
type PrescriptionService struct {
	prescriptions hospital.PrescriptionRepository
	visits        hospital.VisitRepository
	items         catalog.ItemRepository
	tx            TransactionScope
}

// NewPrescriptionService creates a new PrescriptionService
func NewPrescriptionService(prescriptions hospital.PrescriptionRepository, visits hospital.VisitRepository, items catalog.ItemRepository, tx TransactionScope) *PrescriptionService {
	return &PrescriptionService{
		prescriptions: prescriptions,
		visits:        visits,
		items:         items,
		tx:            tx,
	}
}

// Create opens a pending prescription against an open visit
func (s *PrescriptionService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePrescriptionRequest) (*PrescriptionResponse, error) {
	visit, err := s.visits.FindByIDForTenant(ctx, tenantID, req.VisitID)
	if err != nil {
		return nil, err
	}
	if !visit.IsOpen() {
		return nil, shared.NewDomainError("VISIT_CLOSED", "Cannot prescribe on a billed visit")
	}

	p, err := hospital.NewPrescription(tenantID, visit.ID, visit.PatientName)
	if err != nil {
		return nil, err
	}

	if err := s.prescriptions.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPrescriptionResponse(p), nil
}

// Get returns a single prescription for a tenant
func (s *PrescriptionService) Get(ctx context.Context, tenantID, prescriptionID uuid.UUID) (*PrescriptionResponse, error) {
	p, err := s.prescriptions.FindByIDForTenant(ctx, tenantID, prescriptionID)
	if err != nil {
		return nil, err
	}
	return ToPrescriptionResponse(p), nil
}

// ListByVisit returns all prescriptions raised during one visit
func (s *PrescriptionService) ListByVisit(ctx context.Context, tenantID, visitID uuid.UUID) ([]PrescriptionResponse, error) {
	prescriptions, err := s.prescriptions.FindByVisit(ctx, tenantID, visitID)
	if err != nil {
		return nil, err
	}

	responses := make([]PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *ToPrescriptionResponse(&prescriptions[i])
	}
	return responses, nil
}

// AddLine prescribes a drug from the catalog. The line snapshots the item's
// current stock and selling price; the entered quantity starts at the
// prescribed quantity.
func (s *PrescriptionService) AddLine(ctx context.Context, tenantID, prescriptionID uuid.UUID, req AddPrescriptionLineRequest) (*PrescriptionResponse, error) {
	p, err := s.prescriptions.FindByIDForTenant(ctx, tenantID, prescriptionID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByIDForTenant(ctx, tenantID, req.ItemID)
	if err != nil {
		return nil, err
	}

	if err := p.AddLine(item.ID, item.Name, req.Dosage, ledger.Amount(req.Quantity), item.StockOnHand, item.SellingPrice); err != nil {
		return nil, err
	}

	if err := s.prescriptions.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPrescriptionResponse(p), nil
}

// SetEnteredQty records the quantity the pharmacist intends to dispense;
// malformed input coerces to zero
func (s *PrescriptionService) SetEnteredQty(ctx context.Context, tenantID, prescriptionID uuid.UUID, index int, req SetEnteredQtyRequest) (*PrescriptionResponse, error) {
	p, err := s.prescriptions.FindByIDForTenant(ctx, tenantID, prescriptionID)
	if err != nil {
		return nil, err
	}

	if err := p.SetEnteredQty(index, ledger.Amount(req.Quantity)); err != nil {
		return nil, err
	}

	if err := s.prescriptions.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPrescriptionResponse(p), nil
}

// SetAvailability toggles whether a line will be dispensed
func (s *PrescriptionService) SetAvailability(ctx context.Context, tenantID, prescriptionID uuid.UUID, index int, req SetAvailabilityRequest) (*PrescriptionResponse, error) {
	p, err := s.prescriptions.FindByIDForTenant(ctx, tenantID, prescriptionID)
	if err != nil {
		return nil, err
	}

	if err := p.SetAvailability(index, *req.Available); err != nil {
		return nil, err
	}

	if err := s.prescriptions.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPrescriptionResponse(p), nil
}

// Fulfill dispenses every available line and closes the prescription.
// Each line deducts its clamped final quantity from stock; the deductions
// and the status flip commit together, so a failed line rolls the rest
// back and the prescription stays pending.
func (s *PrescriptionService) Fulfill(ctx context.Context, tenantID, prescriptionID uuid.UUID) (*PrescriptionResponse, error) {
	p, err := s.prescriptions.FindByIDForTenant(ctx, tenantID, prescriptionID)
	if err != nil {
		return nil, err
	}
	if p.Status != hospital.PrescriptionStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Prescription has already been fulfilled")
	}

	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, line := range p.Lines {
			if !line.Available {
				continue
			}
			qty := line.FinalQty()
			if !qty.IsPositive() {
				continue
			}

			item, err := repos.Items().FindByIDForTenant(ctx, tenantID, line.ItemID)
			if err != nil {
				return err
			}
			if err := item.DeductStock(qty); err != nil {
				return err
			}
			if err := repos.Items().Save(ctx, item); err != nil {
				return err
			}
		}

		if err := p.Fulfill(); err != nil {
			return err
		}
		return repos.Prescriptions().Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return ToPrescriptionResponse(p), nil
}
