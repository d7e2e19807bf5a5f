package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
)

// QuotationService handles quotation business operations
type QuotationService struct {
	quotations     billing.QuotationRepository
	invoices       billing.InvoiceRepository
	items          catalog.ItemRepository
	defaultTaxRate decimal.Decimal
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(quotations billing.QuotationRepository, invoices billing.InvoiceRepository, items catalog.ItemRepository, defaultTaxRate decimal.Decimal) *QuotationService {
	return &QuotationService{
		quotations:     quotations,
		invoices:       invoices,
		items:          items,
		defaultTaxRate: defaultTaxRate,
	}
}

// CreateDraft opens a new draft quotation for a customer
func (s *QuotationService) CreateDraft(ctx context.Context, tenantID uuid.UUID, req CreateQuotationRequest) (*QuotationResponse, error) {
	number, err := s.quotations.GenerateNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	taxRate := s.defaultTaxRate
	if req.TaxRate != nil {
		taxRate = ledger.Amount(*req.TaxRate)
	}

	q, err := billing.NewQuotation(tenantID, number, req.CustomerID, req.CustomerName, taxRate)
	if err != nil {
		return nil, err
	}
	q.SetValidity(req.ValidUntil)

	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// Get returns a single quotation for a tenant
func (s *QuotationService) Get(ctx context.Context, tenantID, quotationID uuid.UUID) (*QuotationResponse, error) {
	q, err := s.quotations.FindByIDForTenant(ctx, tenantID, quotationID)
	if err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// List returns a page of quotations for a tenant
func (s *QuotationService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[QuotationResponse], error) {
	quotations, err := s.quotations.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	countFilter := filter
	countFilter.Filters = map[string]interface{}{"tenant_id": tenantID}
	total, err := s.quotations.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]QuotationResponse, len(quotations))
	for i := range quotations {
		responses[i] = *ToQuotationResponse(&quotations[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// AddCatalogLine adds a catalog item as a new line
func (s *QuotationService) AddCatalogLine(ctx context.Context, tenantID, quotationID uuid.UUID, req AddCatalogLineRequest) (*QuotationResponse, error) {
	q, err := s.quotations.FindByIDForTenant(ctx, tenantID, quotationID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByIDForTenant(ctx, tenantID, req.ItemID)
	if err != nil {
		return nil, err
	}

	if err := editLines(q, func(led *ledger.Ledger) {
		led.AddFromCatalog(item.ToPick())
	}); err != nil {
		return nil, err
	}

	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

// AddBlankLine appends an empty line for free-form entry
func (s *QuotationService) AddBlankLine(ctx context.Context, tenantID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.edit(ctx, tenantID, quotationID, func(led *ledger.Ledger) {
		led.AddBlank()
	})
}

// UpdateLineQuantity changes a line's quantity; zero or malformed input
// removes the line
func (s *QuotationService) UpdateLineQuantity(ctx context.Context, tenantID, quotationID uuid.UUID, index int, req UpdateLineQuantityRequest) (*QuotationResponse, error) {
	return s.edit(ctx, tenantID, quotationID, func(led *ledger.Ledger) {
		led.UpdateQuantity(index, ledger.Amount(req.Quantity))
	})
}

// UpdateLinePrice overrides a line's unit price
func (s *QuotationService) UpdateLinePrice(ctx context.Context, tenantID, quotationID uuid.UUID, index int, req UpdateLinePriceRequest) (*QuotationResponse, error) {
	return s.edit(ctx, tenantID, quotationID, func(led *ledger.Ledger) {
		led.UpdatePrice(index, ledger.Amount(req.UnitPrice))
	})
}

// SelectLineItem binds an existing line to a catalog item
func (s *QuotationService) SelectLineItem(ctx context.Context, tenantID, quotationID uuid.UUID, index int, req SelectLineItemRequest) (*QuotationResponse, error) {
	var pick *ledger.Pick
	if req.ItemID != nil {
		item, err := s.items.FindByIDForTenant(ctx, tenantID, *req.ItemID)
		if err != nil {
			return nil, err
		}
		p := item.ToPick()
		pick = &p
	}

	return s.edit(ctx, tenantID, quotationID, func(led *ledger.Ledger) {
		led.SelectCatalogItem(index, pick)
	})
}

// RemoveLine deletes a line from the quotation
func (s *QuotationService) RemoveLine(ctx context.Context, tenantID, quotationID uuid.UUID, index int) (*QuotationResponse, error) {
	return s.edit(ctx, tenantID, quotationID, func(led *ledger.Ledger) {
		led.RemoveLine(index)
	})
}

// Send marks the quotation as sent to the customer
func (s *QuotationService) Send(ctx context.Context, tenantID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, tenantID, quotationID, (*billing.Quotation).Send)
}

// Accept marks the quotation as accepted by the customer
func (s *QuotationService) Accept(ctx context.Context, tenantID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, tenantID, quotationID, (*billing.Quotation).Accept)
}

// Decline marks the quotation as declined
func (s *QuotationService) Decline(ctx context.Context, tenantID, quotationID uuid.UUID) (*QuotationResponse, error) {
	return s.transition(ctx, tenantID, quotationID, (*billing.Quotation).Decline)
}

// Convert turns an accepted quotation into a draft invoice. Line totals
// are recomputed from quantity and price during the conversion.
func (s *QuotationService) Convert(ctx context.Context, tenantID, quotationID uuid.UUID) (*InvoiceResponse, error) {
	q, err := s.quotations.FindByIDForTenant(ctx, tenantID, quotationID)
	if err != nil {
		return nil, err
	}

	number, err := s.invoices.GenerateNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	inv, err := q.ConvertToInvoice(number)
	if err != nil {
		return nil, err
	}

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

func (s *QuotationService) edit(ctx context.Context, tenantID, quotationID uuid.UUID, mutate func(*ledger.Ledger)) (*QuotationResponse, error) {
	q, err := s.quotations.FindByIDForTenant(ctx, tenantID, quotationID)
	if err != nil {
		return nil, err
	}

	if err := editLines(q, mutate); err != nil {
		return nil, err
	}

	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}

func (s *QuotationService) transition(ctx context.Context, tenantID, quotationID uuid.UUID, apply func(*billing.Quotation) error) (*QuotationResponse, error) {
	q, err := s.quotations.FindByIDForTenant(ctx, tenantID, quotationID)
	if err != nil {
		return nil, err
	}

	if err := apply(q); err != nil {
		return nil, err
	}

	if err := s.quotations.Save(ctx, q); err != nil {
		return nil, err
	}
	return ToQuotationResponse(q), nil
}
