package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/dukabook/backend/internal/domain/shared/valueobject"
)

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoices       billing.InvoiceRepository
	items          catalog.ItemRepository
	tx             TransactionScope
	defaultTaxRate decimal.Decimal
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices billing.InvoiceRepository, items catalog.ItemRepository, tx TransactionScope, defaultTaxRate decimal.Decimal) *InvoiceService {
	return &InvoiceService{
		invoices:       invoices,
		items:          items,
		tx:             tx,
		defaultTaxRate: defaultTaxRate,
	}
}

// CreateDraft opens a new draft invoice for a customer
func (s *InvoiceService) CreateDraft(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	number, err := s.invoices.GenerateNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	taxRate := s.defaultTaxRate
	if req.TaxRate != nil {
		taxRate = ledger.Amount(*req.TaxRate)
	}

	inv, err := billing.NewInvoice(tenantID, number, req.CustomerID, req.CustomerName, taxRate)
	if err != nil {
		return nil, err
	}

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Get returns a single invoice for a tenant
func (s *InvoiceService) Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// List returns a page of invoices for a tenant
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[InvoiceResponse], error) {
	invoices, err := s.invoices.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	countFilter := filter
	countFilter.Filters = map[string]interface{}{"tenant_id": tenantID}
	total, err := s.invoices.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *ToInvoiceResponse(&invoices[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// AddCatalogLine adds a catalog item as a new line. Adding an item that is
// already on the invoice bumps that line's quantity instead.
func (s *InvoiceService) AddCatalogLine(ctx context.Context, tenantID, invoiceID uuid.UUID, req AddCatalogLineRequest) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByIDForTenant(ctx, tenantID, req.ItemID)
	if err != nil {
		return nil, err
	}

	if err := editLines(inv, func(led *ledger.Ledger) {
		led.AddFromCatalog(item.ToPick())
	}); err != nil {
		return nil, err
	}

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// AddBlankLine appends an empty line for free-form entry
func (s *InvoiceService) AddBlankLine(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.edit(ctx, tenantID, invoiceID, func(led *ledger.Ledger) {
		led.AddBlank()
	})
}

// UpdateLineQuantity changes a line's quantity; zero or malformed input
// removes the line
func (s *InvoiceService) UpdateLineQuantity(ctx context.Context, tenantID, invoiceID uuid.UUID, index int, req UpdateLineQuantityRequest) (*InvoiceResponse, error) {
	return s.edit(ctx, tenantID, invoiceID, func(led *ledger.Ledger) {
		led.UpdateQuantity(index, ledger.Amount(req.Quantity))
	})
}

// UpdateLinePrice overrides a line's unit price
func (s *InvoiceService) UpdateLinePrice(ctx context.Context, tenantID, invoiceID uuid.UUID, index int, req UpdateLinePriceRequest) (*InvoiceResponse, error) {
	return s.edit(ctx, tenantID, invoiceID, func(led *ledger.Ledger) {
		led.UpdatePrice(index, ledger.Amount(req.UnitPrice))
	})
}

// SelectLineItem binds an existing line to a catalog item, or clears the
// binding when the request carries no item
func (s *InvoiceService) SelectLineItem(ctx context.Context, tenantID, invoiceID uuid.UUID, index int, req SelectLineItemRequest) (*InvoiceResponse, error) {
	var pick *ledger.Pick
	if req.ItemID != nil {
		item, err := s.items.FindByIDForTenant(ctx, tenantID, *req.ItemID)
		if err != nil {
			return nil, err
		}
		p := item.ToPick()
		pick = &p
	}

	return s.edit(ctx, tenantID, invoiceID, func(led *ledger.Ledger) {
		led.SelectCatalogItem(index, pick)
	})
}

// RemoveLine deletes a line from the invoice
func (s *InvoiceService) RemoveLine(ctx context.Context, tenantID, invoiceID uuid.UUID, index int) (*InvoiceResponse, error) {
	return s.edit(ctx, tenantID, invoiceID, func(led *ledger.Ledger) {
		led.RemoveLine(index)
	})
}

// RecordPayment records a payment against the invoice. A positive amount
// requires a payment method.
func (s *InvoiceService) RecordPayment(ctx context.Context, tenantID, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyKES(ledger.Amount(req.Amount))
	if err := inv.RecordPayment(amount, billing.PaymentMethod(req.Method)); err != nil {
		return nil, err
	}

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Issue finalizes the invoice and deducts stock for every line bound to a
// catalog item. Free-form lines carry no stock movement. The deductions
// and the status flip commit together, so a short line rolls every
// earlier deduction back and the invoice stays a draft.
func (s *InvoiceService) Issue(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Issue(); err != nil {
		return nil, err
	}

	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := moveStock(ctx, repos.Items(), tenantID, inv.Lines, deduct); err != nil {
			return err
		}
		return repos.Invoices().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Cancel cancels a draft or issued invoice. Stock deducted at issue time
// is restored.
func (s *InvoiceService) Cancel(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	wasIssued := inv.Status == billing.InvoiceStatusIssued
	if err := inv.Cancel(); err != nil {
		return nil, err
	}

	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		if wasIssued {
			if err := moveStock(ctx, repos.Items(), tenantID, inv.Lines, restock); err != nil {
				return err
			}
		}
		return repos.Invoices().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

func (s *InvoiceService) edit(ctx context.Context, tenantID, invoiceID uuid.UUID, mutate func(*ledger.Ledger)) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := editLines(inv, mutate); err != nil {
		return nil, err
	}

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

type stockDirection int

const (
	deduct stockDirection = iota
	restock
)

// moveStock applies each item-bound valid line's quantity to catalog
// stock. It runs against transaction-scoped repositories so callers can
// roll the whole batch back.
func moveStock(ctx context.Context, items catalog.ItemRepository, tenantID uuid.UUID, lines []ledger.Entry, direction stockDirection) error {
	for _, line := range lines {
		if line.ItemID == nil || !line.IsValid() {
			continue
		}
		item, err := items.FindByIDForTenant(ctx, tenantID, *line.ItemID)
		if err != nil {
			return err
		}
		switch direction {
		case deduct:
			err = item.DeductStock(line.Quantity)
		case restock:
			err = item.ReceiveStock(line.Quantity)
		}
		if err != nil {
			return err
		}
		if err := items.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
