package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukabook/backend/internal/domain/billing"
	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/salon"
	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/dukabook/backend/internal/domain/shared/valueobject"
)

// POSService handles point-of-sale business operations
type POSService struct {
	sales          billing.POSSaleRepository
	items          catalog.ItemRepository
	shifts         salon.ShiftRepository
	tx             TransactionScope
	defaultTaxRate decimal.Decimal
}

// NewPOSService creates a new POSService
func NewPOSService(sales billing.POSSaleRepository, items catalog.ItemRepository, shifts salon.ShiftRepository, tx TransactionScope, defaultTaxRate decimal.Decimal) *POSService {
	return &POSService{
		sales:          sales,
		items:          items,
		shifts:         shifts,
		tx:             tx,
		defaultTaxRate: defaultTaxRate,
	}
}

// OpenSale opens a new POS sale, optionally attached to a salon shift
func (s *POSService) OpenSale(ctx context.Context, tenantID uuid.UUID, req OpenSaleRequest) (*POSSaleResponse, error) {
	number, err := s.sales.GenerateNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	taxRate := s.defaultTaxRate
	if req.TaxRate != nil {
		taxRate = ledger.Amount(*req.TaxRate)
	}

	sale, err := billing.NewPOSSale(tenantID, number, req.CashierID, taxRate)
	if err != nil {
		return nil, err
	}

	if req.ShiftID != nil {
		shift, err := s.shifts.FindByIDForTenant(ctx, tenantID, *req.ShiftID)
		if err != nil {
			return nil, err
		}
		if !shift.IsOpen() {
			return nil, shared.NewDomainError("SHIFT_CLOSED", "Cannot attach a sale to a closed shift")
		}
		sale.AttachShift(shift.ID)
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	return ToPOSSaleResponse(sale), nil
}

// Get returns a single sale for a tenant
func (s *POSService) Get(ctx context.Context, tenantID, saleID uuid.UUID) (*POSSaleResponse, error) {
	sale, err := s.sales.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	return ToPOSSaleResponse(sale), nil
}

// List returns a page of sales for a tenant
func (s *POSService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[POSSaleResponse], error) {
	sales, err := s.sales.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	countFilter := filter
	countFilter.Filters = map[string]interface{}{"tenant_id": tenantID}
	total, err := s.sales.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]POSSaleResponse, len(sales))
	for i := range sales {
		responses[i] = *ToPOSSaleResponse(&sales[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// AddCatalogLine rings up a catalog item. Scanning the same item again
// bumps the quantity on its existing line.
func (s *POSService) AddCatalogLine(ctx context.Context, tenantID, saleID uuid.UUID, req AddCatalogLineRequest) (*POSSaleResponse, error) {
	sale, err := s.sales.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByIDForTenant(ctx, tenantID, req.ItemID)
	if err != nil {
		return nil, err
	}

	if err := editLines(sale, func(led *ledger.Ledger) {
		led.AddFromCatalog(item.ToPick())
	}); err != nil {
		return nil, err
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	return ToPOSSaleResponse(sale), nil
}

// UpdateLineQuantity changes a line's quantity; zero or malformed input
// removes the line
func (s *POSService) UpdateLineQuantity(ctx context.Context, tenantID, saleID uuid.UUID, index int, req UpdateLineQuantityRequest) (*POSSaleResponse, error) {
	return s.edit(ctx, tenantID, saleID, func(led *ledger.Ledger) {
		led.UpdateQuantity(index, ledger.Amount(req.Quantity))
	})
}

// RemoveLine deletes a line from the sale
func (s *POSService) RemoveLine(ctx context.Context, tenantID, saleID uuid.UUID, index int) (*POSSaleResponse, error) {
	return s.edit(ctx, tenantID, saleID, func(led *ledger.Ledger) {
		led.RemoveLine(index)
	})
}

// Complete settles the sale: the tendered amount must cover the grand
// total, stock is deducted, and the sale total is rolled into the
// attached shift if any. Everything commits together, so a short line
// leaves stock, shift, and sale exactly as they were.
func (s *POSService) Complete(ctx context.Context, tenantID, saleID uuid.UUID, req CompleteSaleRequest) (*POSSaleResponse, error) {
	sale, err := s.sales.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	tendered := valueobject.NewMoneyKES(ledger.Amount(req.Tendered))
	if err := sale.Complete(tendered, billing.PaymentMethod(req.Method)); err != nil {
		return nil, err
	}

	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := moveStock(ctx, repos.Items(), tenantID, sale.Lines, deduct); err != nil {
			return err
		}

		if sale.ShiftID != nil {
			shift, err := repos.Shifts().FindByIDForTenant(ctx, tenantID, *sale.ShiftID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if shift != nil {
				if err := shift.RecordSale(sale.Totals().GrandTotal); err != nil {
					return err
				}
				if err := repos.Shifts().Save(ctx, shift); err != nil {
					return err
				}
			}
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return ToPOSSaleResponse(sale), nil
}

// Void reverses a completed sale and returns its stock to the shelf
func (s *POSService) Void(ctx context.Context, tenantID, saleID uuid.UUID, req VoidSaleRequest) (*POSSaleResponse, error) {
	sale, err := s.sales.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	if err := sale.Void(req.Reason); err != nil {
		return nil, err
	}

	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := moveStock(ctx, repos.Items(), tenantID, sale.Lines, restock); err != nil {
			return err
		}
		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return ToPOSSaleResponse(sale), nil
}

func (s *POSService) edit(ctx context.Context, tenantID, saleID uuid.UUID, mutate func(*ledger.Ledger)) (*POSSaleResponse, error) {
	sale, err := s.sales.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}

	if err := editLines(sale, mutate); err != nil {
		return nil, err
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}
	return ToPOSSaleResponse(sale), nil
}
