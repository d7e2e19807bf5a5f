package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/catalog"
	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/dukabook/backend/internal/domain/shared/valueobject"
)

// ItemService handles catalog item business operations
type ItemService struct {
	items catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(items catalog.ItemRepository) *ItemService {
	return &ItemService{items: items}
}

// Create creates a new catalog item
func (s *ItemService) Create(ctx context.Context, tenantID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	if existing, err := s.items.FindByCode(ctx, tenantID, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An item with this code already exists")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	item, err := catalog.NewItem(tenantID, req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}

	selling := valueobject.NewMoneyKES(ledger.Amount(req.SellingPrice))
	buying := valueobject.NewMoneyKES(ledger.Amount(req.BuyingPrice))
	if err := item.SetPrices(selling, buying); err != nil {
		return nil, err
	}

	if opening := ledger.Amount(req.OpeningStock); opening.IsPositive() {
		if err := item.ReceiveStock(opening); err != nil {
			return nil, err
		}
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Get returns a single item for a tenant
func (s *ItemService) Get(ctx context.Context, tenantID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.items.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// List returns a page of items for a tenant
func (s *ItemService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	items, total, err := s.items.Search(ctx, tenantID, filter.Search, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = *ToItemResponse(&items[i])
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates an item's name, unit or prices
func (s *ItemService) Update(ctx context.Context, tenantID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.items.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}

	if req.SellingPrice != nil || req.BuyingPrice != nil {
		selling := item.SellingPrice
		buying := item.BuyingPrice
		if req.SellingPrice != nil {
			selling = ledger.Amount(*req.SellingPrice)
		}
		if req.BuyingPrice != nil {
			buying = ledger.Amount(*req.BuyingPrice)
		}
		if err := item.SetPrices(valueobject.NewMoneyKES(selling), valueobject.NewMoneyKES(buying)); err != nil {
			return nil, err
		}
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// ReceiveStock adds received quantity to an item's stock on hand
func (s *ItemService) ReceiveStock(ctx context.Context, tenantID, itemID uuid.UUID, req ReceiveStockRequest) (*ItemResponse, error) {
	item, err := s.items.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.ReceiveStock(ledger.Amount(req.Quantity)); err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Deactivate removes an item from the active catalog without deleting it
func (s *ItemService) Deactivate(ctx context.Context, tenantID, itemID uuid.UUID) error {
	item, err := s.items.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return err
	}
	item.Deactivate()
	return s.items.Save(ctx, item)
}

// Activate returns an item to the active catalog
func (s *ItemService) Activate(ctx context.Context, tenantID, itemID uuid.UUID) error {
	item, err := s.items.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return err
	}
	item.Activate()
	return s.items.Save(ctx, item)
}

// Picks returns line picker entries for active items matching the term
func (s *ItemService) Picks(ctx context.Context, tenantID uuid.UUID, term string, filter shared.Filter) ([]ledger.Pick, error) {
	items, _, err := s.items.Search(ctx, tenantID, term, filter)
	if err != nil {
		return nil, err
	}

	picks := make([]ledger.Pick, 0, len(items))
	for i := range items {
		if items[i].IsActive() {
			picks = append(picks, items[i].ToPick())
		}
	}
	return picks, nil
}
