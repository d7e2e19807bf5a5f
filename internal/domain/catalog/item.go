package catalog

import (
	"time"

	"github.com/dukabook/backend/internal/domain/ledger"
	"github.com/dukabook/backend/internal/domain/shared"
	"github.com/dukabook/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus represents the lifecycle status of a catalog item
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "ACTIVE"
	ItemStatusInactive ItemStatus = "INACTIVE"
)

// IsValid checks if the status is a valid ItemStatus
func (s ItemStatus) IsValid() bool {
	return s == ItemStatusActive || s == ItemStatusInactive
}

// Item represents a stock or service record looked up by id, supplying the
// default description, prices and unit for document lines
type Item struct {
	shared.TenantAggregateRoot
	Code         string          `gorm:"size:50;not null;uniqueIndex:idx_items_tenant_code,priority:2"`
	Name         string          `gorm:"size:200;not null"`
	Unit         string          `gorm:"size:20;not null;default:'pcs'"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BuyingPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	StockOnHand  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status       ItemStatus      `gorm:"size:20;not null;default:'ACTIVE'"`
}

// NewItem creates a new catalog item
func NewItem(tenantID uuid.UUID, code, name, unit string) (*Item, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		unit = "pcs"
	}
	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Unit:                unit,
		SellingPrice:        decimal.Zero,
		BuyingPrice:         decimal.Zero,
		StockOnHand:         decimal.Zero,
		Status:              ItemStatusActive,
	}, nil
}

// SetPrices sets both selling and buying prices
func (i *Item) SetPrices(selling, buying valueobject.Money) error {
	if selling.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if buying.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Buying price cannot be negative")
	}
	i.SellingPrice = selling.Amount()
	i.BuyingPrice = buying.Amount()
	i.UpdatedAt = time.Now()
	return nil
}

// ReceiveStock increases stock on hand
func (i *Item) ReceiveStock(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	i.StockOnHand = i.StockOnHand.Add(quantity)
	i.UpdatedAt = time.Now()
	return nil
}

// DeductStock decreases stock on hand for a sale or damage write-off
func (i *Item) DeductStock(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Deducted quantity must be positive")
	}
	if quantity.GreaterThan(i.StockOnHand) {
		return shared.ErrInsufficientStock
	}
	i.StockOnHand = i.StockOnHand.Sub(quantity)
	i.UpdatedAt = time.Now()
	return nil
}

// Deactivate removes the item from catalog searches without deleting history
func (i *Item) Deactivate() {
	i.Status = ItemStatusInactive
	i.UpdatedAt = time.Now()
}

// Activate restores the item to catalog searches
func (i *Item) Activate() {
	i.Status = ItemStatusActive
	i.UpdatedAt = time.Now()
}

// IsActive returns true if the item can be picked onto new documents
func (i *Item) IsActive() bool {
	return i.Status == ItemStatusActive
}

// ToPick converts the item to the duck-typed shape document ledgers consume.
// All price fields are populated; the ledger's per-document priority decides
// which one applies.
func (i *Item) ToPick() ledger.Pick {
	return ledger.Pick{
		ItemID:      i.ID,
		Code:        i.Code,
		Description: i.Name,
		Unit:        i.Unit,
		Prices: map[ledger.PriceField]string{
			ledger.FieldRate:         i.SellingPrice.String(),
			ledger.FieldUnitPrice:    i.SellingPrice.String(),
			ledger.FieldSellingPrice: i.SellingPrice.String(),
			ledger.FieldBuyingPrice:  i.BuyingPrice.String(),
		},
		Stock: i.StockOnHand,
	}
}

// TableName returns the database table name for Item
func (Item) TableName() string {
	return "catalog_items"
}
