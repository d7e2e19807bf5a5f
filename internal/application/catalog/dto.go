package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/catalog"
)

// CreateItemRequest represents a request to create a catalog item
type CreateItemRequest struct {
	Code         string `json:"code" binding:"required,min=1,max=50"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	Unit         string `json:"unit" binding:"max=20"`
	SellingPrice string `json:"selling_price"`
	BuyingPrice  string `json:"buying_price"`
	OpeningStock string `json:"opening_stock"`
}

// UpdateItemRequest represents a request to update a catalog item
type UpdateItemRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	Unit         *string `json:"unit" binding:"omitempty,max=20"`
	SellingPrice *string `json:"selling_price"`
	BuyingPrice  *string `json:"buying_price"`
}

// ReceiveStockRequest represents a stock receipt
type ReceiveStockRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	SellingPrice string    `json:"selling_price"`
	BuyingPrice  string    `json:"buying_price"`
	StockOnHand  string    `json:"stock_on_hand"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToItemResponse converts a domain item to its API representation
func ToItemResponse(item *catalog.Item) *ItemResponse {
	return &ItemResponse{
		ID:           item.ID,
		Code:         item.Code,
		Name:         item.Name,
		Unit:         item.Unit,
		SellingPrice: item.SellingPrice.StringFixed(2),
		BuyingPrice:  item.BuyingPrice.StringFixed(2),
		StockOnHand:  item.StockOnHand.String(),
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
