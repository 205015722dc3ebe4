package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action is the direction of a quantity adjustment.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
)

// AddItemRequest is the payload for placing a product into the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// AdjustQuantityRequest selects the adjustment direction.
type AdjustQuantityRequest struct {
	Action string `json:"action" validate:"required,oneof=increase decrease"`
}

// PricedLine is one cart row joined against the live catalog.
type PricedLine struct {
	ProductID         uuid.UUID       `json:"productId"`
	Name              string          `json:"name"`
	Brand             *string         `json:"brand,omitempty"`
	Company           string          `json:"company"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	AvailableQuantity int             `json:"availableQuantity"`
	OrderQuantity     int             `json:"orderQuantity"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
}

// PricedCartResponse is the aggregated cart view.
type PricedCartResponse struct {
	CartList   []PricedLine    `json:"cartList"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// CountResponse carries the number of distinct cart entries.
type CountResponse struct {
	ItemCount int64 `json:"itemCount"`
}
