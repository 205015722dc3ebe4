package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
	"github.com/kinmelhq/kinmel-backend/pkg/enums"
)

// AddProductRequest captures the seller payload for creating a listing.
type AddProductRequest struct {
	Name         string          `json:"name" validate:"required"`
	Company      string          `json:"company" validate:"required"`
	Brand        *string         `json:"brand"`
	Description  string          `json:"description" validate:"required"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	FreeShipping bool            `json:"freeShipping"`
	Colors       []string        `json:"colors"`
	ImageURL     *string         `json:"imageUrl"`
	Category     string          `json:"category" validate:"required,product_category"`
	InStock      *bool           `json:"inStock"`
}

// EditProductRequest carries a partial update; nil fields are untouched.
type EditProductRequest struct {
	Name         *string          `json:"name"`
	Company      *string          `json:"company"`
	Brand        *string          `json:"brand"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     *int             `json:"quantity" validate:"omitempty,min=0"`
	FreeShipping *bool            `json:"freeShipping"`
	Colors       []string         `json:"colors"`
	ImageURL     *string          `json:"imageUrl"`
	Category     *string          `json:"category" validate:"omitempty,product_category"`
	InStock      *bool            `json:"inStock"`
}

// BuyerListRequest filters the storefront catalog.
type BuyerListRequest struct {
	Search   string           `json:"search"`
	Category string           `json:"category" validate:"omitempty,product_category"`
	MinPrice *decimal.Decimal `json:"minPrice"`
	MaxPrice *decimal.Decimal `json:"maxPrice"`
	Page     int              `json:"page" validate:"omitempty,min=1"`
	Limit    int              `json:"limit" validate:"omitempty,min=1"`
}

// SellerListRequest pages through the seller's own listings.
type SellerListRequest struct {
	Page  int `json:"page" validate:"omitempty,min=1"`
	Limit int `json:"limit" validate:"omitempty,min=1"`
}

// ProductDTO is the transport shape for catalog rows.
type ProductDTO struct {
	ID           uuid.UUID             `json:"id"`
	SellerID     uuid.UUID             `json:"sellerId"`
	Name         string                `json:"name"`
	Company      string                `json:"company"`
	Brand        *string               `json:"brand,omitempty"`
	Description  string                `json:"description"`
	Price        decimal.Decimal       `json:"price"`
	Quantity     int                   `json:"quantity"`
	FreeShipping bool                  `json:"freeShipping"`
	Colors       []string              `json:"colors"`
	ImageURL     *string               `json:"imageUrl,omitempty"`
	Category     enums.ProductCategory `json:"category"`
	InStock      bool                  `json:"inStock"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ListResponse wraps a page of catalog rows.
type ListResponse struct {
	Products   []ProductDTO `json:"products"`
	TotalPages int          `json:"totalPages"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:           p.ID,
		SellerID:     p.SellerID,
		Name:         p.Name,
		Company:      p.Company,
		Brand:        p.Brand,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Quantity,
		FreeShipping: p.FreeShipping,
		Colors:       append([]string(nil), p.Colors...),
		ImageURL:     p.ImageURL,
		Category:     p.Category,
		InStock:      p.InStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func fromModels(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
