package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/kinmelhq/kinmel-backend/pkg/enums"
)

// Product represents the canonical seller listing. Quantity is the
// available stock the cart subsystem checks against; cart holds are
// advisory and never decrement it.
type Product struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID     uuid.UUID             `gorm:"column:seller_id;type:uuid;not null;index"`
	Name         string                `gorm:"column:name;not null"`
	Company      string                `gorm:"column:company;not null"`
	Brand        *string               `gorm:"column:brand"`
	Description  string                `gorm:"column:description;not null"`
	Price        decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity     int                   `gorm:"column:quantity;not null"`
	FreeShipping bool                  `gorm:"column:free_shipping;not null;default:false"`
	Colors       pq.StringArray        `gorm:"column:colors;type:text[]"`
	ImageURL     *string               `gorm:"column:image_url"`
	Category     enums.ProductCategory `gorm:"column:category;not null"`
	InStock      bool                  `gorm:"column:in_stock;not null;default:true"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
