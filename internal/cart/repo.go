package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
)

// PricedEntry is the projection of one cart row joined with its live
// catalog product. Rows whose product was deleted never appear.
type PricedEntry struct {
	ProductID         uuid.UUID       `gorm:"column:product_id"`
	Name              string          `gorm:"column:name"`
	Brand             *string         `gorm:"column:brand"`
	Company           string          `gorm:"column:company"`
	UnitPrice         decimal.Decimal `gorm:"column:unit_price"`
	AvailableQuantity int             `gorm:"column:available_quantity"`
	OrderQuantity     int             `gorm:"column:order_quantity"`
}

// Repository exposes persistence operations for cart entries.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// UpsertEntry adds delta to the buyer's entry for the product, creating
// the row when absent. The whole add-or-increment is one statement
// against the (buyer_id, product_id) unique index, so concurrent adds
// merge instead of duplicating or losing updates.
func (r *Repository) UpsertEntry(ctx context.Context, buyerID, productID uuid.UUID, delta int) error {
	entry := models.CartItem{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		ProductID: productID,
		Quantity:  delta,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "buyer_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("quantity + excluded.quantity"),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&entry).Error
}

// RemoveEntry deletes the buyer's entry for the product. Deleting an
// absent entry is not an error.
func (r *Repository) RemoveEntry(ctx context.Context, buyerID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Delete(&models.CartItem{}).Error
}

// SetEntryQuantity overwrites the stored quantity for an existing entry.
// A missing entry surfaces as gorm.ErrRecordNotFound.
func (r *Repository) SetEntryQuantity(ctx context.Context, buyerID, productID uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountEntries returns how many distinct products sit in the buyer's
// cart. A buyer without rows simply counts zero.
func (r *Repository) CountEntries(ctx context.Context, buyerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("buyer_id = ?", buyerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListPricedEntries joins cart rows with their catalog products,
// preserving entry insertion order.
func (r *Repository) ListPricedEntries(ctx context.Context, buyerID uuid.UUID) ([]PricedEntry, error) {
	var rows []PricedEntry
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.product_id,
			products.name,
			products.brand,
			products.company,
			products.price AS unit_price,
			products.quantity AS available_quantity,
			cart_items.quantity AS order_quantity`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.buyer_id = ?", buyerID).
		Order("cart_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindEntry loads a single cart row, mostly for tests and diagnostics.
func (r *Repository) FindEntry(ctx context.Context, buyerID, productID uuid.UUID) (*models.CartItem, error) {
	var entry models.CartItem
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
