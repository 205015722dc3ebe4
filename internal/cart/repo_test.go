package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kinmelhq/kinmel-backend/internal/products"
	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
	"github.com/kinmelhq/kinmel-backend/pkg/enums"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	productsDDL := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL,
  name TEXT NOT NULL,
  company TEXT NOT NULL,
  brand TEXT,
  description TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  free_shipping INTEGER NOT NULL DEFAULT 0,
  colors TEXT,
  image_url TEXT,
  category TEXT NOT NULL,
  in_stock INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItemsDDL := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  buyer_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (buyer_id, product_id),
  FOREIGN KEY (product_id) REFERENCES products (id) ON DELETE CASCADE
);`

	require.NoError(t, db.Exec(productsDDL).Error)
	require.NoError(t, db.Exec(cartItemsDDL).Error)
	return db
}

func insertProduct(t *testing.T, db *gorm.DB, price string, quantity int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Name:     "Test product",
		Company:  "Test co",
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
		Category: enums.CategoryGrocery,
		InStock:  true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestUpsertEntryMergesQuantities(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	buyerID := uuid.New()
	product := insertProduct(t, db, "9.99", 50)

	require.NoError(t, repo.UpsertEntry(ctx, buyerID, product.ID, 1))
	require.NoError(t, repo.UpsertEntry(ctx, buyerID, product.ID, 2))

	entry, err := repo.FindEntry(ctx, buyerID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 3, entry.Quantity)

	count, err := repo.CountEntries(ctx, buyerID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestUpsertEntryKeepsBuyersIndependent(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := insertProduct(t, db, "5.00", 50)
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, repo.UpsertEntry(ctx, first, product.ID, 2))
	require.NoError(t, repo.UpsertEntry(ctx, second, product.ID, 7))

	entry, err := repo.FindEntry(ctx, first, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, entry.Quantity)

	entry, err = repo.FindEntry(ctx, second, product.ID)
	require.NoError(t, err)
	require.Equal(t, 7, entry.Quantity)
}

func TestRemoveEntryIdempotent(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	buyerID := uuid.New()
	product := insertProduct(t, db, "2.50", 10)

	// Removing something never added is fine.
	require.NoError(t, repo.RemoveEntry(ctx, buyerID, product.ID))

	require.NoError(t, repo.UpsertEntry(ctx, buyerID, product.ID, 1))
	require.NoError(t, repo.RemoveEntry(ctx, buyerID, product.ID))
	require.NoError(t, repo.RemoveEntry(ctx, buyerID, product.ID))

	count, err := repo.CountEntries(ctx, buyerID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestSetEntryQuantity(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	buyerID := uuid.New()
	product := insertProduct(t, db, "2.50", 10)

	err := repo.SetEntryQuantity(ctx, buyerID, product.ID, 4)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.UpsertEntry(ctx, buyerID, product.ID, 1))
	require.NoError(t, repo.SetEntryQuantity(ctx, buyerID, product.ID, 4))

	entry, err := repo.FindEntry(ctx, buyerID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 4, entry.Quantity)
}

func TestListPricedEntriesJoinsAndOrders(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	buyerID := uuid.New()
	first := insertProduct(t, db, "19.99", 40)
	second := insertProduct(t, db, "45.50", 12)

	base := time.Now().UTC().Add(-time.Minute)
	rows := []models.CartItem{
		{ID: uuid.New(), BuyerID: buyerID, ProductID: first.ID, Quantity: 3, CreatedAt: base},
		{ID: uuid.New(), BuyerID: buyerID, ProductID: second.ID, Quantity: 1, CreatedAt: base.Add(time.Second)},
	}
	require.NoError(t, db.Create(&rows).Error)

	entries, err := repo.ListPricedEntries(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, first.ID, entries[0].ProductID)
	require.Equal(t, 3, entries[0].OrderQuantity)
	require.Equal(t, 40, entries[0].AvailableQuantity)
	require.True(t, entries[0].UnitPrice.Equal(decimal.RequireFromString("19.99")))

	require.Equal(t, second.ID, entries[1].ProductID)
	require.Equal(t, 1, entries[1].OrderQuantity)
}

func TestDeleteCartedProductDropsPricedLine(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	catalog := products.NewRepository(db)
	ctx := context.Background()

	buyerID := uuid.New()
	kept := insertProduct(t, db, "10.00", 30)
	removed := insertProduct(t, db, "4.25", 8)

	require.NoError(t, repo.UpsertEntry(ctx, buyerID, kept.ID, 2))
	require.NoError(t, repo.UpsertEntry(ctx, buyerID, removed.ID, 1))

	// Sellers can delete a product even while it sits in carts.
	require.NoError(t, catalog.Delete(ctx, removed.ID))

	entries, err := repo.ListPricedEntries(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, kept.ID, entries[0].ProductID)

	count, err := repo.CountEntries(ctx, buyerID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestCountEntriesZeroWithoutCart(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	count, err := repo.CountEntries(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Zero(t, count)
}
