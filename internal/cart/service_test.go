package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
	pkgerrors "github.com/kinmelhq/kinmel-backend/pkg/errors"
)

type stubCartStore struct {
	upsertFn func(ctx context.Context, buyerID, productID uuid.UUID, delta int) error
	removeFn func(ctx context.Context, buyerID, productID uuid.UUID) error
	setFn    func(ctx context.Context, buyerID, productID uuid.UUID, quantity int) error
	countFn  func(ctx context.Context, buyerID uuid.UUID) (int64, error)
	listFn   func(ctx context.Context, buyerID uuid.UUID) ([]PricedEntry, error)
}

func (s *stubCartStore) UpsertEntry(ctx context.Context, buyerID, productID uuid.UUID, delta int) error {
	return s.upsertFn(ctx, buyerID, productID, delta)
}

func (s *stubCartStore) RemoveEntry(ctx context.Context, buyerID, productID uuid.UUID) error {
	return s.removeFn(ctx, buyerID, productID)
}

func (s *stubCartStore) SetEntryQuantity(ctx context.Context, buyerID, productID uuid.UUID, quantity int) error {
	return s.setFn(ctx, buyerID, productID, quantity)
}

func (s *stubCartStore) CountEntries(ctx context.Context, buyerID uuid.UUID) (int64, error) {
	return s.countFn(ctx, buyerID)
}

func (s *stubCartStore) ListPricedEntries(ctx context.Context, buyerID uuid.UUID) ([]PricedEntry, error) {
	return s.listFn(ctx, buyerID)
}

type stubCatalog struct {
	findFn func(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

func (s *stubCatalog) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.findFn(ctx, id)
}

func newCartService(t *testing.T, store cartStore, catalog catalogReader) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Store: store, Catalog: catalog})
	require.NoError(t, err)
	return svc
}

func catalogWithProduct(product *models.Product) *stubCatalog {
	return &stubCatalog{
		findFn: func(_ context.Context, id uuid.UUID) (*models.Product, error) {
			if product != nil && product.ID == id {
				return product, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func TestAddItemUnknownProductNotFound(t *testing.T) {
	svc := newCartService(t, &stubCartStore{}, catalogWithProduct(nil))

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAddItemExceedingStockForbidden(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Quantity: 2}
	store := &stubCartStore{
		upsertFn: func(context.Context, uuid.UUID, uuid.UUID, int) error {
			t.Fatal("upsert should not be reached")
			return nil
		},
	}

	svc := newCartService(t, store, catalogWithProduct(product))
	err := svc.AddItem(context.Background(), uuid.New(), product.ID, 3)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeOutOfStock, pkgerrors.As(err).Code())
}

func TestAddItemDelegatesToUpsert(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Quantity: 10}
	buyerID := uuid.New()

	var gotDelta int
	store := &stubCartStore{
		upsertFn: func(_ context.Context, gotBuyer, gotProduct uuid.UUID, delta int) error {
			require.Equal(t, buyerID, gotBuyer)
			require.Equal(t, product.ID, gotProduct)
			gotDelta = delta
			return nil
		},
	}

	svc := newCartService(t, store, catalogWithProduct(product))
	require.NoError(t, svc.AddItem(context.Background(), buyerID, product.ID, 4))
	require.Equal(t, 4, gotDelta)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := newCartService(t, &stubCartStore{}, catalogWithProduct(nil))

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 0)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRemoveItemIdempotent(t *testing.T) {
	store := &stubCartStore{
		removeFn: func(context.Context, uuid.UUID, uuid.UUID) error { return nil },
	}

	svc := newCartService(t, store, catalogWithProduct(nil))
	require.NoError(t, svc.RemoveItem(context.Background(), uuid.New(), uuid.New()))
}

func TestAdjustQuantityUsesCatalogBaseline(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Quantity: 5}

	var gotQuantity int
	store := &stubCartStore{
		setFn: func(_ context.Context, _, _ uuid.UUID, quantity int) error {
			gotQuantity = quantity
			return nil
		},
	}

	svc := newCartService(t, store, catalogWithProduct(product))

	require.NoError(t, svc.AdjustQuantity(context.Background(), uuid.New(), product.ID, ActionIncrease))
	require.Equal(t, 6, gotQuantity)

	require.NoError(t, svc.AdjustQuantity(context.Background(), uuid.New(), product.ID, ActionDecrease))
	require.Equal(t, 4, gotQuantity)
}

func TestAdjustQuantityRefusesNonPositiveResult(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Quantity: 1}
	store := &stubCartStore{
		setFn: func(context.Context, uuid.UUID, uuid.UUID, int) error {
			t.Fatal("set should not be reached")
			return nil
		},
	}

	svc := newCartService(t, store, catalogWithProduct(product))
	err := svc.AdjustQuantity(context.Background(), uuid.New(), product.ID, ActionDecrease)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAdjustQuantityMissingEntryNotFound(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Quantity: 5}
	store := &stubCartStore{
		setFn: func(context.Context, uuid.UUID, uuid.UUID, int) error {
			return gorm.ErrRecordNotFound
		},
	}

	svc := newCartService(t, store, catalogWithProduct(product))
	err := svc.AdjustQuantity(context.Background(), uuid.New(), product.ID, ActionIncrease)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestGetPricedCartEmpty(t *testing.T) {
	store := &stubCartStore{
		listFn: func(context.Context, uuid.UUID) ([]PricedEntry, error) {
			return nil, nil
		},
	}

	svc := newCartService(t, store, catalogWithProduct(nil))
	resp, err := svc.GetPricedCart(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, resp.CartList)
	require.Empty(t, resp.CartList)
	require.True(t, resp.GrandTotal.IsZero())
}

func TestGetPricedCartSumsLines(t *testing.T) {
	store := &stubCartStore{
		listFn: func(context.Context, uuid.UUID) ([]PricedEntry, error) {
			return []PricedEntry{
				{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("10.00"), OrderQuantity: 2},
				{ProductID: uuid.New(), UnitPrice: decimal.RequireFromString("3.50"), OrderQuantity: 1},
			}, nil
		},
	}

	svc := newCartService(t, store, catalogWithProduct(nil))
	resp, err := svc.GetPricedCart(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, resp.CartList, 2)
	require.True(t, resp.GrandTotal.Equal(decimal.RequireFromString("23.50")))
}

func TestGetItemCountZeroWithoutCart(t *testing.T) {
	store := &stubCartStore{
		countFn: func(context.Context, uuid.UUID) (int64, error) { return 0, nil },
	}

	svc := newCartService(t, store, catalogWithProduct(nil))
	resp, err := svc.GetItemCount(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Zero(t, resp.ItemCount)
}
