package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
	pkgerrors "github.com/kinmelhq/kinmel-backend/pkg/errors"
	"github.com/kinmelhq/kinmel-backend/pkg/metrics"
)

// Service defines the cart behavior needed by the controller.
type Service interface {
	AddItem(ctx context.Context, buyerID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, buyerID, productID uuid.UUID) error
	AdjustQuantity(ctx context.Context, buyerID, productID uuid.UUID, action Action) error
	GetPricedCart(ctx context.Context, buyerID uuid.UUID) (*PricedCartResponse, error)
	GetItemCount(ctx context.Context, buyerID uuid.UUID) (*CountResponse, error)
}

type service struct {
	store   cartStore
	catalog catalogReader
}

type cartStore interface {
	UpsertEntry(ctx context.Context, buyerID, productID uuid.UUID, delta int) error
	RemoveEntry(ctx context.Context, buyerID, productID uuid.UUID) error
	SetEntryQuantity(ctx context.Context, buyerID, productID uuid.UUID, quantity int) error
	CountEntries(ctx context.Context, buyerID uuid.UUID) (int64, error)
	ListPricedEntries(ctx context.Context, buyerID uuid.UUID) ([]PricedEntry, error)
}

type catalogReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	Store   cartStore
	Catalog catalogReader
}

// NewService constructs a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog reader is required")
	}
	return &service{store: params.Store, catalog: params.Catalog}, nil
}

// AddItem places quantity units of the product into the buyer's cart.
// Adding a product already present merges quantities through the atomic
// upsert instead of duplicating the row.
func (s *service) AddItem(ctx context.Context, buyerID, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return err
	}
	if quantity > product.Quantity {
		metrics.ObserveCartMutation("add", "out_of_stock")
		return pkgerrors.New(pkgerrors.CodeOutOfStock, "product is out of stock")
	}

	if err := s.store.UpsertEntry(ctx, buyerID, productID, quantity); err != nil {
		metrics.ObserveCartMutation("add", "error")
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert cart entry")
	}
	metrics.ObserveCartMutation("add", "ok")
	return nil
}

// RemoveItem deletes the product from the cart. Removing something that
// was never there still succeeds.
func (s *service) RemoveItem(ctx context.Context, buyerID, productID uuid.UUID) error {
	if err := s.store.RemoveEntry(ctx, buyerID, productID); err != nil {
		metrics.ObserveCartMutation("remove", "error")
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart entry")
	}
	metrics.ObserveCartMutation("remove", "ok")
	return nil
}

// AdjustQuantity steps the stored quantity for an existing entry. The
// new value is derived from the catalog's available quantity, plus or
// minus one, matching the storefront's established behavior. A result
// at or below zero leaves the entry untouched.
func (s *service) AdjustQuantity(ctx context.Context, buyerID, productID uuid.UUID, action Action) error {
	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return err
	}

	var newQuantity int
	switch action {
	case ActionIncrease:
		newQuantity = product.Quantity + 1
	case ActionDecrease:
		newQuantity = product.Quantity - 1
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "action must be increase or decrease")
	}

	if newQuantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot drop below 1")
	}

	if err := s.store.SetEntryQuantity(ctx, buyerID, productID, newQuantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart entry not found")
		}
		metrics.ObserveCartMutation("adjust", "error")
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set cart quantity")
	}
	metrics.ObserveCartMutation("adjust", "ok")
	return nil
}

// GetPricedCart returns the aggregated cart priced against the live
// catalog. Entries whose product disappeared are dropped by the join.
func (s *service) GetPricedCart(ctx context.Context, buyerID uuid.UUID) (*PricedCartResponse, error) {
	entries, err := s.store.ListPricedEntries(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart entries")
	}
	resp := BuildPricedCart(entries)
	return &resp, nil
}

// GetItemCount reports how many distinct products the buyer carries. A
// buyer who never added anything simply counts zero.
func (s *service) GetItemCount(ctx context.Context, buyerID uuid.UUID) (*CountResponse, error) {
	count, err := s.store.CountEntries(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count cart entries")
	}
	return &CountResponse{ItemCount: count}, nil
}

func (s *service) lookupProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}
