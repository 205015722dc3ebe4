package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
	"github.com/kinmelhq/kinmel-backend/pkg/enums"
	pkgerrors "github.com/kinmelhq/kinmel-backend/pkg/errors"
	"github.com/kinmelhq/kinmel-backend/pkg/pagination"
)

type stubProductRepo struct {
	createFn   func(ctx context.Context, product *models.Product) (*models.Product, error)
	updateFn   func(ctx context.Context, product *models.Product) (*models.Product, error)
	deleteFn   func(ctx context.Context, id uuid.UUID) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	listBuyer  func(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Product, int64, error)
	listSeller func(ctx context.Context, sellerID uuid.UUID, page pagination.Params) ([]models.Product, int64, error)
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	return s.createFn(ctx, product)
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	return s.updateFn(ctx, product)
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubProductRepo) ListForBuyer(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Product, int64, error) {
	return s.listBuyer(ctx, filter, page)
}

func (s *stubProductRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID, page pagination.Params) ([]models.Product, int64, error) {
	return s.listSeller(ctx, sellerID, page)
}

func TestAddProductRejectsNegativePrice(t *testing.T) {
	svc, err := NewService(&stubProductRepo{})
	require.NoError(t, err)

	_, err = svc.AddProduct(context.Background(), uuid.New(), AddProductRequest{
		Name:        "Rice",
		Company:     "Annapurna",
		Description: "5kg bag",
		Price:       decimal.NewFromInt(-1),
		Category:    "grocery",
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAddProductPersistsSellerAndCategory(t *testing.T) {
	sellerID := uuid.New()
	var captured *models.Product
	repo := &stubProductRepo{
		createFn: func(_ context.Context, product *models.Product) (*models.Product, error) {
			captured = product
			product.ID = uuid.New()
			return product, nil
		},
	}

	svc, err := NewService(repo)
	require.NoError(t, err)

	dto, err := svc.AddProduct(context.Background(), sellerID, AddProductRequest{
		Name:        "Rice",
		Company:     "Annapurna",
		Description: "5kg bag",
		Price:       decimal.NewFromFloat(12.50),
		Quantity:    40,
		Category:    "grocery",
	})
	require.NoError(t, err)
	require.Equal(t, sellerID, captured.SellerID)
	require.Equal(t, enums.CategoryGrocery, captured.Category)
	require.True(t, captured.InStock)
	require.Equal(t, sellerID, dto.SellerID)
}

func TestDeleteProductOwnerOnly(t *testing.T) {
	owner := uuid.New()
	productID := uuid.New()
	repo := &stubProductRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.Product, error) {
			return &models.Product{ID: id, SellerID: owner}, nil
		},
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}

	svc, err := NewService(repo)
	require.NoError(t, err)

	err = svc.DeleteProduct(context.Background(), uuid.New(), productID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	require.NoError(t, svc.DeleteProduct(context.Background(), owner, productID))
}

func TestGetProductDetailsNotFound(t *testing.T) {
	repo := &stubProductRepo{
		findByIDFn: func(context.Context, uuid.UUID) (*models.Product, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.GetProductDetails(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListForBuyerComputesTotalPages(t *testing.T) {
	repo := &stubProductRepo{
		listBuyer: func(_ context.Context, filter ListFilter, page pagination.Params) ([]models.Product, int64, error) {
			require.Equal(t, enums.CategoryElectronics, filter.Category)
			require.Equal(t, 2, page.Page)
			return []models.Product{{ID: uuid.New()}}, 21, nil
		},
	}

	svc, err := NewService(repo)
	require.NoError(t, err)

	resp, err := svc.ListForBuyer(context.Background(), BuyerListRequest{
		Category: "electronics",
		Page:     2,
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	require.Equal(t, 3, resp.TotalPages)
}

func TestEditProductAppliesPartialUpdate(t *testing.T) {
	owner := uuid.New()
	productID := uuid.New()
	var saved *models.Product
	repo := &stubProductRepo{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*models.Product, error) {
			return &models.Product{
				ID:       id,
				SellerID: owner,
				Name:     "Old name",
				Quantity: 5,
				Category: enums.CategoryKitchen,
			}, nil
		},
		updateFn: func(_ context.Context, product *models.Product) (*models.Product, error) {
			saved = product
			return product, nil
		},
	}

	svc, err := NewService(repo)
	require.NoError(t, err)

	newName := "New name"
	newQty := 9
	require.NoError(t, svc.EditProduct(context.Background(), owner, productID, EditProductRequest{
		Name:     &newName,
		Quantity: &newQty,
	}))
	require.Equal(t, "New name", saved.Name)
	require.Equal(t, 9, saved.Quantity)
	require.Equal(t, enums.CategoryKitchen, saved.Category)
}
