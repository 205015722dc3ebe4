package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
	"github.com/kinmelhq/kinmel-backend/pkg/enums"
	pkgerrors "github.com/kinmelhq/kinmel-backend/pkg/errors"
	"github.com/kinmelhq/kinmel-backend/pkg/pagination"
)

// Service defines the behavior needed by the products controller.
type Service interface {
	AddProduct(ctx context.Context, sellerID uuid.UUID, req AddProductRequest) (*ProductDTO, error)
	EditProduct(ctx context.Context, sellerID, productID uuid.UUID, req EditProductRequest) error
	DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error
	GetProductDetails(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListForBuyer(ctx context.Context, req BuyerListRequest) (*ListResponse, error)
	ListForSeller(ctx context.Context, sellerID uuid.UUID, req SellerListRequest) (*ListResponse, error)
}

type service struct {
	repo productRepository
}

type productRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListForBuyer(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Product, int64, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, page pagination.Params) ([]models.Product, int64, error)
}

// NewService constructs a products service.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo}, nil
}

// AddProduct creates a listing owned by the seller.
func (s *service) AddProduct(ctx context.Context, sellerID uuid.UUID, req AddProductRequest) (*ProductDTO, error) {
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	category, err := enums.ParseProductCategory(req.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}

	inStock := req.Quantity > 0
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := &models.Product{
		SellerID:     sellerID,
		Name:         req.Name,
		Company:      req.Company,
		Brand:        req.Brand,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		FreeShipping: req.FreeShipping,
		Colors:       req.Colors,
		ImageURL:     req.ImageURL,
		Category:     category,
		InStock:      inStock,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}

// EditProduct applies a partial update to a listing the seller owns.
func (s *service) EditProduct(ctx context.Context, sellerID, productID uuid.UUID, req EditProductRequest) error {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Company != nil {
		product.Company = *req.Company
	}
	if req.Brand != nil {
		product.Brand = req.Brand
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.FreeShipping != nil {
		product.FreeShipping = *req.FreeShipping
	}
	if req.Colors != nil {
		product.Colors = req.Colors
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.Category != nil {
		category, err := enums.ParseProductCategory(*req.Category)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		product.Category = category
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if _, err := s.repo.Update(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return nil
}

// DeleteProduct removes a listing the seller owns.
func (s *service) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	if _, err := s.ownedProduct(ctx, sellerID, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

// GetProductDetails loads a single listing for any authenticated user.
func (s *service) GetProductDetails(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return FromModel(product), nil
}

// ListForBuyer serves the filtered storefront page.
func (s *service) ListForBuyer(ctx context.Context, req BuyerListRequest) (*ListResponse, error) {
	filter := ListFilter{
		Search:   req.Search,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	}
	if req.Category != "" {
		category, err := enums.ParseProductCategory(req.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		filter.Category = category
	}

	page := pagination.Params{Page: req.Page, Limit: req.Limit}.Normalize()
	rows, total, err := s.repo.ListForBuyer(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	return &ListResponse{
		Products:   fromModels(rows),
		TotalPages: page.Build(total).TotalPages,
	}, nil
}

// ListForSeller serves the seller's own listings.
func (s *service) ListForSeller(ctx context.Context, sellerID uuid.UUID, req SellerListRequest) (*ListResponse, error) {
	page := pagination.Params{Page: req.Page, Limit: req.Limit}.Normalize()
	rows, total, err := s.repo.ListBySeller(ctx, sellerID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list seller products")
	}

	return &ListResponse{
		Products:   fromModels(rows),
		TotalPages: page.Build(total).TotalPages,
	}, nil
}

func (s *service) ownedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if product.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the product owner")
	}
	return product, nil
}
