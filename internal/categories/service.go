package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/kinmelhq/kinmel-backend/pkg/db"
	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
	pkgerrors "github.com/kinmelhq/kinmel-backend/pkg/errors"
)

// Service defines the behavior needed by the categories controller.
type Service interface {
	AddCategory(ctx context.Context, req AddCategoryRequest) error
	ListCategories(ctx context.Context) (*ListResponse, error)
}

type service struct {
	repo categoryRepository
}

type categoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
}

// NewService constructs a categories service.
func NewService(repo categoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	return &service{repo: repo}, nil
}

// AddCategory persists a lowercased category name. Uniqueness is
// enforced by the index.
func (s *service) AddCategory(ctx context.Context, req AddCategoryRequest) error {
	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	err := s.repo.Create(ctx, &models.Category{Name: name})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return nil
}

// ListCategories returns every category ordered by name.
func (s *service) ListCategories(ctx context.Context) (*ListResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return &ListResponse{Categories: fromModels(rows)}, nil
}
