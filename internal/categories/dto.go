package categories

import (
	"github.com/google/uuid"

	"github.com/kinmelhq/kinmel-backend/pkg/db/models"
)

// AddCategoryRequest captures the payload for creating a category.
type AddCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}

// CategoryDTO is the public shape of a category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListResponse carries every category, ordered by name.
type ListResponse struct {
	Categories []CategoryDTO `json:"categories"`
}

func fromModels(rows []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryDTO{ID: row.ID, Name: row.Name})
	}
	return out
}
