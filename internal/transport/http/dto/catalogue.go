package dto

import (
	"architylez/internal/storage/filestorage"
)

type CreateCatalogueInput struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	// Category по умолчанию General
	Category string `json:"category,omitempty" form:"category" validate:"omitempty,catalogue_category"`

	Files []filestorage.File `json:"-" swaggerignore:"true"`
}

type UpdateCatalogueInput struct {
	Title       *string `json:"title,omitempty" form:"title"`
	Description *string `json:"description,omitempty" form:"description"`
	Category    *string `json:"category,omitempty" form:"category" validate:"omitempty,catalogue_category"`

	Files []filestorage.File `json:"-" swaggerignore:"true"`
}

func (in UpdateCatalogueInput) Updates() map[string]interface{} {
	updates := make(map[string]interface{})

	setString(updates, "title", in.Title)
	setString(updates, "description", in.Description)
	setString(updates, "category", in.Category)

	return updates
}
