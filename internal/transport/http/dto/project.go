package dto

import (
	"architylez/internal/storage/filestorage"
)

type CreateProjectInput struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Category    string `json:"category" form:"category" validate:"required"`
	Description string `json:"description,omitempty" form:"description"`

	Files []filestorage.File `json:"-" swaggerignore:"true"`
}

type UpdateProjectInput struct {
	Title    *string `json:"title,omitempty" form:"title"`
	Category *string `json:"category,omitempty" form:"category"`
	// Description единственное поле, которое можно явно очистить пустой строкой
	Description *string `json:"description,omitempty" form:"description"`

	Files []filestorage.File `json:"-" swaggerignore:"true"`
}

func (in UpdateProjectInput) Updates() map[string]interface{} {
	updates := make(map[string]interface{})

	setString(updates, "title", in.Title)
	setString(updates, "category", in.Category)

	if in.Description != nil {
		updates["description"] = *in.Description
	}

	return updates
}
