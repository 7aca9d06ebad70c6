package dto

import (
	"encoding/json"

	"architylez/internal/storage/filestorage"
)

type CreateBlogInput struct {
	Title   string `json:"title" validate:"required"`
	Excerpt string `json:"excerpt" validate:"required"`
	// Content документ редактора: JSON как есть либо строка
	Content  json.RawMessage `json:"content" validate:"required" swaggertype:"object"`
	Category string          `json:"category" validate:"required"`
	Author   string          `json:"author" validate:"required"`

	Files []filestorage.File `json:"-" swaggerignore:"true"`
}

type UpdateBlogInput struct {
	Title    *string         `json:"title,omitempty"`
	Excerpt  *string         `json:"excerpt,omitempty"`
	Content  json.RawMessage `json:"content,omitempty" swaggertype:"object"`
	Category *string         `json:"category,omitempty"`
	Author   *string         `json:"author,omitempty"`

	Files []filestorage.File `json:"-" swaggerignore:"true"`
}

func (in UpdateBlogInput) Updates() map[string]interface{} {
	updates := make(map[string]interface{})

	setString(updates, "title", in.Title)
	setString(updates, "excerpt", in.Excerpt)
	setString(updates, "category", in.Category)
	setString(updates, "author", in.Author)

	if len(in.Content) > 0 {
		updates["content"] = in.Content
	}

	return updates
}
