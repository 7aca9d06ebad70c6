package models

import (
	"time"

	"github.com/google/uuid"
)

var CatalogueCategories = []string{CategoryGVT, CategorySubway, CategoryWall, CategoryWood, CategoryGeneral}

type Catalogue struct {
	ID          uuid.UUID `json:"_id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	PDF         AssetRef  `json:"pdf" db:"pdf"`
	// Thumbnail либо загружен явно, либо построен по первой странице PDF.
	Thumbnail *AssetRef `json:"thumbnail" db:"thumbnail"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Assets returns the stored files owned by the catalogue. A derived thumbnail
// has no identifier and is skipped.
func (c *Catalogue) Assets() AssetRefs {
	refs := AssetRefs{c.PDF}
	if c.Thumbnail != nil && c.Thumbnail.Identifier != "" {
		refs = append(refs, *c.Thumbnail)
	}
	return refs
}
