package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"_id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Thumbnail   AssetRef  `json:"thumbnail" db:"thumbnail"`
	Images      AssetRefs `json:"images" db:"images"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

func (p *Project) Assets() AssetRefs {
	refs := make(AssetRefs, 0, len(p.Images)+1)
	if !p.Thumbnail.IsZero() {
		refs = append(refs, p.Thumbnail)
	}
	return append(refs, p.Images...)
}
