package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID      uuid.UUID `json:"_id" db:"id"`
	Title   string    `json:"title" db:"title"`
	Excerpt string    `json:"excerpt" db:"excerpt"`
	// Content хранится как есть: редактор на фронте присылает произвольный JSON-документ
	Content   json.RawMessage `json:"content" db:"content" swaggertype:"object"`
	Category  string          `json:"category" db:"category"`
	Author    string          `json:"author" db:"author"`
	Thumbnail *AssetRef       `json:"thumbnail" db:"thumbnail"`
	Images    AssetRefs       `json:"images" db:"images"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

func (b *Blog) Assets() AssetRefs {
	refs := make(AssetRefs, 0, len(b.Images)+1)
	if b.Thumbnail != nil {
		refs = append(refs, *b.Thumbnail)
	}
	return append(refs, b.Images...)
}

// NormalizeContent turns a submitted content value into the stored document.
// A string holding valid JSON is stored as that JSON, any other string as a
// JSON string.
func NormalizeContent(raw string) json.RawMessage {
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw)
	}

	b, _ := json.Marshal(raw)
	return json.RawMessage(b)
}
