package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryGVT     = "GVT"
	CategorySubway  = "Subway"
	CategoryWall    = "Wall"
	CategoryWood    = "Wood"
	CategoryGeneral = "General"
)

// ProductCategories допустимые категории товара. General есть только у каталогов.
var ProductCategories = []string{CategoryGVT, CategorySubway, CategoryWall, CategoryWood}

type Product struct {
	ID              uuid.UUID `json:"_id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Thumbnail       AssetRef  `json:"thumbnail" db:"thumbnail"`
	Images          AssetRefs `json:"images" db:"images"`
	Size            []string  `json:"size" db:"size"`
	Category        string    `json:"category" db:"category"`
	Finish          []string  `json:"finish" db:"finish"`
	FilterSize      []string  `json:"filterSize" db:"filter_size"`
	ActualSize      string    `json:"actualSize,omitempty" db:"actual_size"`
	MaterialType    string    `json:"materialType,omitempty" db:"material_type"`
	Application     []string  `json:"application" db:"application"`
	Brand           string    `json:"brand,omitempty" db:"brand"`
	Quality         string    `json:"quality,omitempty" db:"quality"`
	CoverageArea    *float64  `json:"coverageArea,omitempty" db:"coverage_area"`
	PcsPerBox       *int      `json:"pcsPerBox,omitempty" db:"pcs_per_box"`
	MetaTitle       string    `json:"metaTitle,omitempty" db:"meta_title"`
	MetaDescription string    `json:"metaDescription,omitempty" db:"meta_description"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Assets возвращает все файлы, которыми владеет товар.
func (p *Product) Assets() AssetRefs {
	refs := make(AssetRefs, 0, len(p.Images)+1)
	if !p.Thumbnail.IsZero() {
		refs = append(refs, p.Thumbnail)
	}
	return append(refs, p.Images...)
}

// ProductFilter narrows List. Empty fields match everything.
type ProductFilter struct {
	Category string
	Finish   []string
}
