package dto

import (
	"architylez/internal/domain/models"
	"architylez/internal/storage/filestorage"
)

// CreateProductInput поля формы товара. Списки уже нормализованы разбором формы.
type CreateProductInput struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Size            []string `json:"size" validate:"required,min=1"`
	Category        string   `json:"category" validate:"required,product_category"`
	Finish          []string `json:"finish" validate:"required,min=1"`
	FilterSize      []string `json:"filterSize" validate:"required,min=1"`
	ActualSize      string   `json:"actualSize,omitempty"`
	MaterialType    string   `json:"materialType,omitempty"`
	Application     []string `json:"application,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	Quality         string   `json:"quality,omitempty"`
	CoverageArea    *float64 `json:"coverageArea,omitempty" validate:"omitempty,gte=0"`
	PcsPerBox       *int     `json:"pcsPerBox,omitempty" validate:"omitempty,gte=0"`
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`

	Files []filestorage.File `json:"-" swaggerignore:"true"`
}

func (in CreateProductInput) ToDomain() models.Product {
	return models.Product{
		Title:           in.Title,
		Description:     in.Description,
		Size:            in.Size,
		Category:        in.Category,
		Finish:          in.Finish,
		FilterSize:      in.FilterSize,
		ActualSize:      in.ActualSize,
		MaterialType:    in.MaterialType,
		Application:     in.Application,
		Brand:           in.Brand,
		Quality:         in.Quality,
		CoverageArea:    in.CoverageArea,
		PcsPerBox:       in.PcsPerBox,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
	}
}

// UpdateProductInput: nil and empty values mean "leave as is".
type UpdateProductInput struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Size            []string `json:"size,omitempty"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,product_category"`
	Finish          []string `json:"finish,omitempty"`
	FilterSize      []string `json:"filterSize,omitempty"`
	ActualSize      *string  `json:"actualSize,omitempty"`
	MaterialType    *string  `json:"materialType,omitempty"`
	Application     []string `json:"application,omitempty"`
	Brand           *string  `json:"brand,omitempty"`
	Quality         *string  `json:"quality,omitempty"`
	CoverageArea    *float64 `json:"coverageArea,omitempty" validate:"omitempty,gte=0"`
	PcsPerBox       *int     `json:"pcsPerBox,omitempty" validate:"omitempty,gte=0"`
	MetaTitle       *string  `json:"metaTitle,omitempty"`
	MetaDescription *string  `json:"metaDescription,omitempty"`

	Files []filestorage.File `json:"-" swaggerignore:"true"`
}

// Updates собирает map для репозитория: пустые строки и списки пропускаются.
func (in UpdateProductInput) Updates() map[string]interface{} {
	updates := make(map[string]interface{})

	setString(updates, "title", in.Title)
	setString(updates, "description", in.Description)
	setList(updates, "size", in.Size)
	setString(updates, "category", in.Category)
	setList(updates, "finish", in.Finish)
	setList(updates, "filter_size", in.FilterSize)
	setString(updates, "actual_size", in.ActualSize)
	setString(updates, "material_type", in.MaterialType)
	setList(updates, "application", in.Application)
	setString(updates, "brand", in.Brand)
	setString(updates, "quality", in.Quality)
	setString(updates, "meta_title", in.MetaTitle)
	setString(updates, "meta_description", in.MetaDescription)

	if in.CoverageArea != nil {
		updates["coverage_area"] = *in.CoverageArea
	}
	if in.PcsPerBox != nil {
		updates["pcs_per_box"] = *in.PcsPerBox
	}

	return updates
}

func setString(updates map[string]interface{}, column string, value *string) {
	if value != nil && *value != "" {
		updates[column] = *value
	}
}

func setList(updates map[string]interface{}, column string, value []string) {
	if len(value) > 0 {
		updates[column] = value
	}
}
