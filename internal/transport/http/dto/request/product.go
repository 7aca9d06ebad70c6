package request

// ProductRequest текстовые поля формы товара. Списки и числа разбираются
// отдельно: фронт шлет их и массивами, и строками.
type ProductRequest struct {
	Title           string `json:"title" form:"title"`
	Description     string `json:"description" form:"description"`
	Category        string `json:"category" form:"category"`
	ActualSize      string `json:"actualSize" form:"actualSize"`
	MaterialType    string `json:"materialType" form:"materialType"`
	Brand           string `json:"brand" form:"brand"`
	Quality         string `json:"quality" form:"quality"`
	MetaTitle       string `json:"metaTitle" form:"metaTitle"`
	MetaDescription string `json:"metaDescription" form:"metaDescription"`
}

// ProductUpdateRequest: nil, если поля нет в запросе.
type ProductUpdateRequest struct {
	Title           *string `json:"title" form:"title"`
	Description     *string `json:"description" form:"description"`
	Category        *string `json:"category" form:"category"`
	ActualSize      *string `json:"actualSize" form:"actualSize"`
	MaterialType    *string `json:"materialType" form:"materialType"`
	Brand           *string `json:"brand" form:"brand"`
	Quality         *string `json:"quality" form:"quality"`
	MetaTitle       *string `json:"metaTitle" form:"metaTitle"`
	MetaDescription *string `json:"metaDescription" form:"metaDescription"`
}
