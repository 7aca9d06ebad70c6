package request

// BlogRequest без content: документ редактора нормализуется отдельно.
type BlogRequest struct {
	Title    string `json:"title" form:"title"`
	Excerpt  string `json:"excerpt" form:"excerpt"`
	Category string `json:"category" form:"category"`
	Author   string `json:"author" form:"author"`
}

type BlogUpdateRequest struct {
	Title    *string `json:"title" form:"title"`
	Excerpt  *string `json:"excerpt" form:"excerpt"`
	Category *string `json:"category" form:"category"`
	Author   *string `json:"author" form:"author"`
}
