package dto

type HomeMetaInput struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
}

type UpdateHomeMetaInput struct {
	Title       *string `json:"title,omitempty" form:"title"`
	Description *string `json:"description,omitempty" form:"description"`
}

func (in UpdateHomeMetaInput) Updates() map[string]interface{} {
	updates := make(map[string]interface{})

	setString(updates, "title", in.Title)
	setString(updates, "description", in.Description)

	return updates
}
