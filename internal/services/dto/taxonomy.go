package dto

// CreateNamedEntityRequest - создание именованной записи таксономии
type CreateNamedEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateNamedEntityRequest - переименование записи таксономии
type UpdateNamedEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateSubEntityRequest - создание записи, привязанной к категории
type CreateSubEntityRequest struct {
	Name           string `json:"name" binding:"required"`
	TemplateTypeID string `json:"template_type_id,omitempty"`
}

// UpdateSubEntityRequest - обновление привязанной записи
type UpdateSubEntityRequest struct {
	Name           string `json:"name" binding:"required"`
	TemplateTypeID string `json:"template_type_id,omitempty"`
}

// CreateCreditRequest - создание кредитов шаблона
type CreateCreditRequest struct {
	TemplateID    string   `json:"template_id" binding:"required"`
	Fonts         []string `json:"fonts,omitempty"`
	Images        []string `json:"images,omitempty"`
	Icons         []string `json:"icons,omitempty"`
	Illustrations []string `json:"illustrations,omitempty"`
}

// UpdateCreditRequest - обновление кредитов шаблона
type UpdateCreditRequest struct {
	Fonts         []string `json:"fonts,omitempty"`
	Images        []string `json:"images,omitempty"`
	Icons         []string `json:"icons,omitempty"`
	Illustrations []string `json:"illustrations,omitempty"`
}
