package models

// TemplateType верхнеуровневая категория шаблонов
type TemplateType struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`

	SubCategories []SubCategory  `gorm:"foreignKey:TemplateTypeID" json:"sub_categories,omitempty"`
	SoftwareTypes []SoftwareType `gorm:"foreignKey:TemplateTypeID" json:"software_types,omitempty"`
}

func (TemplateType) TableName() string {
	return "template_types"
}

// SubCategory подкатегория внутри категории шаблонов
type SubCategory struct {
	BaseModel
	Name           string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	TemplateTypeID *string `gorm:"type:uuid;index" json:"template_type_id,omitempty"`
}

func (SubCategory) TableName() string {
	return "sub_categories"
}

// SoftwareType инструмент, в котором сделан шаблон (Figma, Webflow и т.д.)
type SoftwareType struct {
	BaseModel
	Name           string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	TemplateTypeID *string `gorm:"type:uuid;index" json:"template_type_id,omitempty"`
}

func (SoftwareType) TableName() string {
	return "software_types"
}

// IndustryType отрасль, для которой предназначен шаблон
type IndustryType struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}

func (IndustryType) TableName() string {
	return "industry_types"
}
