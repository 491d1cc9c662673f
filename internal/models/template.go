package models

import "gorm.io/datatypes"

// Template цифровой шаблон, выставленный в каталоге
type Template struct {
	BaseModel
	Title              string         `gorm:"type:varchar(255);not null" json:"title"`
	Description        string         `gorm:"type:text" json:"description"`
	Price              float64        `gorm:"not null;default:0" json:"price"`
	ImageURL           *string        `gorm:"type:text" json:"image_url,omitempty"`
	Version            *string        `gorm:"type:varchar(64)" json:"version,omitempty"`
	Downloads          int            `gorm:"default:0" json:"downloads"`
	IsPaid             bool           `gorm:"default:false" json:"is_paid"`
	MobileVersion      bool           `gorm:"default:false" json:"mobile_version"`
	DocumentationReady bool           `gorm:"default:false" json:"documentation_ready"`
	SEOTags            datatypes.JSON `gorm:"type:jsonb" json:"seo_tags,omitempty"`
	TechDetails        datatypes.JSON `gorm:"type:jsonb" json:"tech_details,omitempty"`

	UserID         string  `gorm:"type:uuid;index;not null" json:"user_id"`
	TemplateTypeID *string `gorm:"type:uuid;index" json:"template_type_id,omitempty"`
	SubCategoryID  *string `gorm:"type:uuid;index" json:"sub_category_id,omitempty"`
	SoftwareTypeID *string `gorm:"type:uuid;index" json:"software_type_id,omitempty"`
	IndustryTypeID *string `gorm:"type:uuid;index" json:"industry_type_id,omitempty"`

	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TemplateType *TemplateType `gorm:"foreignKey:TemplateTypeID" json:"template_type,omitempty"`
	SubCategory  *SubCategory  `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	SoftwareType *SoftwareType `gorm:"foreignKey:SoftwareTypeID" json:"software_type,omitempty"`
	IndustryType *IndustryType `gorm:"foreignKey:IndustryTypeID" json:"industry_type,omitempty"`

	SourceFiles         []SourceFile         `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"source_files,omitempty"`
	SliderImages        []SliderImage        `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"slider_images,omitempty"`
	PreviewImages       []PreviewImage       `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"preview_images,omitempty"`
	PreviewMobileImages []PreviewMobileImage `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"preview_mobile_images,omitempty"`
	Credits             []Credit             `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"credits,omitempty"`
}

func (Template) TableName() string {
	return "templates"
}

// SourceFile архив с исходниками шаблона
type SourceFile struct {
	BaseModel
	URL        string `gorm:"type:text;not null" json:"url"`
	TemplateID string `gorm:"type:uuid;index;not null" json:"template_id"`
}

func (SourceFile) TableName() string {
	return "source_files"
}

// SliderImage изображение для слайдера на странице шаблона
type SliderImage struct {
	BaseModel
	URL        string `gorm:"type:text;not null" json:"url"`
	TemplateID string `gorm:"type:uuid;index;not null" json:"template_id"`
}

func (SliderImage) TableName() string {
	return "slider_images"
}

// PreviewImage превью десктопной версии
type PreviewImage struct {
	BaseModel
	URL        string `gorm:"type:text;not null" json:"url"`
	TemplateID string `gorm:"type:uuid;index;not null" json:"template_id"`
}

func (PreviewImage) TableName() string {
	return "preview_images"
}

// PreviewMobileImage превью мобильной версии
type PreviewMobileImage struct {
	BaseModel
	URL        string `gorm:"type:text;not null" json:"url"`
	TemplateID string `gorm:"type:uuid;index;not null" json:"template_id"`
}

func (PreviewMobileImage) TableName() string {
	return "preview_mobile_images"
}

// Credit список использованных в шаблоне сторонних ресурсов
type Credit struct {
	BaseModel
	TemplateID    string         `gorm:"type:uuid;index;not null" json:"template_id"`
	Fonts         datatypes.JSON `gorm:"type:jsonb" json:"fonts,omitempty"`
	Images        datatypes.JSON `gorm:"type:jsonb" json:"images,omitempty"`
	Icons         datatypes.JSON `gorm:"type:jsonb" json:"icons,omitempty"`
	Illustrations datatypes.JSON `gorm:"type:jsonb" json:"illustrations,omitempty"`
}

func (Credit) TableName() string {
	return "credits"
}
