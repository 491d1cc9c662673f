package dto

import (
	"mime/multipart"

	"templhub_backend/internal/models"
)

// CreateTemplateRequest - метаданные нового шаблона.
// Файлы приходят отдельными multipart-категориями.
type CreateTemplateRequest struct {
	Title              string   `form:"title" binding:"required"`
	Description        string   `form:"description"`
	Price              float64  `form:"price"`
	Version            string   `form:"version"`
	IsPaid             bool     `form:"is_paid"`
	MobileVersion      bool     `form:"mobile_version"`
	DocumentationReady bool     `form:"documentation_ready"`
	SEOTags            []string `form:"seo_tags"`
	TechDetails        []string `form:"tech_details"`
	TemplateTypeID     string   `form:"template_type_id"`
	SubCategoryID      string   `form:"sub_category_id"`
	SoftwareTypeID     string   `form:"software_type_id"`
	IndustryTypeID     string   `form:"industry_type_id"`

	Fonts         []string `form:"fonts"`
	Images        []string `form:"images"`
	Icons         []string `form:"icons"`
	Illustrations []string `form:"illustrations"`
}

// TemplateFiles - четыре категории файлов шаблона
type TemplateFiles struct {
	SourceFiles         []*multipart.FileHeader
	SliderImages        []*multipart.FileHeader
	PreviewImages       []*multipart.FileHeader
	PreviewMobileImages []*multipart.FileHeader
}

// UpdateTemplateRequest - обновление шаблона владельцем
type UpdateTemplateRequest struct {
	Title              *string  `form:"title"`
	Description        *string  `form:"description"`
	Price              *float64 `form:"price"`
	Version            *string  `form:"version"`
	IsPaid             *bool    `form:"is_paid"`
	MobileVersion      *bool    `form:"mobile_version"`
	DocumentationReady *bool    `form:"documentation_ready"`
	SEOTags            []string `form:"seo_tags"`
	TechDetails        []string `form:"tech_details"`
	TemplateTypeID     *string  `form:"template_type_id"`
	SubCategoryID      *string  `form:"sub_category_id"`
	SoftwareTypeID     *string  `form:"software_type_id"`
	IndustryTypeID     *string  `form:"industry_type_id"`

	Fonts         []string `form:"fonts"`
	Images        []string `form:"images"`
	Icons         []string `form:"icons"`
	Illustrations []string `form:"illustrations"`
}

// TemplateListQuery - фильтры каталога
type TemplateListQuery struct {
	IndustryTypeIDs []string `form:"industry_type_ids"`
	TemplateTypeIDs []string `form:"template_type_ids"`
	SoftwareTypeIDs []string `form:"software_type_ids"`
	SubCategoryIDs  []string `form:"sub_category_ids"`
	IsPaid          *bool    `form:"is_paid"`
	PriceRanges     []string `form:"price_ranges"` // "min-max"
	Search          string   `form:"search"`
	Page            int      `form:"page"`
	PageSize        int      `form:"page_size"`
}

// TemplateListResponse - страница каталога
type TemplateListResponse struct {
	Templates []models.Template `json:"templates"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}
