package dto

import (
	"time"

	"templhub_backend/internal/models"
)

// RecordDownloadRequest - фиксация скачивания.
// Для гостей указывается только email.
type RecordDownloadRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
}

// DownloadListQuery - фильтры истории скачиваний
type DownloadListQuery struct {
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
	Category string     `form:"category"` // free, premium
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// DownloadListResponse - страница истории скачиваний
type DownloadListResponse struct {
	Downloads []models.DownloadHistory `json:"downloads"`
	Total     int64                    `json:"total"`
	Page      int                      `json:"page"`
	PageSize  int                      `json:"page_size"`
}

// FreeDownloadsResponse - остаток бесплатных скачиваний
type FreeDownloadsResponse struct {
	FreeDownloads int     `json:"free_downloads"`
	ProfileImg    *string `json:"profile_img,omitempty"`
}
