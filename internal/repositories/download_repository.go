package repositories

import (
	"time"

	"templhub_backend/internal/models"

	"gorm.io/gorm"
)

type DownloadFilter struct {
	UserID   string
	Email    string
	DateFrom *time.Time
	DateTo   *time.Time
	IsPaid   *bool // фильтр по категории шаблона: бесплатные/платные
	Page     int
	PageSize int
}

type DownloadRepository interface {
	Create(record *models.DownloadHistory) error
	CountByEmail(email string) (int64, error)
	FindWithFilter(filter DownloadFilter) ([]models.DownloadHistory, int64, error)
}

type DownloadRepositoryImpl struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &DownloadRepositoryImpl{db: db}
}

func (r *DownloadRepositoryImpl) Create(record *models.DownloadHistory) error {
	if record.Downloaded.IsZero() {
		record.Downloaded = time.Now()
	}
	return r.db.Create(record).Error
}

func (r *DownloadRepositoryImpl) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.db.Model(&models.DownloadHistory{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *DownloadRepositoryImpl) FindWithFilter(filter DownloadFilter) ([]models.DownloadHistory, int64, error) {
	query := r.db.Model(&models.DownloadHistory{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}
	if filter.DateFrom != nil {
		query = query.Where("downloaded >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("downloaded <= ?", *filter.DateTo)
	}
	if filter.IsPaid != nil {
		query = query.Joins("JOIN templates ON templates.id = download_histories.template_id").
			Where("templates.is_paid = ?", *filter.IsPaid)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var records []models.DownloadHistory
	err := query.
		Preload("Template").
		Order("downloaded DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
