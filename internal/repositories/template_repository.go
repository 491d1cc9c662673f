package repositories

import (
	"errors"
	"strconv"
	"strings"

	"templhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("template not found")

type TemplateFilter struct {
	IndustryTypeIDs []string
	TemplateTypeIDs []string
	SoftwareTypeIDs []string
	SubCategoryIDs  []string
	IsPaid          *bool
	PriceRanges     []string // формат "min-max"
	Search          string
	Page            int
	PageSize        int
}

type TemplateRepository interface {
	Create(template *models.Template) error
	FindByID(id string) (*models.Template, error)
	Update(template *models.Template) error
	Delete(id string) error
	FindWithFilter(filter TemplateFilter) ([]models.Template, int64, error)
	FindLatest(limit int) ([]models.Template, error)
	FindPopular(limit int) ([]models.Template, error)
	FindFeatured(limit int) ([]models.Template, error)
	FindAll() ([]models.Template, error)
	FindByUserID(userID string) ([]models.Template, error)
	SearchByTitle(query string) ([]models.Template, error)
	IncrementDownloads(id string) error
	ReplaceSourceFiles(templateID string, urls []string) error
	ReplaceSliderImages(templateID string, urls []string) error
	ReplacePreviewImages(templateID string, urls []string) error
	ReplacePreviewMobileImages(templateID string, urls []string) error
}

type TemplateRepositoryImpl struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &TemplateRepositoryImpl{db: db}
}

func (r *TemplateRepositoryImpl) Create(template *models.Template) error {
	return r.db.Create(template).Error
}

func (r *TemplateRepositoryImpl) FindByID(id string) (*models.Template, error) {
	var template models.Template
	err := r.db.
		Preload("SourceFiles").
		Preload("SliderImages").
		Preload("PreviewImages").
		Preload("PreviewMobileImages").
		Preload("Credits").
		Preload("TemplateType").
		Preload("SubCategory").
		Preload("SoftwareType").
		Preload("IndustryType").
		First(&template, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) Update(template *models.Template) error {
	result := r.db.Model(&models.Template{}).Where("id = ?", template.ID).Updates(map[string]interface{}{
		"title":               template.Title,
		"description":         template.Description,
		"price":               template.Price,
		"image_url":           template.ImageURL,
		"version":             template.Version,
		"is_paid":             template.IsPaid,
		"mobile_version":      template.MobileVersion,
		"documentation_ready": template.DocumentationReady,
		"seo_tags":            template.SEOTags,
		"tech_details":        template.TechDetails,
		"template_type_id":    template.TemplateTypeID,
		"sub_category_id":     template.SubCategoryID,
		"software_type_id":    template.SoftwareTypeID,
		"industry_type_id":    template.IndustryTypeID,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.SourceFile{}, &models.SliderImage{},
			&models.PreviewImage{}, &models.PreviewMobileImage{}, &models.Credit{},
		} {
			if err := tx.Where("template_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("template_id = ?", id).Delete(&models.DownloadHistory{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Template{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTemplateNotFound
		}
		return nil
	})
}

func (r *TemplateRepositoryImpl) FindWithFilter(filter TemplateFilter) ([]models.Template, int64, error) {
	query := r.db.Model(&models.Template{})

	if len(filter.IndustryTypeIDs) > 0 {
		query = query.Where("industry_type_id IN ?", filter.IndustryTypeIDs)
	}
	if len(filter.TemplateTypeIDs) > 0 {
		query = query.Where("template_type_id IN ?", filter.TemplateTypeIDs)
	}
	if len(filter.SoftwareTypeIDs) > 0 {
		query = query.Where("software_type_id IN ?", filter.SoftwareTypeIDs)
	}
	if len(filter.SubCategoryIDs) > 0 {
		query = query.Where("sub_category_id IN ?", filter.SubCategoryIDs)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	if priceCond, args := buildPriceConditions(filter.PriceRanges); priceCond != "" {
		query = query.Where(priceCond, args...)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
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
		pageSize = 12
	}

	var templates []models.Template
	err := query.
		Preload("PreviewImages").
		Preload("TemplateType").
		Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&templates).Error
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// buildPriceConditions собирает OR-условие из диапазонов вида "min-max"
func buildPriceConditions(ranges []string) (string, []interface{}) {
	var conds []string
	var args []interface{}
	for _, rng := range ranges {
		parts := strings.SplitN(rng, "-", 2)
		if len(parts) != 2 {
			continue
		}
		min, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		max, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		conds = append(conds, "(price >= ? AND price <= ?)")
		args = append(args, min, max)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return strings.Join(conds, " OR "), args
}

func (r *TemplateRepositoryImpl) FindLatest(limit int) ([]models.Template, error) {
	var templates []models.Template
	err := r.db.
		Preload("PreviewImages").
		Order("created_at DESC").
		Limit(limit).
		Find(&templates).Error
	return templates, err
}

func (r *TemplateRepositoryImpl) FindPopular(limit int) ([]models.Template, error) {
	var templates []models.Template
	err := r.db.
		Preload("PreviewImages").
		Order("downloads DESC").
		Limit(limit).
		Find(&templates).Error
	return templates, err
}

func (r *TemplateRepositoryImpl) FindFeatured(limit int) ([]models.Template, error) {
	var templates []models.Template
	err := r.db.
		Preload("PreviewImages").
		Order("downloads DESC, created_at DESC").
		Limit(limit).
		Find(&templates).Error
	return templates, err
}

func (r *TemplateRepositoryImpl) FindAll() ([]models.Template, error) {
	var templates []models.Template
	err := r.db.
		Select("id", "title", "version", "price", "template_type_id").
		Preload("TemplateType").
		Order("created_at DESC").
		Find(&templates).Error
	return templates, err
}

func (r *TemplateRepositoryImpl) FindByUserID(userID string) ([]models.Template, error) {
	var templates []models.Template
	err := r.db.
		Preload("PreviewImages").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&templates).Error
	return templates, err
}

func (r *TemplateRepositoryImpl) SearchByTitle(query string) ([]models.Template, error) {
	var templates []models.Template
	err := r.db.
		Preload("PreviewImages").
		Where("title ILIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Find(&templates).Error
	return templates, err
}

func (r *TemplateRepositoryImpl) IncrementDownloads(id string) error {
	result := r.db.Model(&models.Template{}).Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepositoryImpl) ReplaceSourceFiles(templateID string, urls []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&models.SourceFile{}).Error; err != nil {
			return err
		}
		for _, url := range urls {
			if err := tx.Create(&models.SourceFile{URL: url, TemplateID: templateID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TemplateRepositoryImpl) ReplaceSliderImages(templateID string, urls []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&models.SliderImage{}).Error; err != nil {
			return err
		}
		for _, url := range urls {
			if err := tx.Create(&models.SliderImage{URL: url, TemplateID: templateID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TemplateRepositoryImpl) ReplacePreviewImages(templateID string, urls []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&models.PreviewImage{}).Error; err != nil {
			return err
		}
		for _, url := range urls {
			if err := tx.Create(&models.PreviewImage{URL: url, TemplateID: templateID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TemplateRepositoryImpl) ReplacePreviewMobileImages(templateID string, urls []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&models.PreviewMobileImage{}).Error; err != nil {
			return err
		}
		for _, url := range urls {
			if err := tx.Create(&models.PreviewMobileImage{URL: url, TemplateID: templateID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
