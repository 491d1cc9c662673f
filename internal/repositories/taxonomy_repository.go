package repositories

import (
	"errors"

	"templhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTaxonomyNotFound = errors.New("taxonomy entry not found")

type TaxonomyRepository interface {
	// TemplateType
	CreateTemplateType(t *models.TemplateType) error
	FindTemplateTypes() ([]models.TemplateType, error)
	FindTemplateTypeByID(id string) (*models.TemplateType, error)
	UpdateTemplateType(t *models.TemplateType) error
	DeleteTemplateType(id string) error

	// SubCategory
	CreateSubCategory(s *models.SubCategory) error
	FindSubCategories() ([]models.SubCategory, error)
	FindSubCategoryByID(id string) (*models.SubCategory, error)
	UpdateSubCategory(s *models.SubCategory) error
	DeleteSubCategory(id string) error

	// SoftwareType
	CreateSoftwareType(s *models.SoftwareType) error
	FindSoftwareTypes() ([]models.SoftwareType, error)
	FindSoftwareTypeByID(id string) (*models.SoftwareType, error)
	UpdateSoftwareType(s *models.SoftwareType) error
	DeleteSoftwareType(id string) error

	// IndustryType
	CreateIndustryType(i *models.IndustryType) error
	FindIndustryTypes() ([]models.IndustryType, error)
	FindIndustryTypeByID(id string) (*models.IndustryType, error)
	UpdateIndustryType(i *models.IndustryType) error
	DeleteIndustryType(id string) error
}

type TaxonomyRepositoryImpl struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &TaxonomyRepositoryImpl{db: db}
}

// TemplateType

func (r *TaxonomyRepositoryImpl) CreateTemplateType(t *models.TemplateType) error {
	return r.db.Create(t).Error
}

func (r *TaxonomyRepositoryImpl) FindTemplateTypes() ([]models.TemplateType, error) {
	var types []models.TemplateType
	err := r.db.Preload("SubCategories").Preload("SoftwareTypes").
		Order("name ASC").Find(&types).Error
	return types, err
}

func (r *TaxonomyRepositoryImpl) FindTemplateTypeByID(id string) (*models.TemplateType, error) {
	var t models.TemplateType
	err := r.db.Preload("SubCategories").Preload("SoftwareTypes").
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaxonomyNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaxonomyRepositoryImpl) UpdateTemplateType(t *models.TemplateType) error {
	result := r.db.Model(&models.TemplateType{}).Where("id = ?", t.ID).
		Update("name", t.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

func (r *TaxonomyRepositoryImpl) DeleteTemplateType(id string) error {
	result := r.db.Delete(&models.TemplateType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

// SubCategory

func (r *TaxonomyRepositoryImpl) CreateSubCategory(s *models.SubCategory) error {
	return r.db.Create(s).Error
}

func (r *TaxonomyRepositoryImpl) FindSubCategories() ([]models.SubCategory, error) {
	var subs []models.SubCategory
	err := r.db.Order("name ASC").Find(&subs).Error
	return subs, err
}

func (r *TaxonomyRepositoryImpl) FindSubCategoryByID(id string) (*models.SubCategory, error) {
	var s models.SubCategory
	err := r.db.First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaxonomyNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *TaxonomyRepositoryImpl) UpdateSubCategory(s *models.SubCategory) error {
	result := r.db.Model(&models.SubCategory{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":             s.Name,
		"template_type_id": s.TemplateTypeID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

func (r *TaxonomyRepositoryImpl) DeleteSubCategory(id string) error {
	result := r.db.Delete(&models.SubCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

// SoftwareType

func (r *TaxonomyRepositoryImpl) CreateSoftwareType(s *models.SoftwareType) error {
	return r.db.Create(s).Error
}

func (r *TaxonomyRepositoryImpl) FindSoftwareTypes() ([]models.SoftwareType, error) {
	var types []models.SoftwareType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *TaxonomyRepositoryImpl) FindSoftwareTypeByID(id string) (*models.SoftwareType, error) {
	var s models.SoftwareType
	err := r.db.First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaxonomyNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *TaxonomyRepositoryImpl) UpdateSoftwareType(s *models.SoftwareType) error {
	result := r.db.Model(&models.SoftwareType{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"name":             s.Name,
		"template_type_id": s.TemplateTypeID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

func (r *TaxonomyRepositoryImpl) DeleteSoftwareType(id string) error {
	result := r.db.Delete(&models.SoftwareType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

// IndustryType

func (r *TaxonomyRepositoryImpl) CreateIndustryType(i *models.IndustryType) error {
	return r.db.Create(i).Error
}

func (r *TaxonomyRepositoryImpl) FindIndustryTypes() ([]models.IndustryType, error) {
	var types []models.IndustryType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *TaxonomyRepositoryImpl) FindIndustryTypeByID(id string) (*models.IndustryType, error) {
	var i models.IndustryType
	err := r.db.First(&i, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaxonomyNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *TaxonomyRepositoryImpl) UpdateIndustryType(i *models.IndustryType) error {
	result := r.db.Model(&models.IndustryType{}).Where("id = ?", i.ID).
		Update("name", i.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}

func (r *TaxonomyRepositoryImpl) DeleteIndustryType(id string) error {
	result := r.db.Delete(&models.IndustryType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxonomyNotFound
	}
	return nil
}
