package repositories

import (
	"errors"

	"templhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCreditNotFound = errors.New("credit not found")

type CreditRepository interface {
	Create(credit *models.Credit) error
	FindByID(id string) (*models.Credit, error)
	FindByTemplateID(templateID string) ([]models.Credit, error)
	Update(credit *models.Credit) error
	Delete(id string) error
}

type CreditRepositoryImpl struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &CreditRepositoryImpl{db: db}
}

func (r *CreditRepositoryImpl) Create(credit *models.Credit) error {
	return r.db.Create(credit).Error
}

func (r *CreditRepositoryImpl) FindByID(id string) (*models.Credit, error) {
	var credit models.Credit
	err := r.db.First(&credit, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditNotFound
		}
		return nil, err
	}
	return &credit, nil
}

func (r *CreditRepositoryImpl) FindByTemplateID(templateID string) ([]models.Credit, error) {
	var credits []models.Credit
	err := r.db.Where("template_id = ?", templateID).Find(&credits).Error
	return credits, err
}

func (r *CreditRepositoryImpl) Update(credit *models.Credit) error {
	result := r.db.Model(&models.Credit{}).Where("id = ?", credit.ID).Updates(map[string]interface{}{
		"fonts":         credit.Fonts,
		"images":        credit.Images,
		"icons":         credit.Icons,
		"illustrations": credit.Illustrations,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreditNotFound
	}
	return nil
}

func (r *CreditRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Credit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreditNotFound
	}
	return nil
}
