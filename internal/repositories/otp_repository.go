package repositories

import (
	"errors"

	"templhub_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCodeNotFound = errors.New("one-time code not found")

type OneTimeCodeRepository interface {
	Upsert(code *models.OneTimeCode) error
	FindByEmail(email string) (*models.OneTimeCode, error)
	DeleteByEmail(email string) error
}

type OneTimeCodeRepositoryImpl struct {
	db *gorm.DB
}

func NewOneTimeCodeRepository(db *gorm.DB) OneTimeCodeRepository {
	return &OneTimeCodeRepositoryImpl{db: db}
}

// Upsert записывает код для адреса, перезаписывая предыдущий.
// Для адреса всегда действует не более одного живого кода.
func (r *OneTimeCodeRepositoryImpl) Upsert(code *models.OneTimeCode) error {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expiry", "updated_at"}),
	}).Create(code).Error
}

func (r *OneTimeCodeRepositoryImpl) FindByEmail(email string) (*models.OneTimeCode, error) {
	var code models.OneTimeCode
	err := r.db.First(&code, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *OneTimeCodeRepositoryImpl) DeleteByEmail(email string) error {
	return r.db.Unscoped().Where("email = ?", email).Delete(&models.OneTimeCode{}).Error
}
