package repositories

import (
	"errors"
	"time"

	"templhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateToken(userID string, token *string) error
	UpdatePassword(userID string, passwordHash string) error
	UpdateEmail(userID string, email string) error
	UpdateProfileImage(userID string, url *string) error
	DecrementFreeDownloads(userID string) error
	Delete(userID string) error
	FindAll(limit, offset int) ([]models.User, error)
	CountAll() (int64, error)
	CountByRole(role models.UserRole) (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Model(user).Updates(map[string]interface{}{
		"name":       user.Name,
		"number":     user.Number,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateToken(userID string, token *string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"token":      token,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID string, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateEmail(userID string, email string) error {
	var existing models.User
	if err := r.db.Where("email = ? AND id <> ?", email, userID).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email":      email,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateProfileImage(userID string, url *string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"profile_img": url,
		"updated_at":  time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DecrementFreeDownloads атомарно списывает одно бесплатное скачивание.
// Если лимит уже исчерпан, строк не затрагивается и возвращается ErrUserNotFound.
func (r *UserRepositoryImpl) DecrementFreeDownloads(userID string) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND free_downloads > 0", userID).
		UpdateColumn("free_downloads", gorm.Expr("free_downloads - 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete удаляет пользователя вместе с его шаблонами и историей скачиваний
func (r *UserRepositoryImpl) Delete(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var templateIDs []string
		if err := tx.Model(&models.Template{}).Where("user_id = ?", userID).
			Pluck("id", &templateIDs).Error; err != nil {
			return err
		}

		if len(templateIDs) > 0 {
			for _, child := range []interface{}{
				&models.SourceFile{}, &models.SliderImage{},
				&models.PreviewImage{}, &models.PreviewMobileImage{}, &models.Credit{},
			} {
				if err := tx.Where("template_id IN ?", templateIDs).Delete(child).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("template_id IN ?", templateIDs).
				Delete(&models.DownloadHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", templateIDs).Delete(&models.Template{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.DownloadHistory{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, "id = ?", userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *UserRepositoryImpl) FindAll(limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
