package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"templhub_backend/internal/auth"
	"templhub_backend/internal/email"
	"templhub_backend/internal/logger"
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"
	"templhub_backend/internal/services/dto"
	"templhub_backend/internal/storage"
	"templhub_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// UploadLimits ограничения на загружаемые файлы
type UploadLimits struct {
	MaxSize        int64
	MaxArchiveSize int64
	AllowedTypes   []string
}

type AuthService interface {
	Register(req *dto.RegisterRequest) error
	RegisterVerify(req *dto.RegisterVerifyRequest) (*dto.UserDTO, error)
	Login(req *dto.LoginRequest) error
	LoginVerify(req *dto.LoginVerifyRequest) (*dto.LoginResponse, error)
	Logout(userID string) error
	ForgotPassword(emailAddr string) error
	ResetPassword(req *dto.ResetPasswordRequest) error
	VerifyOTP(emailAddr string, code string) error
	ResendOTP(emailAddr string) error
	GetCurrentUser(userID string) (*dto.UserDTO, error)
	UpdateDetails(userID string, req *dto.UpdateDetailsRequest) (*dto.UserDTO, error)
	RequestEmailChange(userID string) error
	ConfirmCurrentEmail(userID string, req *dto.ConfirmCurrentEmailRequest) error
	ConfirmNewEmail(userID string, req *dto.ConfirmNewEmailRequest) error
	DeleteAccount(userID string) error
	UpdateProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UserDTO, error)
	RemoveProfileImage(ctx context.Context, userID string) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	otpService    OTPService
	tokenIssuer   *auth.TokenIssuer
	emailProvider email.Provider
	storage       storage.Storage
	limits        UploadLimits
}

func NewAuthService(
	userRepo repositories.UserRepository,
	otpService OTPService,
	tokenIssuer *auth.TokenIssuer,
	emailProvider email.Provider,
	store storage.Storage,
	limits UploadLimits,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		otpService:    otpService,
		tokenIssuer:   tokenIssuer,
		emailProvider: emailProvider,
		storage:       store,
		limits:        limits,
	}
}

// Register - первый шаг регистрации: проверка адреса и отправка кода.
// Запись пользователя не создается до успешной проверки кода.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.InternalError(err)
	}

	return s.otpService.Issue(req.Email)
}

// RegisterVerify - второй шаг регистрации: проверка кода и создание пользователя
func (s *AuthServiceImpl) RegisterVerify(req *dto.RegisterVerifyRequest) (*dto.UserDTO, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	if err := s.otpService.Verify(req.Email, req.OTP); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         models.RoleUser,
		// Новым пользователям положено три бесплатных скачивания
		FreeDownloads: 3,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserDTO(user), nil
}

// Login - первый шаг входа: проверка учетных данных и отправка кода.
// Неизвестный адрес и неверный пароль дают одинаковый ответ.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) error {
	user, err := s.findByCredentials(req.Email, req.Password)
	if err != nil {
		return err
	}

	return s.otpService.Issue(user.Email)
}

// LoginVerify - второй шаг входа: повторная проверка учетных данных,
// проверка кода и выдача токена
func (s *AuthServiceImpl) LoginVerify(req *dto.LoginVerifyRequest) (*dto.LoginResponse, error) {
	user, err := s.findByCredentials(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.otpService.Verify(user.Email, req.OTP); err != nil {
		return nil, err
	}

	token, err := s.tokenIssuer.Sign(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Токен хранится на пользователе: logout делает все ранее
	// выданные токены недействительными
	if err := s.userRepo.UpdateToken(user.ID, &token); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserDTO(user),
	}, nil
}

// Logout обнуляет сохраненный токен пользователя
func (s *AuthServiceImpl) Logout(userID string) error {
	if err := s.userRepo.UpdateToken(userID, nil); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// ForgotPassword отправляет код сброса. Для неизвестного адреса - 404.
func (s *AuthServiceImpl) ForgotPassword(emailAddr string) error {
	if _, err := s.userRepo.FindByEmail(emailAddr); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	return s.otpService.Issue(emailAddr)
}

// ResetPassword проверяет код и устанавливает новый пароль.
// Сохраненный токен сбрасывается: старые сессии закрываются.
func (s *AuthServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.otpService.Verify(req.Email, req.OTP); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateToken(user.ID, nil); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// VerifyOTP - самостоятельная проверка кода
func (s *AuthServiceImpl) VerifyOTP(emailAddr string, code string) error {
	return s.otpService.Verify(emailAddr, code)
}

// ResendOTP перевыдает код без каких-либо условий: адрес может
// еще не иметь учетной записи
func (s *AuthServiceImpl) ResendOTP(emailAddr string) error {
	return s.otpService.Issue(emailAddr)
}

// GetCurrentUser возвращает публичную проекцию пользователя
func (s *AuthServiceImpl) GetCurrentUser(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserDTO(user), nil
}

// UpdateDetails обновляет имя и телефон
func (s *AuthServiceImpl) UpdateDetails(userID string, req *dto.UpdateDetailsRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Number != "" {
		number := req.Number
		user.Number = &number
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserDTO(user), nil
}

// RequestEmailChange - первый шаг смены адреса: код на текущую почту
func (s *AuthServiceImpl) RequestEmailChange(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	return s.otpService.Issue(user.Email)
}

// ConfirmCurrentEmail - второй шаг: подтверждение владения текущей
// почтой, затем код на новую. Занятый адрес отклоняется.
func (s *AuthServiceImpl) ConfirmCurrentEmail(userID string, req *dto.ConfirmCurrentEmailRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.otpService.Verify(user.Email, req.OTP); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByEmail(req.NewEmail); err == nil {
		return apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.InternalError(err)
	}

	return s.otpService.Issue(req.NewEmail)
}

// ConfirmNewEmail - третий шаг: подтверждение новой почты и перезапись адреса
func (s *AuthServiceImpl) ConfirmNewEmail(userID string, req *dto.ConfirmNewEmailRequest) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.otpService.Verify(req.NewEmail, req.OTP); err != nil {
		return err
	}

	if err := s.userRepo.UpdateEmail(userID, req.NewEmail); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	return nil
}

// DeleteAccount удаляет пользователя вместе с шаблонами и историей
func (s *AuthServiceImpl) DeleteAccount(userID string) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// UpdateProfileImage загружает изображение профиля и сохраняет его URL
func (s *AuthServiceImpl) UpdateProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if file.Size > s.limits.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	contentType := file.Header.Get("Content-Type")
	if !s.isAllowedImageType(contentType) {
		return nil, apperrors.ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	key := fmt.Sprintf("profiles/%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	if err := s.storage.Save(ctx, key, src, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Старое изображение убирается после успешной загрузки нового
	if user.ProfileImg != nil {
		if oldKey, ok := s.storage.KeyFromURL(*user.ProfileImg); ok {
			if err := s.storage.Delete(ctx, oldKey); err != nil {
				logger.WithError(err).Warn("failed to delete old profile image", "user_id", userID)
			}
		}
	}

	if err := s.userRepo.UpdateProfileImage(userID, &url); err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.ProfileImg = &url
	return dto.NewUserDTO(user), nil
}

// RemoveProfileImage удаляет изображение профиля из хранилища и обнуляет колонку
func (s *AuthServiceImpl) RemoveProfileImage(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if user.ProfileImg != nil {
		if key, ok := s.storage.KeyFromURL(*user.ProfileImg); ok {
			if err := s.storage.Delete(ctx, key); err != nil {
				logger.WithError(err).Warn("failed to delete profile image", "user_id", userID)
			}
		}
	}

	if err := s.userRepo.UpdateProfileImage(userID, nil); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// findByCredentials ищет пользователя по адресу и паролю.
// Любая причина отказа дает один и тот же ответ.
func (s *AuthServiceImpl) findByCredentials(emailAddr, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthServiceImpl) isAllowedImageType(contentType string) bool {
	for _, allowed := range s.limits.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
