package dto

import "templhub_backend/internal/models"

// RegisterRequest - первый шаг регистрации, без кода
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Name            string `json:"name" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// RegisterVerifyRequest - второй шаг регистрации, с кодом
type RegisterVerifyRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Name            string `json:"name" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	OTP             string `json:"otp" binding:"required"`
}

// LoginRequest - первый шаг входа, проверка учетных данных
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginVerifyRequest - второй шаг входа, с кодом
type LoginVerifyRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	OTP      string `json:"otp" binding:"required"`
}

// ForgotPasswordRequest - запрос кода для сброса пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest - сброс пароля по коду
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	OTP             string `json:"otp" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// VerifyOTPRequest - самостоятельная проверка кода
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// ResendOTPRequest - повторная отправка кода
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateDetailsRequest - обновление профиля.
// NewEmail вместе с OTP двигает трехшаговую смену адреса.
type UpdateDetailsRequest struct {
	Name     string `json:"name,omitempty"`
	Number   string `json:"number,omitempty"`
	NewEmail string `json:"new_email,omitempty" binding:"omitempty,email"`
	OTP      string `json:"otp,omitempty"`
}

// RequestEmailChangeRequest - первый шаг смены адреса: код на текущую почту
type RequestEmailChangeRequest struct {
	// Пусто: адрес берется из аутентифицированного пользователя
}

// ConfirmCurrentEmailRequest - второй шаг: подтверждение текущей почты
// и отправка кода на новую
type ConfirmCurrentEmailRequest struct {
	OTP      string `json:"otp" binding:"required"`
	NewEmail string `json:"new_email" binding:"required,email"`
}

// ConfirmNewEmailRequest - третий шаг: подтверждение новой почты
type ConfirmNewEmailRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required"`
}

// LoginResponse - ответ со свежим токеном
type LoginResponse struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO - публичная проекция пользователя, без хеша пароля
type UserDTO struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Role          models.UserRole `json:"role"`
	ProfileImg    *string         `json:"profile_img,omitempty"`
	Number        *string         `json:"number,omitempty"`
	FreeDownloads int             `json:"free_downloads"`
}

// NewUserDTO строит публичную проекцию из модели
func NewUserDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		ProfileImg:    user.ProfileImg,
		Number:        user.Number,
		FreeDownloads: user.FreeDownloads,
	}
}
