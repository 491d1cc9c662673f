package handlers

import (
	"net/http"

	"templhub_backend/internal/services"
	"templhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует публичные маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/register/verify", h.RegisterVerify)
	rg.POST("/login", h.Login)
	rg.POST("/login/verify", h.LoginVerify)
	rg.POST("/verify-otp", h.VerifyOTP)
	rg.POST("/resend-otp", h.ResendOTP)
	rg.POST("/forget-password", h.ForgetPassword)
	rg.POST("/reset-password", h.ResetPassword)
}

// RegisterProtectedRoutes регистрирует маршруты, требующие токен
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.Logout)
}

// Register - первый шаг регистрации: отправка кода на почту
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Register(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification code sent to your email",
	})
}

// RegisterVerify - второй шаг регистрации: проверка кода и создание аккаунта
func (h *AuthHandler) RegisterVerify(c *gin.Context) {
	var req dto.RegisterVerifyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.RegisterVerify(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user,
	})
}

// Login - первый шаг входа: проверка учетных данных и отправка кода
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.Login(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification code sent to your email",
	})
}

// LoginVerify - второй шаг входа: проверка кода и выдача токена
func (h *AuthHandler) LoginVerify(c *gin.Context) {
	var req dto.LoginVerifyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.LoginVerify(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout обнуляет сохраненный токен пользователя
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// VerifyOTP - самостоятельная проверка кода
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.VerifyOTP(req.Email, req.OTP); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
}

// ResendOTP - повторная отправка кода
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResendOTP(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent to your email"})
}

// ForgetPassword отправляет код сброса пароля
func (h *AuthHandler) ForgetPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset code sent to your email"})
}

// ResetPassword проверяет код и устанавливает новый пароль
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
