package handlers

import (
	"net/http"

	"templhub_backend/internal/services"
	"templhub_backend/internal/services/dto"
	"templhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	authService     services.AuthService
	downloadService services.DownloadService
}

func NewUserHandler(base *BaseHandler, authService services.AuthService, downloadService services.DownloadService) *UserHandler {
	return &UserHandler{
		BaseHandler:     base,
		authService:     authService,
		downloadService: downloadService,
	}
}

// RegisterProtectedRoutes регистрирует маршруты профиля (все под токеном)
func (h *UserHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/get-user", h.GetUser)
	rg.PUT("/update-details", h.UpdateDetails)
	rg.DELETE("/delete-account", h.DeleteAccount)

	rg.PUT("/user/update-image", h.UpdateImage)
	rg.DELETE("/user/remove-image", h.RemoveImage)

	rg.POST("/user/email-change/request", h.RequestEmailChange)
	rg.POST("/user/email-change/confirm-current", h.ConfirmCurrentEmail)
	rg.POST("/user/email-change/confirm-new", h.ConfirmNewEmail)

	rg.GET("/get-user-downloads", h.GetDownloads)
	rg.GET("/free-download", h.GetFreeDownloads)
}

// GetUser возвращает публичную проекцию текущего пользователя
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateDetails обновляет имя и телефон
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDetailsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateDetails(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteAccount удаляет аккаунт вместе с шаблонами и историей скачиваний
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.authService.DeleteAccount(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// UpdateImage загружает новое изображение профиля
func (h *UserHandler) UpdateImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Image file is required"))
		return
	}

	user, err := h.authService.UpdateProfileImage(c.Request.Context(), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// RemoveImage удаляет изображение профиля
func (h *UserHandler) RemoveImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.authService.RemoveProfileImage(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile image removed"})
}

// RequestEmailChange - первый шаг смены почты: код на текущий адрес
func (h *UserHandler) RequestEmailChange(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.authService.RequestEmailChange(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent to your current email"})
}

// ConfirmCurrentEmail - второй шаг: подтверждение текущего адреса,
// код уходит на новый
func (h *UserHandler) ConfirmCurrentEmail(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ConfirmCurrentEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ConfirmCurrentEmail(userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent to your new email"})
}

// ConfirmNewEmail - третий шаг: подтверждение нового адреса
func (h *UserHandler) ConfirmNewEmail(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ConfirmNewEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ConfirmNewEmail(userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email updated"})
}

// GetDownloads возвращает историю скачиваний пользователя
func (h *UserHandler) GetDownloads(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.DownloadListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	response, err := h.downloadService.List(userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetFreeDownloads возвращает остаток бесплатных скачиваний
func (h *UserHandler) GetFreeDownloads(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.downloadService.FreeDownloads(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
