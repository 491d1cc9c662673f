package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		// Если это не AppError, оборачиваем в InternalError
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("Server error: %v", appErr.Unwrap())
		if !h.Debug {
			// В продакшене скрываем детали системных ошибок
			appErr = New(appErr.Code, appErr.Domain, "Internal server error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

var defaultHandler = &GinErrorHandler{}

// SetDebug переключает режим вывода деталей 500-х ошибок.
// Вызывается один раз при старте приложения.
func SetDebug(debug bool) {
	defaultHandler.Debug = debug
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
