package routes

import (
	"templhub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes собирает таблицу маршрутов под /api/v1.
// authMW передается снаружи: ему нужны token issuer и репозиторий
// пользователей для сверки сохраненного токена.
func SetupRoutes(r *gin.Engine, h *handlers.AppHandlers, authMW gin.HandlerFunc) {
	r.GET("/health", h.HealthHandler.Health)

	api := r.Group("/api/v1")

	// Публичные маршруты: аутентификация, каталог, чтение таксономии
	h.AuthHandler.RegisterRoutes(api)
	h.TemplateHandler.RegisterRoutes(api)
	h.TaxonomyHandler.RegisterRoutes(api)
	h.CreditHandler.RegisterRoutes(api)

	// Все, что требует токен
	protected := api.Group("")
	protected.Use(authMW)
	{
		h.AuthHandler.RegisterProtectedRoutes(protected)
		h.UserHandler.RegisterProtectedRoutes(protected)
		h.TemplateHandler.RegisterProtectedRoutes(protected)
		h.TaxonomyHandler.RegisterProtectedRoutes(protected)
		h.CreditHandler.RegisterProtectedRoutes(protected)
	}
}
