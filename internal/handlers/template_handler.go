package handlers

import (
	"net/http"

	"templhub_backend/internal/services"
	"templhub_backend/internal/services/dto"
	"templhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	*BaseHandler
	templateService services.TemplateService
	downloadService services.DownloadService
}

func NewTemplateHandler(base *BaseHandler, templateService services.TemplateService, downloadService services.DownloadService) *TemplateHandler {
	return &TemplateHandler{
		BaseHandler:     base,
		templateService: templateService,
		downloadService: downloadService,
	}
}

// RegisterRoutes регистрирует публичные маршруты каталога
func (h *TemplateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	templates := rg.Group("/templates")
	{
		templates.GET("", h.List)
		templates.GET("/latest", h.Latest)
		templates.GET("/popular", h.Popular)
		templates.GET("/featured", h.Featured)
		templates.GET("/all", h.All)
		templates.GET("/search", h.Search)
		templates.GET("/user/:userId", h.ByUser)
		templates.GET("/:id", h.GetByID)

		// Гостевые скачивания идут по email без токена
		templates.POST("/:id/download", h.RecordDownload)
	}
}

// RegisterProtectedRoutes регистрирует маршруты, требующие токен
func (h *TemplateHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	templates := rg.Group("/templates")
	{
		templates.POST("", h.Create)
		templates.PUT("/:id", h.Update)
		templates.DELETE("/:id", h.Delete)
		templates.GET("/my", h.My)
	}
}

// Create создает шаблон из multipart-формы
func (h *TemplateHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	files, err := h.collectFiles(c)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), userID, &req, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

// Update обновляет шаблон. Доступно только владельцу.
func (h *TemplateHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	files, err := h.collectFiles(c)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	template, err := h.templateService.Update(c.Request.Context(), userID, c.Param("id"), &req, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// Delete удаляет шаблон вместе с файлами
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

func (h *TemplateHandler) GetByID(c *gin.Context) {
	template, err := h.templateService.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) List(c *gin.Context) {
	var query dto.TemplateListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	response, err := h.templateService.List(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *TemplateHandler) Latest(c *gin.Context) {
	templates, err := h.templateService.Latest()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Popular(c *gin.Context) {
	templates, err := h.templateService.Popular()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Featured(c *gin.Context) {
	templates, err := h.templateService.Featured()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// All возвращает сокращенный список для выпадающих меню
func (h *TemplateHandler) All(c *gin.Context) {
	templates, err := h.templateService.All()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Query parameter q is required"))
		return
	}

	templates, err := h.templateService.Search(query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// ByUser возвращает публичные шаблоны автора
func (h *TemplateHandler) ByUser(c *gin.Context) {
	templates, err := h.templateService.ByUserID(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// My возвращает шаблоны текущего пользователя
func (h *TemplateHandler) My(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	templates, err := h.templateService.ByUserID(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// RecordDownload фиксирует скачивание. Гости передают email в теле.
func (h *TemplateHandler) RecordDownload(c *gin.Context) {
	var req dto.RecordDownloadRequest
	req.TemplateID = c.Param("id")

	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if !h.BindAndValidate_JSON(c, &body) {
		return
	}
	req.Email = body.Email

	if err := h.downloadService.Record(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Download link sent to your email"})
}

// collectFiles достает четыре категории файлов из multipart-формы
func (h *TemplateHandler) collectFiles(c *gin.Context) (*dto.TemplateFiles, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return &dto.TemplateFiles{}, nil
		}
		return nil, err
	}

	return &dto.TemplateFiles{
		SourceFiles:         form.File["source_files"],
		SliderImages:        form.File["slider_images"],
		PreviewImages:       form.File["preview_images"],
		PreviewMobileImages: form.File["preview_mobile_images"],
	}, nil
}
