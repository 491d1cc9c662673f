package handlers

import (
	"net/http"

	"templhub_backend/internal/services"
	"templhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	*BaseHandler
	taxonomyService services.TaxonomyService
}

func NewTaxonomyHandler(base *BaseHandler, taxonomyService services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		BaseHandler:     base,
		taxonomyService: taxonomyService,
	}
}

// RegisterRoutes регистрирует публичные чтения таксономии
func (h *TaxonomyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/template-types", h.ListTemplateTypes)
	rg.GET("/template-types/:id", h.GetTemplateType)
	rg.GET("/sub-categories", h.ListSubCategories)
	rg.GET("/sub-categories/:id", h.GetSubCategory)
	rg.GET("/software-types", h.ListSoftwareTypes)
	rg.GET("/software-types/:id", h.GetSoftwareType)
	rg.GET("/industry-types", h.ListIndustryTypes)
	rg.GET("/industry-types/:id", h.GetIndustryType)
}

// RegisterProtectedRoutes регистрирует записи таксономии (под токеном)
func (h *TaxonomyHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/template-types", h.CreateTemplateType)
	rg.PUT("/template-types/:id", h.UpdateTemplateType)
	rg.DELETE("/template-types/:id", h.DeleteTemplateType)

	rg.POST("/sub-categories", h.CreateSubCategory)
	rg.PUT("/sub-categories/:id", h.UpdateSubCategory)
	rg.DELETE("/sub-categories/:id", h.DeleteSubCategory)

	rg.POST("/software-types", h.CreateSoftwareType)
	rg.PUT("/software-types/:id", h.UpdateSoftwareType)
	rg.DELETE("/software-types/:id", h.DeleteSoftwareType)

	rg.POST("/industry-types", h.CreateIndustryType)
	rg.PUT("/industry-types/:id", h.UpdateIndustryType)
	rg.DELETE("/industry-types/:id", h.DeleteIndustryType)
}

// TemplateType

func (h *TaxonomyHandler) CreateTemplateType(c *gin.Context) {
	var req dto.CreateNamedEntityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	t, err := h.taxonomyService.CreateTemplateType(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TaxonomyHandler) ListTemplateTypes(c *gin.Context) {
	types, err := h.taxonomyService.ListTemplateTypes()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *TaxonomyHandler) GetTemplateType(c *gin.Context) {
	t, err := h.taxonomyService.GetTemplateType(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaxonomyHandler) UpdateTemplateType(c *gin.Context) {
	var req dto.UpdateNamedEntityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	t, err := h.taxonomyService.UpdateTemplateType(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaxonomyHandler) DeleteTemplateType(c *gin.Context) {
	if err := h.taxonomyService.DeleteTemplateType(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template type deleted"})
}

// SubCategory

func (h *TaxonomyHandler) CreateSubCategory(c *gin.Context) {
	var req dto.CreateSubEntityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.taxonomyService.CreateSubCategory(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *TaxonomyHandler) ListSubCategories(c *gin.Context) {
	subs, err := h.taxonomyService.ListSubCategories()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *TaxonomyHandler) GetSubCategory(c *gin.Context) {
	sub, err := h.taxonomyService.GetSubCategory(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *TaxonomyHandler) UpdateSubCategory(c *gin.Context) {
	var req dto.UpdateSubEntityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	sub, err := h.taxonomyService.UpdateSubCategory(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *TaxonomyHandler) DeleteSubCategory(c *gin.Context) {
	if err := h.taxonomyService.DeleteSubCategory(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sub category deleted"})
}

// SoftwareType

func (h *TaxonomyHandler) CreateSoftwareType(c *gin.Context) {
	var req dto.CreateSubEntityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	st, err := h.taxonomyService.CreateSoftwareType(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *TaxonomyHandler) ListSoftwareTypes(c *gin.Context) {
	types, err := h.taxonomyService.ListSoftwareTypes()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *TaxonomyHandler) GetSoftwareType(c *gin.Context) {
	st, err := h.taxonomyService.GetSoftwareType(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *TaxonomyHandler) UpdateSoftwareType(c *gin.Context) {
	var req dto.UpdateSubEntityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	st, err := h.taxonomyService.UpdateSoftwareType(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *TaxonomyHandler) DeleteSoftwareType(c *gin.Context) {
	if err := h.taxonomyService.DeleteSoftwareType(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Software type deleted"})
}

// IndustryType

func (h *TaxonomyHandler) CreateIndustryType(c *gin.Context) {
	var req dto.CreateNamedEntityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	it, err := h.taxonomyService.CreateIndustryType(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (h *TaxonomyHandler) ListIndustryTypes(c *gin.Context) {
	types, err := h.taxonomyService.ListIndustryTypes()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *TaxonomyHandler) GetIndustryType(c *gin.Context) {
	it, err := h.taxonomyService.GetIndustryType(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *TaxonomyHandler) UpdateIndustryType(c *gin.Context) {
	var req dto.UpdateNamedEntityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	it, err := h.taxonomyService.UpdateIndustryType(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *TaxonomyHandler) DeleteIndustryType(c *gin.Context) {
	if err := h.taxonomyService.DeleteIndustryType(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Industry type deleted"})
}
