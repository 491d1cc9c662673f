package handlers

import (
	"net/http"

	"templhub_backend/internal/services"
	"templhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	*BaseHandler
	creditService services.CreditService
}

func NewCreditHandler(base *BaseHandler, creditService services.CreditService) *CreditHandler {
	return &CreditHandler{
		BaseHandler:   base,
		creditService: creditService,
	}
}

// RegisterRoutes регистрирует публичное чтение кредитов
func (h *CreditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/credits/template/:templateId", h.GetByTemplate)
}

// RegisterProtectedRoutes регистрирует записи кредитов (под токеном)
func (h *CreditHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/credits", h.Create)
	rg.PUT("/credits/:id", h.Update)
	rg.DELETE("/credits/:id", h.Delete)
}

func (h *CreditHandler) Create(c *gin.Context) {
	var req dto.CreateCreditRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	credit, err := h.creditService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, credit)
}

func (h *CreditHandler) GetByTemplate(c *gin.Context) {
	credits, err := h.creditService.GetByTemplate(c.Param("templateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, credits)
}

func (h *CreditHandler) Update(c *gin.Context) {
	var req dto.UpdateCreditRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	credit, err := h.creditService.Update(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

func (h *CreditHandler) Delete(c *gin.Context) {
	if err := h.creditService.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Credit deleted"})
}
