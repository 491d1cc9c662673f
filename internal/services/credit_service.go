package services

import (
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"
	"templhub_backend/internal/services/dto"
	"templhub_backend/pkg/apperrors"
)

type CreditService interface {
	Create(req *dto.CreateCreditRequest) (*models.Credit, error)
	GetByTemplate(templateID string) ([]models.Credit, error)
	Update(id string, req *dto.UpdateCreditRequest) (*models.Credit, error)
	Delete(id string) error
}

type CreditServiceImpl struct {
	creditRepo   repositories.CreditRepository
	templateRepo repositories.TemplateRepository
}

func NewCreditService(creditRepo repositories.CreditRepository, templateRepo repositories.TemplateRepository) CreditService {
	return &CreditServiceImpl{
		creditRepo:   creditRepo,
		templateRepo: templateRepo,
	}
}

func (s *CreditServiceImpl) Create(req *dto.CreateCreditRequest) (*models.Credit, error) {
	if _, err := s.templateRepo.FindByID(req.TemplateID); err != nil {
		if apperrors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	credit := &models.Credit{
		TemplateID:    req.TemplateID,
		Fonts:         toJSON(req.Fonts),
		Images:        toJSON(req.Images),
		Icons:         toJSON(req.Icons),
		Illustrations: toJSON(req.Illustrations),
	}

	if err := s.creditRepo.Create(credit); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return credit, nil
}

func (s *CreditServiceImpl) GetByTemplate(templateID string) ([]models.Credit, error) {
	credits, err := s.creditRepo.FindByTemplateID(templateID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return credits, nil
}

func (s *CreditServiceImpl) Update(id string, req *dto.UpdateCreditRequest) (*models.Credit, error) {
	credit := &models.Credit{
		BaseModel:     models.BaseModel{ID: id},
		Fonts:         toJSON(req.Fonts),
		Images:        toJSON(req.Images),
		Icons:         toJSON(req.Icons),
		Illustrations: toJSON(req.Illustrations),
	}

	if err := s.creditRepo.Update(credit); err != nil {
		if apperrors.Is(err, repositories.ErrCreditNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.creditRepo.FindByID(id)
}

func (s *CreditServiceImpl) Delete(id string) error {
	if err := s.creditRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrCreditNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
