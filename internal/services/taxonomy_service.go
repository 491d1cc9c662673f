package services

import (
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"
	"templhub_backend/internal/services/dto"
	"templhub_backend/pkg/apperrors"
)

type TaxonomyService interface {
	// TemplateType
	CreateTemplateType(req *dto.CreateNamedEntityRequest) (*models.TemplateType, error)
	ListTemplateTypes() ([]models.TemplateType, error)
	GetTemplateType(id string) (*models.TemplateType, error)
	UpdateTemplateType(id string, req *dto.UpdateNamedEntityRequest) (*models.TemplateType, error)
	DeleteTemplateType(id string) error

	// SubCategory
	CreateSubCategory(req *dto.CreateSubEntityRequest) (*models.SubCategory, error)
	ListSubCategories() ([]models.SubCategory, error)
	GetSubCategory(id string) (*models.SubCategory, error)
	UpdateSubCategory(id string, req *dto.UpdateSubEntityRequest) (*models.SubCategory, error)
	DeleteSubCategory(id string) error

	// SoftwareType
	CreateSoftwareType(req *dto.CreateSubEntityRequest) (*models.SoftwareType, error)
	ListSoftwareTypes() ([]models.SoftwareType, error)
	GetSoftwareType(id string) (*models.SoftwareType, error)
	UpdateSoftwareType(id string, req *dto.UpdateSubEntityRequest) (*models.SoftwareType, error)
	DeleteSoftwareType(id string) error

	// IndustryType
	CreateIndustryType(req *dto.CreateNamedEntityRequest) (*models.IndustryType, error)
	ListIndustryTypes() ([]models.IndustryType, error)
	GetIndustryType(id string) (*models.IndustryType, error)
	UpdateIndustryType(id string, req *dto.UpdateNamedEntityRequest) (*models.IndustryType, error)
	DeleteIndustryType(id string) error
}

type TaxonomyServiceImpl struct {
	taxonomyRepo repositories.TaxonomyRepository
}

func NewTaxonomyService(taxonomyRepo repositories.TaxonomyRepository) TaxonomyService {
	return &TaxonomyServiceImpl{taxonomyRepo: taxonomyRepo}
}

// TemplateType

func (s *TaxonomyServiceImpl) CreateTemplateType(req *dto.CreateNamedEntityRequest) (*models.TemplateType, error) {
	t := &models.TemplateType{Name: req.Name}
	if err := s.taxonomyRepo.CreateTemplateType(t); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return t, nil
}

func (s *TaxonomyServiceImpl) ListTemplateTypes() ([]models.TemplateType, error) {
	types, err := s.taxonomyRepo.FindTemplateTypes()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return types, nil
}

func (s *TaxonomyServiceImpl) GetTemplateType(id string) (*models.TemplateType, error) {
	t, err := s.taxonomyRepo.FindTemplateTypeByID(id)
	if err != nil {
		return nil, taxonomyError(err)
	}
	return t, nil
}

func (s *TaxonomyServiceImpl) UpdateTemplateType(id string, req *dto.UpdateNamedEntityRequest) (*models.TemplateType, error) {
	t := &models.TemplateType{BaseModel: models.BaseModel{ID: id}, Name: req.Name}
	if err := s.taxonomyRepo.UpdateTemplateType(t); err != nil {
		return nil, taxonomyError(err)
	}
	return s.taxonomyRepo.FindTemplateTypeByID(id)
}

func (s *TaxonomyServiceImpl) DeleteTemplateType(id string) error {
	if err := s.taxonomyRepo.DeleteTemplateType(id); err != nil {
		return taxonomyError(err)
	}
	return nil
}

// SubCategory

func (s *TaxonomyServiceImpl) CreateSubCategory(req *dto.CreateSubEntityRequest) (*models.SubCategory, error) {
	sub := &models.SubCategory{Name: req.Name, TemplateTypeID: optionalID(req.TemplateTypeID)}
	if err := s.taxonomyRepo.CreateSubCategory(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func (s *TaxonomyServiceImpl) ListSubCategories() ([]models.SubCategory, error) {
	subs, err := s.taxonomyRepo.FindSubCategories()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

func (s *TaxonomyServiceImpl) GetSubCategory(id string) (*models.SubCategory, error) {
	sub, err := s.taxonomyRepo.FindSubCategoryByID(id)
	if err != nil {
		return nil, taxonomyError(err)
	}
	return sub, nil
}

func (s *TaxonomyServiceImpl) UpdateSubCategory(id string, req *dto.UpdateSubEntityRequest) (*models.SubCategory, error) {
	sub := &models.SubCategory{
		BaseModel:      models.BaseModel{ID: id},
		Name:           req.Name,
		TemplateTypeID: optionalID(req.TemplateTypeID),
	}
	if err := s.taxonomyRepo.UpdateSubCategory(sub); err != nil {
		return nil, taxonomyError(err)
	}
	return s.taxonomyRepo.FindSubCategoryByID(id)
}

func (s *TaxonomyServiceImpl) DeleteSubCategory(id string) error {
	if err := s.taxonomyRepo.DeleteSubCategory(id); err != nil {
		return taxonomyError(err)
	}
	return nil
}

// SoftwareType

func (s *TaxonomyServiceImpl) CreateSoftwareType(req *dto.CreateSubEntityRequest) (*models.SoftwareType, error) {
	st := &models.SoftwareType{Name: req.Name, TemplateTypeID: optionalID(req.TemplateTypeID)}
	if err := s.taxonomyRepo.CreateSoftwareType(st); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return st, nil
}

func (s *TaxonomyServiceImpl) ListSoftwareTypes() ([]models.SoftwareType, error) {
	types, err := s.taxonomyRepo.FindSoftwareTypes()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return types, nil
}

func (s *TaxonomyServiceImpl) GetSoftwareType(id string) (*models.SoftwareType, error) {
	st, err := s.taxonomyRepo.FindSoftwareTypeByID(id)
	if err != nil {
		return nil, taxonomyError(err)
	}
	return st, nil
}

func (s *TaxonomyServiceImpl) UpdateSoftwareType(id string, req *dto.UpdateSubEntityRequest) (*models.SoftwareType, error) {
	st := &models.SoftwareType{
		BaseModel:      models.BaseModel{ID: id},
		Name:           req.Name,
		TemplateTypeID: optionalID(req.TemplateTypeID),
	}
	if err := s.taxonomyRepo.UpdateSoftwareType(st); err != nil {
		return nil, taxonomyError(err)
	}
	return s.taxonomyRepo.FindSoftwareTypeByID(id)
}

func (s *TaxonomyServiceImpl) DeleteSoftwareType(id string) error {
	if err := s.taxonomyRepo.DeleteSoftwareType(id); err != nil {
		return taxonomyError(err)
	}
	return nil
}

// IndustryType

func (s *TaxonomyServiceImpl) CreateIndustryType(req *dto.CreateNamedEntityRequest) (*models.IndustryType, error) {
	it := &models.IndustryType{Name: req.Name}
	if err := s.taxonomyRepo.CreateIndustryType(it); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return it, nil
}

func (s *TaxonomyServiceImpl) ListIndustryTypes() ([]models.IndustryType, error) {
	types, err := s.taxonomyRepo.FindIndustryTypes()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return types, nil
}

func (s *TaxonomyServiceImpl) GetIndustryType(id string) (*models.IndustryType, error) {
	it, err := s.taxonomyRepo.FindIndustryTypeByID(id)
	if err != nil {
		return nil, taxonomyError(err)
	}
	return it, nil
}

func (s *TaxonomyServiceImpl) UpdateIndustryType(id string, req *dto.UpdateNamedEntityRequest) (*models.IndustryType, error) {
	it := &models.IndustryType{BaseModel: models.BaseModel{ID: id}, Name: req.Name}
	if err := s.taxonomyRepo.UpdateIndustryType(it); err != nil {
		return nil, taxonomyError(err)
	}
	return s.taxonomyRepo.FindIndustryTypeByID(id)
}

func (s *TaxonomyServiceImpl) DeleteIndustryType(id string) error {
	if err := s.taxonomyRepo.DeleteIndustryType(id); err != nil {
		return taxonomyError(err)
	}
	return nil
}

func taxonomyError(err error) error {
	if apperrors.Is(err, repositories.ErrTaxonomyNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}
