package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	"templhub_backend/internal/logger"
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"
	"templhub_backend/internal/services/dto"
	"templhub_backend/internal/storage"
	"templhub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TemplateService interface {
	Create(ctx context.Context, userID string, req *dto.CreateTemplateRequest, files *dto.TemplateFiles) (*models.Template, error)
	Update(ctx context.Context, userID string, templateID string, req *dto.UpdateTemplateRequest, files *dto.TemplateFiles) (*models.Template, error)
	Delete(ctx context.Context, userID string, templateID string) error
	GetByID(templateID string) (*models.Template, error)
	List(query *dto.TemplateListQuery) (*dto.TemplateListResponse, error)
	Latest() ([]models.Template, error)
	Popular() ([]models.Template, error)
	Featured() ([]models.Template, error)
	All() ([]models.Template, error)
	ByUserID(userID string) ([]models.Template, error)
	Search(query string) ([]models.Template, error)
}

type TemplateServiceImpl struct {
	templateRepo repositories.TemplateRepository
	creditRepo   repositories.CreditRepository
	storage      storage.Storage
	limits       UploadLimits
}

func NewTemplateService(
	templateRepo repositories.TemplateRepository,
	creditRepo repositories.CreditRepository,
	store storage.Storage,
	limits UploadLimits,
) TemplateService {
	return &TemplateServiceImpl{
		templateRepo: templateRepo,
		creditRepo:   creditRepo,
		storage:      store,
		limits:       limits,
	}
}

// Create создает шаблон: метаданные, четыре категории файлов и кредиты.
// Категории загружаются параллельно.
func (s *TemplateServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateTemplateRequest, files *dto.TemplateFiles) (*models.Template, error) {
	if err := s.validateFiles(files); err != nil {
		return nil, err
	}

	uploaded, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	template := &models.Template{
		Title:              req.Title,
		Description:        req.Description,
		Price:              req.Price,
		IsPaid:             req.IsPaid,
		MobileVersion:      req.MobileVersion,
		DocumentationReady: req.DocumentationReady,
		SEOTags:            toJSON(req.SEOTags),
		TechDetails:        toJSON(req.TechDetails),
		UserID:             userID,
		TemplateTypeID:     optionalID(req.TemplateTypeID),
		SubCategoryID:      optionalID(req.SubCategoryID),
		SoftwareTypeID:     optionalID(req.SoftwareTypeID),
		IndustryTypeID:     optionalID(req.IndustryTypeID),
	}
	if req.Version != "" {
		template.Version = &req.Version
	}
	if len(uploaded.previewImages) > 0 {
		template.ImageURL = &uploaded.previewImages[0]
	}

	for _, url := range uploaded.sourceFiles {
		template.SourceFiles = append(template.SourceFiles, models.SourceFile{URL: url})
	}
	for _, url := range uploaded.sliderImages {
		template.SliderImages = append(template.SliderImages, models.SliderImage{URL: url})
	}
	for _, url := range uploaded.previewImages {
		template.PreviewImages = append(template.PreviewImages, models.PreviewImage{URL: url})
	}
	for _, url := range uploaded.previewMobileImages {
		template.PreviewMobileImages = append(template.PreviewMobileImages, models.PreviewMobileImage{URL: url})
	}

	if hasCreditData(req.Fonts, req.Images, req.Icons, req.Illustrations) {
		template.Credits = append(template.Credits, models.Credit{
			Fonts:         toJSON(req.Fonts),
			Images:        toJSON(req.Images),
			Icons:         toJSON(req.Icons),
			Illustrations: toJSON(req.Illustrations),
		})
	}

	if err := s.templateRepo.Create(template); err != nil {
		// Загруженные файлы осиротели, убираем их
		s.cleanupURLs(ctx, uploaded.all())
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(template.ID)
}

// Update обновляет шаблон. Доступно только владельцу.
// Повторно загруженные категории заменяют свои строки.
func (s *TemplateServiceImpl) Update(ctx context.Context, userID string, templateID string, req *dto.UpdateTemplateRequest, files *dto.TemplateFiles) (*models.Template, error) {
	template, err := s.ownedTemplate(userID, templateID)
	if err != nil {
		return nil, err
	}

	if err := s.validateFiles(files); err != nil {
		return nil, err
	}

	if req.Title != nil {
		template.Title = *req.Title
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Price != nil {
		template.Price = *req.Price
	}
	if req.Version != nil {
		template.Version = req.Version
	}
	if req.IsPaid != nil {
		template.IsPaid = *req.IsPaid
	}
	if req.MobileVersion != nil {
		template.MobileVersion = *req.MobileVersion
	}
	if req.DocumentationReady != nil {
		template.DocumentationReady = *req.DocumentationReady
	}
	if len(req.SEOTags) > 0 {
		template.SEOTags = toJSON(req.SEOTags)
	}
	if len(req.TechDetails) > 0 {
		template.TechDetails = toJSON(req.TechDetails)
	}
	if req.TemplateTypeID != nil {
		template.TemplateTypeID = optionalID(*req.TemplateTypeID)
	}
	if req.SubCategoryID != nil {
		template.SubCategoryID = optionalID(*req.SubCategoryID)
	}
	if req.SoftwareTypeID != nil {
		template.SoftwareTypeID = optionalID(*req.SoftwareTypeID)
	}
	if req.IndustryTypeID != nil {
		template.IndustryTypeID = optionalID(*req.IndustryTypeID)
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.replaceUploadedCategories(ctx, template, files); err != nil {
		return nil, err
	}

	if hasCreditData(req.Fonts, req.Images, req.Icons, req.Illustrations) {
		credit := models.Credit{
			TemplateID:    template.ID,
			Fonts:         toJSON(req.Fonts),
			Images:        toJSON(req.Images),
			Icons:         toJSON(req.Icons),
			Illustrations: toJSON(req.Illustrations),
		}
		if len(template.Credits) > 0 {
			credit.ID = template.Credits[0].ID
			if err := s.creditRepo.Update(&credit); err != nil {
				return nil, apperrors.InternalError(err)
			}
		} else {
			if err := s.creditRepo.Create(&credit); err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
	}

	return s.GetByID(template.ID)
}

// Delete удаляет шаблон: сначала файлы из хранилища, затем строки
func (s *TemplateServiceImpl) Delete(ctx context.Context, userID string, templateID string) error {
	template, err := s.ownedTemplate(userID, templateID)
	if err != nil {
		return err
	}

	s.cleanupURLs(ctx, assetURLs(template))

	if err := s.templateRepo.Delete(templateID); err != nil {
		if apperrors.Is(err, repositories.ErrTemplateNotFound) {
			return apperrors.ErrTemplateNotFound
		}
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *TemplateServiceImpl) GetByID(templateID string) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

func (s *TemplateServiceImpl) List(query *dto.TemplateListQuery) (*dto.TemplateListResponse, error) {
	filter := repositories.TemplateFilter{
		IndustryTypeIDs: query.IndustryTypeIDs,
		TemplateTypeIDs: query.TemplateTypeIDs,
		SoftwareTypeIDs: query.SoftwareTypeIDs,
		SubCategoryIDs:  query.SubCategoryIDs,
		IsPaid:          query.IsPaid,
		PriceRanges:     query.PriceRanges,
		Search:          query.Search,
		Page:            query.Page,
		PageSize:        query.PageSize,
	}

	templates, total, err := s.templateRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 12
	}

	return &dto.TemplateListResponse{
		Templates: templates,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

func (s *TemplateServiceImpl) Latest() ([]models.Template, error) {
	templates, err := s.templateRepo.FindLatest(10)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return templates, nil
}

func (s *TemplateServiceImpl) Popular() ([]models.Template, error) {
	templates, err := s.templateRepo.FindPopular(10)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return templates, nil
}

func (s *TemplateServiceImpl) Featured() ([]models.Template, error) {
	templates, err := s.templateRepo.FindFeatured(6)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return templates, nil
}

func (s *TemplateServiceImpl) All() ([]models.Template, error) {
	templates, err := s.templateRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return templates, nil
}

func (s *TemplateServiceImpl) ByUserID(userID string) ([]models.Template, error) {
	templates, err := s.templateRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return templates, nil
}

func (s *TemplateServiceImpl) Search(query string) ([]models.Template, error) {
	templates, err := s.templateRepo.SearchByTitle(query)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return templates, nil
}

// ownedTemplate загружает шаблон и проверяет владение
func (s *TemplateServiceImpl) ownedTemplate(userID, templateID string) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if template.UserID != userID {
		return nil, apperrors.ErrNotTemplateOwner
	}

	return template, nil
}

type uploadedAssets struct {
	sourceFiles         []string
	sliderImages        []string
	previewImages       []string
	previewMobileImages []string
}

func (u *uploadedAssets) all() []string {
	var urls []string
	urls = append(urls, u.sourceFiles...)
	urls = append(urls, u.sliderImages...)
	urls = append(urls, u.previewImages...)
	urls = append(urls, u.previewMobileImages...)
	return urls
}

// uploadAll грузит четыре категории файлов параллельно
func (s *TemplateServiceImpl) uploadAll(ctx context.Context, files *dto.TemplateFiles) (*uploadedAssets, error) {
	if files == nil {
		return &uploadedAssets{}, nil
	}

	uploaded := &uploadedAssets{}
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	upload := func(headers []*multipart.FileHeader, prefix string, dest *[]string) {
		defer wg.Done()
		urls, err := s.uploadCategory(ctx, headers, prefix)
		mu.Lock()
		defer mu.Unlock()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		*dest = urls
	}

	wg.Add(4)
	go upload(files.SourceFiles, "templates/sources", &uploaded.sourceFiles)
	go upload(files.SliderImages, "templates/sliders", &uploaded.sliderImages)
	go upload(files.PreviewImages, "templates/previews", &uploaded.previewImages)
	go upload(files.PreviewMobileImages, "templates/previews-mobile", &uploaded.previewMobileImages)
	wg.Wait()

	if firstErr != nil {
		s.cleanupURLs(ctx, uploaded.all())
		return nil, firstErr
	}

	return uploaded, nil
}

func (s *TemplateServiceImpl) uploadCategory(ctx context.Context, headers []*multipart.FileHeader, prefix string) ([]string, error) {
	var urls []string
	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			return urls, apperrors.InternalError(err)
		}

		key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), filepath.Ext(header.Filename))
		contentType := header.Header.Get("Content-Type")

		err = s.storage.Save(ctx, key, src, contentType)
		src.Close()
		if err != nil {
			return urls, apperrors.InternalError(err)
		}

		url, err := s.storage.GetURL(ctx, key)
		if err != nil {
			return urls, apperrors.InternalError(err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// replaceUploadedCategories заменяет строки только тех категорий,
// для которых пришли новые файлы
func (s *TemplateServiceImpl) replaceUploadedCategories(ctx context.Context, template *models.Template, files *dto.TemplateFiles) error {
	if files == nil {
		return nil
	}

	if len(files.SourceFiles) > 0 {
		urls, err := s.uploadCategory(ctx, files.SourceFiles, "templates/sources")
		if err != nil {
			return err
		}
		s.cleanupURLs(ctx, collectURLs(template.SourceFiles, func(f models.SourceFile) string { return f.URL }))
		if err := s.templateRepo.ReplaceSourceFiles(template.ID, urls); err != nil {
			return apperrors.InternalError(err)
		}
	}
	if len(files.SliderImages) > 0 {
		urls, err := s.uploadCategory(ctx, files.SliderImages, "templates/sliders")
		if err != nil {
			return err
		}
		s.cleanupURLs(ctx, collectURLs(template.SliderImages, func(f models.SliderImage) string { return f.URL }))
		if err := s.templateRepo.ReplaceSliderImages(template.ID, urls); err != nil {
			return apperrors.InternalError(err)
		}
	}
	if len(files.PreviewImages) > 0 {
		urls, err := s.uploadCategory(ctx, files.PreviewImages, "templates/previews")
		if err != nil {
			return err
		}
		s.cleanupURLs(ctx, collectURLs(template.PreviewImages, func(f models.PreviewImage) string { return f.URL }))
		if err := s.templateRepo.ReplacePreviewImages(template.ID, urls); err != nil {
			return apperrors.InternalError(err)
		}
	}
	if len(files.PreviewMobileImages) > 0 {
		urls, err := s.uploadCategory(ctx, files.PreviewMobileImages, "templates/previews-mobile")
		if err != nil {
			return err
		}
		s.cleanupURLs(ctx, collectURLs(template.PreviewMobileImages, func(f models.PreviewMobileImage) string { return f.URL }))
		if err := s.templateRepo.ReplacePreviewMobileImages(template.ID, urls); err != nil {
			return apperrors.InternalError(err)
		}
	}

	return nil
}

// validateFiles проверяет размеры и типы до начала загрузки
func (s *TemplateServiceImpl) validateFiles(files *dto.TemplateFiles) error {
	if files == nil {
		return nil
	}

	for _, header := range files.SourceFiles {
		if header.Size > s.limits.MaxArchiveSize {
			return apperrors.ErrFileTooLarge
		}
	}

	imageCategories := [][]*multipart.FileHeader{
		files.SliderImages, files.PreviewImages, files.PreviewMobileImages,
	}
	for _, category := range imageCategories {
		for _, header := range category {
			if header.Size > s.limits.MaxSize {
				return apperrors.ErrFileTooLarge
			}
			contentType := header.Header.Get("Content-Type")
			if !s.isAllowedImageType(contentType) {
				return apperrors.ErrInvalidFileType
			}
		}
	}

	return nil
}

func (s *TemplateServiceImpl) isAllowedImageType(contentType string) bool {
	for _, allowed := range s.limits.AllowedTypes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}

func (s *TemplateServiceImpl) cleanupURLs(ctx context.Context, urls []string) {
	for _, url := range urls {
		key, ok := s.storage.KeyFromURL(url)
		if !ok {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.WithError(err).Warn("failed to delete stored file", "key", key)
		}
	}
}

func assetURLs(template *models.Template) []string {
	var urls []string
	for _, f := range template.SourceFiles {
		urls = append(urls, f.URL)
	}
	for _, f := range template.SliderImages {
		urls = append(urls, f.URL)
	}
	for _, f := range template.PreviewImages {
		urls = append(urls, f.URL)
	}
	for _, f := range template.PreviewMobileImages {
		urls = append(urls, f.URL)
	}
	return urls
}

func collectURLs[T any](items []T, url func(T) string) []string {
	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, url(item))
	}
	return urls
}

func hasCreditData(groups ...[]string) bool {
	for _, group := range groups {
		if len(group) > 0 {
			return true
		}
	}
	return false
}

func toJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
