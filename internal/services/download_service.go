package services

import (
	"fmt"

	"templhub_backend/internal/logger"
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"
	"templhub_backend/internal/services/dto"
	"templhub_backend/pkg/apperrors"

	"templhub_backend/internal/email"
)

// DownloadConfig параметры учета скачиваний
type DownloadConfig struct {
	FreeLimit int    // бесплатных скачиваний на идентичность
	LinkBase  string // база для ссылок в письмах
}

type DownloadService interface {
	// Record фиксирует скачивание: счетчик шаблона, списание лимита,
	// строка истории и письмо со ссылкой
	Record(req *dto.RecordDownloadRequest) error

	// List возвращает историю скачиваний пользователя
	List(userID string, query *dto.DownloadListQuery) (*dto.DownloadListResponse, error)

	// FreeDownloads возвращает остаток бесплатных скачиваний
	FreeDownloads(userID string) (*dto.FreeDownloadsResponse, error)
}

type DownloadServiceImpl struct {
	downloadRepo  repositories.DownloadRepository
	templateRepo  repositories.TemplateRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	cfg           DownloadConfig
}

func NewDownloadService(
	downloadRepo repositories.DownloadRepository,
	templateRepo repositories.TemplateRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	cfg DownloadConfig,
) DownloadService {
	if cfg.FreeLimit <= 0 {
		cfg.FreeLimit = 3
	}
	return &DownloadServiceImpl{
		downloadRepo:  downloadRepo,
		templateRepo:  templateRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
		cfg:           cfg,
	}
}

func (s *DownloadServiceImpl) Record(req *dto.RecordDownloadRequest) error {
	template, err := s.templateRepo.FindByID(req.TemplateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTemplateNotFound) {
			return apperrors.ErrTemplateNotFound
		}
		return apperrors.InternalError(err)
	}

	record := &models.DownloadHistory{
		Email:      req.Email,
		TemplateID: template.ID,
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	switch {
	case err == nil:
		// Зарегистрированный пользователь: лимит ведется колонкой
		if !template.IsPaid {
			if derr := s.userRepo.DecrementFreeDownloads(user.ID); derr != nil {
				if apperrors.Is(derr, repositories.ErrUserNotFound) {
					return apperrors.ErrFreeDownloadsExhausted
				}
				return apperrors.InternalError(derr)
			}
		}
		record.UserID = &user.ID
	case apperrors.Is(err, repositories.ErrUserNotFound):
		// Гость: лимит считается по строкам истории для адреса
		if !template.IsPaid {
			count, cerr := s.downloadRepo.CountByEmail(req.Email)
			if cerr != nil {
				return apperrors.InternalError(cerr)
			}
			if count >= int64(s.cfg.FreeLimit) {
				return apperrors.ErrFreeDownloadsExhausted
			}
		}
	default:
		return apperrors.InternalError(err)
	}

	if err := s.downloadRepo.Create(record); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.templateRepo.IncrementDownloads(template.ID); err != nil {
		return apperrors.InternalError(err)
	}

	// Письмо не критично: скачивание уже учтено
	go func() {
		link := s.downloadLink(template)
		if err := s.emailProvider.SendDownloadLink(req.Email, template.Title, link); err != nil {
			logger.WithError(err).Error("failed to send download link", "email", req.Email, "template_id", template.ID)
		}
	}()

	return nil
}

func (s *DownloadServiceImpl) List(userID string, query *dto.DownloadListQuery) (*dto.DownloadListResponse, error) {
	filter := repositories.DownloadFilter{
		UserID:   userID,
		DateFrom: query.DateFrom,
		DateTo:   query.DateTo,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	switch query.Category {
	case "free":
		isPaid := false
		filter.IsPaid = &isPaid
	case "premium":
		isPaid := true
		filter.IsPaid = &isPaid
	}

	downloads, total, err := s.downloadRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.DownloadListResponse{
		Downloads: downloads,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

func (s *DownloadServiceImpl) FreeDownloads(userID string) (*dto.FreeDownloadsResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.FreeDownloadsResponse{
		FreeDownloads: user.FreeDownloads,
		ProfileImg:    user.ProfileImg,
	}, nil
}

// downloadLink собирает ссылку для письма.
// Если база не задана, используется URL первого архива с исходниками.
func (s *DownloadServiceImpl) downloadLink(template *models.Template) string {
	if s.cfg.LinkBase != "" {
		return fmt.Sprintf("%s/%s", s.cfg.LinkBase, template.ID)
	}
	if len(template.SourceFiles) > 0 {
		return template.SourceFiles[0].URL
	}
	return ""
}
