package services

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strings"
	"time"

	"templhub_backend/internal/email"
	"templhub_backend/internal/logger"
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"
	"templhub_backend/pkg/apperrors"
)

// OTPConfig параметры выдачи одноразовых кодов
type OTPConfig struct {
	TTL      time.Duration
	Digits   int
	TestMode bool
	TestCode string
}

type OTPService interface {
	// Issue генерирует код для адреса и отправляет его письмом.
	// Повторная выдача перезаписывает предыдущий код.
	Issue(emailAddr string) error

	// Verify проверяет код. Успешная проверка удаляет запись:
	// каждый код одноразовый.
	Verify(emailAddr string, code string) error
}

type OTPServiceImpl struct {
	codeRepo      repositories.OneTimeCodeRepository
	emailProvider email.Provider
	cfg           OTPConfig
}

func NewOTPService(codeRepo repositories.OneTimeCodeRepository, emailProvider email.Provider, cfg OTPConfig) OTPService {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Digits <= 0 {
		cfg.Digits = 6
	}
	return &OTPServiceImpl{
		codeRepo:      codeRepo,
		emailProvider: emailProvider,
		cfg:           cfg,
	}
}

func (s *OTPServiceImpl) Issue(emailAddr string) error {
	code, err := s.generateCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	record := &models.OneTimeCode{
		Email:  emailAddr,
		Code:   code,
		Expiry: time.Now().Add(s.cfg.TTL),
	}

	if err := s.codeRepo.Upsert(record); err != nil {
		return apperrors.InternalError(err)
	}

	// Отправка не блокирует запрос. Неудача доставки не отменяет код:
	// пользователь может запросить повторную отправку.
	go func() {
		if err := s.emailProvider.SendOTP(emailAddr, code); err != nil {
			logger.WithError(err).Error("failed to send OTP email", "email", emailAddr)
		}
	}()

	return nil
}

func (s *OTPServiceImpl) Verify(emailAddr string, code string) error {
	record, err := s.codeRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCodeNotFound) {
			return apperrors.ErrInvalidOTP
		}
		return apperrors.InternalError(err)
	}

	if record.IsExpired(time.Now()) {
		return apperrors.ErrInvalidOTP
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return apperrors.ErrInvalidOTP
	}

	if err := s.codeRepo.DeleteByEmail(emailAddr); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// generateCode выдает криптографически случайный цифровой код.
// В test_mode возвращается фиксированный код из конфигурации.
func (s *OTPServiceImpl) generateCode() (string, error) {
	if s.cfg.TestMode && s.cfg.TestCode != "" {
		return s.cfg.TestCode, nil
	}

	var sb strings.Builder
	for i := 0; i < s.cfg.Digits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}
