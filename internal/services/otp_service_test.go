package services

import (
	"testing"
	"time"

	"templhub_backend/internal/models"
	"templhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOTPService(codeRepo *mockCodeRepo, provider *mockEmailProvider, cfg OTPConfig) OTPService {
	return NewOTPService(codeRepo, provider, cfg)
}

// TestOTPIssue_StoresCodeAndSendsEmail - выдача кода пишет запись и шлет письмо
func TestOTPIssue_StoresCodeAndSendsEmail(t *testing.T) {
	t.Parallel()

	codeRepo := newMockCodeRepo()
	provider := newMockEmailProvider()
	svc := newTestOTPService(codeRepo, provider, OTPConfig{TTL: 5 * time.Minute, Digits: 6})

	require.NoError(t, svc.Issue("user@test.com"))

	stored := codeRepo.code("user@test.com")
	assert.Len(t, stored, 6)
	for _, ch := range stored {
		assert.True(t, ch >= '0' && ch <= '9', "код состоит только из цифр")
	}

	// Письмо уходит асинхронно
	assert.Eventually(t, func() bool {
		return provider.lastOTP("user@test.com") == stored
	}, time.Second, 10*time.Millisecond)
}

// TestOTPIssue_ReissueOverwrites - повторная выдача перезаписывает код
func TestOTPIssue_ReissueOverwrites(t *testing.T) {
	t.Parallel()

	codeRepo := newMockCodeRepo()
	provider := newMockEmailProvider()
	svc := newTestOTPService(codeRepo, provider, OTPConfig{TTL: 5 * time.Minute, Digits: 6})

	require.NoError(t, svc.Issue("user@test.com"))
	first := codeRepo.code("user@test.com")

	require.NoError(t, svc.Issue("user@test.com"))
	second := codeRepo.code("user@test.com")

	// Первый код больше не проходит
	assert.ErrorIs(t, svc.Verify("user@test.com", first), apperrors.ErrInvalidOTP)
	assert.NoError(t, svc.Verify("user@test.com", second))
}

// TestOTPVerify_SingleUse - успешная проверка удаляет код
func TestOTPVerify_SingleUse(t *testing.T) {
	t.Parallel()

	codeRepo := newMockCodeRepo()
	svc := newTestOTPService(codeRepo, newMockEmailProvider(), OTPConfig{})

	require.NoError(t, svc.Issue("user@test.com"))
	code := codeRepo.code("user@test.com")

	require.NoError(t, svc.Verify("user@test.com", code))
	assert.ErrorIs(t, svc.Verify("user@test.com", code), apperrors.ErrInvalidOTP)
}

// TestOTPVerify_Failures - все провалы дают один и тот же общий ответ
func TestOTPVerify_Failures(t *testing.T) {
	t.Parallel()

	codeRepo := newMockCodeRepo()
	svc := newTestOTPService(codeRepo, newMockEmailProvider(), OTPConfig{})

	// Кода для адреса нет
	assert.ErrorIs(t, svc.Verify("nobody@test.com", "123456"), apperrors.ErrInvalidOTP)

	// Неверный код
	require.NoError(t, svc.Issue("user@test.com"))
	assert.ErrorIs(t, svc.Verify("user@test.com", "000000"), apperrors.ErrInvalidOTP)

	// Истекший код
	require.NoError(t, codeRepo.Upsert(&models.OneTimeCode{
		Email:  "stale@test.com",
		Code:   "654321",
		Expiry: time.Now().Add(-time.Minute),
	}))
	assert.ErrorIs(t, svc.Verify("stale@test.com", "654321"), apperrors.ErrInvalidOTP)
}

// TestOTPIssue_TestMode - в тестовом режиме выдается фиксированный код
func TestOTPIssue_TestMode(t *testing.T) {
	t.Parallel()

	codeRepo := newMockCodeRepo()
	svc := newTestOTPService(codeRepo, newMockEmailProvider(), OTPConfig{
		TestMode: true,
		TestCode: "111111",
	})

	require.NoError(t, svc.Issue("user@test.com"))
	assert.Equal(t, "111111", codeRepo.code("user@test.com"))
	assert.NoError(t, svc.Verify("user@test.com", "111111"))
}
