package services

import (
	"testing"
	"time"

	"templhub_backend/internal/auth"
	"templhub_backend/internal/models"
	"templhub_backend/internal/services/dto"
	"templhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc      AuthService
	userRepo *mockUserRepo
	codeRepo *mockCodeRepo
	provider *mockEmailProvider
	issuer   *auth.TokenIssuer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userRepo := newMockUserRepo()
	codeRepo := newMockCodeRepo()
	provider := newMockEmailProvider()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	otpSvc := NewOTPService(codeRepo, provider, OTPConfig{TestMode: true, TestCode: "123456"})
	svc := NewAuthService(userRepo, otpSvc, issuer, provider, nil, UploadLimits{})

	return &authFixture{
		svc:      svc,
		userRepo: userRepo,
		codeRepo: codeRepo,
		provider: provider,
		issuer:   issuer,
	}
}

// seedUser создает подтвержденного пользователя с известным паролем
func (f *authFixture) seedUser(t *testing.T, emailAddr, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return f.userRepo.add(&models.User{
		Email:         emailAddr,
		Name:          "Test User",
		PasswordHash:  hash,
		Role:          models.RoleUser,
		FreeDownloads: 3,
	})
}

// TestRegister_NoUserUntilVerify - запись появляется только после второго шага
func TestRegister_NoUserUntilVerify(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	err := f.svc.Register(&dto.RegisterRequest{
		Email:           "new@test.com",
		Name:            "New User",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.NoError(t, err)

	// Первый шаг выдал код, но пользователя еще нет
	assert.NotEmpty(t, f.codeRepo.code("new@test.com"))
	_, err = f.userRepo.FindByEmail("new@test.com")
	assert.Error(t, err)

	user, err := f.svc.RegisterVerify(&dto.RegisterVerifyRequest{
		Email:           "new@test.com",
		Name:            "New User",
		Password:        "password123",
		ConfirmPassword: "password123",
		OTP:             "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@test.com", user.Email)
	assert.Equal(t, 3, user.FreeDownloads)

	stored, err := f.userRepo.FindByEmail("new@test.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
}

// TestRegister_DuplicateEmail - занятый адрес отклоняется на первом шаге
func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	f.seedUser(t, "taken@test.com", "password123")

	err := f.svc.Register(&dto.RegisterRequest{
		Email:           "taken@test.com",
		Name:            "Dup",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

// TestRegister_PasswordMismatch - пароль и подтверждение обязаны совпадать
func TestRegister_PasswordMismatch(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	err := f.svc.Register(&dto.RegisterRequest{
		Email:           "new@test.com",
		Name:            "New",
		Password:        "password123",
		ConfirmPassword: "different123",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

// TestLogin_SameErrorForUnknownEmailAndWrongPassword - защита от перебора адресов
func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	f.seedUser(t, "user@test.com", "password123")

	errUnknown := f.svc.Login(&dto.LoginRequest{Email: "nobody@test.com", Password: "password123"})
	errWrongPass := f.svc.Login(&dto.LoginRequest{Email: "user@test.com", Password: "badpassword"})

	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
	// Ответ не выдает, существует ли адрес
	assert.Equal(t, errUnknown, errWrongPass)
}

// TestLoginVerify_IssuesAndPersistsToken - успешный вход сохраняет токен на пользователе
func TestLoginVerify_IssuesAndPersistsToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	seeded := f.seedUser(t, "user@test.com", "password123")

	require.NoError(t, f.svc.Login(&dto.LoginRequest{Email: "user@test.com", Password: "password123"}))

	res, err := f.svc.LoginVerify(&dto.LoginVerifyRequest{
		Email:    "user@test.com",
		Password: "password123",
		OTP:      "123456",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	claims, err := f.issuer.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)

	stored, err := f.userRepo.FindByID(seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Token)
	assert.Equal(t, res.Token, *stored.Token)
}

// TestLogout_ClearsStoredToken - выход обнуляет сохраненный токен
func TestLogout_ClearsStoredToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	seeded := f.seedUser(t, "user@test.com", "password123")
	token := "some-token"
	require.NoError(t, f.userRepo.UpdateToken(seeded.ID, &token))

	require.NoError(t, f.svc.Logout(seeded.ID))

	stored, err := f.userRepo.FindByID(seeded.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Token)
}

// TestForgotPassword_UnknownEmail - для неизвестного адреса возвращается 404
func TestForgotPassword_UnknownEmail(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	err := f.svc.ForgotPassword("nobody@test.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

// TestResetPassword_ChangesHashAndClosesSessions - сброс пароля закрывает старые сессии
func TestResetPassword_ChangesHashAndClosesSessions(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	seeded := f.seedUser(t, "user@test.com", "oldpassword1")
	token := "live-token"
	require.NoError(t, f.userRepo.UpdateToken(seeded.ID, &token))

	require.NoError(t, f.svc.ForgotPassword("user@test.com"))

	err := f.svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:           "user@test.com",
		OTP:             "123456",
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	})
	require.NoError(t, err)

	stored, err := f.userRepo.FindByID(seeded.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("newpassword1", stored.PasswordHash))
	assert.Nil(t, stored.Token, "старый токен сброшен")
}

// TestResetPassword_Mismatch - несовпадающее подтверждение не трогает пароль
func TestResetPassword_Mismatch(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	f.seedUser(t, "user@test.com", "oldpassword1")

	err := f.svc.ResetPassword(&dto.ResetPasswordRequest{
		Email:           "user@test.com",
		OTP:             "123456",
		NewPassword:     "newpassword1",
		ConfirmPassword: "different1",
	})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

// TestEmailChange_FullFlow - трехшаговая смена адреса
func TestEmailChange_FullFlow(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	seeded := f.seedUser(t, "old@test.com", "password123")

	// Шаг 1: код на текущую почту
	require.NoError(t, f.svc.RequestEmailChange(seeded.ID))
	assert.NotEmpty(t, f.codeRepo.code("old@test.com"))

	// Шаг 2: подтверждение текущей, код на новую
	require.NoError(t, f.svc.ConfirmCurrentEmail(seeded.ID, &dto.ConfirmCurrentEmailRequest{
		OTP:      "123456",
		NewEmail: "fresh@test.com",
	}))
	assert.NotEmpty(t, f.codeRepo.code("fresh@test.com"))

	// Адрес еще не изменен
	stored, err := f.userRepo.FindByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "old@test.com", stored.Email)

	// Шаг 3: подтверждение новой почты
	require.NoError(t, f.svc.ConfirmNewEmail(seeded.ID, &dto.ConfirmNewEmailRequest{
		NewEmail: "fresh@test.com",
		OTP:      "123456",
	}))

	stored, err = f.userRepo.FindByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh@test.com", stored.Email)
}

// TestEmailChange_NewEmailTaken - занятый новый адрес отклоняется на втором шаге
func TestEmailChange_NewEmailTaken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	seeded := f.seedUser(t, "old@test.com", "password123")
	f.seedUser(t, "taken@test.com", "password123")

	require.NoError(t, f.svc.RequestEmailChange(seeded.ID))

	err := f.svc.ConfirmCurrentEmail(seeded.ID, &dto.ConfirmCurrentEmailRequest{
		OTP:      "123456",
		NewEmail: "taken@test.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

// TestUpdateDetails - частичное обновление имени и телефона
func TestUpdateDetails(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	seeded := f.seedUser(t, "user@test.com", "password123")

	updated, err := f.svc.UpdateDetails(seeded.ID, &dto.UpdateDetailsRequest{
		Name:   "Renamed",
		Number: "+77001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.Number)
	assert.Equal(t, "+77001234567", *updated.Number)
}

// TestDeleteAccount - удаление учетной записи
func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	seeded := f.seedUser(t, "user@test.com", "password123")

	require.NoError(t, f.svc.DeleteAccount(seeded.ID))

	_, err := f.svc.GetCurrentUser(seeded.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
