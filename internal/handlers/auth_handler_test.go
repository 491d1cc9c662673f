package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"templhub_backend/internal/services"
	"templhub_backend/internal/services/dto"
	"templhub_backend/internal/validator"
	"templhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthService фиксирует вызовы и отдает заранее заданные ответы
type stubAuthService struct {
	registerErr    error
	loginErr       error
	loginVerifyRes *dto.LoginResponse
	loginVerifyErr error

	registeredWith *dto.RegisterRequest
	logoutUserID   string
}

func (s *stubAuthService) Register(req *dto.RegisterRequest) error {
	s.registeredWith = req
	return s.registerErr
}

func (s *stubAuthService) RegisterVerify(req *dto.RegisterVerifyRequest) (*dto.UserDTO, error) {
	return &dto.UserDTO{Email: req.Email, Name: req.Name}, nil
}

func (s *stubAuthService) Login(req *dto.LoginRequest) error { return s.loginErr }

func (s *stubAuthService) LoginVerify(req *dto.LoginVerifyRequest) (*dto.LoginResponse, error) {
	return s.loginVerifyRes, s.loginVerifyErr
}

func (s *stubAuthService) Logout(userID string) error {
	s.logoutUserID = userID
	return nil
}

func (s *stubAuthService) ForgotPassword(emailAddr string) error            { return nil }
func (s *stubAuthService) ResetPassword(req *dto.ResetPasswordRequest) error { return nil }
func (s *stubAuthService) VerifyOTP(emailAddr string, code string) error    { return nil }
func (s *stubAuthService) ResendOTP(emailAddr string) error                 { return nil }

func (s *stubAuthService) GetCurrentUser(userID string) (*dto.UserDTO, error) {
	return &dto.UserDTO{ID: userID}, nil
}

func (s *stubAuthService) UpdateDetails(userID string, req *dto.UpdateDetailsRequest) (*dto.UserDTO, error) {
	return &dto.UserDTO{ID: userID}, nil
}

func (s *stubAuthService) RequestEmailChange(userID string) error { return nil }

func (s *stubAuthService) ConfirmCurrentEmail(userID string, req *dto.ConfirmCurrentEmailRequest) error {
	return nil
}

func (s *stubAuthService) ConfirmNewEmail(userID string, req *dto.ConfirmNewEmailRequest) error {
	return nil
}

func (s *stubAuthService) DeleteAccount(userID string) error { return nil }

func (s *stubAuthService) UpdateProfileImage(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UserDTO, error) {
	return &dto.UserDTO{ID: userID}, nil
}

func (s *stubAuthService) RemoveProfileImage(ctx context.Context, userID string) error { return nil }

var _ services.AuthService = (*stubAuthService)(nil)

func newAuthTestServer(t *testing.T, svc services.AuthService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewAuthHandler(NewBaseHandler(validator.New()), svc)
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)

	// Защищенная группа: userID подставляется вместо настоящего middleware
	protected := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("userID", "u1")
	})
	h.RegisterProtectedRoutes(protected)

	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestRegisterEndpoint_Success - валидное тело доходит до сервиса
func TestRegisterEndpoint_Success(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{}
	r := newAuthTestServer(t, svc)

	w := postJSON(r, "/api/v1/register", map[string]interface{}{
		"email":            "user@test.com",
		"name":             "User",
		"password":         "password123",
		"confirm_password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Verification code sent")
	require.NotNil(t, svc.registeredWith)
	assert.Equal(t, "user@test.com", svc.registeredWith.Email)
}

// TestRegisterEndpoint_InvalidBody - невалидное тело отклоняется до сервиса
func TestRegisterEndpoint_InvalidBody(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{}
	r := newAuthTestServer(t, svc)

	// Не email и короткий пароль
	w := postJSON(r, "/api/v1/register", map[string]interface{}{
		"email":            "not-an-email",
		"name":             "User",
		"password":         "short",
		"confirm_password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.registeredWith, "сервис не должен вызываться")
}

// TestLoginEndpoint_InvalidCredentials - общий ответ без деталей
func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{loginErr: apperrors.ErrInvalidCredentials}
	r := newAuthTestServer(t, svc)

	w := postJSON(r, "/api/v1/login", map[string]interface{}{
		"email":    "user@test.com",
		"password": "whatever1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestLoginVerifyEndpoint_ReturnsToken - успешный второй шаг отдает токен
func TestLoginVerifyEndpoint_ReturnsToken(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{
		loginVerifyRes: &dto.LoginResponse{
			Token: "signed-token",
			User:  &dto.UserDTO{Email: "user@test.com"},
		},
	}
	r := newAuthTestServer(t, svc)

	w := postJSON(r, "/api/v1/login/verify", map[string]interface{}{
		"email":    "user@test.com",
		"password": "password123",
		"otp":      "123456",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
}

// TestLogoutEndpoint - идентификатор берется из контекста
func TestLogoutEndpoint(t *testing.T) {
	t.Parallel()

	svc := &stubAuthService{}
	r := newAuthTestServer(t, svc)

	w := postJSON(r, "/api/v1/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", svc.logoutUserID)
}
