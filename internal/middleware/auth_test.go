package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"templhub_backend/internal/auth"
	"templhub_backend/internal/models"
	"templhub_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRepo отдает одного пользователя по ID.
// Остальные методы интерфейса в этих тестах не вызываются.
type stubUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (s *stubUserRepo) FindByID(id string) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func newAuthTestRouter(t *testing.T, issuer *auth.TokenIssuer, repo repositories.UserRepository) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(issuer, repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestAuthMiddleware_ValidToken - живой токен, совпадающий с сохраненным
func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Sign("u1", "USER")
	require.NoError(t, err)

	repo := &stubUserRepo{user: &models.User{
		BaseModel: models.BaseModel{ID: "u1"},
		Role:      models.RoleUser,
		Token:     &token,
	}}

	w := doRequest(newAuthTestRouter(t, issuer, repo), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

// TestAuthMiddleware_MissingHeader - без заголовка доступа нет
func TestAuthMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newAuthTestRouter(t, issuer, &stubUserRepo{})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "Token abc").Code)
}

// TestAuthMiddleware_BadSignature - чужая подпись дает 403
func TestAuthMiddleware_BadSignature(t *testing.T) {
	t.Parallel()

	foreign, err := auth.NewTokenIssuer("other-secret", time.Hour).Sign("u1", "USER")
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newAuthTestRouter(t, issuer, &stubUserRepo{})

	assert.Equal(t, http.StatusForbidden, doRequest(r, "Bearer "+foreign).Code)
}

// TestAuthMiddleware_TokenRevokedByLogout - после logout токен не принимается,
// хотя подпись и срок еще действительны
func TestAuthMiddleware_TokenRevokedByLogout(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Sign("u1", "USER")
	require.NoError(t, err)

	repo := &stubUserRepo{user: &models.User{
		BaseModel: models.BaseModel{ID: "u1"},
		Role:      models.RoleUser,
		Token:     nil, // logout обнулил сохраненный токен
	}}

	w := doRequest(newAuthTestRouter(t, issuer, repo), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestAuthMiddleware_TokenSuperseded - новый вход делает старый токен недействительным
func TestAuthMiddleware_TokenSuperseded(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("secret", time.Hour)
	// Другой срок жизни гарантирует другую строку токена
	oldToken, err := auth.NewTokenIssuer("secret", 2*time.Hour).Sign("u1", "USER")
	require.NoError(t, err)
	newToken, err := issuer.Sign("u1", "USER")
	require.NoError(t, err)
	require.NotEqual(t, oldToken, newToken)

	repo := &stubUserRepo{user: &models.User{
		BaseModel: models.BaseModel{ID: "u1"},
		Role:      models.RoleUser,
		Token:     &newToken,
	}}

	r := newAuthTestRouter(t, issuer, repo)
	assert.Equal(t, http.StatusOK, doRequest(r, "Bearer "+newToken).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "Bearer "+oldToken).Code)
}

// TestAdminMiddleware - только роль ADMIN проходит
func TestAdminMiddleware(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set("role", models.UserRole(c.Query("role")))
		c.Next()
	}, AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminReq := httptest.NewRequest(http.MethodGet, "/admin?role=ADMIN", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, adminReq)
	assert.Equal(t, http.StatusOK, w.Code)

	userReq := httptest.NewRequest(http.MethodGet, "/admin?role=USER", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, userReq)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
