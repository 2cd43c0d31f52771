package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bab-arcade/packages/auth/models"
	"bab-arcade/packages/auth/services"
	"bab-arcade/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*gin.Engine, *Module) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	profiles := services.NewProfileService(services.NewMemoryProfileStore(), issuer, 0, logger)
	module := NewModule(profiles, issuer)

	r := gin.New()
	module.SetupRoutes(r)
	admin := r.Group("/admin", module.JWTMiddleware(), RequireRole(models.RoleAdmin))
	admin.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r, module
}

func doJSON(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodPost, "/auth/register", models.RegisterRequest{Nickname: "kaleci", PIN: "1907"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[models.AuthResponse](t, w)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "Bearer", reg.TokenType)
	assert.Equal(t, int64(3600), reg.ExpiresIn)
	assert.Equal(t, "kaleci", reg.Profile.Nickname)

	w = doJSON(r, http.MethodPost, "/auth/register", models.RegisterRequest{Nickname: "KALECI", PIN: "1234"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/register", models.RegisterRequest{Nickname: "forvet", PIN: "12ab"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", models.LoginRequest{Nickname: "kaleci", PIN: "0000"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(r, http.MethodPost, "/auth/login", models.LoginRequest{Nickname: "nobody", PIN: "1907"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", models.LoginRequest{Nickname: "kaleci", PIN: "1907"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[models.AuthResponse](t, w)

	w = doJSON(r, http.MethodGet, "/users/me", nil, login.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.Profile](t, w)
	assert.Equal(t, reg.Profile.ID, me.ID)
	assert.Equal(t, []string{models.RoleUser}, []string(me.Roles))
}

func TestProtectedRoutes(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(r, http.MethodGet, "/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(r, http.MethodGet, "/users/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := utils.NewTokenIssuer("another-secret", time.Hour)
	forged, err := other.Generate(models.Profile{ID: 1, Nickname: "x", Roles: models.Roles{models.RoleAdmin}})
	require.NoError(t, err)
	w = doJSON(r, http.MethodGet, "/admin/ping", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/register", models.RegisterRequest{Nickname: "defans", PIN: "4444"}, "")
	reg := decode[models.AuthResponse](t, w)
	w = doJSON(r, http.MethodGet, "/admin/ping", nil, reg.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRole(t *testing.T) {
	r, _ := newTestRouter()
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Generate(models.Profile{ID: 9, Nickname: "hakem", Roles: models.Roles{models.RoleUser, models.RoleAdmin}})
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/admin/ping", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshRotation(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(r, http.MethodPost, "/auth/register", models.RegisterRequest{Nickname: "orta", PIN: "8888"}, "")
	reg := decode[models.AuthResponse](t, w)

	w = doJSON(r, http.MethodPost, "/auth/refresh", models.RefreshTokenRequest{RefreshToken: reg.RefreshToken}, "")
	require.Equal(t, http.StatusOK, w.Code)
	rotated := decode[models.TokenResponse](t, w)
	assert.NotEqual(t, reg.RefreshToken, rotated.RefreshToken)

	w = doJSON(r, http.MethodPost, "/auth/refresh", models.RefreshTokenRequest{RefreshToken: reg.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/logout-all", nil, rotated.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/auth/refresh", models.RefreshTokenRequest{RefreshToken: rotated.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(r, http.MethodPost, "/auth/register", models.RegisterRequest{Nickname: "kanat", PIN: "5555"}, "")
	reg := decode[models.AuthResponse](t, w)

	w = doJSON(r, http.MethodPost, "/auth/logout", models.RefreshTokenRequest{RefreshToken: reg.RefreshToken}, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/auth/refresh", models.RefreshTokenRequest{RefreshToken: reg.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/logout", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
