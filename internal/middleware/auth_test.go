package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantops/internal/config"
	domainProfile "plantops/internal/domain/profile"
	"plantops/pkg/utils"
)

type stubProfileRepo struct {
	profiles map[uuid.UUID]*domainProfile.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[uuid.UUID]*domainProfile.Profile)}
}

func (s *stubProfileRepo) GetByID(_ context.Context, profileID uuid.UUID) (*domainProfile.Profile, error) {
	p, ok := s.profiles[profileID]
	if !ok {
		return nil, domainProfile.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *stubProfileRepo) GetByEmail(context.Context, string) (*domainProfile.Profile, error) {
	return nil, domainProfile.ErrProfileNotFound
}

func (s *stubProfileRepo) List(context.Context, *domainProfile.Filter) ([]*domainProfile.Profile, int64, error) {
	return nil, 0, nil
}

func (s *stubProfileRepo) Count(context.Context) (int64, error) { return 0, nil }

func (s *stubProfileRepo) Update(context.Context, *domainProfile.Profile) error { return nil }

func (s *stubProfileRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error { return nil }

func (s *stubProfileRepo) SetResetToken(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

func (s *stubProfileRepo) GetByResetTokenHash(context.Context, string) (*domainProfile.Profile, error) {
	return nil, domainProfile.ErrProfileNotFound
}

func (s *stubProfileRepo) ClearResetToken(context.Context, uuid.UUID) error { return nil }

func (s *stubProfileRepo) ClearExpiredResetTokens(context.Context, time.Time) (int64, error) {
	return 0, nil
}

const authTestSecret = "middleware-test-secret"

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: authTestSecret, ExpiryHours: 1},
	}
}

func newAuthTestRouter(repo *stubProfileRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(authTestConfig(), repo))
	router.GET("/whoami", func(c *gin.Context) {
		role, _ := c.Get(RoleKey)
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return router
}

func seedProfile(repo *stubProfileRepo, role domainProfile.Role, active bool) *domainProfile.Profile {
	p := &domainProfile.Profile{
		ID:       uuid.New(),
		Email:    "op@plant.example",
		Role:     role,
		IsActive: active,
	}
	repo.profiles[p.ID] = p
	return p
}

func issueToken(t *testing.T, p *domainProfile.Profile) string {
	t.Helper()
	token, _, err := utils.GenerateToken(p.ID, p.Email, string(p.Role), authTestSecret, 1)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newAuthTestRouter(newStubProfileRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newAuthTestRouter(newStubProfileRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := newAuthTestRouter(newStubProfileRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	repo := newStubProfileRepo()
	p := seedProfile(repo, domainProfile.RoleOperator, true)
	router := newAuthTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, p))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operator")
}

func TestAuthMiddlewareDeletedProfile(t *testing.T) {
	repo := newStubProfileRepo()
	p := seedProfile(repo, domainProfile.RoleOperator, true)
	token := issueToken(t, p)
	delete(repo.profiles, p.ID)

	router := newAuthTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInactiveProfile(t *testing.T) {
	repo := newStubProfileRepo()
	p := seedProfile(repo, domainProfile.RoleOperator, false)
	router := newAuthTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, p))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// The role in the context must come from storage, not the token claim:
// a demotion takes effect on the next request.
func TestAuthMiddlewareRoleReadFromStorage(t *testing.T) {
	repo := newStubProfileRepo()
	p := seedProfile(repo, domainProfile.RoleAdmin, true)
	token := issueToken(t, p)

	repo.profiles[p.ID].Role = domainProfile.RoleViewer

	router := newAuthTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "viewer")
	assert.NotContains(t, w.Body.String(), "admin")
}
