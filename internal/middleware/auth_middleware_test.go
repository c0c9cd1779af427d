package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nucesstack/notestack/internal/app/models"
	"github.com/nucesstack/notestack/internal/pkg/auth"
)

func testJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "notestack-test",
	})
}

func protectedRouter(jwtService *auth.JWTService, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("/guarded", m.JWTAuth())
	if len(roles) > 0 {
		group.Use(m.RoleRequired(roles...))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUsername(c)})
	})
	return router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := protectedRouter(testJWTService(time.Minute))
	w := request(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router := protectedRouter(testJWTService(time.Minute))
	w := request(router, "Token abcdef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := testJWTService(time.Minute)
	router := protectedRouter(jwtService)

	accessToken, _, _, err := jwtService.GenerateTokenPair(&models.Admin{
		ID: 1, Username: "root", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	w := request(router, "Bearer "+accessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "root")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	jwtService := testJWTService(-time.Minute)
	router := protectedRouter(jwtService)

	accessToken, _, _, err := jwtService.GenerateTokenPair(&models.Admin{
		ID: 1, Username: "root", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	w := request(router, "Bearer "+accessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_003")
}

func TestRoleRequiredRejectsContributor(t *testing.T) {
	jwtService := testJWTService(time.Minute)
	router := protectedRouter(jwtService, models.RoleAdmin)

	accessToken, _, _, err := jwtService.GenerateTokenPair(&models.Admin{
		ID: 2, Username: "carol", Role: models.RoleContributor,
	})
	require.NoError(t, err)

	w := request(router, "Bearer "+accessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleRequiredAllowsAdmin(t *testing.T) {
	jwtService := testJWTService(time.Minute)
	router := protectedRouter(jwtService, models.RoleAdmin)

	accessToken, _, _, err := jwtService.GenerateTokenPair(&models.Admin{
		ID: 1, Username: "root", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	w := request(router, "Bearer "+accessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
