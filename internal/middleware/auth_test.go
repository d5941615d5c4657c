package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, err := jwtService.GenerateToken(42, "ada@example.com", "tailor")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequireAuth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "email": p.Email, "role": p.Role})
	})

	w := doRequest(router, "Bearer "+validToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "ada@example.com")
	assert.Contains(t, w.Body.String(), "tailor")
}

func TestRequireAuth_Failures(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	foreign, err := jwt.New("wrong-secret", time.Hour).GenerateToken(1, "x@y.z", "admin")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequireAuth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	cases := map[string]string{
		"missing":   "",
		"basic":     "Basic dGVzdA==",
		"garbage":   "Bearer invalid-jwt-here",
		"signature": "Bearer " + foreign,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := doRequest(router, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	router := gin.New()
	router.Use(RequireAuth(jwtService), RequireRole(domain.RoleAdmin, domain.RoleManager))
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	admin, _ := jwtService.GenerateToken(1, "a@x.io", "admin")
	tailor, _ := jwtService.GenerateToken(2, "t@x.io", "tailor")

	assert.Equal(t, http.StatusNoContent, doRequest(router, "Bearer "+admin).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(router, "Bearer "+tailor).Code)
}

func TestAuthorize_SetsScope(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	policy := access.DefaultPolicy()

	router := gin.New()
	router.Use(RequireAuth(jwtService), Authorize(policy, access.Fittings, access.Update))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"self_only": ScopeFrom(c).SelfOnly()})
	})

	tailor, _ := jwtService.GenerateToken(2, "t@x.io", "tailor")
	manager, _ := jwtService.GenerateToken(3, "m@x.io", "manager")
	customer, _ := jwtService.GenerateToken(4, "c@x.io", "customer")

	w := doRequest(router, "Bearer "+tailor)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"self_only":true}`, w.Body.String())

	w = doRequest(router, "Bearer "+manager)
	assert.JSONEq(t, `{"self_only":false}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, doRequest(router, "Bearer "+customer).Code)
}

func TestRateLimit(t *testing.T) {
	limit, err := RateLimit("2-M")
	require.NoError(t, err)

	router := gin.New()
	router.Use(limit)
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, doRequest(router, "").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "").Code)

	_, err = RateLimit("lots")
	assert.Error(t, err)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(), Recovery())
	router.GET("/protected", func(c *gin.Context) { panic("boom") })

	w := doRequest(router, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
