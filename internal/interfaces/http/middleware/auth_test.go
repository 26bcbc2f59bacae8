package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Pro-Shop API Test", Environment: "development"},
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-that-is-long-enough-123",
			TokenExpiry: time.Hour,
		},
	}
}

func signToken(t *testing.T, cfg *config.Config, userID uint, isAdmin bool) string {
	t.Helper()
	token, err := auth.NewJWTManager(cfg).GenerateToken(userID, "user@example.com", isAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func protectedRouter(cfg *config.Config, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/", RequireAuth(cfg))
	if adminOnly {
		group.Use(RequireAdmin())
	}
	group.GET("/protected", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "is_admin": IsAdminFromContext(c)})
	})

	return router
}

func TestRequireAuth_NoToken(t *testing.T) {
	router := protectedRouter(testConfig(), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not authorized, no token") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	router := protectedRouter(testConfig(), false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not authorized, token failed") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequireAuth_ValidTokenSetsContext(t *testing.T) {
	cfg := testConfig()
	router := protectedRouter(cfg, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, 42, false))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"user_id":42`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	cfg := testConfig()
	router := protectedRouter(cfg, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, 7, false))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not authorized as an admin") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	cfg := testConfig()
	router := protectedRouter(cfg, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, 1, true))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestOptionalAuth_ContinuesAnonymously(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cart", OptionalAuth(testConfig()), func(c *gin.Context) {
		_, authed := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authed})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"authenticated":false`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
