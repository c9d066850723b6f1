package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/pkg/utils"
)

const testSecret = "test-secret"

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/", Auth(testSecret))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromContext(c)})
	})

	manager := router.Group("/manager", Auth(testSecret), RequireRoles(models.RoleManager))
	manager.GET("/dashboard", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func doRequest(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingToken(t *testing.T) {
	router := newAuthTestRouter()

	w := doRequest(t, router, "/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	router := newAuthTestRouter()

	w := doRequest(t, router, "/me", "not-a-real-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	router := newAuthTestRouter()

	token, err := utils.GenerateToken("other-secret", 1, models.RolePelanggan)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := doRequest(t, router, "/me", token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	router := newAuthTestRouter()

	token, err := utils.GenerateToken(testSecret, 7, models.RolePelanggan)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := doRequest(t, router, "/me", token)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequireRolesForbidsWrongRole(t *testing.T) {
	router := newAuthTestRouter()

	token, err := utils.GenerateToken(testSecret, 7, models.RolePelanggan)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := doRequest(t, router, "/manager/dashboard", token)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	router := newAuthTestRouter()

	token, err := utils.GenerateToken(testSecret, 9, models.RoleManager)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w := doRequest(t, router, "/manager/dashboard", token)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/pengaduan", OptionalAuth(testSecret), func(c *gin.Context) {
		if _, ok := c.Get(ContextUserID); ok {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusAccepted)
	})

	// Anonymous request passes with no claims set
	req := httptest.NewRequest(http.MethodPost, "/pengaduan", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusAccepted {
		t.Errorf("expected 202 for anonymous, got %d", w.Code)
	}

	// Authenticated request carries claims
	token, err := utils.GenerateToken(testSecret, 3, models.RolePelanggan)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/pengaduan", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for authenticated, got %d", w.Code)
	}
}
