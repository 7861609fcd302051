package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"studioportal/internal/domain"
	jwtsvc "studioportal/internal/pkg/jwt"
)

const testCookieName = "auth_token"

func newTestRouter(jwt *jwtsvc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identify(jwt, testCookieName))
	return r
}

func TestIdentify_ValidBearerToken(t *testing.T) {
	jwt := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwt.GenerateToken(42, "client")

	r := newTestRouter(jwt)
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "role": id.Role})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "client")
}

func TestIdentify_CookiePreferredOverHeader(t *testing.T) {
	jwt := jwtsvc.New("test-secret-123", time.Hour)
	cookieToken, _ := jwt.GenerateToken(1, "admin")
	headerToken, _ := jwt.GenerateToken(2, "client")

	r := newTestRouter(jwt)
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookieToken})
	req.Header.Set("Authorization", "Bearer "+headerToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}

func TestIdentify_InvalidTokenStaysAnonymous(t *testing.T) {
	jwt := jwtsvc.New("test-secret-123", time.Hour)

	r := newTestRouter(jwt)
	r.GET("/open", func(c *gin.Context) {
		_, ok := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"identified": ok})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage-token")
	r.ServeHTTP(w, req)

	// A bad token never blocks an open route, the request just runs anonymous.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"identified":false`)
}

func TestRequireAuth_Anonymous(t *testing.T) {
	jwt := jwtsvc.New("test-secret-123", time.Hour)

	r := newTestRouter(jwt)
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestRequireRole_WrongRole(t *testing.T) {
	jwt := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwt.GenerateToken(7, "client")

	r := newTestRouter(jwt)
	admin := r.Group("/admin", RequireRole(domain.RoleAdmin))
	admin.GET("/stuff", func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/stuff", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireRole_NoToken(t *testing.T) {
	jwt := jwtsvc.New("test-secret-123", time.Hour)

	r := newTestRouter(jwt)
	admin := r.Group("/admin", AdminOnly())
	admin.GET("/stuff", func(c *gin.Context) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/stuff", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicRouteIdenticalWithAndWithoutToken(t *testing.T) {
	jwt := jwtsvc.New("test-secret-123", time.Hour)
	token, _ := jwt.GenerateToken(9, "client")

	r := newTestRouter(jwt)
	r.GET("/public/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "Studio Portal"})
	})

	anon := httptest.NewRecorder()
	r.ServeHTTP(anon, httptest.NewRequest("GET", "/public/info", nil))

	authed := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/public/info", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(authed, req)

	assert.Equal(t, http.StatusOK, anon.Code)
	assert.Equal(t, anon.Body.String(), authed.Body.String())
}
