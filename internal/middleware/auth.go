package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studioportal/internal/domain"
	jwtsvc "studioportal/internal/pkg/jwt"
	"studioportal/internal/pkg/response"
)

// Identity is the per-request authenticated principal.
type Identity struct {
	UserID int64
	Role   domain.UserRole
}

const identityKey = "identity"

// Identify attaches an Identity to the request when a verifiable token is
// present, read from the auth cookie first and the Authorization header as a
// fallback. A missing, expired or malformed token leaves the request
// anonymous; it never aborts. Authorization is enforced per route group by
// RequireAuth / RequireRole.
func Identify(jwt *jwtsvc.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""
		if cookie, err := c.Cookie(cookieName); err == nil {
			tokenStr = cookie
		}
		if tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			}
		}

		if tokenStr != "" {
			if claims, err := jwt.ValidateToken(tokenStr); err == nil {
				c.Set(identityKey, Identity{
					UserID: claims.UserID,
					Role:   domain.UserRole(claims.Role),
				})
			}
		}

		c.Next()
	}
}

// CurrentIdentity returns the request identity, or ok=false for anonymous
// requests.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests whose identity does not carry the given role.
// Declared once at route-group registration.
func RequireRole(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		if id.Role != role {
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Access denied: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc  { return RequireRole(domain.RoleAdmin) }
func ClientOnly() gin.HandlerFunc { return RequireRole(domain.RoleClient) }
