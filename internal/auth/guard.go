package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/httpx"
)

const identityKey = "identity"

// RequireAuthenticated rejects requests without a bearer token (401) or with
// a token that fails verification (403). On success the identity is stored
// on the gin context, see IdentityFrom.
func RequireAuthenticated(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			httpx.Error(c, http.StatusUnauthorized, "Access token required")
			return
		}
		id, err := v.Verify(token)
		if err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusForbidden, "Invalid or expired token")
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuthenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || !id.IsAdmin() {
			httpx.Error(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
