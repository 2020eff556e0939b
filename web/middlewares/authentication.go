package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dayflow.app/dayflow/security"
	"dayflow.app/dayflow/web/common"
)

const identityKey = "identity"

// Authentication resolves the caller to an Identity or aborts with 401.
// Everything behind this middleware trusts the resolved (UserID, Role) pair.
func Authentication(base64Secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie("dayflow.ApplicationCookie")
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Unauthenticated", "authentication required"))
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Unauthenticated", "malformed authorization header"))
				return
			}
			tokenStr = parts[1]
		}

		identity, err := security.ParseIdentityToken(tokenStr, base64Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Unauthenticated", "invalid or expired token"))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole gates HR-only routes. It runs before any handler work, so a
// forbidden call never reaches a mutation.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Unauthenticated", "authentication required"))
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("Forbidden", "insufficient role for this operation"))
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity the Authentication middleware stored.
func CurrentIdentity(c *gin.Context) (security.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return security.Identity{}, false
	}
	identity, ok := v.(security.Identity)
	return identity, ok
}
