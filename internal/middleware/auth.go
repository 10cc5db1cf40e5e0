// Package middleware provides gin middleware for authentication and
// request logging.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack/internal/service"
	"github.com/jobtrack/jobtrack/pkg/resp"
)

const identityKey = "identity"

// Auth validates the bearer token and stores the caller's identity in the
// gin context. Requests without a valid access token are rejected.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			resp.Fail(c.Writer, resp.UnAuthorized("missing authorization token"))
			c.Abort()
			return
		}

		ident, err := auth.ValidateToken(token)
		if err != nil {
			resp.Fail(c.Writer, resp.UnAuthorized("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if ident == nil || !ident.IsAdmin() {
			resp.Fail(c.Writer, resp.Forbidden("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, or nil when Auth has
// not run.
func CurrentIdentity(c *gin.Context) *service.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(*service.Identity); ok {
			return ident
		}
	}
	return nil
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
