package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/backend/pkg/models"
)

const (
	// AuthContextKey is the gin context key holding the authenticated user.
	AuthContextKey = "auth_user"

	// AccessTokenCookie is the cookie carrying the access token.
	AccessTokenCookie = "accessToken"
)

// AccessVerifier validates an access token and resolves its user.
type AccessVerifier interface {
	VerifyAccess(ctx context.Context, raw string) (*models.User, error)
}

// extractToken pulls the access token from the accessToken cookie or the
// Authorization header. Cookie wins when both are present.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  http.StatusUnauthorized,
		"message": message,
	})
	c.Abort()
}

// RequireAuth validates the request's access token and stores the
// resolved user in the context. Requests without a valid token get 401.
func RequireAuth(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			unauthorized(c, "Authentication required")
			return
		}

		user, err := verifier.VerifyAccess(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(AuthContextKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present but never
// rejects the request. Public listings use it to personalize responses.
func OptionalAuth(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if user, err := verifier.VerifyAccess(c.Request.Context(), token); err == nil {
				c.Set(AuthContextKey, user)
			}
		}
		c.Next()
	}
}

// GetUser retrieves the authenticated user from the context.
func GetUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(AuthContextKey)
	if !exists {
		return nil, false
	}

	user, ok := v.(*models.User)
	return user, ok
}

// GetUserID retrieves the authenticated user's ID, or "" when anonymous.
func GetUserID(c *gin.Context) string {
	if user, ok := GetUser(c); ok {
		return user.ID
	}
	return ""
}
