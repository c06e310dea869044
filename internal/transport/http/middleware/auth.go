package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"accounthub/internal/app"
	"accounthub/internal/model"
	"accounthub/internal/transport/http/response"
)

const (
	ContextUserKey  = "auth_user"
	ContextTokenKey = "auth_token"
)

// Auth resolves the bearer token to a (user, token) pair and attaches
// both to the request context. A token that no longer appears in the
// user's active-session list is rejected even if its signature checks
// out.
func Auth(authService *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, "please authenticate")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		user, err := authService.Authenticate(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "please authenticate")
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the identity the Auth middleware resolved.
func CurrentUser(c *gin.Context) (*model.User, string, bool) {
	userAny, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, "", false
	}
	user, ok := userAny.(*model.User)
	if !ok {
		return nil, "", false
	}
	token := c.GetString(ContextTokenKey)
	return user, token, true
}
