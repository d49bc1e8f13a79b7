package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"devboard/internal/domain"

	"github.com/gin-gonic/gin"
)

// UserKey is the Gin context key holding the authenticated *domain.User.
const UserKey = "user"

// UserResolver maps a bearer token to the user currently holding it.
type UserResolver interface {
	GetByToken(ctx context.Context, token string) (*domain.User, error)
}

// Auth extracts the bearer token, resolves it to a user and stores the full
// record in the context. Requests without a valid token are rejected with
// 401 before the handler runs.
func Auth(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := users.GetByToken(c.Request.Context(), token)
		if errors.Is(err, domain.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the record stored by Auth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
