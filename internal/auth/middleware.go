package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/savansr/task-management-app/internal/domain"
	"github.com/savansr/task-management-app/internal/errs"
)

const contextKeyUser = "current_user"

// IdentityStore resolves a user by ID. Implemented by service.UserService.
type IdentityStore interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

// CurrentUser returns the authenticated user set by RequireAuth.
// ok is false if the request did not pass the middleware.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, exists := c.Get(contextKeyUser)
	if !exists {
		return domain.User{}, false
	}
	u, ok := v.(domain.User)
	return u, ok
}

// RequireAuth returns a middleware that authenticates the request from its
// Authorization header. Every request either stores the resolved user in
// context and continues the chain, or is aborted: 401 for the three auth
// failures (no token, bad token, user gone), 500 if the user store itself
// fails. The auth failures share one response body; the reason goes to
// debug logs only, never the token itself.
func RequireAuth(tokens *TokenService, users IdentityStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			reject(c, log, err)
			return
		}
		userID, err := tokens.Verify(raw)
		if err != nil {
			reject(c, log, err)
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				reject(c, log, errs.ErrIdentityNotFound)
				return
			}
			// Store failure, not an auth failure.
			log.Error("identity lookup", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal"})
			return
		}
		// Downstream handlers never see the hash.
		user.PasswordHash = ""
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errs.ErrNoToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errs.ErrNoToken
	}
	return strings.TrimSpace(token), nil
}

func reject(c *gin.Context, log *zap.Logger, reason error) {
	log.Debug("auth rejected",
		zap.String("path", c.FullPath()),
		zap.String("reason", reason.Error()),
	)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
}
