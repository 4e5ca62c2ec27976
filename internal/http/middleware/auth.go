package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ai-24/word-warmup/internal/pkg/ctxutil"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
	"github.com/ai-24/word-warmup/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

// OptionalAuth resolves a bearer token when one is present and lets the
// request through either way. Most of the app works for anonymous visitors;
// the services decide what anonymity may do.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		userID, err := am.authService.ParseToken(tokenString)
		if err != nil {
			// A stale token degrades to anonymous rather than blocking.
			am.log.Debug("ignoring invalid token", "error", err)
			c.Next()
			return
		}
		attachUser(c, userID)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		userID, err := am.authService.ParseToken(tokenString)
		if err != nil || userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}
		attachUser(c, userID)
		c.Next()
	}
}

func attachUser(c *gin.Context, userID uuid.UUID) {
	ctx := c.Request.Context()
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		rd = &ctxutil.RequestData{}
	}
	updated := *rd
	updated.UserID = userID
	c.Request = c.Request.WithContext(ctxutil.WithRequestData(ctx, &updated))
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
