package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ai-24/word-warmup/internal/pkg/ctxutil"
)

const sessionCookie = "session_id"

// AttachRequestContext guarantees every request carries a session id. A
// missing or malformed cookie gets a fresh id so anonymous visitors can run
// the quiz without logging in.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := uuid.Nil
		if raw, err := c.Cookie(sessionCookie); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				sessionID = parsed
			}
		}
		if sessionID == uuid.Nil {
			sessionID = uuid.New()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sessionID.String(), 0, "/", "", false, true)
		}

		rd := &ctxutil.RequestData{SessionID: sessionID}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}
