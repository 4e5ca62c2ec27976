package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/ai-24/word-warmup/internal/http"
)

func wireRouter(handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		AuthMiddleware:    middlewareset.Auth,
		HealthHandler:     handlerset.Health,
		AuthHandler:       handlerset.Auth,
		ExpressionHandler: handlerset.Expression,
		WizardHandler:     handlerset.Wizard,
		QuizHandler:       handlerset.Quiz,
	})
}
