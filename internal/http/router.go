package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/ai-24/word-warmup/internal/http/handlers"
	httpMW "github.com/ai-24/word-warmup/internal/http/middleware"
)

type RouterConfig struct {
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	AuthHandler       *httpH.AuthHandler
	ExpressionHandler *httpH.ExpressionHandler
	WizardHandler     *httpH.WizardHandler
	QuizHandler       *httpH.QuizHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	// Browsing and quizzing work anonymously; the services gate what
	// anonymity may see and save.
	public := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			public.Use(cfg.AuthMiddleware.OptionalAuth())
		}

		if cfg.ExpressionHandler != nil {
			public.GET("/expressions", cfg.ExpressionHandler.List)
			public.GET("/expressions/:id", cfg.ExpressionHandler.Get)
		}

		if cfg.QuizHandler != nil {
			public.GET("/quiz", cfg.QuizHandler.Start)
			public.POST("/quiz/answer", cfg.QuizHandler.Answer)
			public.POST("/quiz/result", cfg.QuizHandler.Result)
			public.POST("/quiz/save", cfg.QuizHandler.Save)
			public.POST("/quiz/retry", cfg.QuizHandler.Retry)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.WizardHandler != nil {
			protected.GET("/wizard/new", cfg.WizardHandler.Start)
			protected.GET("/wizard/edit/:id", cfg.WizardHandler.StartEdit)
			protected.POST("/wizard/step", cfg.WizardHandler.Step)
			protected.POST("/wizard/back", cfg.WizardHandler.Back)
			protected.POST("/wizard/finalize", cfg.WizardHandler.Finalize)
		}
	}

	return r
}
