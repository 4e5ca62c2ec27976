package app

import (
	httpH "github.com/ai-24/word-warmup/internal/http/handlers"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	Expression *httpH.ExpressionHandler
	Wizard     *httpH.WizardHandler
	Quiz       *httpH.QuizHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Auth:       httpH.NewAuthHandler(serviceset.Auth),
		Expression: httpH.NewExpressionHandler(serviceset.Expression),
		Wizard:     httpH.NewWizardHandler(serviceset.Wizard),
		Quiz:       httpH.NewQuizHandler(serviceset.Quiz),
	}
}
