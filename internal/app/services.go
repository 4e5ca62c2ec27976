package app

import (
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/pkg/logger"
	"github.com/ai-24/word-warmup/internal/services"
	"github.com/ai-24/word-warmup/internal/session"
)

type Services struct {
	Auth       services.AuthService
	Expression services.ExpressionService
	Wizard     services.WizardService
	Quiz       services.QuizService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, store session.Store) Services {
	log.Info("Wiring services...")
	authService := services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	expressionService := services.NewExpressionService(db, log, reposet.Expression, reposet.ExpressionItem, reposet.Bookmarking, reposet.Memorising)
	wizardService := services.NewWizardService(db, log, store, reposet.Expression, reposet.ExpressionItem, reposet.Example, reposet.Tag)
	quizService := services.NewQuizService(db, log, store, reposet.Expression, expressionService, reposet.Bookmarking, reposet.Memorising)
	return Services{
		Auth:       authService,
		Expression: expressionService,
		Wizard:     wizardService,
		Quiz:       quizService,
	}
}
