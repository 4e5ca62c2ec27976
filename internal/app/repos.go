package app

import (
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/data/repos"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

type Repos struct {
	User           repos.UserRepo
	Expression     repos.ExpressionRepo
	ExpressionItem repos.ExpressionItemRepo
	Example        repos.ExampleRepo
	Tag            repos.TagRepo
	Bookmarking    repos.BookmarkingRepo
	Memorising     repos.MemorisingRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		Expression:     repos.NewExpressionRepo(db, log),
		ExpressionItem: repos.NewExpressionItemRepo(db, log),
		Example:        repos.NewExampleRepo(db, log),
		Tag:            repos.NewTagRepo(db, log),
		Bookmarking:    repos.NewBookmarkingRepo(db, log),
		Memorising:     repos.NewMemorisingRepo(db, log),
	}
}
