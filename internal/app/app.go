package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ai-24/word-warmup/internal/data/db"
	"github.com/ai-24/word-warmup/internal/pkg/logger"
	"github.com/ai-24/word-warmup/internal/session"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	store := wireSessionStore(theDB, log, cfg)
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, store)
	handlerset := wireHandlers(log, serviceset)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(handlerset, middlewareset)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

// wireSessionStore prefers redis when configured and falls back to the
// database-backed store so a missing redis never blocks startup.
func wireSessionStore(theDB *gorm.DB, log *logger.Logger, cfg Config) session.Store {
	if cfg.RedisAddr != "" {
		store, err := session.NewRedisStore(log, cfg.RedisAddr, cfg.SessionTTL)
		if err == nil {
			log.Info("Using redis session store", "addr", cfg.RedisAddr)
			return store
		}
		log.Warn("Redis unavailable, falling back to database session store", "error", err)
	}
	return session.NewGormStore(theDB, log, cfg.SessionTTL)
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
