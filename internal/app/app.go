package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/cache"
	"github.com/gaaferHajji2/go-blog-api/internal/db"
	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/server"
	"github.com/gaaferHajji2/go-blog-api/internal/validation"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Cache    cache.Cache
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

	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.Migrate(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}
	theDB := pg.DB()

	entityCache := cache.Cache(cache.NewNoop())
	if cfg.RedisAddr != "" {
		entityCache, err = cache.NewRedis(log)
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("init redis cache: %w", err)
		}
	}

	validate := validation.New()
	reposet := wireRepos(theDB, log, validate)
	serviceset := wireServices(theDB, log, entityCache, reposet)
	handlerset := wireHandlers(serviceset)
	router := server.NewRouter(*wireRouter(cfg, log, handlerset))

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Cache:    entityCache,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.HTTPAddr)
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
