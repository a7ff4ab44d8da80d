package app

import (
	"gorm.io/gorm"

	"github.com/gaaferHajji2/go-blog-api/internal/cache"
	"github.com/gaaferHajji2/go-blog-api/internal/handlers"
	"github.com/gaaferHajji2/go-blog-api/internal/logger"
	"github.com/gaaferHajji2/go-blog-api/internal/middleware"
	"github.com/gaaferHajji2/go-blog-api/internal/repos"
	"github.com/gaaferHajji2/go-blog-api/internal/server"
	"github.com/gaaferHajji2/go-blog-api/internal/services"
	"github.com/gaaferHajji2/go-blog-api/internal/validation"
)

type Repos struct {
	Account repos.AccountRepo
	Profile repos.ProfileRepo
	Post    repos.PostRepo
	Tag     repos.TagRepo
	PostTag repos.PostTagRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger, validate *validation.Validator) Repos {
	return Repos{
		Account: repos.NewAccountRepo(db, log, validate),
		Profile: repos.NewProfileRepo(db, log, validate),
		Post:    repos.NewPostRepo(db, log, validate),
		Tag:     repos.NewTagRepo(db, log, validate),
		PostTag: repos.NewPostTagRepo(db, log),
	}
}

type Services struct {
	Account services.AccountService
	Post    services.PostService
	Tag     services.TagService
}

func wireServices(db *gorm.DB, log *logger.Logger, entityCache cache.Cache, r Repos) Services {
	return Services{
		Account: services.NewAccountService(db, log, entityCache, r.Account, r.Profile, r.Post),
		Post:    services.NewPostService(db, log, entityCache, r.Post, r.Tag, r.PostTag, r.Account),
		Tag:     services.NewTagService(db, log, r.Tag),
	}
}

type Handlers struct {
	Account *handlers.AccountHandler
	Post    *handlers.PostHandler
	Tag     *handlers.TagHandler
}

func wireHandlers(s Services) Handlers {
	return Handlers{
		Account: handlers.NewAccountHandler(s.Account),
		Post:    handlers.NewPostHandler(s.Post),
		Tag:     handlers.NewTagHandler(s.Tag),
	}
}

func wireRouter(cfg Config, log *logger.Logger, h Handlers) *server.RouterConfig {
	return &server.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		RequestLog:     middleware.NewRequestLogMiddleware(log),
		AccountHandler: h.Account,
		PostHandler:    h.Post,
		TagHandler:     h.Tag,
	}
}
