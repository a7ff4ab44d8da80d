package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gaaferHajji2/go-blog-api/internal/handlers"
	"github.com/gaaferHajji2/go-blog-api/internal/middleware"
)

type RouterConfig struct {
	CORSOrigins    []string
	RequestLog     *middleware.RequestLogMiddleware
	AccountHandler *handlers.AccountHandler
	PostHandler    *handlers.PostHandler
	TagHandler     *handlers.TagHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLog != nil {
		router.Use(cfg.RequestLog.Handler())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Accounts
		api.POST("/accounts", cfg.AccountHandler.Register)
		api.GET("/accounts", cfg.AccountHandler.List)
		api.GET("/accounts/:id", cfg.AccountHandler.GetByID)
		api.PATCH("/accounts/:id", cfg.AccountHandler.Update)
		api.DELETE("/accounts/:id", cfg.AccountHandler.Delete)
		api.GET("/accounts/:id/posts", cfg.AccountHandler.ListPosts)

		// Posts
		api.POST("/posts", cfg.PostHandler.Create)
		api.GET("/posts/published", cfg.PostHandler.Published)
		api.GET("/posts/:id", cfg.PostHandler.GetByID)
		api.PATCH("/posts/:id", cfg.PostHandler.Update)
		api.DELETE("/posts/:id", cfg.PostHandler.Delete)
		api.PUT("/posts/:id/tags", cfg.PostHandler.AssignTags)

		// Tags
		api.POST("/tags", cfg.TagHandler.Create)
		api.GET("/tags", cfg.TagHandler.List)
		api.GET("/tags/:id", cfg.TagHandler.GetByID)
		api.PATCH("/tags/:id", cfg.TagHandler.Update)
		api.DELETE("/tags/:id", cfg.TagHandler.Delete)
	}

	return router
}
