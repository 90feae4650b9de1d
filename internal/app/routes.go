package app

import (
	"github.com/gin-gonic/gin"
	"github.com/habariblog/core/internal/middleware"
	"github.com/habariblog/core/internal/modules/auth"
	"github.com/habariblog/core/internal/modules/category"
	"github.com/habariblog/core/internal/modules/comment"
	"github.com/habariblog/core/internal/modules/dashboard"
	"github.com/habariblog/core/internal/modules/health"
	"github.com/habariblog/core/internal/modules/media"
	"github.com/habariblog/core/internal/modules/newsletter"
	"github.com/habariblog/core/internal/modules/post"
	"github.com/habariblog/core/internal/modules/tag"
	"github.com/habariblog/core/internal/modules/user"
	"github.com/habariblog/core/internal/pkg/response"
)

func (a *App) registerRoutes(engine *gin.Engine) {
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logger(a.logger))
	engine.Use(corsMiddleware(a.cfg.AllowedOrigins, a.cfg.IsDev()))

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })
	engine.NoRoute(func(c *gin.Context) { response.NotFound(c) })

	health.NewHandler(a.db, a.cache).RegisterRoutes(engine)

	api := engine.Group("/api")
	authMW := middleware.Auth(a.db)
	optionalAuthMW := middleware.OptionalAuth(a.db)
	if a.cache != nil {
		api.Use(middleware.RateLimit(a.cache.Raw()))
	}

	auth.NewHandler(auth.NewService(a.db, a.logger)).RegisterRoutes(api, authMW)

	mediaSvc := media.NewService(a.cfg.Media, a.logger)
	media.NewHandler(mediaSvc).RegisterRoutes(api, authMW)

	postSvc := post.NewService(a.db, mediaSvc, a.logger)
	post.NewHandler(postSvc).RegisterRoutes(api, authMW, optionalAuthMW)

	commentSvc := comment.NewService(a.db, comment.Policy{AutoApprove: a.cfg.Comments.AutoApprove}, a.logger)
	comment.NewHandler(commentSvc).RegisterRoutes(api, authMW, optionalAuthMW)

	category.NewHandler(category.NewService(a.db)).RegisterRoutes(api, authMW, optionalAuthMW)
	tag.NewHandler(tag.NewService(a.db)).RegisterRoutes(api)
	newsletter.NewHandler(newsletter.NewService(a.db, a.mailer, a.logger)).RegisterRoutes(api, authMW)
	// user management and dashboard are admin-only surfaces
	user.NewHandler(user.NewService(a.db, a.logger)).RegisterRoutes(api, authMW)
	dashboard.NewHandler(dashboard.NewService(a.db, a.cache, a.logger)).RegisterRoutes(api, authMW)
}
