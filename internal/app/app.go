package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habariblog/core/internal/config"
	"github.com/habariblog/core/internal/database"
	jwtpkg "github.com/habariblog/core/internal/pkg/jwt"
	"github.com/habariblog/core/internal/pkg/mail"
	redispkg "github.com/habariblog/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns the process-level resources: config, DB, cache, HTTP server.
type App struct {
	cfg    *config.AppConfig
	db     *gorm.DB
	cache  *redispkg.Client
	mailer *mail.Sender
	logger *zap.Logger
	server *http.Server
}

// New assembles the application. Redis is optional; without it the rate
// limiter and dashboard cache are skipped, everything else works.
func New(cfg *config.AppConfig, logger *zap.Logger) (*App, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt_secret must be configured")
	}
	jwtpkg.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, err
	}

	cache, err := redispkg.Connect(cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting and caching disabled", zap.Error(err))
		cache = nil
	}

	a := &App{
		cfg:    cfg,
		db:     db,
		cache:  cache,
		mailer: mail.New(cfg.Mail),
		logger: logger,
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	a.registerRoutes(engine)

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr), zap.String("env", a.cfg.Env))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}
