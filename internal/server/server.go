package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cobra/site/internal/config"
	"cobra/site/internal/handlers"
	"cobra/site/internal/metrics"
	"cobra/site/internal/middleware"
	"cobra/site/internal/web"
)

type HTTPServer struct {
	engine *gin.Engine
	server *http.Server
	log    zerolog.Logger
	cfg    *config.AppConfig
}

func NewHTTPServer(cfg *config.AppConfig, log zerolog.Logger, handlerSet handlers.HandlerSet, collector *metrics.Collector) (*HTTPServer, error) {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := web.Templates(cfg.Paths.Views)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = true
	engine.RedirectFixedPath = true
	engine.SetHTMLTemplate(templates)

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.Metrics(collector),
		middleware.SecurityHeaders(cfg.Session.Cookie.Secure),
		middleware.CORS(cfg.AllowCORSOrigins),
	)

	registerStatic(engine, cfg.Paths, handlerSet)
	handlerSet.Register(&engine.RouterGroup)
	engine.GET("/metrics", gin.WrapH(collector.Handler()))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      middleware.MethodOverride(engine),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &HTTPServer{
		engine: engine,
		server: srv,
		log:    log,
		cfg:    cfg,
	}, nil
}

func registerStatic(engine *gin.Engine, paths config.PathsConfig, handlerSet handlers.HandlerSet) {
	engine.Static("/js", filepath.Join(paths.Public, "js"))
	engine.Static("/img", filepath.Join(paths.Public, "img"))
	engine.Static("/css", filepath.Join(paths.Public, "css"))
	engine.Static("/assets", paths.Assets)

	engine.GET("/uploads/*filepath", handlerSet.ServeUpload)
	engine.HEAD("/uploads/*filepath", handlerSet.ServeUpload)
}

// Handler is the full request pipeline, method override included.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.log.Info().
		Str("addr", s.server.Addr).
		Msg("http server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.server.Shutdown(ctx)
}
