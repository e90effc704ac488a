package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cobra/site/internal/config"
	"cobra/site/internal/content"
	"cobra/site/internal/middleware"
	"cobra/site/internal/models"
	"cobra/site/internal/security"
	"cobra/site/internal/service"
	"cobra/site/internal/session"
	"cobra/site/internal/storage"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	content       *content.Store
	sessions      session.Store
	cookies       *session.Cookies
	authService   *service.AuthService
	uploadService *service.UploadService
	uploads       storage.UploadStore
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	contentStore *content.Store,
	sessions session.Store,
	uploads storage.UploadStore,
	creds security.Credentials,
) HandlerSet {
	auth := service.NewAuthService(creds, sessions, log)
	upload := service.NewUploadService(uploads, cfg.Storage.MaxSize, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		content:       contentStore,
		sessions:      sessions,
		cookies:       session.NewCookies(cfg.Session),
		authService:   auth,
		uploadService: upload,
		uploads:       uploads,
	}
}

// Register mounts every dynamic route. Static prefixes are mounted by the
// server ahead of these.
func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/", h.Landing)
	router.GET("/healthz", h.Health)

	for _, collection := range models.Collections {
		router.GET("/"+string(collection), h.CollectionData(collection))
	}

	login := router.Group("/login")
	{
		login.GET("", h.LoginPage)
		login.POST("", h.LoginSubmit)
	}

	router.POST("/logout", h.Logout)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireSession(h.sessions, h.cookies, h.log))
	{
		admin.GET("", h.AdminDashboard)
		admin.GET("/session", h.AdminSession)
		admin.GET("/data/:collection", h.AdminGetData)
		admin.PUT("/data/:collection", h.AdminPutData)
		admin.POST("/uploads", h.AdminUpload)
	}
}
