package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"designvault/api/internal/cache"
	"designvault/api/internal/config"
	"designvault/api/internal/middleware"
	"designvault/api/internal/models"
	"designvault/api/internal/repository"
	"designvault/api/internal/service"
)

type HandlerSet struct {
	log        zerolog.Logger
	cfg        *config.AppConfig
	auth       *service.AuthService
	tokens     *service.TokenService
	components *service.ComponentService
	db         *pgxpool.Pool
	cache      *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cacheClient *redis.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewPgUserRepository(db)
	tokenRepo := repository.NewPgTokenRepository(db)
	componentRepo := repository.NewPgComponentRepository(db)
	statsCache := cache.NewStatsCache(cacheClient, cfg.Cache.StatsTTL)

	return HandlerSet{
		log:        log,
		cfg:        cfg,
		auth:       service.NewAuthService(userRepo, cfg, log),
		tokens:     service.NewTokenService(tokenRepo, log),
		components: service.NewComponentService(componentRepo, statsCache, log),
		db:         db,
		cache:      cacheClient,
	}
}

// Components exposes the component service for the background scheduler.
func (h HandlerSet) Components() *service.ComponentService {
	return h.components
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.Auth(h.auth))
	authProtected.GET("/me", h.Me)
	authProtected.GET("/verify", h.Verify)

	tokens := router.Group("/tokens")
	tokens.GET("", h.ListTokens)
	tokens.GET("/:id", h.GetToken)

	tokensAuthed := router.Group("/tokens")
	tokensAuthed.Use(middleware.Auth(h.auth))
	tokensAuthed.PUT("/:id", h.UpdateToken)

	tokensAdmin := router.Group("/tokens")
	tokensAdmin.Use(
		middleware.Auth(h.auth),
		middleware.RequireRoles(models.UserRoleAdmin),
	)
	tokensAdmin.POST("", h.CreateToken)
	tokensAdmin.POST("/upload", h.BulkUploadTokens)
	tokensAdmin.DELETE("/:id", h.DeleteToken)

	components := router.Group("/components")
	components.GET("", h.ListComponents)
	components.GET("/:id", h.GetComponent)
	components.GET("/type/:type", h.ComponentsByType)
	components.GET("/search/:query", h.SearchComponents)
	components.GET("/stats/overview", h.ComponentStats)

	componentsAuthed := router.Group("/components")
	componentsAuthed.Use(middleware.Auth(h.auth))
	componentsAuthed.POST("", h.CreateComponent)
	componentsAuthed.PUT("/:id", h.UpdateComponent)
	componentsAuthed.DELETE("/:id", h.DeleteComponent)
}
