package router

import (
	"net/http"

	identityapp "github.com/gestor-erp/backend/internal/application/identity"
	"github.com/gestor-erp/backend/internal/infrastructure/auth"
	"github.com/gestor-erp/backend/internal/infrastructure/config"
	"github.com/gestor-erp/backend/internal/infrastructure/logger"
	"github.com/gestor-erp/backend/internal/interfaces/http/dto"
	"github.com/gestor-erp/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Registrar mounts a handler's routes on a router group
type Registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config wires the router's dependencies
type Config struct {
	AppConfig *config.Config
	Logger    *zap.Logger
	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
	Companies *identityapp.CompanyService

	// Public handlers run behind authentication only
	Public []Registrar
	// Scoped handlers additionally require the X-Company-ID header
	// and membership in that company
	Scoped []Registrar
}

// New builds the gin engine with the full middleware chain and all routes
func New(cfg Config) *gin.Engine {
	if cfg.AppConfig.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	_ = engine.SetTrustedProxies(cfg.AppConfig.HTTP.TrustedProxies)

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AppConfig.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.AppConfig.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.AppConfig.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.AppConfig.HTTP.MaxBodySize))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "app": cfg.AppConfig.App.Name})
	})

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(middleware.AuthConfig{
		JWT:       cfg.JWT,
		Blacklist: cfg.Blacklist,
		Logger:    cfg.Logger,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}))

	for _, h := range cfg.Public {
		h.RegisterRoutes(api)
	}

	scoped := api.Group("")
	scoped.Use(middleware.Company(cfg.Companies))
	for _, h := range cfg.Scoped {
		h.RegisterRoutes(scoped)
	}

	return engine
}
