package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/farmapp/pharmacy-pos/internal/api/handler"
	"github.com/farmapp/pharmacy-pos/internal/api/middleware"
	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/service"
	"github.com/farmapp/pharmacy-pos/internal/infrastructure/config"
	"github.com/farmapp/pharmacy-pos/internal/infrastructure/db/postgres"
	redisdb "github.com/farmapp/pharmacy-pos/internal/infrastructure/db/redis"
	"github.com/farmapp/pharmacy-pos/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("farmapp"))

	// --- Dependencies ---
	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessions := redisdb.NewSessionStore(rdb, cfg.Auth.SessionTTL)

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)

	authService := service.NewAuthService(userRepo, sessions, issuer, log)
	productService := service.NewProductService(productRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	saleService := service.NewSaleService(saleRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessions, handler.CookieConfig{
		Secure:     cfg.Auth.CookieSecure,
		SessionTTL: cfg.Auth.SessionTTL,
		TokenTTL:   cfg.Auth.TokenTTL,
	})
	userHandler := handler.NewUserHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	saleHandler := handler.NewSaleHandler(saleService)

	authenticated := middleware.Auth(middleware.AuthConfig{
		Sessions:     sessions,
		Issuer:       issuer,
		CookieSecure: cfg.Auth.CookieSecure,
		SessionTTL:   cfg.Auth.SessionTTL,
	})
	adminOnly := middleware.RequireRoles(domain.RoleAdministrator)

	// --- Auth routes (no identity required) ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/check", authHandler.Check)

	// --- API routes (identity required) ---
	v1 := e.Group("/api/v1", authenticated)

	v1.GET("/products", productHandler.List)
	v1.GET("/products/search", productHandler.Search)
	v1.GET("/products/:id", productHandler.Get)
	v1.POST("/products", productHandler.Create, adminOnly)
	v1.PUT("/products/:id", productHandler.Update, adminOnly)
	v1.DELETE("/products/:id", productHandler.Delete, adminOnly)

	v1.GET("/categories", categoryHandler.List)
	v1.POST("/categories", categoryHandler.Create, adminOnly)
	v1.PUT("/categories/:id", categoryHandler.Update, adminOnly)
	v1.DELETE("/categories/:id", categoryHandler.Delete, adminOnly)

	v1.POST("/sales", saleHandler.Record)
	v1.GET("/sales/recent", saleHandler.Recent)

	v1.GET("/users", userHandler.List, adminOnly)
	v1.POST("/users", userHandler.Create, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
