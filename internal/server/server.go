package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"h2grid/internal/config"
	"h2grid/internal/database"
	"h2grid/internal/handlers"
	"h2grid/internal/metrics"
	"h2grid/internal/middlewares"
	"h2grid/internal/models"
	"h2grid/internal/repositories"
	"h2grid/internal/routes"
	"h2grid/internal/services"
	"h2grid/internal/utils"
	"h2grid/internal/validation"
)

// App is the application context: every long-lived resource is built here
// at startup and released by Close.
type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Pool    *pgxpool.Pool
	DB      *gorm.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics
	Router  *gin.Engine

	Services Services

	stop chan struct{}
}

// Services is everything the router dispatches to.
type Services struct {
	Assets      *services.AssetService
	Developers  *services.AuthService
	Companies   *services.AuthService
	Marketplace *services.MarketplaceService
	Readings    *services.ReadingService
}

// Open connects to Postgres (and Redis when REDIS_URL is set) and runs the
// migrations. It does not build the router.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if cfg.DatabaseURL == "" && cfg.DB.AdminUser != "" {
		if err := database.EnsureDatabaseExists(ctx, cfg.DB, log); err != nil {
			return nil, err
		}
	}

	pool, err := database.Connect(ctx, cfg.PostgresDSN(), log)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Log: log, Pool: pool, stop: make(chan struct{})}

	if err := database.RunMigrations(ctx, pool, log); err != nil {
		app.Close()
		return nil, err
	}

	if app.DB, err = database.OpenGorm(pool, cfg.IsProduction()); err != nil {
		app.Close()
		return nil, err
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		app.Redis = redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := app.Redis.Ping(pingCtx).Err(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("connected to redis", zap.String("addr", opts.Addr))
	} else {
		log.Info("REDIS_URL not set, logout will not revoke tokens")
	}

	return app, nil
}

// New opens the app and wires repositories, services and the router.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	app, err := Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	app.Metrics = metrics.New()

	var denylist services.Denylist
	if app.Redis != nil {
		denylist = repositories.NewTokenDenylistRepository(app.Redis)
	}

	// Dependency injection
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	assetRepo := repositories.NewAssetRepository(app.Pool)
	developerRepo := repositories.NewProjectDeveloperRepository(app.Pool)
	companyRepo := repositories.NewCompanyRepository(app.Pool)
	listingRepo := repositories.NewListingRepository(app.DB)

	app.Services = Services{
		Assets:      services.NewAssetService(assetRepo, app.Metrics, log),
		Developers:  services.NewAuthService(models.KindProjectDeveloper, developerRepo, tokens, denylist, app.Metrics, log),
		Companies:   services.NewAuthService(models.KindCompany, companyRepo, tokens, denylist, app.Metrics, log),
		Marketplace: services.NewMarketplaceService(listingRepo),
		Readings:    app.ReadingService(),
	}

	limiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthBurst, log)
	limiter.StartCleanup(10*time.Minute, app.stop)

	app.Router = NewRouter(cfg, log, app.Metrics, app.Services, limiter)
	return app, nil
}

// ReadingService is exposed separately for the import command, which does not
// need the router.
func (a *App) ReadingService() *services.ReadingService {
	return services.NewReadingService(repositories.NewReadingRepository(a.DB), a.Log)
}

func NewRouter(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, svc Services, limiter *middlewares.RateLimiter) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.ConfigureGin()

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn("invalid TRUSTED_PROXIES, trusting no proxy", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(log))
	if m != nil {
		router.Use(middlewares.Metrics(m))
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cookie := handlers.CookieConfig{
		Secure: cfg.IsProduction(),
	}

	var metricsHandler http.Handler
	if m != nil {
		metricsHandler = m.Handler()
	}

	routes.RegisterRoutes(router, metricsHandler,
		routes.NewAssetRoutes(handlers.NewAssetHandler(svc.Assets)),
		routes.NewAuthRoutes(limiter,
			routes.AccountAuth{
				Path:    "project-developer",
				Handler: handlers.NewProjectDeveloperAuthHandler(svc.Developers, cookie),
				Service: svc.Developers,
			},
			routes.AccountAuth{
				Path:    "company",
				Handler: handlers.NewCompanyAuthHandler(svc.Companies, cookie),
				Service: svc.Companies,
			},
		),
		routes.NewMarketplaceRoutes(handlers.NewMarketplaceHandler(svc.Marketplace)),
		routes.NewReadingRoutes(handlers.NewReadingHandler(svc.Readings)),
	)
	return router
}

// HTTPServer wraps the router with the server timeouts.
func (a *App) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Port),
		Handler:      a.Router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close releases everything Open acquired. It is safe to call on a partly
// built App.
func (a *App) Close() {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
