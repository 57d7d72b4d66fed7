package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"traveladdicts/internal/cache"
	"traveladdicts/internal/config"
	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/middleware"
	"traveladdicts/internal/modules/analytics"
	"traveladdicts/internal/modules/auth"
	"traveladdicts/internal/modules/booking"
	"traveladdicts/internal/modules/catalog"
	"traveladdicts/internal/modules/content"
	"traveladdicts/internal/modules/events"
	"traveladdicts/internal/modules/media"
	"traveladdicts/internal/modules/search"
	"traveladdicts/internal/modules/settings"
	jwtsvc "traveladdicts/internal/pkg/jwt"
	"traveladdicts/internal/repository"
)

// App is the assembled HTTP service.
type App struct {
	Router *gin.Engine
	Hub    *events.Hub
}

// Deps are the resources owned by the caller.
type Deps struct {
	DB      *gorm.DB
	Cache   cache.Store
	GraphQL graphql.Runner
	// Assets may be nil, which disables uploads.
	Assets media.Storage
}

func New(cfg *config.Config, deps Deps) (*App, error) {
	if err := repository.AutoMigrate(deps.DB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	gql := deps.GraphQL
	store := deps.Cache
	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)
	hub := events.NewHub()

	// search
	var facetOpts []search.FacetOption
	if cfg.FacetsRemote {
		facetOpts = append(facetOpts, search.WithRemoteFacets(gql, store, cfg.CacheTTL))
	}
	facets, err := search.NewFacetProvider(cfg.FacetsFile, facetOpts...)
	if err != nil {
		return nil, fmt.Errorf("facets: %w", err)
	}
	searchHandler := search.NewHandler(
		search.NewService(gql),
		search.NewSessions(cfg.SearchSessionTTL, cfg.SearchFallback),
		facets,
	)

	// settings
	settingsService := settings.NewService(repository.NewSettingsRepository(deps.DB), hub)

	// analytics + bookings
	analyticsService := analytics.NewService(gql, store, cfg.CacheTTL)
	bookingService := booking.NewService(gql, hub)
	reload := func(ctx context.Context, b domain.Booking) {
		analyticsService.Invalidate(ctx)
		if _, err := bookingService.Refresh(ctx); err != nil {
			slog.Warn("booking board reload failed", "booking_id", b.ID, "error", err)
		}
	}
	bookingService.OnStatusUpdate(reload)
	bookingService.OnPaymentUpdate(reload)
	bookingService.SetIssuer(func(ctx context.Context) booking.Issuer {
		st, err := settingsService.Load(ctx)
		if err != nil {
			slog.Warn("invoice issuer falls back to defaults", "error", err)
			st = domain.DefaultSettings()
		}
		return booking.Issuer{Name: st.General.SiteName, Email: st.General.ContactEmail, Phone: st.General.ContactPhone}
	})

	contentService, err := content.NewService(gql, store, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}
	if deps.Assets == nil {
		slog.Warn("no asset storage configured, media uploads disabled")
	}

	authService := auth.NewService(gql, j)
	if !j.Verifies() {
		slog.Warn("JWT_SECRET not set, admin sessions are confirmed with the travel API")
	}

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalog.NewService(gql, store, cfg.CacheTTL))
	contentHandler := content.NewHandler(contentService)
	mediaHandler := media.NewHandler(media.NewService(gql, deps.Assets))
	bookingHandler := booking.NewHandler(bookingService)
	settingsHandler := settings.NewHandler(settingsService)
	analyticsHandler := analytics.NewHandler(analyticsService)
	eventsHandler := events.NewHandler(hub, j, authService, cfg.CORSAllowedOrigins)

	r := gin.New()
	r.MaxMultipartMemory = media.MaxUploadSize
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.AccessLog(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ws_clients": hub.Count()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		eventsHandler.RegisterRoutes(v1)
		searchHandler.RegisterRoutes(v1)
		contentHandler.RegisterRoutes(v1)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(j, authService))

		catalogHandler.RegisterRoutes(v1, admin)
		settingsHandler.RegisterRoutes(v1, admin)
		authHandler.RegisterProtectedRoutes(admin)
		bookingHandler.RegisterRoutes(admin)
		mediaHandler.RegisterRoutes(admin)
		analyticsHandler.RegisterRoutes(admin)
	}

	return &App{Router: r, Hub: hub}, nil
}

func (a *App) Close() {
	a.Hub.Close()
}
