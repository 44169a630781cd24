package router

import (
	"github.com/oksasatya/go-music-auth/internal/application"
	"github.com/oksasatya/go-music-auth/internal/container"
	"github.com/oksasatya/go-music-auth/internal/domain/repository"
	"github.com/oksasatya/go-music-auth/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/go-music-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/go-music-auth/internal/infrastructure/notification"
	"github.com/oksasatya/go-music-auth/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-music-auth/internal/interface/http"
	"github.com/oksasatya/go-music-auth/internal/interface/middleware"
	"github.com/oksasatya/go-music-auth/internal/router/modules"
)

// MetricsNamespace prefixes every HTTP metric.
const MetricsNamespace = "music_auth"

type AuthModuleDeps struct {
	Users         repository.UserRepository
	Artists       repository.ArtistRepository
	Auth          *application.AuthService
	TwoFactor     *application.TwoFactorService
	Handler       *handlers.AuthHandler
	ArtistHandler *handlers.ArtistHandler
}

func buildAuthDeps(c *container.Container) AuthModuleDeps {
	cfg := c.Config

	users := pginfra.NewUserRepository(c.DB)
	artists := cache.NewArtistRepository(pginfra.NewArtistRepository(c.DB), c.Redis, cfg.ArtistCacheTTL, c.Logger)

	var audit application.AuditRecorder
	if c.ES != nil {
		audit = search.NewAuditIndexer(c.ES, cfg.ESAuditIndex, c.Logger)
	}
	var notifier application.Notifier
	if c.Publisher != nil {
		notifier = notification.NewEmailNotifier(cfg, c.Publisher)
	}

	auth := application.NewAuthService(users, artists, audit, c.Logger, cfg.DirectoryTimeout)
	twoFactor := application.NewTwoFactorService(users, notifier, audit, c.Logger, application.TwoFactorOptions{
		Issuer:  cfg.TOTPIssuer,
		Period:  cfg.TOTPPeriod,
		Skew:    cfg.TOTPSkew,
		Timeout: cfg.DirectoryTimeout,
	})

	return AuthModuleDeps{
		Users:         users,
		Artists:       artists,
		Auth:          auth,
		TwoFactor:     twoFactor,
		Handler:       handlers.NewAuthHandler(auth, twoFactor, c.JWT, c.Cookies, c.Logger),
		ArtistHandler: handlers.NewArtistHandler(artists, c.Logger),
	}
}

// InitModules wires every module from c and registers it with r.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.Metrics != nil {
		m, err := middleware.NewHTTPMetrics(MetricsNamespace, c.Metrics)
		if err != nil {
			return err
		}
		r.Use(m.Handler())
	}

	deps := buildAuthDeps(c)
	r.Add(modules.NewAuthModule(deps.Handler, c.JWT))
	r.Add(modules.NewArtistModule(deps.ArtistHandler, c.JWT))
	if c.Config.DebugMetricsEnabled && c.Metrics != nil {
		r.Add(modules.NewDebugModule(c.Metrics))
	}
	return nil
}
