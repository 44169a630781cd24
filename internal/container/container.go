package container

import (
	"database/sql"
	"errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/config"
	"github.com/oksasatya/go-music-auth/internal/infrastructure/notification"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

// Container carries the shared components built once in main.
// Redis, ES, Publisher and Metrics are optional; modules degrade without them.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	DB        *sql.DB
	Redis     *redis.Client
	ES        *elasticsearch.Client
	Publisher notification.Publisher
	JWT       *helpers.JWTManager
	Cookies   *helpers.Manager
	Metrics   *prometheus.Registry
}

// Validate reports the first missing required component.
func (c *Container) Validate() error {
	switch {
	case c == nil:
		return errors.New("container is nil")
	case c.Config == nil:
		return errors.New("container: config is required")
	case c.DB == nil:
		return errors.New("container: db is required")
	case c.JWT == nil:
		return errors.New("container: jwt manager is required")
	}
	if c.Logger == nil {
		c.Logger = helpers.NewNopLogger()
	}
	if c.Cookies == nil {
		c.Cookies = helpers.NewCookie(c.Config.CookieDomain, c.Config.CookieSecure)
	}
	return nil
}
