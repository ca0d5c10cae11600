package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Version     string `envconfig:"VERSION" default:"dev"`
	BcryptCost  int    `envconfig:"BCRYPT_COST" default:"12"`

	JWTSecret             string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTLMin     int    `envconfig:"ACCESS_TOKEN_TTL_MINUTES" default:"60"`
	RefreshTokenTTLDays   int    `envconfig:"REFRESH_TOKEN_TTL_DAYS" default:"14"`
	RefreshCookieName     string `envconfig:"REFRESH_COOKIE_NAME" default:"otg_refresh"`
	RefreshCookieSecure   bool   `envconfig:"REFRESH_COOKIE_SECURE" default:"true"`
	TokenSweepIntervalMin int    `envconfig:"TOKEN_SWEEP_INTERVAL_MINUTES" default:"60"`

	GoogleClientID      string `envconfig:"GOOGLE_CLIENT_ID" default:""`
	GoogleClientSecret  string `envconfig:"GOOGLE_CLIENT_SECRET" default:""`
	OAuthRedirectURL    string `envconfig:"OAUTH_REDIRECT_URL" default:""`
	FrontendCallbackURL string `envconfig:"FRONTEND_CALLBACK_URL" default:"http://localhost:5173/oauth/callback"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AccessTokenTTL returns the access token lifetime as a duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMin) * time.Minute
}

// RefreshTokenTTL returns the refresh token lifetime as a duration.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLDays) * 24 * time.Hour
}

// TokenSweepInterval returns how often expired refresh tokens are purged.
func (c *Config) TokenSweepInterval() time.Duration {
	return time.Duration(c.TokenSweepIntervalMin) * time.Minute
}
