package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (PERFUME_ prefix), flags, or YAML config files.
type Config struct {
	Addr          string `default:"0.0.0.0:8080" usage:"Server listen address"`
	DatabaseURL   string `usage:"PostgreSQL connection URL (PERFUME_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	PublicBaseURL string `default:"http://localhost:8080" usage:"Public URL of the storefront, used for payment redirects" flag:"public-base-url"`
	UnitPrice     string `default:"450" usage:"Price of a single perfume" flag:"unit-price"`
	Currency      string `default:"zar" usage:"ISO 4217 currency code for payments"`
	ListLimit     int    `default:"200" usage:"Maximum orders returned by admin listings" flag:"list-limit"`
	Session       SessionConfig
	Admin         AdminConfig
	SMTP          SMTPConfig
	Stripe        StripeConfig
	Geocode       GeocodeConfig
	RateLimit     RateLimitConfig
	CORS          CORSConfig
	Graceful      GracefulConfig
}

// SessionConfig controls the admin session cookies.
type SessionConfig struct {
	Secret string        `usage:"HMAC secret for session tokens (PERFUME_SESSION_SECRET)" flag:"session-secret"`
	TTL    time.Duration `default:"12h" usage:"Session lifetime" flag:"session-ttl"`
	Secure bool          `default:"false" usage:"Mark session cookies Secure (HTTPS-only deploys)" flag:"secure-cookies"`
}

// AdminConfig holds the single admin credential pair.
type AdminConfig struct {
	User string `default:"admin" usage:"Admin username"`
	Pass string `default:"mysecurepassword" usage:"Admin password"`
}

// SMTPConfig holds the outbound mail settings. Notifications are disabled
// unless Host, Username, Password, and NotifyEmail are all set.
type SMTPConfig struct {
	Host        string `usage:"SMTP server host"`
	Port        int    `default:"587" usage:"SMTP server port"`
	Username    string `usage:"SMTP username"`
	Password    string `usage:"SMTP password"`
	NotifyEmail string `usage:"Address that sends and receives order notifications" flag:"notify-email"`
}

// StripeConfig holds the payment settings. Payments are disabled unless
// SecretKey is set.
type StripeConfig struct {
	SecretKey      string        `usage:"Stripe secret key (PERFUME_STRIPE_SECRET_KEY)" flag:"stripe-secret-key"`
	SessionTimeout time.Duration `default:"10s" usage:"Timeout for creating a checkout session" flag:"stripe-timeout"`
}

// GeocodeConfig controls the reverse-geocoding passthrough.
type GeocodeConfig struct {
	BaseURL   string        `default:"https://nominatim.openstreetmap.org" usage:"Reverse geocoding endpoint" flag:"geocode-url"`
	UserAgent string        `default:"perfume-storefront/1.0" usage:"User-Agent sent to the geocoder" flag:"geocode-agent"`
	Timeout   time.Duration `default:"10s" usage:"Reverse geocoding request timeout" flag:"geocode-timeout"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "PERFUME",
		Files:     []string{"config.yaml", "/etc/perfume/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set PERFUME_DATABASE_URL or DATABASE_URL")
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret is required: set PERFUME_SESSION_SECRET")
	}

	return &cfg, nil
}

// mailEnabled reports whether the SMTP settings are complete enough to send
// order notifications.
func (c *Config) mailEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.Username != "" && c.SMTP.Password != "" && c.SMTP.NotifyEmail != ""
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's PERFUME_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
