package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (LOOM_ prefix), flags, or YAML config files.
type Config struct {
	Addr          string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL   string `usage:"PostgreSQL connection URL (LOOM_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	OperatorEmail string `default:"orders@crystalloom.com" usage:"Address that receives a copy of every order confirmation" flag:"operator-email"`
	AnalyticsURL  string `default:"" usage:"Google Sheets webhook URL for signup/order records; empty disables" flag:"analytics-url"`
	MaxDiscount   string `default:"0.90" usage:"Upper bound on the catalog discount fraction" flag:"max-discount"`
	NotifyQueue   int    `default:"64" usage:"Order confirmation queue capacity" flag:"notify-queue"`
	SMTP          SMTPConfig
	Razorpay      RazorpayConfig
	RateLimit     RateLimitConfig
	CORS          CORSConfig
	Graceful      GracefulConfig
}

// SMTPConfig holds the transactional mail relay settings.
type SMTPConfig struct {
	Host       string `default:"smtp.gmail.com" usage:"SMTP relay host"`
	Port       int    `default:"587" usage:"SMTP relay port"`
	Username   string `usage:"SMTP username (LOOM_SMTP_USERNAME)"`
	Password   string `usage:"SMTP password or app password (LOOM_SMTP_PASSWORD)"`
	SenderName string `default:"Crystal Loom" usage:"Display name on outgoing mail" flag:"smtp-sender-name"`
	From       string `usage:"Sender address for outgoing mail (LOOM_SMTP_FROM)"`
}

// RazorpayConfig holds the payment gateway credentials. Both keys empty means
// payment-order creation is disabled.
type RazorpayConfig struct {
	KeyID     string `usage:"Razorpay key id (LOOM_RAZORPAY_KEY_ID)" flag:"razorpay-key-id"`
	KeySecret string `usage:"Razorpay key secret (LOOM_RAZORPAY_KEY_SECRET)" flag:"razorpay-key-secret"`
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
		EnvPrefix: "LOOM",
		Files:     []string{"config.yaml", "/etc/crystalloom/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set LOOM_DATABASE_URL or DATABASE_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's LOOM_-prefixed configuration.
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
