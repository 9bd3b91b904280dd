package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Dev     DevConfig

	// AuditWorkers is the number of session-event writers; 0 disables auditing.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

// APIConfig points the portal at the REST backend.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL,    default=http://localhost:8081/api"`
	Timeout time.Duration `env:"API_TIMEOUT,     default=15s"`
	// Empty header values fall back to the backend client defaults.
	ClientType     string `env:"CLIENT_TYPE"`
	ClientPlatform string `env:"CLIENT_PLATFORM"`
}

type SessionConfig struct {
	// StorageFile backs the CLI session.
	StorageFile  string        `env:"STORAGE_FILE,  default=.shopportal/session.json"`
	TTL          time.Duration `env:"SESSION_TTL,   default=24h"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
	OTPCooldown  time.Duration `env:"OTP_COOLDOWN,  default=60s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=shopportal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// DevConfig configures the development backend.
type DevConfig struct {
	JWTSecret string `env:"DEV_JWT_SECRET, default=dev-secret"`
	Port      string `env:"DEV_PORT,       default=8081"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
