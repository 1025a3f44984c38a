package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL is the standard session lifetime; RememberTTL applies to
	// remember-me logins.
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=1h"`
	RememberTTL time.Duration `env:"REMEMBER_TTL, default=720h"`

	// OTPBackend selects the one-time-code store: "memory" or "redis".
	OTPBackend string `env:"OTP_BACKEND, default=memory"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Upload UploadConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=officecorner"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST,     default=localhost"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	Sender   string `env:"SMTP_SENDER,   default=no-reply@officecorner.local"`
}

type UploadConfig struct {
	URL    string `env:"UPLOAD_URL"`
	Preset string `env:"UPLOAD_PRESET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
