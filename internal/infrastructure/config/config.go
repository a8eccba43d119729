package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CredentialJWTSecret switches role resolution from the ROLE_ADMIN marker
	// to verified HS256 tokens when set.
	CredentialJWTSecret string `env:"CREDENTIAL_JWT_SECRET"`

	Backend BackendConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:8080/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type SessionConfig struct {
	CookieSecure bool          `env:"COOKIE_SECURE,    default=false"`
	DurableTTL   time.Duration `env:"DURABLE_TTL,      default=720h"`
	IdleTTL      time.Duration `env:"SESSION_IDLE_TTL, default=2h"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=coda_bean"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,       default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,         default=0"`
	Prefix   string `env:"REDIS_KEY_PREFIX, default=storefront:"`
}

type KafkaConfig struct {
	// Brokers is a comma-separated list; empty disables publishing to Kafka.
	Brokers       string `env:"KAFKA_BROKERS"`
	OrdersTopic   string `env:"KAFKA_ORDERS_TOPIC, default=orders.confirmed"`
	NotifyWorkers int    `env:"NOTIFY_WORKERS,     default=4"`
}

// BrokerList splits Brokers into addresses, skipping blanks.
func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when present and then the environment using
// go-envconfig. Variables already set in the environment win over .env.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}
