package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

const (
	BackendMongo    = "mongo"
	BackendDynamoDB = "dynamodb"
	BackendBadger   = "badger"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Host            string        `env:"HOST"`
	Port            int           `env:"PORT,default=5000"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	AllowedOrigins  string        `env:"CORS_ALLOWED_ORIGINS,default=*"`

	StoreBackend string `env:"STORE_BACKEND,default=mongo"`

	MongoURI        string `env:"MONGODB_URI"`
	MongoURIParam   string `env:"MONGODB_URI_PARAM"`
	MongoDatabase   string `env:"MONGODB_DATABASE,default=portfolio"`
	MongoCollection string `env:"MONGODB_COLLECTION,default=messages"`

	DynamoTable string `env:"DYNAMODB_TABLE"`
	BadgerPath  string `env:"BADGER_PATH"`
}

// Load reads an optional .env file followed by the process environment.
// Variables already set in the environment take precedence over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return Config{}, fmt.Errorf("config: load env file: %w", err)
	}
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	return cfg, cfg.Validate()
}

// Validate checks the settings needed by the selected store backend.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT out of range: %d", c.Port)
	}
	switch c.StoreBackend {
	case BackendMongo:
		if c.MongoURI == "" && c.MongoURIParam == "" {
			return errors.New("config: MONGODB_URI or MONGODB_URI_PARAM is required for the mongo backend")
		}
	case BackendDynamoDB:
		if c.DynamoTable == "" {
			return errors.New("config: DYNAMODB_TABLE is required for the dynamodb backend")
		}
	case BackendBadger:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Origins splits CORS_ALLOWED_ORIGINS into its entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level parses LOG_LEVEL, falling back to INFO when it is not a slog level name.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}
