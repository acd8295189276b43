package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskdesk/internal/repository/db"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environments recognised by app.env.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const envPrefix = "TASKDESK"

var (
	ErrMissingSecret = errors.New("auth.jwt_secret is not set")
	ErrUnknownDriver = errors.New("unknown db.driver")
)

// Config is the process-wide configuration built once at startup.
type Config struct {
	App  AppConfig  `mapstructure:"app"`
	HTTP HTTPConfig `mapstructure:"http"`
	DB   DBConfig   `mapstructure:"db"`
	Auth AuthConfig `mapstructure:"auth"`
	Log  LogConfig  `mapstructure:"log"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type HTTPConfig struct {
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DBConfig struct {
	Driver       string        `mapstructure:"driver"`
	DSN          string        `mapstructure:"dsn"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// AuthConfig holds token and hashing settings.
// PreviousSecrets are still accepted when verifying tokens, which lets the
// signing key be rotated without logging everybody out.
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	PreviousSecrets []string      `mapstructure:"previous_secrets"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	BcryptCost      int           `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// IsProduction reports whether error details must be hidden from clients.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, EnvProduction)
}

// Load reads configs/config.yml (if present) from dir, then applies a .env
// file and TASKDESK_* environment overrides, e.g. TASKDESK_AUTH_JWT_SECRET.
func Load(dir string) (*Config, error) {
	// .env is optional; real environment variables take precedence over it
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// auth.jwt_secret has no default, so its env var must be bound explicitly
	_ = v.BindEnv("auth.jwt_secret")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// drop blank entries and stray whitespace from file or env lists
	cfg.Auth.PreviousSecrets = splitList(cfg.Auth.PreviousSecrets)
	cfg.HTTP.CORSOrigins = splitList(cfg.HTTP.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingSecret
	}
	switch c.DB.Driver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DB.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", EnvDevelopment)
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("db.driver", db.DriverSQLite)
	v.SetDefault("db.dsn", "app.db")
	v.SetDefault("db.query_timeout", 5*time.Second)
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.previous_secrets", []string{})
	v.SetDefault("log.level", "info")
	// no default for auth.jwt_secret: it must come from the file or the environment
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
