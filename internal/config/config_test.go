package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskdesk/internal/repository/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
app:
  env: production
http:
  port: "9090"
db:
  driver: sqlite
  dsn: test.db
  query_timeout: 2s
auth:
  jwt_secret: from-file
  token_ttl: 30m
  bcrypt_cost: 4
log:
  level: debug
`)
	t.Setenv("TASKDESK_AUTH_JWT_SECRET", "from-env")
	t.Setenv("TASKDESK_AUTH_PREVIOUS_SECRETS", "old-1, old-2")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"old-1", "old-2"}, cfg.Auth.PreviousSecrets)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "test.db", cfg.DB.DSN)
	assert.Equal(t, 2*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("TASKDESK_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.Empty(t, cfg.Auth.PreviousSecrets)
	// secret comes from the environment alone
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestLoad_MissingSecretFails(t *testing.T) {
	t.Setenv("TASKDESK_AUTH_JWT_SECRET", "")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSecret))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DB:   DBConfig{Driver: db.DriverPostgres},
			Auth: AuthConfig{JWTSecret: "k", TokenTTL: time.Hour},
		}
	}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "blank secret", mutate: func(c *Config) { c.Auth.JWTSecret = "  " }, wantErr: ErrMissingSecret},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: ErrUnknownDriver},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	c := valid()
	c.Auth.TokenTTL = 0
	assert.Error(t, c.Validate())
}
