package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"DUKA_APP_NAME":             os.Getenv("DUKA_APP_NAME"),
		"DUKA_APP_ENV":              os.Getenv("DUKA_APP_ENV"),
		"DUKA_APP_PORT":             os.Getenv("DUKA_APP_PORT"),
		"DUKA_DATABASE_HOST":        os.Getenv("DUKA_DATABASE_HOST"),
		"DUKA_DATABASE_PORT":        os.Getenv("DUKA_DATABASE_PORT"),
		"DUKA_DATABASE_PASSWORD":    os.Getenv("DUKA_DATABASE_PASSWORD"),
		"DUKA_DATABASE_SSLMODE":     os.Getenv("DUKA_DATABASE_SSLMODE"),
		"DUKA_JWT_SECRET":           os.Getenv("DUKA_JWT_SECRET"),
		"DUKA_TAX_DEFAULT_VAT_RATE": os.Getenv("DUKA_TAX_DEFAULT_VAT_RATE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "dukabook-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "dukabook", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 12*time.Hour, cfg.JWT.TokenExpiration)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 0.16, cfg.Tax.DefaultVATRate)
		assert.Equal(t, 5*time.Second, cfg.Watch.PollInterval)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("DUKA_APP_NAME", "duka-test")
		os.Setenv("DUKA_DATABASE_HOST", "db.internal")
		os.Setenv("DUKA_TAX_DEFAULT_VAT_RATE", "0.08")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "duka-test", cfg.App.Name)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 0.08, cfg.Tax.DefaultVATRate)
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("DUKA_APP_ENV", "production")
		os.Setenv("DUKA_DATABASE_PASSWORD", "secret")
		os.Setenv("DUKA_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production accepts a complete config", func(t *testing.T) {
		clearEnv()
		os.Setenv("DUKA_APP_ENV", "production")
		os.Setenv("DUKA_DATABASE_PASSWORD", "secret")
		os.Setenv("DUKA_DATABASE_SSLMODE", "require")
		os.Setenv("DUKA_JWT_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestTaxConfigVATRate(t *testing.T) {
	tax := TaxConfig{DefaultVATRate: 0.16}
	want := decimal.RequireFromString("0.16")
	assert.True(t, tax.VATRate().Equal(want), "got %s", tax.VATRate())
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "duka",
		Password: "p@ss word",
		DBName:   "dukabook",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss word")
}
