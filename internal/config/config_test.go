package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		Port:       "8480",
		JWTSecret:  strings.Repeat("s", 32),
		DBPassword: "a-real-password",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestValidateDevelopmentAllowsDefaults(t *testing.T) {
	cfg := &Config{
		Port:      "8480",
		JWTSecret: "your-secret-key-change-in-production",
		Env:       "development",
	}
	require.NoError(t, cfg.Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := validProductionConfig()
	cfg.Port = ""
	assert.ErrorContains(t, cfg.Validate(), "PORT")

	cfg = validProductionConfig()
	cfg.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
}

func TestValidateProductionHardening(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "default jwt secret rejected",
			mutate:  func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" },
			wantErr: "default value",
		},
		{
			name:    "short jwt secret rejected",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: "32 characters",
		},
		{
			name:    "default db password rejected",
			mutate:  func(c *Config) { c.DBPassword = "password" },
			wantErr: "DB_PASSWORD",
		},
		{
			name:    "empty db password rejected",
			mutate:  func(c *Config) { c.DBPassword = "" },
			wantErr: "DB_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validProductionConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidateWarmerInterval(t *testing.T) {
	cfg := validProductionConfig()
	cfg.LeaderboardWarmSeconds = -1
	assert.ErrorContains(t, cfg.Validate(), "LEADERBOARD_WARM_SECONDS")

	cfg.LeaderboardWarmSeconds = 0
	assert.NoError(t, cfg.Validate(), "zero disables warming and is valid")
}
