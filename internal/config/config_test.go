package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./acebook.db", cfg.DatabasePath)
	assert.Equal(t, "./uploads", cfg.UploadPath)
	assert.Equal(t, "@hourly", cfg.UploadSweep)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/db.sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "/tmp/db.sqlite", cfg.DatabasePath)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
