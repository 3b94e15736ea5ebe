package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Tomato", cfg.MongoDatabase)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.EmailTimeout)
	assert.EqualValues(t, 5<<20, cfg.UploadMaxBytes)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.AdminEmails)
	assert.False(t, cfg.FederatedEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB", "mongodb://db:27017")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EMAIL_TIMEOUT", "3s")
	t.Setenv("ADMIN_EMAILS", " Owner@Tomato.example, chef@tomato.example ,")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.EmailTimeout)
	assert.Equal(t, []string{"owner@tomato.example", "chef@tomato.example"}, cfg.AdminEmails)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tomato.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
secret_key: from-file
s3_bucket: payments
s3_public_base_url: https://cdn.example
log_format: text
admin_emails:
  - owner@tomato.example
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"owner@tomato.example"}, cfg.AdminEmails)
	assert.NoError(t, cfg.Validate())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{S3Bucket: "payments", UploadMaxBytes: 1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret_key is required")
	assert.Contains(t, err.Error(), "s3_public_base_url")
}
