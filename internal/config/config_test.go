package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiscoex/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 4*time.Hour, cfg.Session.Expiry)
	assert.Equal(t, int64(20), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, 100000, cfg.Cipher.Iterations)
	assert.Equal(t, 32, cfg.Cipher.KeyLength)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAIModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.GeminiModel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FISCOEX_SERVER_PORT", ":9999")
	t.Setenv("FISCOEX_SESSION_EXPIRY", "30m")
	t.Setenv("FISCOEX_UPLOAD_MAX_FILE_SIZE_MB", "2")
	t.Setenv("FISCOEX_LLM_VALIDATE_KEY", "false")
	t.Setenv("FISCOEX_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Session.Expiry)
	assert.Equal(t, int64(2*1024*1024), cfg.Upload.MaxFileSizeBytes())
	assert.False(t, cfg.LLM.ValidateKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
