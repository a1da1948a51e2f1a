package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Upload  UploadConfig
	Cipher  CipherConfig
	LLM     LLMConfig
	Log     LogConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// SessionConfig holds JWT and session lifetime settings.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// UploadConfig holds file upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// CipherConfig holds key-derivation settings for the session cipher.
type CipherConfig struct {
	Iterations int `mapstructure:"iterations"`
	KeyLength  int `mapstructure:"key_length"`
}

// LLMConfig holds compliance-analysis client settings. API keys are never
// configured here: they arrive per session from the login request (BYOK).
type LLMConfig struct {
	OpenAIModel string `mapstructure:"openai_model"`
	GeminiModel string `mapstructure:"gemini_model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	ValidateKey bool   `mapstructure:"validate_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the FISCOEX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FISCOEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Session defaults
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.expiry", "4h")
	v.SetDefault("session.issuer", "fiscoex")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Cipher defaults (PBKDF2-SHA256)
	v.SetDefault("cipher.iterations", 100000)
	v.SetDefault("cipher.key_length", 32)

	// LLM defaults
	v.SetDefault("llm.openai_model", "gpt-4o")
	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.validate_key", true)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "FISCOEX_SERVER_PORT",
		"server.read_timeout":   "FISCOEX_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "FISCOEX_SERVER_WRITE_TIMEOUT",
		"server.environment":    "FISCOEX_SERVER_ENVIRONMENT",
		"session.secret":        "FISCOEX_SESSION_SECRET",
		"session.expiry":        "FISCOEX_SESSION_EXPIRY",
		"session.issuer":        "FISCOEX_SESSION_ISSUER",
		"upload.max_file_size_mb": "FISCOEX_UPLOAD_MAX_FILE_SIZE_MB",
		"cipher.iterations":     "FISCOEX_CIPHER_ITERATIONS",
		"cipher.key_length":     "FISCOEX_CIPHER_KEY_LENGTH",
		"llm.openai_model":      "FISCOEX_LLM_OPENAI_MODEL",
		"llm.gemini_model":      "FISCOEX_LLM_GEMINI_MODEL",
		"llm.timeout_secs":      "FISCOEX_LLM_TIMEOUT_SECS",
		"llm.validate_key":      "FISCOEX_LLM_VALIDATE_KEY",
		"log.level":             "FISCOEX_LOG_LEVEL",
		"log.format":            "FISCOEX_LOG_FORMAT",
		"cors.allowed_origins":  "FISCOEX_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Upload.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("upload.max_file_size_mb must be positive, got %d", cfg.Upload.MaxFileSizeMB)
	}

	return &cfg, nil
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (c *UploadConfig) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}
