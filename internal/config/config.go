package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Analysis AnalysisConfig
	Batch    BatchConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// OCRConfig holds settings for the hosted OCR service.
type OCRConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Endpoint      string `mapstructure:"endpoint"`
	Model         string `mapstructure:"model"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// AnalysisConfig holds settings for the hosted content-analysis service.
// Models is the ordered candidate list, most capable first.
type AnalysisConfig struct {
	APIKey      string   `mapstructure:"api_key"`
	Endpoint    string   `mapstructure:"endpoint"`
	Models      []string `mapstructure:"models"`
	TimeoutSecs int      `mapstructure:"timeout_secs"`
	MaxTokens   int      `mapstructure:"max_tokens"`
}

// BatchConfig holds document batch limits.
type BatchConfig struct {
	MaxFiles int `mapstructure:"max_files"`
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

// Load reads configuration from environment variables with the CHAMPDOC_ prefix.
// The two service credentials are required; missing either is a startup error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHAMPDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// OCR defaults
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.endpoint", "https://api.mistral.ai")
	v.SetDefault("ocr.model", "mistral-ocr-latest")
	v.SetDefault("ocr.timeout_secs", 120)
	v.SetDefault("ocr.max_file_size_mb", 10)

	// Analysis defaults: ordered candidate models, most capable first
	v.SetDefault("analysis.api_key", "")
	v.SetDefault("analysis.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("analysis.models", "gpt-4.1,gpt-4.1-mini,gpt-4")
	v.SetDefault("analysis.timeout_secs", 120)
	v.SetDefault("analysis.max_tokens", 4096)

	// Batch defaults
	v.SetDefault("batch.max_files", 3)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "CHAMPDOC_SERVER_PORT",
		"server.read_timeout":   "CHAMPDOC_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "CHAMPDOC_SERVER_WRITE_TIMEOUT",
		"server.environment":    "CHAMPDOC_SERVER_ENVIRONMENT",
		"ocr.api_key":           "CHAMPDOC_OCR_API_KEY",
		"ocr.endpoint":          "CHAMPDOC_OCR_ENDPOINT",
		"ocr.model":             "CHAMPDOC_OCR_MODEL",
		"ocr.timeout_secs":      "CHAMPDOC_OCR_TIMEOUT_SECS",
		"ocr.max_file_size_mb":  "CHAMPDOC_OCR_MAX_FILE_SIZE_MB",
		"analysis.api_key":      "CHAMPDOC_ANALYSIS_API_KEY",
		"analysis.endpoint":     "CHAMPDOC_ANALYSIS_ENDPOINT",
		"analysis.models":       "CHAMPDOC_ANALYSIS_MODELS",
		"analysis.timeout_secs": "CHAMPDOC_ANALYSIS_TIMEOUT_SECS",
		"analysis.max_tokens":   "CHAMPDOC_ANALYSIS_MAX_TOKENS",
		"batch.max_files":       "CHAMPDOC_BATCH_MAX_FILES",
		"log.level":             "CHAMPDOC_LOG_LEVEL",
		"log.format":            "CHAMPDOC_LOG_FORMAT",
		"cors.allowed_origins":  "CHAMPDOC_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CHAMPDOC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CHAMPDOC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.OCR = OCRConfig{
		APIKey:        v.GetString("ocr.api_key"),
		Endpoint:      strings.TrimRight(v.GetString("ocr.endpoint"), "/"),
		Model:         v.GetString("ocr.model"),
		TimeoutSecs:   v.GetInt("ocr.timeout_secs"),
		MaxFileSizeMB: v.GetInt64("ocr.max_file_size_mb"),
	}
	cfg.Analysis = AnalysisConfig{
		APIKey:      v.GetString("analysis.api_key"),
		Endpoint:    v.GetString("analysis.endpoint"),
		Models:      splitList(v.GetString("analysis.models")),
		TimeoutSecs: v.GetInt("analysis.timeout_secs"),
		MaxTokens:   v.GetInt("analysis.max_tokens"),
	}
	cfg.Batch = BatchConfig{
		MaxFiles: v.GetInt("batch.max_files"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OCR.APIKey == "" {
		return fmt.Errorf("CHAMPDOC_OCR_API_KEY is required")
	}
	if c.Analysis.APIKey == "" {
		return fmt.Errorf("CHAMPDOC_ANALYSIS_API_KEY is required")
	}
	if len(c.Analysis.Models) == 0 {
		return fmt.Errorf("CHAMPDOC_ANALYSIS_MODELS must list at least one model")
	}
	if c.Batch.MaxFiles <= 0 {
		return fmt.Errorf("CHAMPDOC_BATCH_MAX_FILES must be positive")
	}
	return nil
}

// splitList parses a comma-separated string into a trimmed slice.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
