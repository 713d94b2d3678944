package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/studyos/internal/llm"
)

// Config is process-wide configuration resolved at startup.
type Config struct {
	Env       string
	LogDir    string
	LogLevel  slog.Level
	Telemetry bool

	// LLM is nil when no credentials could be resolved; LLMErr says why.
	LLM    *llm.Config
	LLMErr error
}

// Load reads a .env file in development and then the STUDYOS_* variables.
// A missing LLM credential is not an error here: the study aid degrades to
// its fallback replies instead.
func Load() Config {
	if getEnv("STUDYOS_ENV", "development") == "development" {
		_ = godotenv.Load()
	}

	cfg := Config{
		Env:       getEnv("STUDYOS_ENV", "development"),
		LogDir:    getEnv("STUDYOS_LOG_DIR", defaultLogDir()),
		Telemetry: getEnvBool("STUDYOS_TELEMETRY", false),
	}

	cfg.LogLevel = slog.LevelInfo
	if cfg.IsDevelopment() {
		cfg.LogLevel = slog.LevelDebug
	}
	if lvl := os.Getenv("STUDYOS_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = parseLevel(lvl, cfg.LogLevel)
	}

	llmCfg, err := llm.ResolveConfig()
	if err != nil {
		cfg.LLMErr = err
	} else {
		cfg.LLM = &llmCfg
	}

	return cfg
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func defaultLogDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "studyos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "logs"
	}
	return filepath.Join(home, ".local", "state", "studyos")
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return fallback
	}
	return lvl
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
