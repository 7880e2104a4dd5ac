package config

import (
	"log/slog"
	"sync"
	"time"
)

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string

	LogLevel string

	RateLimitMax        int
	RateLimitWindow     time.Duration
	AnalyzeRateLimitMax int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := getEnv("APP_ENV", "")
		if env == "" {
			env = "development"
			slog.Warn("APP_ENV not set, using default", "env", env)
		}
		appConfig = &AppConfig{
			Name:                getEnv("APP_NAME", "CV Analyzer Pro"),
			Env:                 env,
			Port:                getEnv("APP_PORT", ":5000"),
			BaseURL:             getEnv("APP_URL", "http://localhost:5000"),
			LogLevel:            getEnv("LOG_LEVEL", "info"),
			RateLimitMax:        getEnvAsInt("RATE_LIMIT_MAX", 50),
			RateLimitWindow:     getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
			AnalyzeRateLimitMax: getEnvAsInt("ANALYZE_RATE_LIMIT_MAX", 10),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
