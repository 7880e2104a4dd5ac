package config

import (
	"sync"
)

// GeminiConfig is optional. Without an API key no Gemini attempts are added to the model list.
type GeminiConfig struct {
	APIKey string
	Models []string
	// BaseURL overrides the Gemini API endpoint when set.
	BaseURL string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Models:  getEnvAsList("GEMINI_MODELS", []string{"gemini-2.5-flash"}),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
		}
	})
	return geminiConfig
}

func (c *GeminiConfig) Enabled() bool {
	return c.APIKey != ""
}
