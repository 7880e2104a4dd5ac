package config

import (
	"sync"
	"time"
)

type GroqConfig struct {
	APIKey        string
	BaseURL       string
	Models        []string
	Timeout       time.Duration
	HealthTimeout time.Duration
	Temperature   float64
	MaxTokens     int
}

// Tried in this order; the first entry is also the model the health probe calls.
var defaultGroqModels = []string{
	"llama-3.1-8b-instant",
	"llama-3.2-1b-preview",
	"llama-3.2-3b-preview",
	"mixtral-8x7b-32768",
	"gemma2-9b-it",
}

var (
	groqConfig *GroqConfig
	groqOnce   sync.Once
)

func LoadGroqConfig() *GroqConfig {
	groqOnce.Do(func() {
		groqConfig = &GroqConfig{
			APIKey:        getEnv("GROQ_API_KEY", ""),
			BaseURL:       getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Models:        getEnvAsList("GROQ_MODELS", defaultGroqModels),
			Timeout:       getEnvAsDuration("GROQ_TIMEOUT", 45*time.Second),
			HealthTimeout: getEnvAsDuration("GROQ_HEALTH_TIMEOUT", 8*time.Second),
			Temperature:   getEnvAsFloat("GROQ_TEMPERATURE", 0.1),
			MaxTokens:     getEnvAsInt("GROQ_MAX_TOKENS", 2500),
		}
	})
	return groqConfig
}
