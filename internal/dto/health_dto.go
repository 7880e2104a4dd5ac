package dto

import "time"

const (
	HealthOperational = "operational"
	HealthDegraded    = "degraded"
)

type HealthDTO struct {
	Status          string    `json:"status"`
	AIService       string    `json:"aiService"`
	Model           string    `json:"model"`
	Provider        string    `json:"provider,omitempty"`
	Message         string    `json:"message,omitempty"`
	SupportedModels []string  `json:"supportedModels"`
	Fallback        string    `json:"fallback"`
	Error           string    `json:"error,omitempty"`
	Suggestion      string    `json:"suggestion,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
