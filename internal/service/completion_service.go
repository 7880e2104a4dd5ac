package service

import "context"

// CompletionRequest is one chat completion call against a single model.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
	// JSONOutput asks the provider for a bare JSON object.
	JSONOutput bool
}

//go:generate mockgen -source=./completion_service.go -destination=./mocks/completion.mock.go -package=servicemocks CompletionServiceInterface
type CompletionServiceInterface interface {
	// Provider is the display name recorded in analysis metadata.
	Provider() string
	// Complete returns the raw message content of the first choice.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
