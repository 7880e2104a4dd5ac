package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/cv-analyzer-pro/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const GroqProvider = "Groq AI"

// GroqService talks to Groq's OpenAI compatible chat completions endpoint.
type GroqService struct {
	client *resty.Client
}

func NewGroqService(cfg *config.GroqConfig) *GroqService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return &GroqService{client: client}
}

func (s *GroqService) Provider() string {
	return GroqProvider
}

func (s *GroqService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]map[string]string, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.UserPrompt})

	body := map[string]any{
		"model":       req.Model,
		"messages":    messages,
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
	}
	if req.JSONOutput {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("groq returned %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("no response from LLM")
	}
	return content.String(), nil
}
