package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"skillswap_backend/internal/config"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaGenerator runs prompts against a local Ollama server.
type OllamaGenerator struct {
	api   *api.Client
	model string
}

func NewOllamaGenerator(cfg config.AIConfig) (*OllamaGenerator, error) {
	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url: %w", err)
	}
	return &OllamaGenerator{
		api:   api.NewClient(u, &http.Client{}),
		model: cfg.Model,
	}, nil
}

func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := g.api.Generate(ctx, req, func(r api.GenerateResponse) error {
		sb.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return sb.String(), nil
}
