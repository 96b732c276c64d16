package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/util"
	"skillswap_backend/pkg/logger"
	"skillswap_backend/pkg/monitoring"
	"skillswap_backend/pkg/tracing"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Generator turns a prompt into text. Implementations talk to a model
// provider; AIService wraps whichever one is configured.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Features label generator calls in metrics and spans.
const (
	FeatureSuggest = "suggest_skills"
	FeatureMatch   = "matchmaking"
	FeatureQuiz    = "quiz"
	FeatureChat    = "chat"
)

// AIService is the single entry point to text generation. The underlying
// generator can be swapped at runtime when the AI settings change.
type AIService struct {
	mu      sync.RWMutex
	config  config.AIConfig
	gen     Generator
	timeout time.Duration
}

func NewAIService(cfg config.AIConfig) *AIService {
	s := &AIService{}
	s.UpdateConfig(cfg)
	return s
}

// NewAIServiceWithGenerator uses gen as is, without a provider lookup.
func NewAIServiceWithGenerator(gen Generator, timeout time.Duration) *AIService {
	return &AIService{gen: gen, timeout: timeout}
}

// UpdateConfig rebuilds the generator from cfg.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	gen, err := newGenerator(cfg)
	if err != nil {
		logger.Log.Warn("AI generator disabled", zap.String("provider", cfg.Provider), zap.Error(err))
		gen = disabledGenerator{}
	}

	s.mu.Lock()
	s.config = cfg
	s.gen = gen
	s.timeout = cfg.Timeout
	s.mu.Unlock()
}

func (s *AIService) Config() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *AIService) current() (Generator, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen, s.timeout
}

// Complete runs prompt through the current generator. Every failure comes
// back wrapped in util.ErrExternalService.
func (s *AIService) Complete(ctx context.Context, feature, prompt string) (string, error) {
	gen, timeout := s.current()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx, span := tracing.Tracer.Start(ctx, "ai."+feature,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("ai.prompt_length", len(prompt))))
	defer span.End()

	start := time.Now()
	out, err := gen.Generate(ctx, prompt)
	monitoring.AIRequestDuration.WithLabelValues(feature).Observe(time.Since(start).Seconds())

	if err != nil {
		monitoring.AIRequests.WithLabelValues(feature, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log.Warn("AI request failed", zap.String("feature", feature), zap.Error(err))
		if errors.Is(err, util.ErrExternalService) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", util.ErrExternalService, err)
	}

	monitoring.AIRequests.WithLabelValues(feature, "ok").Inc()
	span.SetAttributes(attribute.Int("ai.response_length", len(out)))
	return out, nil
}

func newGenerator(cfg config.AIConfig) (Generator, error) {
	if !cfg.Enabled() {
		return disabledGenerator{}, nil
	}
	switch cfg.Provider {
	case config.AIProviderOllama:
		return NewOllamaGenerator(cfg)
	case config.AIProviderOpenAI, "":
		return NewOpenAIGenerator(cfg), nil
	}
	return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
}

type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string) (string, error) {
	return "", util.ErrAIDisabled
}

// OpenAIGenerator calls any endpoint that speaks the chat completions API.
type OpenAIGenerator struct {
	config config.AIConfig
	client *http.Client
}

func NewOpenAIGenerator(cfg config.AIConfig) *OpenAIGenerator {
	return &OpenAIGenerator{config: cfg, client: &http.Client{}}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:    g.config.Model,
		Messages: []AIChatMessage{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(g.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}
