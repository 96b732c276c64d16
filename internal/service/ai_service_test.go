package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/util"
	"strings"
	"testing"
	"time"
)

type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestCompleteAppliesTimeout(t *testing.T) {
	ai := NewAIServiceWithGenerator(blockingGenerator{}, 20*time.Millisecond)

	start := time.Now()
	_, err := ai.Complete(context.Background(), FeatureChat, "hi")
	if !errors.Is(err, util.ErrExternalService) {
		t.Fatalf("err = %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not applied")
	}
}

func TestDisabledGenerator(t *testing.T) {
	ai := NewAIService(config.AIConfig{Provider: config.AIProviderOpenAI})
	_, err := ai.Complete(context.Background(), FeatureSuggest, "x")
	if !errors.Is(err, util.ErrAIDisabled) || !errors.Is(err, util.ErrExternalService) {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdateConfigSwapsGenerator(t *testing.T) {
	ai := NewAIService(config.AIConfig{})
	ai.UpdateConfig(config.AIConfig{Provider: config.AIProviderOllama, BaseURL: "http://127.0.0.1:11434", Model: "llama3", MatchCandidates: 7})

	if got := ai.Config().MatchCandidates; got != 7 {
		t.Fatalf("config not replaced: %d", got)
	}
	gen, _ := ai.current()
	if _, ok := gen.(*OllamaGenerator); !ok {
		t.Fatalf("generator = %T", gen)
	}

	ai.UpdateConfig(config.AIConfig{Provider: "carrier-pigeon", BaseURL: "x", APIKey: "k"})
	gen, _ = ai.current()
	if _, ok := gen.(disabledGenerator); !ok {
		t.Fatalf("unknown provider should disable generation, got %T", gen)
	}
}

func TestOpenAIGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" || r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		var req ChatCompletionRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "test-model" || len(req.Messages) != 1 {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "echo: " + req.Messages[0].Content}},
			},
		})
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(config.AIConfig{BaseURL: srv.URL + "/", APIKey: "secret", Model: "test-model"})
	gen.client = srv.Client()

	out, err := gen.Generate(context.Background(), "ping")
	if err != nil || out != "echo: ping" {
		t.Fatalf("generate = %q, %v", out, err)
	}

	gen.config.APIKey = "wrong"
	if _, err := gen.Generate(context.Background(), "ping"); err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("error status not reported: %v", err)
	}
}

func TestOllamaGenerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":    req.Model,
			"response": "ollama says " + req.Prompt,
			"done":     true,
		})
	}))
	defer srv.Close()

	gen, err := NewOllamaGenerator(config.AIConfig{BaseURL: srv.URL, Model: "llama3"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := gen.Generate(context.Background(), "hi")
	if err != nil || out != "ollama says hi" {
		t.Fatalf("generate = %q, %v", out, err)
	}

	if _, err := NewOllamaGenerator(config.AIConfig{BaseURL: "::not a url"}); err == nil {
		t.Fatalf("invalid base url accepted")
	}
}

func TestDecodeAIJSONStripsFences(t *testing.T) {
	var out []rawMatch
	err := decodeAIJSON(context.Background(), matchSchema, "```json\n[{\"user_id\": 3}]\n```", &out)
	if err != nil || len(out) != 1 || out[0].UserID != 3 {
		t.Fatalf("decode = %+v, %v", out, err)
	}

	err = decodeAIJSON(context.Background(), matchSchema, `[{"user_id": "three"}]`, &out)
	if !errors.Is(err, util.ErrMalformedAIResponse) {
		t.Fatalf("schema violation err = %v", err)
	}
}
