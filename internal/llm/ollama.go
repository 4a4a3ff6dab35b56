// Package llm talks to the external text-generation service. The service is
// treated as unreliable: network failures, timeouts, non-2xx responses and
// empty payloads are all normal operating conditions for callers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Config struct {
	BaseURL     string
	Model       string
	Temperature float64
	KeepAlive   string
	Timeout     time.Duration
}

// OllamaClient calls an Ollama-compatible /api/generate endpoint. Streaming is
// disabled, temperature is pinned by configuration (0 in production for
// maximal determinism) and keep_alive keeps the model warm between calls.
type OllamaClient struct {
	baseURL     string
	model       string
	temperature float64
	keepAlive   string
	client      *http.Client
}

func NewOllamaClient(cfg Config) (*OllamaClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "llama3.1:8b"
	}
	keepAlive := strings.TrimSpace(cfg.KeepAlive)
	if keepAlive == "" {
		keepAlive = "10m"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaClient{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		model:       model,
		temperature: cfg.Temperature,
		keepAlive:   keepAlive,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

type generatePayload struct {
	Model     string         `json:"model"`
	Prompt    string         `json:"prompt"`
	Stream    bool           `json:"stream"`
	KeepAlive string         `json:"keep_alive"`
	Options   map[string]any `json:"options"`
}

// Generate sends the prompt and returns the raw generated text. Any transport
// or protocol problem, including a well-formed-but-empty payload, is returned
// as an error for the caller to map to absence.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generatePayload{
		Model:     c.model,
		Prompt:    prompt,
		Stream:    false,
		KeepAlive: c.keepAlive,
		Options:   map[string]any{"temperature": c.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request generation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("generation failed status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", fmt.Errorf("model returned empty response")
	}
	return parsed.Response, nil
}
