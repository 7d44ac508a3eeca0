package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// HTTPGenerator calls a text-completion endpoint over HTTP. The request and
// response shapes follow the common completion-API convention: a prompt in,
// a generated text out.
type HTTPGenerator struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewHTTPGenerator creates a generator for the given completion endpoint.
// PRE: endpoint is a reachable URL; apiKey may be empty for local endpoints
// POST: Returns a ready-to-use generator with a bounded request timeout
func NewHTTPGenerator(endpoint, apiKey, model string) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type completionRequest struct {
	Model     string `json:"model,omitempty"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// OpeningStatement generates a debate opening statement.
// PRE: topic is non-empty
// POST: Returns generated text, or an error for the caller to map
func (g *HTTPGenerator) OpeningStatement(ctx context.Context, topic string, cfg DebateConfig) (string, error) {
	difficulty := cfg.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	side := cfg.Role
	if side == "" {
		side = "against"
	}
	prompt := fmt.Sprintf(
		"You are a %s-level debate opponent arguing %s the motion %q. Give a two-sentence opening statement.",
		difficulty, side, topic)
	return g.complete(ctx, prompt)
}

// InterviewQuestion generates one interview question for a job role.
// PRE: jobRole is non-empty
// POST: Returns generated text, or an error for the caller to map
func (g *HTTPGenerator) InterviewQuestion(ctx context.Context, jobRole string) (string, error) {
	prompt := fmt.Sprintf(
		"You are interviewing a candidate for a %s position. Ask one concise, challenging interview question.",
		jobRole)
	return g.complete(ctx, prompt)
}

func (g *HTTPGenerator) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{Model: g.model, Prompt: prompt, MaxTokens: 120})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Warn("genai_request_failed", "error", err)
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("genai_bad_status", "status", resp.StatusCode)
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	return out.Text, nil
}
