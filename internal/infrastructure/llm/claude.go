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

	"fedwatch/internal/config"
	"fedwatch/internal/domain"
	"fedwatch/internal/ports"
)

const anthropicVersion = "2023-06-01"

// ClaudeClient implements ports.Analyzer against the Anthropic messages API.
type ClaudeClient struct {
	endpoint   string
	model      string
	apiKey     string
	maxTokens  int
	httpClient *http.Client
}

var _ ports.Analyzer = (*ClaudeClient)(nil)

// NewClaudeClient builds a client from configuration.
func NewClaudeClient(cfg config.ClaudeConfig) *ClaudeClient {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 64000
	}
	return &ClaudeClient{
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// Analyze sends the aligned cycle plus trailing history to the model and
// decodes the structured result. Any transport, extraction, or schema failure
// is terminal for the run; nothing is retried here.
func (c *ClaudeClient) Analyze(ctx context.Context, cycle domain.AlignedCycle, history []domain.HistoricalVerdict) (*domain.AnalysisResult, error) {
	if c == nil {
		return nil, fmt.Errorf("claude client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return nil, fmt.Errorf("claude client misconfigured")
	}

	userPrompt, err := buildUserPrompt(cycle, history)
	if err != nil {
		return nil, fmt.Errorf("build analysis prompt: %w", err)
	}

	body, err := json.Marshal(map[string]any{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"system": []map[string]any{
			{
				"type":          "text",
				"text":          systemPrompt,
				"cache_control": map[string]string{"type": "ephemeral"},
			},
		},
		"messages": []map[string]string{
			{"role": "user", "content": userPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal claude payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("claude error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode claude response: %w", err)
	}

	// Thinking blocks are skipped; only text blocks carry the answer.
	var text strings.Builder
	for _, block := range decoded.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("claude response contains no text blocks")
	}

	var result domain.AnalysisResult
	raw := StripCodeFences(text.String())
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("parse analysis output: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis output: %w", err)
	}
	return &result, nil
}

// buildUserPrompt assembles the document bodies and history in the fixed
// order the analysis expects.
func buildUserPrompt(cycle domain.AlignedCycle, history []domain.HistoricalVerdict) (string, error) {
	historyJSON, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}

	return fmt.Sprintf(
		"Minutes: %s\nPolicy Statement: %s\nImplementation Notes: %s\nProjections Notes: %s\nHistorical Data: %s",
		cycle.Slot(domain.DocMinutes).Body,
		cycle.Slot(domain.DocStatement).Body,
		cycle.Slot(domain.DocImplementationNote).Body,
		cycle.Slot(domain.DocProjectionNote).Body,
		historyJSON,
	), nil
}

// StripCodeFences unwraps a ```json ... ``` (or bare ```) fenced block,
// returning the input trimmed when no fence is present.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
	} else {
		return s
	}

	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}
