// Package openai implements port.ContentAnalyzer using the OpenAI Chat
// Completions API with an ordered candidate-model fallback loop.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"champdoc/internal/analysis"
	"champdoc/internal/config"
	"champdoc/internal/domain"
	"champdoc/internal/rubric"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Analyzer validates extracted document text against the rubric by asking a
// hosted model for a structured verdict, trying candidate models in order.
type Analyzer struct {
	apiKey    string
	models    []string
	endpoint  string
	maxTokens int
	client    *http.Client
	schema    *jsonschema.Schema
	prompt    string
}

// NewAnalyzer creates an OpenAI-backed analyzer from config.
func NewAnalyzer(cfg *config.AnalysisConfig) (*Analyzer, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = apiURL
	}
	return newAnalyzer(cfg, endpoint)
}

// NewAnalyzerWithEndpoint creates an analyzer pointing at a custom API
// endpoint (for testing).
func NewAnalyzerWithEndpoint(cfg *config.AnalysisConfig, endpoint string) (*Analyzer, error) {
	return newAnalyzer(cfg, endpoint)
}

func newAnalyzer(cfg *config.AnalysisConfig, endpoint string) (*Analyzer, error) {
	models := cfg.Models
	if len(models) == 0 {
		models = []string{"gpt-4.1", "gpt-4.1-mini", "gpt-4"}
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	schema, err := compileResponseSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling response schema: %w", err)
	}

	return &Analyzer{
		apiKey:    cfg.APIKey,
		models:    models,
		endpoint:  endpoint,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
		schema:    schema,
		prompt:    rubric.SystemPrompt(),
	}, nil
}

// Analyze tries each candidate model in order and returns the first
// schema-valid result. Transport failures and malformed replies both move
// the loop to the next candidate; when every candidate has failed the
// per-model reasons are returned in an ExhaustedError.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	attempts := make([]analysis.ModelAttempt, 0, len(a.models))

	for _, model := range a.models {
		result, err := a.analyzeWithModel(ctx, model, text)
		if err == nil {
			return result, nil
		}
		log.Printf("openai.Analyzer: model %s failed: %v", model, err)
		attempts = append(attempts, analysis.ModelAttempt{Model: model, Err: err})
	}

	return nil, &analysis.ExhaustedError{Attempts: attempts}
}

// chatRequest models the Chat Completions request body.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	MaxTokens      int               `json:"max_completion_tokens"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse models the Chat Completions response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (a *Analyzer) analyzeWithModel(ctx context.Context, model, text string) (*domain.AnalysisResult, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: a.prompt},
			{Role: "user", Content: text},
		},
		MaxTokens:      a.maxTokens,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling analysis API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &analysis.RemoteError{Model: model, Status: resp.StatusCode, Body: string(respBody)}
	}

	return a.parseResponse(respBody, model)
}

func (a *Analyzer) parseResponse(body []byte, model string) (*domain.AnalysisResult, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &analysis.MalformedResponseError{Model: model, Err: err, Raw: truncate(string(body), 500)}
	}
	if len(resp.Choices) == 0 {
		return nil, &analysis.MalformedResponseError{
			Model: model,
			Err:   fmt.Errorf("empty response from API: no choices"),
		}
	}

	content := resp.Choices[0].Message.Content

	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, &analysis.MalformedResponseError{Model: model, Err: err, Raw: truncate(content, 500)}
	}
	if err := a.schema.Validate(raw); err != nil {
		return nil, &analysis.MalformedResponseError{Model: model, Err: err, Raw: truncate(content, 500)}
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, &analysis.MalformedResponseError{Model: model, Err: err, Raw: truncate(content, 500)}
	}

	// Schema guarantees presence; the lists must still never be nil for callers.
	if result.MissingCodes == nil {
		result.MissingCodes = []string{}
	}
	if result.InvalidCodes == nil {
		result.InvalidCodes = []domain.InvalidCode{}
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	result.ModelUsed = model

	return &result, nil
}

func compileResponseSchema() (*jsonschema.Schema, error) {
	b, err := json.Marshal(rubric.ResponseSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("analysis_result.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile("analysis_result.json")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
