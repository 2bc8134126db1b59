// Package mistral implements port.TextExtractor using the Mistral OCR API.
package mistral

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"champdoc/internal/config"
	"champdoc/internal/domain"
	"champdoc/internal/ocr"
	"champdoc/internal/port"
)

const ocrPath = "/v1/ocr"

// Client calls the Mistral OCR endpoint to extract document text.
type Client struct {
	apiKey   string
	model    string
	endpoint string
	maxBytes int64
	client   *http.Client
}

// NewClient creates a Mistral OCR client from config.
func NewClient(cfg *config.OCRConfig) *Client {
	return newClient(cfg, strings.TrimRight(cfg.Endpoint, "/")+ocrPath)
}

// NewClientWithEndpoint creates a client pointing at a custom URL (for testing).
func NewClientWithEndpoint(cfg *config.OCRConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.OCRConfig, endpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "mistral-ocr-latest"
	}
	maxMB := cfg.MaxFileSizeMB
	if maxMB == 0 {
		maxMB = 10
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		maxBytes: maxMB * 1024 * 1024,
		client:   &http.Client{Timeout: timeout},
	}
}

// ocrRequest models the Mistral OCR request body.
type ocrRequest struct {
	Model              string      `json:"model"`
	Document           ocrDocument `json:"document"`
	IncludeImageBase64 bool        `json:"include_image_base64"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

// ocrResponse models the Mistral OCR response body.
type ocrResponse struct {
	Pages []ocrPage `json:"pages"`
}

type ocrPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

// Extract validates the document locally, then sends it as a base64 data URL
// and joins the returned page texts in page order separated by blank lines.
func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	contentType, err := c.preflight(input)
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(input.FileBytes)
	reqBody := ocrRequest{
		Model: c.model,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: fmt.Sprintf("data:%s;base64,%s", contentType, encoded),
		},
		IncludeImageBase64: false,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ocr API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ocr.RemoteError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed ocrResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling ocr response: %w", err)
	}

	text := joinPages(parsed.Pages)
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyOCRResult
	}

	return &port.ExtractOutput{
		Text:      text,
		PageCount: len(parsed.Pages),
		ModelUsed: c.model,
	}, nil
}

// preflight rejects unsupported extensions and oversized payloads before any
// network I/O, and resolves the content type to send.
func (c *Client) preflight(input port.ExtractInput) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}
	if int64(len(input.FileBytes)) > c.maxBytes {
		return "", domain.ErrFileTooLarge
	}
	contentType := input.ContentType
	if contentType == "" {
		contentType = domain.AllowedFileTypes[fileType]
	}
	return contentType, nil
}

// joinPages concatenates non-empty page texts in index order, separated by
// blank lines.
func joinPages(pages []ocrPage) string {
	sorted := make([]ocrPage, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	parts := make([]string, 0, len(sorted))
	for _, p := range sorted {
		if strings.TrimSpace(p.Markdown) == "" {
			continue
		}
		parts = append(parts, p.Markdown)
	}
	return strings.Join(parts, "\n\n")
}
