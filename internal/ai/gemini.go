// Package ai provides the generative-model backends used by flash-ui and
// the rate-limit aware retry wrapper around them.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/CodexForgeBR/flash-ui/internal/parser"
)

// DefaultGeminiBaseURL is the public Gemini REST endpoint.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient implements Generator against the Gemini REST API.
type GeminiClient struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGeminiClient creates a Gemini client using the default endpoint.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    DefaultGeminiBaseURL,
		HTTPClient: &http.Client{},
	}
}

// APIError is a non-success response from the Gemini API. Its message
// carries both the HTTP code and the API status, so rate-limit responses
// contain "429" and "RESOURCE_EXHAUSTED".
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini API error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini API error %d: %s", e.StatusCode, e.Message)
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

// geminiResponse is shared by unary responses and stream events. Part text
// is kept raw so that absent or non-string values can be told apart.
type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      *geminiResponseContent `json:"content"`
	FinishReason string                 `json:"finishReason"`
}

type geminiResponseContent struct {
	Parts []geminiResponsePart `json:"parts"`
}

type geminiResponsePart struct {
	Text    json.RawMessage `json:"text"`
	Thought bool            `json:"thought"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// text concatenates the string text of the first candidate's parts,
// skipping thought parts. ok is false when no part carried string text.
func (r *geminiResponse) text() (string, bool) {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return "", false
	}

	var sb strings.Builder
	found := false
	for _, part := range r.Candidates[0].Content.Parts {
		if part.Thought || len(part.Text) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(part.Text, &s); err != nil {
			continue
		}
		sb.WriteString(s)
		found = true
	}
	return sb.String(), found
}

// Generate implements Generator using :generateContent.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := c.do(ctx, req, "generateContent", "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal gemini response: %w", err)
	}
	if apiResp.Error != nil {
		return "", apiResp.Error.toAPIError(resp.StatusCode)
	}

	text, _ := apiResp.text()
	return text, nil
}

// Stream implements Generator using :streamGenerateContent with SSE framing.
func (c *GeminiClient) Stream(ctx context.Context, req Request) (parser.Source, error) {
	resp, err := c.do(ctx, req, "streamGenerateContent", "alt=sse")
	if err != nil {
		return nil, err
	}
	return newSSESource(resp.Body), nil
}

// do sends the request and converts non-200 responses into *APIError.
// On success the caller owns resp.Body.
func (c *GeminiClient) do(ctx context.Context, req Request, method, query string) (*http.Response, error) {
	model := req.Model
	if model == "" {
		model = c.Model
	}
	if model == "" {
		return nil, errors.New("gemini: no model configured")
	}
	if c.APIKey == "" {
		return nil, errors.New("gemini: API key is not configured")
	}

	apiReq := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: req.Prompt}},
		}},
	}
	if req.Temperature != nil {
		apiReq.GenerationConfig = &geminiGenerationConfig{Temperature: req.Temperature}
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultGeminiBaseURL
	}
	url := fmt.Sprintf("%s/%s:%s", strings.TrimRight(base, "/"), model, method)
	if query != "" {
		url += "?" + query
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, errorFromResponse(resp)
	}
	return resp, nil
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var apiResp geminiResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
		return apiResp.Error.toAPIError(resp.StatusCode)
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func (e *geminiError) toAPIError(httpStatus int) *APIError {
	code := e.Code
	if code == 0 {
		code = httpStatus
	}
	return &APIError{StatusCode: code, Status: e.Status, Message: e.Message}
}
