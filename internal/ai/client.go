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
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

var ErrNotConfigured = errors.New("GEMINI_API_KEY is not configured")

// APIError is a non-2xx answer from the model endpoint.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: status %d: %s", e.Status, e.Message)
}

type GeminiClient struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client

	retryCfg retry.Config
	timeout  time.Duration
}

type Option func(*GeminiClient)

func WithBaseURL(u string) Option {
	return func(c *GeminiClient) { c.BaseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *GeminiClient) { c.HTTP = h }
}

func WithRetry(attempts int, initialDelay time.Duration) Option {
	return func(c *GeminiClient) {
		c.retryCfg.MaxAttempts = attempts
		c.retryCfg.InitialDelay = initialDelay
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *GeminiClient) { c.timeout = d }
}

func New(apiKey, model string, opts ...Option) *GeminiClient {
	c := &GeminiClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{},
		retryCfg: retry.Config{
			MaxAttempts:   2,
			InitialDelay:  time.Second,
			BackoffPolicy: retry.BackoffExponential,
		},
		timeout: 120 * time.Second,
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// generate sends one user turn and returns the concatenated text answer.
// Transport failures and non-2xx answers are retried with backoff.
func (c *GeminiClient) generate(ctx context.Context, parts []part, temperature float64, maxTokens int) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}

	var req generateRequest
	req.Contents = []content{{Role: "user", Parts: parts}}
	req.GenerationConfig.Temperature = temperature
	req.GenerationConfig.MaxOutputTokens = maxTokens

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	r := retry.New[string](c.retryCfg)
	t := timeout.New[string](timeout.Config{DefaultTimeout: c.timeout})

	return t.Execute(ctx, c.timeout, func(ctx context.Context) (string, error) {
		return r.Do(ctx, func(ctx context.Context) (string, error) {
			return c.post(ctx, body)
		})
	})
}

func (c *GeminiClient) post(ctx context.Context, body []byte) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if res.StatusCode/100 != 2 {
			return "", &APIError{Status: res.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if res.StatusCode/100 != 2 || out.Error != nil {
		msg := http.StatusText(res.StatusCode)
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", &APIError{Status: res.StatusCode, Message: msg}
	}

	if len(out.Candidates) == 0 {
		return "", errors.New("gemini: no candidates in response")
	}

	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini: empty answer (finish reason %q)", out.Candidates[0].FinishReason)
	}
	return b.String(), nil
}
