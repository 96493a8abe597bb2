package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	DefaultModel   = "gemini-2.0-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Client sends prompts to the generateContent endpoint. Every outcome comes
// back as a Result; the caller never sees an error value or a panic.
type Client struct {
	// APIKey authenticates the request via query parameter. Empty means the
	// client is not configured and no request is attempted.
	APIKey string

	// Model is the model name, DefaultModel when empty
	Model string

	// ConfigPath points at the behavior config JSON file
	ConfigPath string

	// HTTPClient is swappable for tests; defaults to a 60s-timeout client
	HTTPClient HTTPClient

	// BaseURL overrides the public endpoint, used by tests
	BaseURL string

	once     sync.Once
	behavior *Behavior
	loadErr  error
}

// Generate sends prompt as the sole user turn together with the configured
// system instruction, tools and generation parameters, and extracts the first
// candidate's first text part.
func (c *Client) Generate(ctx context.Context, prompt string) Result {
	if c.APIKey == "" {
		return Result{Kind: KindNotConfigured, Detail: "api key is not set"}
	}

	behavior, err := c.loadBehavior()
	if err != nil {
		return Result{Kind: KindNotConfigured, Detail: fmt.Sprintf("loading behavior config: %v", err)}
	}

	request := Request{
		Contents:         []Content{{Role: RoleUser, Parts: []Part{{Text: prompt}}}},
		GenerationConfig: behavior.GenerationConfig,
		Tools:            normalizeTools(behavior.Tools),
	}
	if behavior.SystemInstruction != "" {
		request.SystemInstruction = &Content{Parts: []Part{{Text: behavior.SystemInstruction}}}
	}

	body, err := json.Marshal(request)
	if err != nil {
		return Result{Kind: KindTransport, Detail: fmt.Sprintf("marshaling body: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return Result{Kind: KindTransport, Detail: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient().Do(req)
	if err != nil {
		return Result{Kind: KindTransport, Detail: fmt.Sprintf("doing request: %v", err)}
	}
	defer func() { _ = res.Body.Close() }()

	resBody, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return Result{Kind: KindTransport, Detail: fmt.Sprintf("reading response body: %v", err)}
	}

	if res.StatusCode != http.StatusOK {
		return Result{Kind: KindTransport, Detail: fmt.Sprintf("unexpected status code: %d: %s", res.StatusCode, resBody)}
	}

	var response Response
	if err := json.Unmarshal(resBody, &response); err != nil {
		return Result{Kind: KindTransport, Detail: fmt.Sprintf("decoding response: %v", err)}
	}

	if response.Error != nil {
		return Result{Kind: KindRemoteError, Detail: fmt.Sprintf("api error %d %s: %s", response.Error.Code, response.Error.Status, response.Error.Message)}
	}

	text := firstCandidateText(response)
	if text == "" {
		return Result{Kind: KindNoContent, Detail: "no candidate text in response"}
	}

	return Result{Kind: KindOK, Text: text}
}

func (c *Client) loadBehavior() (*Behavior, error) {
	c.once.Do(func() {
		c.behavior, c.loadErr = LoadBehavior(c.ConfigPath)
	})
	return c.behavior, c.loadErr
}

func (c *Client) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", base, model, url.QueryEscape(c.APIKey))
}

func (c *Client) httpClient() HTTPClient {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

func firstCandidateText(response Response) string {
	if len(response.Candidates) == 0 {
		return ""
	}
	parts := response.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

var defaultHTTPClient = &http.Client{Timeout: 60 * time.Second}
