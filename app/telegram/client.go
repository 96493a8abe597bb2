package telegram

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

const (
	defaultBaseURL = "https://api.telegram.org"

	// DefaultParseMode is applied when the caller does not pick one
	DefaultParseMode = "HTML"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client posts messages through the Bot API sendMessage method. Every outcome
// is reported through DeliveryResult; Send never panics past its boundary.
type Client struct {
	// Token is the bot token embedded in the request path. Empty means
	// delivery fails locally without a network call.
	Token string

	// BaseURL overrides the public endpoint, used by tests
	BaseURL string

	// HTTPClient is swappable for tests; defaults to a 30s-timeout client
	HTTPClient HTTPClient
}

// DeliveryResult is the outcome of one send attempt. Detail carries diagnostic
// context on failure and is never shown to the chat surface.
type DeliveryResult struct {
	Delivered bool
	MessageID int
	Detail    string
}

type sendMessageRequest struct {
	ChatID              string `json:"chat_id"`
	Text                string `json:"text"`
	ParseMode           string `json:"parse_mode,omitempty"`
	DisableNotification bool   `json:"disable_notification"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int `json:"message_id"`
	} `json:"result"`
}

func (c *Client) Send(ctx context.Context, chatID, text string) DeliveryResult {
	return c.SendWithMode(ctx, chatID, text, DefaultParseMode)
}

// SendWithMode delivers text to chatID with an explicit parse mode. Pass an
// empty mode to send plain text, e.g. for operator notifications that may
// contain markup-hostile payload fragments.
func (c *Client) SendWithMode(ctx context.Context, chatID, text, parseMode string) DeliveryResult {
	if strings.TrimSpace(c.Token) == "" {
		return DeliveryResult{Detail: "bot token is not set"}
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return DeliveryResult{Detail: fmt.Sprintf("marshaling body: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return DeliveryResult{Detail: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient().Do(req)
	if err != nil {
		return DeliveryResult{Detail: fmt.Sprintf("doing request: %v", err)}
	}
	defer func() { _ = res.Body.Close() }()

	resBody, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return DeliveryResult{Detail: fmt.Sprintf("reading response body: %v", err)}
	}

	if res.StatusCode != http.StatusOK {
		return DeliveryResult{Detail: fmt.Sprintf("unexpected status code: %d: %s", res.StatusCode, resBody)}
	}

	var response sendMessageResponse
	if err := json.Unmarshal(resBody, &response); err != nil {
		return DeliveryResult{Detail: fmt.Sprintf("decoding response: %v", err)}
	}

	if !response.OK {
		return DeliveryResult{Detail: "telegram api error: " + response.Description}
	}

	return DeliveryResult{Delivered: true, MessageID: response.Result.MessageID}
}

func (c *Client) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return fmt.Sprintf("%s/bot%s/sendMessage", base, c.Token)
}

func (c *Client) httpClient() HTTPClient {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}
