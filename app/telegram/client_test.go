package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubHTTPClient struct {
	calls    int
	status   int
	body     string
	err      error
	lastURL  string
	lastBody []byte
}

func (s *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	s.lastURL = req.URL.String()
	if req.Body != nil {
		s.lastBody, _ = io.ReadAll(req.Body)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func TestSend_MissingTokenFailsLocally(t *testing.T) {
	stub := &stubHTTPClient{}
	c := &Client{HTTPClient: stub}

	res := c.Send(context.Background(), "123", "hello")

	require.False(t, res.Delivered)
	require.Contains(t, res.Detail, "token")
	require.Zero(t, stub.calls)
}

func TestSend_Success(t *testing.T) {
	stub := &stubHTTPClient{
		status: http.StatusOK,
		body:   `{"ok":true,"result":{"message_id":77}}`,
	}
	c := &Client{Token: "123:abc", HTTPClient: stub}

	res := c.Send(context.Background(), "555", "hello there")

	require.True(t, res.Delivered)
	require.Equal(t, 77, res.MessageID)
	require.Empty(t, res.Detail)
	require.Contains(t, stub.lastURL, "/bot123:abc/sendMessage")

	var sent map[string]any
	require.NoError(t, json.Unmarshal(stub.lastBody, &sent))
	require.Equal(t, "555", sent["chat_id"])
	require.Equal(t, "hello there", sent["text"])
	require.Equal(t, DefaultParseMode, sent["parse_mode"])
}

func TestSendWithMode_EmptyModeOmitsParseMode(t *testing.T) {
	stub := &stubHTTPClient{status: http.StatusOK, body: `{"ok":true,"result":{"message_id":1}}`}
	c := &Client{Token: "123:abc", HTTPClient: stub}

	res := c.SendWithMode(context.Background(), "555", "plain", "")

	require.True(t, res.Delivered)
	require.NotContains(t, string(stub.lastBody), "parse_mode")
}

func TestSend_TransportError(t *testing.T) {
	stub := &stubHTTPClient{err: errors.New("dial tcp: timeout")}
	c := &Client{Token: "123:abc", HTTPClient: stub}

	res := c.Send(context.Background(), "555", "hello")

	require.False(t, res.Delivered)
	require.Contains(t, res.Detail, "timeout")
}

func TestSend_Non200Status(t *testing.T) {
	stub := &stubHTTPClient{status: http.StatusBadGateway, body: "bad gateway"}
	c := &Client{Token: "123:abc", HTTPClient: stub}

	res := c.Send(context.Background(), "555", "hello")

	require.False(t, res.Delivered)
	require.Contains(t, res.Detail, "502")
}

func TestSend_APIErrorBody(t *testing.T) {
	stub := &stubHTTPClient{
		status: http.StatusOK,
		body:   `{"ok":false,"description":"Bad Request: chat not found"}`,
	}
	c := &Client{Token: "123:abc", HTTPClient: stub}

	res := c.Send(context.Background(), "555", "hello")

	require.False(t, res.Delivered)
	require.Contains(t, res.Detail, "chat not found")
}
