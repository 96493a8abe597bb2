package gemini

import (
	"encoding/json"
	"net/http"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Request is the generateContent request body.
type Request struct {
	Contents          []Content       `json:"contents"`
	GenerationConfig  json.RawMessage `json:"generationConfig,omitempty"`
	Tools             []Tool          `json:"tools,omitempty"`
	SystemInstruction *Content        `json:"systemInstruction,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// Tool maps a tool name to its configuration object. An enabled tool with no
// parameters must encode as a literal {}, never as an empty list.
type Tool map[string]json.RawMessage

const RoleUser = "user"

// Response is the generateContent response body. A populated Error field is a
// failure even on HTTP 200.
type Response struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
