package gemini

// ResultKind classifies the outcome of a completion attempt. The dispatcher
// matches on the kind to pick user-facing fallback text; Detail stays in logs.
type ResultKind string

const (
	// KindOK carries generated text
	KindOK ResultKind = "ok"

	// KindNotConfigured means the API key or the behavior config is missing;
	// no network request was attempted
	KindNotConfigured ResultKind = "not_configured"

	// KindTransport is a network failure or a non-200 status
	KindTransport ResultKind = "transport_failure"

	// KindRemoteError is an HTTP 200 body carrying an error field
	KindRemoteError ResultKind = "remote_error"

	// KindNoContent is an HTTP 200 body without candidate text, e.g. after a
	// safety block
	KindNoContent ResultKind = "no_content"
)

// Result is the tagged outcome of Generate. Generate never returns an error
// and never panics past its boundary; every failure path is a kind.
type Result struct {
	Kind   ResultKind
	Text   string
	Detail string
}

func (r Result) OK() bool {
	return r.Kind == KindOK
}
