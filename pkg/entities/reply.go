package entities

// Reply is the outcome the dispatcher produced for one update. At most one
// reply is delivered per update.
type Reply struct {
	Kind ReplyKind
	Text string
	Note string
}

type ReplyKind string

const (
	// ReplyKindNone means no reply is sent for the update
	ReplyKindNone ReplyKind = "none"

	// ReplyKindCommand is a fixed response to a recognized command
	ReplyKindCommand ReplyKind = "command"

	// ReplyKindCompletion is generated text from the AI endpoint
	ReplyKindCompletion ReplyKind = "completion"

	// ReplyKindFallback is the fixed text substituted for a failed completion
	ReplyKindFallback ReplyKind = "fallback"
)
