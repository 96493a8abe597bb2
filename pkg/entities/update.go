package entities

// Update is the normalized representation of one inbound chat event. It is
// built once per request from the raw webhook payload and is never mutated
// afterwards.
type Update struct {
	// ChatID is the destination for any reply
	ChatID string

	// Text is the trimmed message text, may be empty
	Text string

	// UserID is the sender id, nil when the payload carries none
	UserID *int64
}

// IsValid reports whether the update can be dispatched. Invalid updates are
// dropped without a reply.
func (u Update) IsValid() bool {
	return u.ChatID != "" && u.Text != ""
}
