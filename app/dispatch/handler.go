package dispatch

import (
	"context"
	"strings"

	"gemini-relay-bot/app/telegram"
	e "gemini-relay-bot/pkg/entities"
	"gemini-relay-bot/pkg/gemini"
	"gemini-relay-bot/pkg/logger"
)

const commandPrefix = "/"

const (
	welcomeText = "Hi! Send me any question and I will ask Gemini for you."
	helpText    = "Send a message and I will reply with a Gemini completion.\n\n" +
		"/start - greeting\n/help - this message"
	notConfiguredText = "The bot is not configured yet. Please try again later."
	failureText       = "Sorry, I could not get an answer right now. Please try again later."
)

// Generator produces a completion for a free-form inquiry.
type Generator interface {
	Generate(ctx context.Context, prompt string) gemini.Result
}

// Messenger delivers a reply to a chat.
type Messenger interface {
	Send(ctx context.Context, chatID, text string) telegram.DeliveryResult
}

// Journal records handled updates for later inspection. It is write-only on
// the request path.
type Journal interface {
	SaveUpdate(ctx context.Context, u e.Update, reply e.Reply) error
}

// Handler is the dispatch core. It validates an update, resolves recognized
// commands locally, asks the AI client for everything else and submits at most
// one reply for delivery. It never returns a failure to its caller: remote
// failures become fixed fallback text and delivery failures are logged only.
type Handler struct {
	// Log is a logger
	Log logger.Logger

	// AI is the completion client
	AI Generator

	// Messenger is the outbound messaging client
	Messenger Messenger

	// Journal is optional; nil disables journaling
	Journal Journal
}

// HandleUpdate processes one update, called at most once per inbound request.
func (h *Handler) HandleUpdate(ctx context.Context, u e.Update) {
	log := h.Log.With("chat_id", u.ChatID)

	if !u.IsValid() {
		log.Info("dropping invalid update", "has_text", u.Text != "")
		return
	}

	reply := h.buildReply(ctx, u)
	h.record(ctx, u, reply)

	if reply.Kind == e.ReplyKindNone || reply.Text == "" {
		return
	}

	res := h.Messenger.Send(ctx, u.ChatID, reply.Text)
	if !res.Delivered {
		log.Error("delivering reply", "kind", reply.Kind, "detail", res.Detail)
		return
	}

	log.Info("reply delivered", "kind", reply.Kind, "tg_message_id", res.MessageID)
}

func (h *Handler) buildReply(ctx context.Context, u e.Update) e.Reply {
	if text, ok := commandReply(u.Text); ok {
		return e.Reply{Kind: e.ReplyKindCommand, Text: text}
	}

	result := h.AI.Generate(ctx, u.Text)
	if result.OK() {
		return e.Reply{Kind: e.ReplyKindCompletion, Text: result.Text}
	}

	h.Log.Error("getting completion", "chat_id", u.ChatID, "kind", result.Kind, "detail", result.Detail)

	return e.Reply{
		Kind: e.ReplyKindFallback,
		Text: fallbackText(result.Kind),
		Note: string(result.Kind),
	}
}

// commandReply resolves recognized commands. Matching is on the first
// whitespace-delimited token, so a recognized command keeps its command
// semantics even with trailing arguments; unrecognized commands fall through
// to the inquiry path with the prefix intact.
func commandReply(text string) (string, bool) {
	if !strings.HasPrefix(text, commandPrefix) {
		return "", false
	}

	name := strings.Fields(text)[0]

	// group chats address commands as /start@botname
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}

	switch name {
	case "/start":
		return welcomeText, true
	case "/help":
		return helpText, true
	}

	return "", false
}

func fallbackText(kind gemini.ResultKind) string {
	if kind == gemini.KindNotConfigured {
		return notConfiguredText
	}
	return failureText
}

func (h *Handler) record(ctx context.Context, u e.Update, reply e.Reply) {
	if h.Journal == nil {
		return
	}
	if err := h.Journal.SaveUpdate(ctx, u, reply); err != nil {
		h.Log.Warn("journaling update", "chat_id", u.ChatID, "error", err)
	}
}
