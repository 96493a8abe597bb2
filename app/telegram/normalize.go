package telegram

import (
	"encoding/json"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	e "gemini-relay-bot/pkg/entities"
)

// ParseUpdate converts a raw webhook payload into a normalized update. A new
// message wins over an edited one when both are present. Malformed input is
// never an error: every missing field degrades to a zero value and the caller
// gates on IsValid.
func ParseUpdate(raw []byte) e.Update {
	var update tgbotapi.Update
	_ = json.Unmarshal(raw, &update)

	message := update.Message
	if message == nil {
		message = update.EditedMessage
	}
	if message == nil {
		return e.Update{}
	}

	out := e.Update{Text: strings.TrimSpace(message.Text)}
	if message.Chat != nil {
		out.ChatID = takeChatID(message.Chat)
	}
	if message.From != nil {
		userID := message.From.ID
		out.UserID = &userID
	}

	return out
}

func takeChatID(chat *tgbotapi.Chat) string {
	return strconv.FormatInt(chat.ID, 10)
}
