package webhook

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"gemini-relay-bot/app/telegram"
	e "gemini-relay-bot/pkg/entities"
	"gemini-relay-bot/pkg/logger"
)

// Dispatcher handles one normalized update.
type Dispatcher interface {
	HandleUpdate(ctx context.Context, u e.Update)
}

// Handler is the inbound HTTP boundary. Only POST is accepted; once a request
// body has been read the response is always 200, even when processing fails,
// so the caller never retries delivery. Unhandled panics are contained here.
type Handler struct {
	// Log is a logger
	Log logger.Logger

	// Dispatcher is the dispatch core
	Dispatcher Dispatcher
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.Log.With("request_id", uuid.NewString())

	if r.Method != http.MethodPost {
		log.Warn("rejecting webhook request", "method", r.Method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic while handling update", "error", rec, "stack", string(debug.Stack()))
			sentry.CurrentHub().Recover(rec)
			respondOK(w)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		log.Warn("reading webhook body", "error", err)
		respondOK(w)
		return
	}

	if len(bytes.TrimSpace(body)) == 0 {
		log.Debug("empty webhook body")
		respondOK(w)
		return
	}

	log.Debug("received update payload", "size", len(body))

	h.Dispatcher.HandleUpdate(r.Context(), telegram.ParseUpdate(body))
	respondOK(w)
}

func respondOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
