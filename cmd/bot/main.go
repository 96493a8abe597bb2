package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/jessevdk/go-flags"

	"gemini-relay-bot/app/dispatch"
	"gemini-relay-bot/app/storage"
	"gemini-relay-bot/app/telegram"
	"gemini-relay-bot/app/webhook"
	"gemini-relay-bot/pkg/config"
	"gemini-relay-bot/pkg/gemini"
	"gemini-relay-bot/pkg/logger"
)

var opts struct {
	Addr         string `long:"addr" env:"ADDR" default:":8080" description:"address for the webhook server to listen on"`
	WebhookPath  string `long:"webhook-path" env:"WEBHOOK_PATH" default:"/telegram/webhook" description:"path the webhook is served on"`
	DBPath       string `long:"db-path" env:"DB_PATH" description:"path to the sqlite journal file, empty disables journaling"`
	AIConfigPath string `long:"ai-config" env:"AI_CONFIG_PATH" default:"./config/gemini.json" description:"path to the gemini behavior config"`
	Model        string `long:"gemini-model" env:"GEMINI_MODEL" description:"gemini model name override"`
	EnvFile      string `long:"env-file" env:"ENV_FILE" default:".env" description:"optional dotenv overlay for local development"`
	Debug        bool   `long:"debug" env:"DEBUG" description:"enable debug logging"`
}

var Revision = "dev"

func main() {
	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	settings := config.Load(opts.EnvFile)

	bot := &telegram.Client{Token: settings.Lookup("TELEGRAM_BOT_TOKEN")}

	log := newLogger(settings, bot)
	log.Info("starting bot", "revision", Revision)

	if _, err := settings.Get("TELEGRAM_BOT_TOKEN"); err != nil {
		log.Warn("message delivery is not configured", "error", err)
	}

	if dsn := settings.Lookup("SENTRY_DSN"); dsn != "" {
		err = sentry.Init(sentry.ClientOptions{Dsn: dsn, Release: Revision})
		if err != nil {
			log.Error("initializing sentry", "error", err)
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ai := &gemini.Client{
		APIKey:     settings.Lookup("GEMINI_API_KEY"),
		Model:      opts.Model,
		ConfigPath: opts.AIConfigPath,
	}
	if _, err := settings.Get("GEMINI_API_KEY"); err != nil {
		log.Warn("completion client is not configured", "error", err)
	}

	dispatcher := &dispatch.Handler{
		Log:       log,
		AI:        ai,
		Messenger: bot,
	}

	if opts.DBPath != "" {
		db, err := storage.NewSQLite(ctx, opts.DBPath)
		if err != nil {
			log.Error("creating sqlite3 database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("closing sqlite3 database", "error", err)
			}
		}()
		dispatcher.Journal = db
	}

	wh := &webhook.Handler{
		Log:        log,
		Dispatcher: dispatcher,
	}

	r := chi.NewRouter()
	r.Handle(opts.WebhookPath, wh)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// the AI call may block up to its 60s timeout
		WriteTimeout: 90 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", opts.Addr, "path", opts.WebhookPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("stopping bot")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutting down server", "error", err)
	}
}

// newLogger wires the operator notification fan-out when an error chat is
// configured. The logger holds only the send capability of the messaging
// client, never the reverse.
func newLogger(settings *config.Settings, bot *telegram.Client) logger.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	errorChatID := settings.Lookup("ERROR_CHAT_ID")
	if errorChatID == "" {
		return logger.New(level)
	}

	send := func(chatID, text string) {
		// plain text, operator payload may contain markup-hostile fragments
		bot.SendWithMode(context.Background(), chatID, text, "")
	}

	return logger.NewWithNotify(level, send, errorChatID, slog.LevelError)
}
