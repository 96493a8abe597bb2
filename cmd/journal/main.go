package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"gemini-relay-bot/app/storage"
	"gemini-relay-bot/pkg/logger"
)

var opts struct {
	DBPath string `long:"db-path" env:"DB_PATH" required:"true" description:"path to the sqlite journal file"`
	Count  int    `short:"c" long:"count" default:"50" description:"number of recent updates to print"`
}

func main() {
	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	log := logger.New(slog.LevelInfo)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := storage.NewSQLite(ctx, opts.DBPath)
	if err != nil {
		log.Error("opening sqlite3 database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("closing sqlite3 database", "error", err)
		}
	}()

	updates, err := db.ListUpdates(ctx, opts.Count)
	if err != nil {
		log.Error("listing updates", "error", err)
		os.Exit(1)
	}

	for _, u := range updates {
		note := ""
		if u.Note != "" {
			note = " (" + u.Note + ")"
		}
		fmt.Printf("%s  chat=%s  %-10s%s\n  > %s\n  < %s\n",
			u.CreatedAt.Format("2006-01-02 15:04:05"), u.ChatID, u.ReplyKind, note, u.Text, u.ReplyText)
	}
}
