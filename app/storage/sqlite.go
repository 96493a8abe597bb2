package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	e "gemini-relay-bot/pkg/entities"
)

// SQLite is a write-only journal of handled updates. Nothing on the request
// path ever reads it back; it exists for operator inspection via cmd/journal.
type SQLite struct {
	db *sql.DB
}

// SavedUpdate is one journal row.
type SavedUpdate struct {
	ID        int64
	ChatID    string
	UserID    *int64
	Text      string
	ReplyKind e.ReplyKind
	ReplyText string
	Note      string
	CreatedAt time.Time
}

func NewSQLite(ctx context.Context, filePath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite3 database: %w", err)
	}

	client := &SQLite{
		db: db,
	}

	err = client.init(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing sqlite3 database: %w", err)
	}

	return client, nil
}

func (c *SQLite) Close() error {
	return c.db.Close()
}

func (c *SQLite) SaveUpdate(ctx context.Context, u e.Update, reply e.Reply) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO updates (
			chat_id, user_id, text, reply_kind, reply_text, note, created_at
		) VALUES (
			?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP
		)`,
		u.ChatID, u.UserID, u.Text, string(reply.Kind), reply.Text, reply.Note,
	)
	if err != nil {
		return fmt.Errorf("inserting update: %w", err)
	}

	return nil
}

func (c *SQLite) ListUpdates(ctx context.Context, limit int) ([]SavedUpdate, error) {
	rows, err := c.db.QueryContext(
		ctx,
		`SELECT id, chat_id, user_id, text, reply_kind, reply_text, note, created_at
			FROM updates
			ORDER BY id DESC
			LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying updates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []SavedUpdate
	for rows.Next() {
		var u SavedUpdate
		var kind string
		err = rows.Scan(&u.ID, &u.ChatID, &u.UserID, &u.Text, &kind, &u.ReplyText, &u.Note, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning update row: %w", err)
		}
		u.ReplyKind = e.ReplyKind(kind)
		out = append(out, u)
	}

	return out, rows.Err()
}

//go:embed init.sql
var initQuery string

func (c *SQLite) init(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, initQuery)
	return err
}
