package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	e "gemini-relay-bot/pkg/entities"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "journal.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveUpdate_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	userID := int64(42)
	err := db.SaveUpdate(ctx, e.Update{ChatID: "123", UserID: &userID, Text: "hi"}, e.Reply{
		Kind: e.ReplyKindCompletion,
		Text: "hello back",
	})
	require.NoError(t, err)

	updates, err := db.ListUpdates(ctx, 10)
	require.NoError(t, err)
	require.Len(t, updates, 1)

	u := updates[0]
	require.Equal(t, "123", u.ChatID)
	require.NotNil(t, u.UserID)
	require.EqualValues(t, 42, *u.UserID)
	require.Equal(t, "hi", u.Text)
	require.Equal(t, e.ReplyKindCompletion, u.ReplyKind)
	require.Equal(t, "hello back", u.ReplyText)
	require.False(t, u.CreatedAt.IsZero())
}

func TestSaveUpdate_NilUserID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	err := db.SaveUpdate(ctx, e.Update{ChatID: "123", Text: "hi"}, e.Reply{
		Kind: e.ReplyKindFallback,
		Text: "sorry",
		Note: "transport_failure",
	})
	require.NoError(t, err)

	updates, err := db.ListUpdates(ctx, 10)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Nil(t, updates[0].UserID)
	require.Equal(t, "transport_failure", updates[0].Note)
}

func TestListUpdates_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, db.SaveUpdate(ctx, e.Update{ChatID: "1", Text: text}, e.Reply{
			Kind: e.ReplyKindCommand,
			Text: "ok",
		}))
	}

	updates, err := db.ListUpdates(ctx, 2)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	require.Equal(t, "third", updates[0].Text)
	require.Equal(t, "second", updates[1].Text)
}
