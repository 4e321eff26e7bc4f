package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduforum/core/chat"
)

// RunChatRepositoryTests checks the behaviour every chat.Repository must share.
// newRepo must return an empty repository.
func RunChatRepositoryTests(t *testing.T, newRepo func(t *testing.T) chat.Repository) {
	ctx := context.Background()
	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	t.Run("insert returns the turn", func(t *testing.T) {
		repo := newRepo(t)

		local := time.FixedZone("WAT", 3600)
		want := chat.Turn{
			ID:        "6f1c5bb0-8f7e-4c55-9d2b-2a5b0d6f5a11",
			UserID:    "42",
			Message:   "hello",
			Response:  "Hey! How can I assist you?",
			Category:  "greeting",
			Timestamp: base.In(local),
		}
		got, err := repo.InsertTurn(ctx, want)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.UserID, got.UserID)
		assert.True(t, want.Timestamp.Equal(got.Timestamp))

		turns, err := repo.QueryTurnsByUser(ctx, "42", 50)
		require.NoError(t, err)
		require.Len(t, turns, 1)
		assert.Equal(t, want.ID, turns[0].ID)
		assert.Equal(t, want.Message, turns[0].Message)
		assert.Equal(t, want.Response, turns[0].Response)
		assert.Equal(t, want.Category, turns[0].Category)
		assert.True(t, base.Equal(turns[0].Timestamp), "timestamp = %v; want %v", turns[0].Timestamp, base)
	})

	t.Run("newest first per user", func(t *testing.T) {
		repo := newRepo(t)

		first := CreateTurn(t, repo, "7", "hi", "Hi there! What can I do for you?", "greeting", base)
		third := CreateTurn(t, repo, "7", "bye", "Bye! Take care!", "farewell", base.Add(2*time.Minute))
		CreateTurn(t, repo, "8", "campus?", "Our campus has...", "facilities", base.Add(time.Minute))
		second := CreateTurn(t, repo, "7", "courses?", "We offer...", "courses", base.Add(time.Minute))
		CreateTurn(t, repo, "", "anonymous", "Sorry, I didn't get that.", "default", base.Add(3*time.Minute))

		turns, err := repo.QueryTurnsByUser(ctx, "7", 50)
		require.NoError(t, err)
		assert.Equal(t, []string{third.ID, second.ID, first.ID}, turnIDs(turns))

		turns, err = repo.QueryTurnsByUser(ctx, "7", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{third.ID, second.ID}, turnIDs(turns))

		turns, err = repo.QueryTurnsByUser(ctx, "unknown", 50)
		require.NoError(t, err)
		assert.Empty(t, turns)

		turns, err = repo.QueryTurnsByUser(ctx, "", 50)
		require.NoError(t, err)
		assert.Empty(t, turns, "anonymous turns")
	})

	t.Run("later insert wins a timestamp tie", func(t *testing.T) {
		repo := newRepo(t)

		older := CreateTurn(t, repo, "9", "one", "r1", "default", base)
		newer := CreateTurn(t, repo, "9", "two", "r2", "default", base)

		turns, err := repo.QueryTurnsByUser(ctx, "9", 50)
		require.NoError(t, err)
		assert.Equal(t, []string{newer.ID, older.ID}, turnIDs(turns))
	})
}

func turnIDs(turns []chat.Turn) []string {
	ids := make([]string, 0, len(turns))
	for _, turn := range turns {
		ids = append(ids, turn.ID)
	}
	return ids
}
