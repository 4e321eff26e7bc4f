package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
	"github.com/trezcool/eduforum/storage/database"
)

// PrepareDB opens a migrated in-memory sqlite database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Setup(core.NewTestConfig())
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("db.Close() failed: %v", err)
		}
	})
	return db
}

func CreateTurn(
	t *testing.T,
	repo chat.Repository,
	userID, message, response, category string,
	createdAt ...time.Time,
) chat.Turn {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	turn, err := repo.InsertTurn(context.Background(), chat.Turn{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Response:  response,
		Category:  category,
		Timestamp: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateTurn() failed: %v", err)
	}
	return turn
}
