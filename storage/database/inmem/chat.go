package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/eduforum/core/chat"
)

type chatRepository struct {
	db *chatTable
}

var _ chat.Repository = (*chatRepository)(nil) // interface compliance check

func NewChatRepository(db *DB) chat.Repository {
	return &chatRepository{db: db.chat}
}

func (repo *chatRepository) InsertTurn(_ context.Context, turn chat.Turn) (chat.Turn, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.turns = append(repo.db.turns, turn)
	return turn, nil
}

func (repo *chatRepository) QueryTurnsByUser(_ context.Context, userID string, limit int) ([]chat.Turn, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	turns := make([]chat.Turn, 0)
	if userID == "" { // anonymous turns have no owner
		return turns, nil
	}
	// walk backwards so that later inserts come first on timestamp ties
	for i := len(repo.db.turns) - 1; i >= 0; i-- {
		if turn := repo.db.turns[i]; turn.UserID == userID {
			turns = append(turns, turn)
		}
	}
	sort.SliceStable(turns, func(i, j int) bool {
		return turns[i].Timestamp.After(turns[j].Timestamp)
	})

	if limit > 0 && len(turns) > limit {
		turns = turns[:limit]
	}
	return turns, nil
}
