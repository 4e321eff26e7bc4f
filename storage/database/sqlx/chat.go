package sqlxrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
)

const (
	insertTurnQuery = `INSERT INTO chat_history (id, user_id, message, response, category, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

	queryTurnsByUserQuery = `SELECT id, user_id, message, response, category, created_at
FROM chat_history
WHERE user_id = ?
ORDER BY created_at DESC, seq DESC
LIMIT ?`
)

// chatTurn is the chat_history row.
type chatTurn struct {
	ID        string      `db:"id"`
	UserID    null.String `db:"user_id"`
	Message   string      `db:"message"`
	Response  string      `db:"response"`
	Category  string      `db:"category"`
	CreatedAt time.Time   `db:"created_at"`
}

type chatRepository struct {
	exec core.DBExecutor
}

var _ chat.Repository = (*chatRepository)(nil) // interface compliance check

func NewChatRepository(exec core.DBExecutor) *chatRepository {
	return &chatRepository{exec: exec}
}

func (repo chatRepository) toRow(turn chat.Turn) chatTurn {
	return chatTurn{
		ID:        turn.ID,
		UserID:    null.NewString(turn.UserID, turn.UserID != ""),
		Message:   turn.Message,
		Response:  turn.Response,
		Category:  turn.Category,
		CreatedAt: turn.Timestamp.UTC(),
	}
}

func (repo chatRepository) fromRow(row chatTurn) chat.Turn {
	return chat.Turn{
		ID:        row.ID,
		UserID:    row.UserID.String,
		Message:   row.Message,
		Response:  row.Response,
		Category:  row.Category,
		Timestamp: row.CreatedAt.UTC(),
	}
}

func (repo chatRepository) InsertTurn(ctx context.Context, turn chat.Turn) (chat.Turn, error) {
	row := repo.toRow(turn)
	_, err := repo.exec.ExecContext(
		ctx, repo.exec.Rebind(insertTurnQuery),
		row.ID, row.UserID, row.Message, row.Response, row.Category, row.CreatedAt,
	)
	if err != nil {
		return chat.Turn{}, errors.Wrap(err, "inserting chat_history row")
	}
	return repo.fromRow(row), nil
}

func (repo chatRepository) QueryTurnsByUser(ctx context.Context, userID string, limit int) ([]chat.Turn, error) {
	var rows []chatTurn
	err := repo.exec.SelectContext(
		ctx, &rows, repo.exec.Rebind(queryTurnsByUserQuery),
		userID, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "selecting chat_history rows")
	}

	turns := make([]chat.Turn, 0, len(rows))
	for _, row := range rows {
		turns = append(turns, repo.fromRow(row))
	}
	return turns, nil
}
