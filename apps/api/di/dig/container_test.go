package dig_container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/eduforum/apps/api/echo"
	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
	"github.com/trezcool/eduforum/core/chatbot"
)

func TestNew_memoryEngine(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("EDUFORUM_DEBUG", "true")
	t.Setenv("EDUFORUM_DATABASE_ENGINE", "memory")

	err := New().Invoke(func(conf *core.Config, db *sqlx.DB, svc chat.ServiceInterface, server *echoapi.Server) {
		assert.Equal(t, "memory", conf.Database.Engine)
		assert.Nil(t, db)
		assert.NotNil(t, server)
		defer func() { _ = server.Close() }()

		turn, err := svc.Reply(context.Background(), chat.NewMessage{Message: strPtr("bye"), UserID: "42"})
		require.NoError(t, err)
		assert.Equal(t, chatbot.Farewell, turn.Category)
	})
	require.NoError(t, err)
}

func TestNew_sqliteEngine(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("EDUFORUM_DEBUG", "true")
	t.Setenv("EDUFORUM_DATABASE_ENGINE", "sqlite")
	t.Setenv("EDUFORUM_DATABASE_NAME", filepath.Join(t.TempDir(), "eduforum.db"))

	err := New().Invoke(func(db *sqlx.DB, svc chat.ServiceInterface) {
		require.NotNil(t, db)
		defer func() { _ = db.Close() }()

		_, err := svc.Reply(context.Background(), chat.NewMessage{Message: strPtr("campus?"), UserID: "42"})
		require.NoError(t, err)
		turns, err := svc.History(context.Background(), chat.HistoryFilter{UserID: "42"})
		require.NoError(t, err)
		require.Len(t, turns, 1)
		assert.Equal(t, chatbot.Facilities, turns[0].Category)
	})
	require.NoError(t, err)
}

func TestNewResponder_categoriesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - name: greeting
    triggers: [jambo]
    responses: [Karibu!]
  - name: default
    responses: [Sijaelewa.]
`), 0o600))

	conf := core.NewTestConfig()
	conf.Chat.CategoriesFile = path
	responder, err := newResponder(conf)
	require.NoError(t, err)
	assert.Equal(t, "Karibu!", responder.Respond("Jambo rafiki"))
	assert.Equal(t, "Sijaelewa.", responder.Respond("hello"))

	conf.Chat.CategoriesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = newResponder(conf)
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
