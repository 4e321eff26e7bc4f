package tests

import (
	"context"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	. "github.com/trezcool/eduforum/apps/api/echo"
	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
	"github.com/trezcool/eduforum/core/chatbot"
	"github.com/trezcool/eduforum/services/logger"
)

var (
	conf *core.Config

	errMissingToken = ErrorResponse{Error: "missing or malformed jwt"}
	errInvalidToken = ErrorResponse{Error: "invalid or expired jwt"}
	errNotFound     = ErrorResponse{Error: "not found"}

	// always picks the first response of a category
	firstPicker = chatbot.PickerFunc(func(int) int { return 0 })
)

func TestMain(m *testing.M) {
	conf = core.NewTestConfig()
	os.Exit(m.Run())
}

func setup(t *testing.T, repo chat.Repository, logger ...core.Logger) *Server {
	t.Helper()

	table, err := chatbot.DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable(): %v", err)
	}
	responder, err := chatbot.New(table, firstPicker)
	if err != nil {
		t.Fatalf("chatbot.New(): %v", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	var lgr core.Logger = logsvc.NewNopLogger()
	if len(logger) > 0 {
		lgr = logger[0]
	}

	server := NewServer(conf, lgr, chat.NewService(repo, responder, validate, conf), translator)
	t.Cleanup(func() { _ = server.Close() })
	return server
}

// failingRepo fails every call with err.
type failingRepo struct {
	err error
}

func (r failingRepo) InsertTurn(context.Context, chat.Turn) (chat.Turn, error) {
	return chat.Turn{}, errors.Wrap(r.err, "inserting")
}

func (r failingRepo) QueryTurnsByUser(context.Context, string, int) ([]chat.Turn, error) {
	return nil, errors.Wrap(r.err, "querying")
}
