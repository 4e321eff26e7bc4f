package chat

import (
	"context"
	"expvar"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chatbot"
)

var (
	NowFunc = time.Now // mockable

	// categoryHits counts replies per category, exposed under /debug/vars.
	categoryHits = expvar.NewMap("chat_categories")
)

type (
	Repository interface {
		InsertTurn(ctx context.Context, turn Turn) (Turn, error)
		// QueryTurnsByUser returns at most limit turns of the user, newest first.
		QueryTurnsByUser(ctx context.Context, userID string, limit int) ([]Turn, error)
	}

	ServiceInterface interface {
		Reply(ctx context.Context, nm NewMessage) (Turn, error)
		History(ctx context.Context, filter HistoryFilter) ([]Turn, error)
		Categories() []string
	}

	Service struct {
		repo      Repository
		responder *chatbot.Responder
		validate  *validator.Validate
		conf      *core.Config
	}
)

var _ ServiceInterface = (*Service)(nil) // interface compliance check

func NewService(repo Repository, responder *chatbot.Responder, validate *validator.Validate, conf *core.Config) *Service {
	return &Service{
		repo:      repo,
		responder: responder,
		validate:  validate,
		conf:      conf,
	}
}

// Reply answers the message and records the turn in the history.
func (svc *Service) Reply(ctx context.Context, nm NewMessage) (Turn, error) {
	if err := nm.Validate(svc.validate, svc.conf.Chat.MaxMessageLength); err != nil {
		return Turn{}, err
	}

	reply := svc.responder.Reply(*nm.Message)
	categoryHits.Add(reply.Category, 1)

	turn := Turn{
		ID:        uuid.New().String(),
		UserID:    nm.UserID,
		Message:   *nm.Message,
		Response:  reply.Text,
		Category:  reply.Category,
		Timestamp: NowFunc().UTC(),
	}
	turn, err := svc.repo.InsertTurn(ctx, turn)
	if err != nil {
		return Turn{}, errors.Wrap(err, "inserting chat turn")
	}
	return turn, nil
}

// History returns the latest turns of a user, newest first.
func (svc *Service) History(ctx context.Context, filter HistoryFilter) ([]Turn, error) {
	if err := filter.Validate(svc.validate); err != nil {
		return nil, err
	}
	filter.Clean(svc.conf.Chat.HistoryLimit)

	turns, err := svc.repo.QueryTurnsByUser(ctx, filter.UserID, filter.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying chat turns")
	}
	if turns == nil {
		turns = []Turn{}
	}
	return turns, nil
}

// Categories returns the chatbot category names in evaluation order.
func (svc *Service) Categories() []string {
	return svc.responder.Table().Names()
}
