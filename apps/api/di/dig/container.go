package dig_container

import (
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/eduforum/apps/api/echo"
	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
	"github.com/trezcool/eduforum/core/chatbot"
	logsvc "github.com/trezcool/eduforum/services/logger"
	"github.com/trezcool/eduforum/storage/database"
	inmemdb "github.com/trezcool/eduforum/storage/database/inmem"
	sqlxrepos "github.com/trezcool/eduforum/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLoggerFunc(name string) func(conf *core.Config) (core.Logger, error) {
	return func(conf *core.Config) (core.Logger, error) {
		std, err := logsvc.NewZapLogger(name, conf)
		if err != nil {
			return nil, errors.Wrapf(err, "building %s logger", name)
		}
		logger := logsvc.NewRollbarLogger(std, conf)
		logger.Enable(!conf.Debug)
		return logger, nil
	}
}

// newDB returns a nil *sqlx.DB for the memory engine.
func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	if conf.Database.Engine == database.EngineMemory {
		loggerParam.Logger.Warn("using the in-memory store: chat history is lost on restart")
		return nil
	}

	db, err := database.Setup(conf)
	if err != nil {
		loggerParam.Logger.Fatal("setting up database", err)
	}
	return db
}

func newChatRepository(db *sqlx.DB) chat.Repository {
	if db == nil {
		return inmemdb.NewChatRepository(inmemdb.Open())
	}
	return sqlxrepos.NewChatRepository(db)
}

// newResponder loads `chat.categoriesFile` when set, the built-in categories otherwise.
func newResponder(conf *core.Config) (*chatbot.Responder, error) {
	table, err := chatbot.DefaultTable()
	if path := conf.Chat.CategoriesFile; path != "" {
		table, err = chatbot.LoadTable(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading categories")
	}
	return chatbot.New(table, chatbot.DefaultPicker)
}

func newValidate(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLoggerFunc("api")))
	must(c.Provide(newLoggerFunc("db"), dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newChatRepository))
	must(c.Provide(newResponder))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidate))
	must(c.Provide(chat.NewService, dig.As(new(chat.ServiceInterface))))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
