package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
	"github.com/trezcool/eduforum/core/chatbot"
	logsvc "github.com/trezcool/eduforum/services/logger"
	"github.com/trezcool/eduforum/storage/database"
	inmemdb "github.com/trezcool/eduforum/storage/database/inmem"
	sqlxrepos "github.com/trezcool/eduforum/storage/database/sqlx"
)

func main() {
	os.Exit(run())
}

func run() int {
	conf := core.NewConfig()

	std, err := logsvc.NewZapLogger("admin", conf)
	if err != nil {
		log.Fatal(err)
	}
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(false)
	defer logger.Sync()

	// set up DB & repos
	var db *sqlx.DB
	var repo chat.Repository
	if conf.Database.Engine == database.EngineMemory {
		repo = inmemdb.NewChatRepository(inmemdb.Open())
	} else {
		if db, err = database.Open(conf); err != nil {
			logger.Fatal("opening database", err)
		}
		defer func() { _ = db.Close() }()
		if err = db.Ping(); err != nil {
			logger.Fatal("pinging database", err)
		}
		repo = sqlxrepos.NewChatRepository(db)
	}

	table, err := chatbot.DefaultTable()
	if conf.Chat.CategoriesFile != "" {
		table, err = chatbot.LoadTable(conf.Chat.CategoriesFile)
	}
	if err != nil {
		logger.Fatal("loading categories", err)
	}
	responder, err := chatbot.New(table, chatbot.DefaultPicker)
	if err != nil {
		logger.Fatal("creating responder", err)
	}

	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	// start CLI
	cli := commandLine{
		conf:      conf,
		db:        db,
		chatSvc:   chat.NewService(repo, responder, validate, conf),
		responder: responder,
		out:       os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		return 1
	}
	return 0
}
