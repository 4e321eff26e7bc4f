package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/trezcool/goose"

	appfs "github.com/trezcool/eduforum/fs"
	"github.com/trezcool/eduforum/storage/database"
)

var (
	gooseRunFunc = goose.RunFS // mockable

	errNoSQLDatabase = errors.New("the memory engine has no migrations")
)

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS]",
		Short: "Run a goose migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version, create, fix)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cli.printUsage(cmd)
				return errHelp
			}
			return cli.migrate(args)
		},
	}
}

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoSQLDatabase
	}
	engine := cli.conf.Database.Engine
	if err := database.SetDialect(engine); err != nil {
		return err
	}
	return gooseRunFunc(args[0], cli.db.DB, appfs.FS, database.MigrationsDir(engine), args[1:]...)
}
