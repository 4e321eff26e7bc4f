package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
	"github.com/trezcool/eduforum/core/chatbot"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf      *core.Config
	db        *sqlx.DB // nil for the memory engine
	chatSvc   chat.ServiceInterface
	responder *chatbot.Responder
	out       io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "EduForum chatbot administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.AddCommand(
		cli.migrateCmd(),
		cli.tokenCmd(),
		cli.askCmd(),
		cli.historyCmd(),
	)
	return root
}

func (cli *commandLine) printUsage(cmd *cobra.Command) {
	_ = cmd.Usage()
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) < 2 {
		cli.printUsage(root)
		return errHelp
	}
	if cmd, _, err := root.Find(args[1:]); err != nil || cmd == root {
		cli.printUsage(root)
		return errHelp
	}

	root.SetArgs(args[1:])
	return root.Execute()
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, a...)
}
