package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	echoapi "github.com/trezcool/eduforum/apps/api/echo"
	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
)

func (cli *commandLine) tokenCmd() *cobra.Command {
	var id core.Identity
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id.UserID == "" {
				cli.printUsage(cmd)
				return errHelp
			}
			id.Role = strings.ToUpper(id.Role)
			if !chat.IsRole(id.Role) {
				return fmt.Errorf("invalid role %q, want one of %s", id.Role, strings.Join(chat.Roles, ", "))
			}
			token, err := echoapi.GenerateToken(echoapi.GetUserClaims(cli.conf, id), cli.conf.SecretKey)
			if err != nil {
				return errors.Wrap(err, "generating token")
			}
			cli.printf("%s\n", token)
			return nil
		},
	}
	cmd.Flags().StringVar(&id.UserID, "user", "", "The user ID, used as the token subject.")
	cmd.Flags().StringVar(&id.Role, "role", chat.RoleStudent, "The user role: "+strings.Join(chat.Roles, ", "))
	cmd.Flags().StringVar(&id.Username, "username", "", "The username (optional).")
	return cmd
}

func (cli *commandLine) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask MESSAGE...",
		Short: "Print the chatbot reply to a message, without recording it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply := cli.responder.Reply(strings.Join(args, " "))
			cli.printf("%s: %s\n", reply.Category, reply.Text)
			return nil
		},
	}
}

func (cli *commandLine) historyCmd() *cobra.Command {
	var filter chat.HistoryFilter
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the recent chat turns of a user, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.UserID == "" {
				cli.printUsage(cmd)
				return errHelp
			}
			turns, err := cli.chatSvc.History(context.Background(), filter)
			if err != nil {
				return errors.Wrap(err, "querying chat history")
			}

			w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TIME\tCATEGORY\tMESSAGE\tRESPONSE")
			for _, turn := range turns {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", turn.Timestamp.Format(time.RFC3339), turn.Category, turn.Message, turn.Response)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.UserID, "user", "", "The user ID.")
	cmd.Flags().IntVar(&filter.Limit, "limit", 10, "The maximum number of turns to print.")
	return cmd
}
