package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"askrelay/internal/relayclient"
)

var (
	askServer  string
	askTimeout time.Duration
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Send a question to a running relay",
	Long: `Post the question to {server}/ask and print the answer.
Exits with a non-zero status when the relay reports an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	flags := askCmd.Flags()
	flags.StringVarP(&askServer, "server", "s", "http://localhost:8080", "relay base url")
	flags.DurationVar(&askTimeout, "timeout", 2*time.Minute, "request timeout (0 disables)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	client, err := relayclient.New(askServer, askTimeout)
	if err != nil {
		return err
	}

	res, err := client.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if res.Failed() {
		return errors.New(*res.Response.Error)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Response.Answer)
	return nil
}
