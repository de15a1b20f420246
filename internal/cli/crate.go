package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cratesbot/pkg/bot"
)

func (c *CLI) crateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "crate <name>",
		Short:   "Print the bot's reply to /crate",
		Example: "  cratesbot crate serde",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			b := bot.New(newRegistry(cfg), nil, loggerFromContext(ctx), "")
			s := startSpinner(ctx, cmd.ErrOrStderr(), "Looking up "+args[0]+"...")
			reply := b.Lookup(ctx, args[0])
			s.stop()

			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
