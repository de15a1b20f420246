package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cratesbot/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   buildinfo.Name,
		Short: "cratesbot searches crates.io from any Telegram chat",
		Long: `cratesbot is a Telegram inline bot: type @cratesbot and a query in any chat
to search crates.io, or leave the query empty to list trending crates.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", os.Getenv("CRATESBOT_CONFIG"), "path to a TOML config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.crateCommand())
	root.AddCommand(c.completionCommand())

	return root
}
