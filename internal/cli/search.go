package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cratesbot/pkg/integrations/crates"
	"github.com/matzehuels/cratesbot/pkg/render"
)

func (c *CLI) searchCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Print the results of an inline query",
		Long: `Fetch and render crates exactly as the bot does for an inline query.

Without a query, trending crates are listed.`,
		Example: `  cratesbot search
  cratesbot search async runtime
  cratesbot search --raw serde`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.search(cmd, strings.Join(args, " "), raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the HTML message bodies")
	return cmd
}

func (c *CLI) search(cmd *cobra.Command, query string, raw bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	mode := crates.ModeFor(query)
	logger.Debug("fetching", "mode", mode, "query", query, "registry", cfg.Registry.BaseURL)

	s := startSpinner(ctx, cmd.ErrOrStderr(), "Fetching "+mode.String()+" crates...")
	list, err := newRegistry(cfg).Fetch(ctx, mode)
	s.stop()
	if err != nil {
		printError(cmd.ErrOrStderr(), "Failed to fetch crates")
		return err
	}

	if len(list) == 0 {
		printWarning(out, "No crates found")
		return nil
	}
	printInfo(out, "%d %s results", len(list), mode)
	for _, r := range render.InlineAll(list) {
		printResult(out, r, raw)
	}
	return nil
}
