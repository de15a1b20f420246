package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cratesbot/pkg/bot"
	"github.com/matzehuels/cratesbot/pkg/config"
	"github.com/matzehuels/cratesbot/pkg/observability"
	"github.com/matzehuels/cratesbot/pkg/telegram"
)

func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		Long: `Run the bot until interrupted.

Updates are received by long polling unless telegram.mode is "webhook", in
which case the webhook is registered and an HTTP server accepts updates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("verbose") {
				c.SetLogLevel(cfg.LogLevel())
			}
			return c.serve(cmd, cfg)
		},
	}
}

// serve runs the bot and, when configured, the metrics endpoint. If either
// stops with an error, the other is shut down.
func (c *CLI) serve(cmd *cobra.Command, cfg config.Config) error {
	logger := loggerFromContext(cmd.Context())
	g, ctx := errgroup.WithContext(cmd.Context())

	var metrics *observability.Metrics
	if cfg.Metrics.Listen != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = observability.NewMetrics(reg)

		logger.Info("Serving metrics", "addr", cfg.Metrics.Listen, "path", cfg.Metrics.Path)
		handler := metricsHandler(reg, cfg.Metrics.Path)
		g.Go(func() error { return bot.ListenAndServe(ctx, cfg.Metrics.Listen, handler) })
	}
	registerHooks(logger, metrics)

	g.Go(func() error { return c.runBot(ctx, cmd, logger, cfg) })
	return g.Wait()
}

func (c *CLI) runBot(ctx context.Context, cmd *cobra.Command, logger *log.Logger, cfg config.Config) error {
	api := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.APIURL, cfg.Telegram.Timeout)

	prog := newProgress(logger)
	me, err := api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("connect to telegram: %w", err)
	}
	prog.done("Connected as @" + me.Username)

	b := bot.New(newRegistry(cfg), api, logger, me.Username)
	runner := bot.NewRunner(ctx, b, logger, cfg.Workers)

	printSuccess(cmd.OutOrStdout(), "Serving @%s (%s, %d workers)", me.Username, cfg.Telegram.Mode, cfg.Workers)
	if cfg.Telegram.Mode == config.ModeWebhook {
		return serveWebhook(ctx, logger, api, runner, cfg.Telegram)
	}
	return poll(ctx, logger, api, runner, cfg.Telegram)
}

// poll removes any registered webhook, since the platform refuses
// getUpdates while one is set, then polls until ctx is done.
func poll(ctx context.Context, logger *log.Logger, api *telegram.Client, runner *bot.Runner, cfg config.Telegram) error {
	if err := api.DeleteWebhook(ctx); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	logger.Info("Polling for updates", "timeout", cfg.PollTimeout)
	return bot.NewPoller(api, runner, logger, cfg.PollTimeout).Run(ctx)
}

// serveWebhook registers the public webhook URL and serves updates until ctx
// is done. In-flight updates are drained before returning.
func serveWebhook(ctx context.Context, logger *log.Logger, api *telegram.Client, runner *bot.Runner, cfg config.Telegram) error {
	defer runner.Wait()

	err := api.SetWebhook(ctx, telegram.SetWebhookParams{
		URL:            cfg.Webhook.URL,
		SecretToken:    cfg.Webhook.Secret,
		AllowedUpdates: telegram.AllowedUpdates,
	})
	if err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	logger.Info("Listening for webhook updates", "addr", cfg.Webhook.Listen, "path", cfg.Webhook.Path)
	handler := bot.NewWebhookHandler(runner, cfg.Webhook.Path, cfg.Webhook.Secret, logger)
	return bot.ListenAndServe(ctx, cfg.Webhook.Listen, handler)
}

func metricsHandler(reg *prometheus.Registry, path string) http.Handler {
	r := chi.NewRouter()
	r.Handle(path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}
