package main

import (
	"context"
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sicoobslip/internal/config"
	"sicoobslip/internal/logging"
	"sicoobslip/internal/metrics"
	"sicoobslip/internal/otel"
	"sicoobslip/internal/service"
)

// cli carries the dependencies shared by every command.
// svc is built lazily in setup unless a test has already injected one.
type cli struct {
	cfg    *config.AppConfig
	stdout io.Writer
	stderr io.Writer

	logger   *zap.Logger
	registry *prometheus.Registry
	svc      service.SlipService
	shutdown func(context.Context) error
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration from environment variables (.env auto-loaded if present)
	c := &cli{cfg: config.Load(), stdout: os.Stdout, stderr: os.Stderr}
	defer c.teardown(context.Background())

	root := newRootCmd(c)
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		writeError(c.stderr, err)
		return 1
	}
	return 0
}

func (c *cli) setup(ctx context.Context) error {
	if c.svc != nil {
		return nil
	}

	logger, err := logging.New(c.cfg.LogLevel)
	if err != nil {
		return err
	}
	c.logger = logger

	c.registry = prometheus.NewRegistry()
	m, err := metrics.NewCodecMetrics(c.registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	shutdown, err := otel.Init(ctx, c.cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	c.shutdown = shutdown

	c.svc = service.NewSlipService(logger, m, service.WithRegistered(c.cfg.Agreement.Registered))
	return nil
}

func (c *cli) teardown(ctx context.Context) {
	if c.registry != nil {
		if err := metrics.WriteTextfile(c.cfg.MetricsTextfile, c.registry); err != nil && c.logger != nil {
			c.logger.Error("metrics_textfile_failed", zap.String("path", c.cfg.MetricsTextfile), zap.Error(err))
		}
	}
	if c.shutdown != nil {
		if err := c.shutdown(ctx); err != nil && c.logger != nil {
			c.logger.Error("tracing_shutdown_failed", zap.Error(err))
		}
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "sicoob-boleto",
		Short: "Encode and decode the free field of Sicoob payment slips",
		Long: `sicoob-boleto builds and reads the free field ("campo livre") that Sicoob
payment slips carry inside their line code.

Branch and member code default to SICOOB_BRANCH and SICOOB_MEMBER_CODE.
Results are written to stdout as JSON; errors go to stderr as a JSON envelope.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errInvalidArgument, err)
	})
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.AddCommand(
		newIssueCmd(c),
		newDecodeCmd(c),
		newVerifyCmd(c),
		newIdentifierCmd(c),
	)
	return root
}
