package terminal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unsovich/BBDashboard/pkg/runtime/terminal/commands"
	"github.com/unsovich/BBDashboard/pkg/runtime/terminal/export"
	"github.com/unsovich/BBDashboard/pkg/services/alerts"
	"github.com/unsovich/BBDashboard/pkg/services/config"
	"github.com/unsovich/BBDashboard/pkg/services/dashboard"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	opts    Options
	session *dashboard.Session
	rootCmd *cobra.Command

	configPath string
	format     string
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logs   io.Writer
	// Dashboard skips settings and storage when set.
	Dashboard dashboard.Dashboard
	Now       func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cli := &CLI{
		opts: opts,
		env: &commands.Env{
			Output:     opts.Output,
			WindowDays: alerts.DefaultWindowDays,
			Now:        opts.Now,
		},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	defer cli.close()
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "kpi",
		Short:             "KPI monitoring dashboard",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the settings file")
	cmd.PersistentFlags().StringVar(&cli.format, "format", "table", "Report format: table or plain")

	cmd.AddCommand(commands.NewCatalogCmd(cli.env))
	cmd.AddCommand(commands.NewAlertsCmd(cli.env))
	cmd.AddCommand(commands.NewSeriesCmd(cli.env))
	cmd.AddCommand(commands.NewHistoryCmd(cli.env))
	cmd.AddCommand(commands.NewExportCmd(cli.env))
	cmd.AddCommand(commands.NewImportCmd(cli.env))
	cmd.AddCommand(commands.NewGenerateCmd(cli.env))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	switch cli.format {
	case "table":
		cli.env.Reporter = export.NewReporter(cli.opts.Output)
	case "plain":
		cli.env.Reporter = NewReporter(cli.opts.Output)
	default:
		return fmt.Errorf("unknown format %q, expected table or plain", cli.format)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.opts.Logs}).With().Timestamp().Logger()

	if cli.opts.Dashboard != nil {
		cmd.SetContext(logger.WithContext(cmd.Context()))
		cli.env.Dashboard = cli.opts.Dashboard
		return nil
	}

	settings, err := config.Load(cli.configPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(settings.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}
	logger = logger.Level(level)
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	session, err := dashboard.Open(ctx, settings, nil)
	if err != nil {
		return err
	}
	cli.session = session
	cli.env.Dashboard = session
	if settings.Alerts.WindowDays > 0 {
		cli.env.WindowDays = settings.Alerts.WindowDays
	}
	return nil
}

func (cli *CLI) close() {
	if cli.session == nil {
		return
	}
	if err := cli.session.Close(); err != nil {
		fmt.Fprintf(cli.opts.Logs, "failed to close storage: %v\n", err)
	}
}
