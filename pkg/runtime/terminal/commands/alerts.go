package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unsovich/BBDashboard/pkg/services/views"
)

type AlertsCmd struct {
	window int
	env    *Env
}

func NewAlertsCmd(env *Env) *cobra.Command {
	ac := &AlertsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show observations below their minimum",
		Args:  cobra.NoArgs,
		RunE:  ac.run,
	}

	cmd.Flags().IntVar(&ac.window, "window", 0, "Lookback in days (defaults to the configured window)")

	return cmd
}

func (ac *AlertsCmd) run(cmd *cobra.Command, _ []string) error {
	window := ac.window
	if window < 0 {
		return fmt.Errorf("--window must be positive, got %d", window)
	}
	if window == 0 {
		window = ac.env.WindowDays
	}

	found := ac.env.Dashboard.Alerts(cmd.Context(), window)
	return ac.env.Reporter.Handle(views.AlertsReport(found, window, ac.env.Now()))
}
