package commands

import (
	"github.com/spf13/cobra"

	"github.com/unsovich/BBDashboard/pkg/models/domain"
	"github.com/unsovich/BBDashboard/pkg/services/views"
)

type SeriesCmd struct {
	mode  string
	month string
	names []string
	env   *Env
}

func NewSeriesCmd(env *Env) *cobra.Command {
	sc := &SeriesCmd{env: env}
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Show averaged KPI trends",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.mode, "mode", string(domain.ModeMonthly), "Bucketing mode: monthly or weekly")
	cmd.Flags().StringVar(&sc.month, "month", "", "Month to show in weekly mode (YYYY-MM)")
	// display names contain commas, so no slice splitting
	cmd.Flags().StringArrayVar(&sc.names, "name", nil, "KPI display name, repeatable")

	return cmd
}

func (sc *SeriesCmd) run(cmd *cobra.Command, _ []string) error {
	mode, err := domain.ParseMode(sc.mode)
	if err != nil {
		return err
	}
	month, err := domain.ParseMonth(sc.month)
	if err != nil {
		return err
	}

	series := sc.env.Dashboard.Series(cmd.Context(), mode, month, sc.names)
	return sc.env.Reporter.Handle(views.SeriesReport(series, mode, month))
}

type HistoryCmd struct {
	names []string
	env   *Env
}

func NewHistoryCmd(env *Env) *cobra.Command {
	hc := &HistoryCmd{env: env}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List observations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			observations := hc.env.Dashboard.History(cmd.Context(), hc.names)
			return hc.env.Reporter.Handle(views.HistoryReport(observations))
		},
	}

	cmd.Flags().StringArrayVar(&hc.names, "name", nil, "KPI display name, repeatable")

	return cmd
}
