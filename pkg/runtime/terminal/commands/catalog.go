package commands

import (
	"github.com/spf13/cobra"

	"github.com/unsovich/BBDashboard/pkg/services/views"
)

func NewCatalogCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List KPI categories and their indicators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories := env.Dashboard.Catalog(cmd.Context())
			return env.Reporter.Handle(views.CatalogReport(categories))
		},
	}
}
