package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

var reportsAppFlag string

// reportsCmd represents the reports command.
var reportsCmd = newReportsCmd()

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List generated reports",
		Long:  "List the reports in the output directory, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Reports(context.Background(), domain.ReportsArgs{
				Reports:     m.Path(viper.GetString(outputFlagName)),
				Application: reportsAppFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&reportsAppFlag, appFlagName, "a", "", "only list reports of this application")

	return cmd
}

func init() {
	rootCmd.AddCommand(reportsCmd)
}
