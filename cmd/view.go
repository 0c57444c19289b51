package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view REPORT",
		Short: "View a previously generated scan report",
		Long: `View a JSON or YAML scan report. A bare file name is looked up in the
output directory when it does not exist in the working directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.View(context.Background(), domain.ViewArgs{
				Report: resolveReportPath(args[0], viper.GetString(outputFlagName)),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func resolveReportPath(name, reportsDir string) m.Path {
	if filepath.Base(name) != name {
		return m.Path(name)
	}

	if _, err := os.Stat(name); err == nil {
		return m.Path(name)
	}

	return m.Path(filepath.Join(reportsDir, name))
}
