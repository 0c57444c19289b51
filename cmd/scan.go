package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

var scanAppFlag string
var scanFormatsFlag []string
var scanWorkersFlag int
var scanExtensionsFlag []string

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a repository for demographic fields and integration patterns",
		Long:  scanLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			formats, err := parseFormats(viper.GetStringSlice(formatsConfigKey))
			if err != nil {
				return err
			}

			return workflow.Scan(context.Background(), domain.ScanArgs{
				Root:            m.Path(root),
				ApplicationName: viper.GetString(appConfigKey),
				Reports:         m.Path(viper.GetString(outputFlagName)),
				Formats:         formats,
				Extensions:      viper.GetStringSlice(extensionsConfigKey),
				Workers:         viper.GetInt(workersConfigKey),
			})
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scanAppFlag, appFlagName, "a", viper.GetString(appConfigKey), "application name used in report file names")
	bindFlagToConfig(cmd.Flags().Lookup(appFlagName), appConfigKey)

	cmd.Flags().StringSliceVarP(&scanFormatsFlag, formatFlagName, "f", viper.GetStringSlice(formatsConfigKey), "report formats: html, json, yaml, sarif, xlsx or none")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatsConfigKey)

	cmd.Flags().IntVarP(&scanWorkersFlag, workersFlagName, "w", viper.GetInt(workersConfigKey), "number of files analysed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(workersFlagName), workersConfigKey)

	cmd.Flags().StringSliceVar(&scanExtensionsFlag, extensionsFlagName, viper.GetStringSlice(extensionsConfigKey), "file extensions to scan, including the dot")
	bindFlagToConfig(cmd.Flags().Lookup(extensionsFlagName), extensionsConfigKey)
}
