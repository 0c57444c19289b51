// Package cmd provides the root command and CLI setup for codelens.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codelens.dev/pkg/codelens/internal/adapter"
	"codelens.dev/pkg/codelens/internal/controller"
	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var datasetAdapter adapter.DatasetAdapter
var scanner domain.Scanner
var matcher domain.AttributeMatcher
var analyzer domain.Analyzer
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

var logFileFlag string
var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore(fsAdapter)
	datasetAdapter = adapter.NewDatasetAdapter(fsAdapter)
	scanner = domain.NewScanner(fsAdapter)
	matcher = domain.NewAttributeMatcher()
	analyzer = domain.NewAnalyzer(scanner, matcher, reportStore, datasetAdapter)
	workflow = domain.NewWorkflow(ui, analyzer)
}

const rootLongDescription = `CodeLens analyses source code and attribute spreadsheets.

It scans repositories for demographic fields (names, addresses, contact and
identity data) and integration patterns (REST, SOAP, databases, messaging,
files, Spring endpoints, security), and fuzzy-matches attributes between two
datasets. Results are shown as tables and written as HTML, JSON, YAML, SARIF
or Excel reports.`

var scanLongDescription = `Scan a repository (default: current directory) for demographic fields
and integration patterns.

Supported file types: ` + strings.Join(domain.DefaultExtensions, " ") + `
Files whose path contains ` + strings.Join(domain.DefaultTestMarkers, ", ") + ` are skipped.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codelens",
		Short: "Code and attribute analysis tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parseFormats turns format names, possibly comma separated, into ReportFormats.
func parseFormats(values []string) ([]m.ReportFormat, error) {
	formats := make([]m.ReportFormat, 0, len(values))

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" || strings.EqualFold(part, "none") {
				continue
			}

			format, err := m.ParseReportFormat(part)
			if err != nil {
				return nil, err
			}

			formats = append(formats, format)
		}
	}

	return formats, nil
}
