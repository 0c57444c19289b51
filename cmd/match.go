package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

var matchColumnFlag string
var matchTypeFlag string
var matchAlgorithmFlag string
var matchThresholdFlag int
var matchLimitFlag int
var matchPreprocessFlag bool
var matchOutFlag string
var matchRemovedOutFlag string
var matchColumnsFlag bool

// matchCmd represents the match command.
var matchCmd = newMatchCmd()

const matchLongDescription = `Fuzzy-match attribute values between two spreadsheets (.xlsx or .csv).

Each distinct SOURCE value is scored against every distinct TARGET value in
the compared column; the best --limit candidates scoring at least --threshold
are kept and joined back to their full rows.

With --columns the column HEADERS are matched instead: each SOURCE header is
paired with its best TARGET header by ratio, kept when it scores at least
--threshold (50-100, default 80), and reported with the distinct and empty
value counts of both columns. --out writes the comparison workbook.

Algorithms:
  ratio             Levenshtein Ratio (Basic)
  partial_ratio     Partial Ratio (Substring)
  token_sort_ratio  Token Sort Ratio (Word Order)`

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match SOURCE TARGET",
		Short: "Match attributes between two spreadsheets",
		Long:  matchLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if matchColumnsFlag {
				return runColumnMatch(cmd, args)
			}

			threshold := viper.GetInt(thresholdConfigKey)
			if threshold < 0 || threshold > defaultMaxThreshold {
				return fmt.Errorf("threshold must be between 0 and %d, got %d", defaultMaxThreshold, threshold)
			}

			column := matchColumnFlag
			if column == "" {
				column = domain.ColumnForMatchType(matchTypeFlag)
			}

			return workflow.Match(context.Background(), domain.MatchArgs{
				Source:     m.Path(args[0]),
				Target:     m.Path(args[1]),
				Column:     column,
				Algorithm:  viper.GetString(algorithmConfigKey),
				Threshold:  threshold,
				Limit:      viper.GetInt(limitConfigKey),
				Preprocess: matchPreprocessFlag,
				Out:        m.Path(matchOutFlag),
				RemovedOut: m.Path(matchRemovedOutFlag),
			})
		},
	}

	configureMatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

// runColumnMatch matches column headers. The value threshold from the config
// does not apply here; only an explicit --threshold overrides the default.
func runColumnMatch(cmd *cobra.Command, args []string) error {
	threshold := 0
	if cmd.Flags().Changed(thresholdFlagName) {
		threshold = matchThresholdFlag
		if threshold < domain.MinColumnThreshold || threshold > domain.MaxColumnThreshold {
			return fmt.Errorf("column threshold must be between %d and %d, got %d",
				domain.MinColumnThreshold, domain.MaxColumnThreshold, threshold)
		}
	}

	return workflow.MatchColumns(context.Background(), domain.ColumnMatchArgs{
		Source:    m.Path(args[0]),
		Target:    m.Path(args[1]),
		Threshold: threshold,
		Out:       m.Path(matchOutFlag),
	})
}

func configureMatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&matchColumnFlag, "column", "c", "", "column to compare (overrides --match-type)")
	cmd.Flags().StringVar(&matchTypeFlag, "match-type", domain.MatchTypeAttributeName, "attribute-name, business-name or attribute-description")

	cmd.Flags().StringVar(&matchAlgorithmFlag, algorithmFlagName, viper.GetString(algorithmConfigKey), "ratio, partial_ratio or token_sort_ratio")
	bindFlagToConfig(cmd.Flags().Lookup(algorithmFlagName), algorithmConfigKey)

	cmd.Flags().IntVarP(&matchThresholdFlag, thresholdFlagName, "t", viper.GetInt(thresholdConfigKey), "minimum score (0-100) for a match")
	bindFlagToConfig(cmd.Flags().Lookup(thresholdFlagName), thresholdConfigKey)

	cmd.Flags().IntVar(&matchLimitFlag, limitFlagName, viper.GetInt(limitConfigKey), "candidates kept per source value")
	bindFlagToConfig(cmd.Flags().Lookup(limitFlagName), limitConfigKey)

	cmd.Flags().BoolVar(&matchPreprocessFlag, "preprocess", false, "drop empty, integer-only and single-value rows from SOURCE first")
	cmd.Flags().BoolVar(&matchColumnsFlag, "columns", false, "match column headers instead of values")
	cmd.Flags().StringVar(&matchOutFlag, "out", "", "write matches to this .xlsx file")
	cmd.Flags().StringVar(&matchRemovedOutFlag, "removed-out", "", "write rows dropped by --preprocess to this .xlsx file")
}
