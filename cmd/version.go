package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string
	Revision  string
	GoVersion string
}

var readBuildInfo = debug.ReadBuildInfo

func currentBuildInfo() (buildInfo, bool) {
	info, ok := readBuildInfo()
	if !ok || info.Main.Version == "" {
		return buildInfo{}, false
	}

	out := buildInfo{Version: info.Main.Version, GoVersion: info.GoVersion}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			out.Revision = setting.Value
		}
	}

	return out, true
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the CodeLens version, the VCS revision and the Go version used to build it.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := currentBuildInfo()
			if !ok {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("codelens version\t", info.Version)

			if info.Revision != "" {
				cmd.Println("revision\t", info.Revision)
			}

			cmd.Println("go version\t", info.GoVersion)
		},
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
