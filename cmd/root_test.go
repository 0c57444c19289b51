package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "codelens.dev/pkg/codelens/internal/model"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []m.ReportFormat
		wantErr bool
	}{
		{"empty", []string{}, []m.ReportFormat{}, false},
		{"single", []string{"json"}, []m.ReportFormat{m.FormatJSON}, false},
		{"comma separated", []string{"html,sarif"}, []m.ReportFormat{m.FormatHTML, m.FormatSARIF}, false},
		{"mixed", []string{"yaml", " xlsx "}, []m.ReportFormat{m.FormatYAML, m.FormatXLSX}, false},
		{"none", []string{"none"}, []m.ReportFormat{}, false},
		{"unknown", []string{"pdf"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFormats(tt.values)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "codelens", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "demographic fields")
}

func TestInit(t *testing.T) {
	// Test that init() created all the necessary instances
	assert.NotNil(t, ui)
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, reportStore)
	assert.NotNil(t, datasetAdapter)
	assert.NotNil(t, scanner)
	assert.NotNil(t, matcher)
	assert.NotNil(t, analyzer)
	assert.NotNil(t, workflow)
}

func swapRootCmd(t *testing.T, run func(cmd *cobra.Command, args []string) error) {
	t.Helper()

	original := rootCmd
	t.Cleanup(func() { rootCmd = original })

	rootCmd = &cobra.Command{Use: "codelens-test", RunE: run, SilenceUsage: true}
	rootCmd.SetArgs([]string{})
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
}

func TestExecute_Success(t *testing.T) {
	called := false
	swapRootCmd(t, func(*cobra.Command, []string) error {
		called = true
		return nil
	})

	Execute()

	assert.True(t, called)
}

func TestExecute_ExitCodes(t *testing.T) {
	const envKey = "CODELENS_EXECUTE_HELPER"

	switch os.Getenv(envKey) {
	case "ok":
		swapRootCmd(t, func(*cobra.Command, []string) error {
			fmt.Println("scan finished")
			return nil
		})
		Execute()

		return
	case "fail":
		swapRootCmd(t, func(*cobra.Command, []string) error {
			return fmt.Errorf("scan root not found")
		})
		Execute()

		return
	}

	tests := []struct {
		mode     string
		wantCode int
		wantOut  string
	}{
		{"ok", 0, "scan finished"},
		{"fail", 1, "scan root not found"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestExecute_ExitCodes$")
			cmd.Env = append(os.Environ(), envKey+"="+tt.mode)
			output, err := cmd.CombinedOutput()

			code := 0

			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else {
				require.NoError(t, err, "output: %s", output)
			}

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, string(output), tt.wantOut)
		})
	}
}
