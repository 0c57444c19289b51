package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "codelens.dev/pkg/codelens/internal/model"
	"codelens.dev/pkg/codelens/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveAddrFlag string

// listenAndServe runs the HTTP server until ctx is cancelled.
var listenAndServe = func(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}

// serveCmd represents the serve command.
var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the browser UI",
		Long:  "Start the CodeLens web interface for code analysis, attribute matching and report downloads.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats, err := serveFormats()
			if err != nil {
				return err
			}

			server := web.NewServer(analyzer, fsAdapter, web.Config{
				Reports:   m.Path(viper.GetString(outputFlagName)),
				LogFile:   m.Path(viper.GetString(logFilenameKey)),
				Formats:   formats,
				Algorithm: viper.GetString(algorithmConfigKey),
				Threshold: viper.GetInt(thresholdConfigKey),
				Limit:     viper.GetInt(limitConfigKey),
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := viper.GetString(serveAddrConfigKey)
			cmd.Printf("listening on %s\n", displayAddr(addr))
			slog.Info("Starting web server", "addr", addr)

			if err := listenAndServe(ctx, addr, server.Handler()); err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&serveAddrFlag, addrFlagName, viper.GetString(serveAddrConfigKey), "address to listen on")
	bindFlagToConfig(cmd.Flags().Lookup(addrFlagName), serveAddrConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serveFormats returns the configured report formats. The web UI writes every
// format unless the config file or the environment sets report.formats.
func serveFormats() ([]m.ReportFormat, error) {
	_, fromEnv := os.LookupEnv(formatsEnvVar)
	if !fromEnv && !viper.InConfig(formatsConfigKey) {
		return m.ReportFormats, nil
	}

	return parseFormats(viper.GetStringSlice(formatsConfigKey))
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}

	return "http://" + addr
}
