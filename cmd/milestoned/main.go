package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"releasetrain/internal/app"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		listen   string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:          "milestoned",
		Short:        "In-memory GitHub milestones API for development",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			logger := app.NewLogger(level, cmd.ErrOrStderr())

			srv := &http.Server{
				Addr:              listen,
				Handler:           newServer().routes(logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info("milestoned listening", "addr", listen)
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	return cmd
}
