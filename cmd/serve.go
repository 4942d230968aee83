package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smartstore/store-system/internal/pkg/config"
	"github.com/smartstore/store-system/internal/server"
	"github.com/smartstore/store-system/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the store management API",
	Long: `Starts the store management API. Configuration comes from the
environment, with a .env file read in development:

	store serve
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load(ctx)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.IsDevelopment(),
			Service: "store-api",
		})

		srv, err := server.New(ctx, cfg, log)
		if err != nil {
			log.Error().Err(err).Msg("failed to start server")
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
