package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/RichardMcSorley/breather/internal/app"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Apply pending migrations and serve the HTTP API until interrupted.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, flagConfig)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
