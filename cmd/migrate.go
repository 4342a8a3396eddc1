package cmd

import (
	"github.com/RichardMcSorley/breather/internal/config"
	"github.com/RichardMcSorley/breather/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if err := database.Migrate(cfg.Database); err != nil {
				return err
			}
			log.Info("Migrations applied")
			return nil
		},
	}
}
