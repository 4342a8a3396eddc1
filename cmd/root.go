package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "breather",
	Short: "Finance tracker for gig drivers",
	Long:  "Track income, expenses, bills and mileage, plan bill payments and summarise earnings.",
	RunE:  runServe,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "./config/application.yaml", "Path to the YAML configuration file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
}
