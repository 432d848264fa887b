package main

import (
	"log/slog"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "workorders",
		Short:         "Work order lifecycle and payroll settlement service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	rootCmd.AddCommand(serveCmd(&envFile, logger))
	rootCmd.AddCommand(migrateCmd(&envFile, logger))
	rootCmd.AddCommand(payrollCmd(&envFile, logger))
	rootCmd.AddCommand(tokenCmd(&envFile))

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
