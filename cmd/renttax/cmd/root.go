// Package cmd provides the renttax command line.
package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nurpe/renttax/internal/app"
	"github.com/nurpe/renttax/internal/config"
	"github.com/nurpe/renttax/internal/logger"
)

var (
	envFile string
	debug   bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "renttax",
		Short: "Rental income bookkeeping and tax estimates",
		Long: `renttax works on the same store as the renttax service.

Example:
  renttax migrate
  renttax calc --income 100000 --expenses 0 --landlord individual
  renttax summary
  renttax export --out backup.json`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if envFile != "" {
				_ = godotenv.Load(envFile)
			} else {
				_ = godotenv.Load()
			}
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newCalcCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newExportCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

// openApp loads configuration after the env file so .env values apply.
func openApp(ctx context.Context, stderr io.Writer) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log := logger.New(cfg.Environment, level).Output(zerolog.ConsoleWriter{Out: stderr})
	return app.New(ctx, cfg, log)
}

func writeJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
