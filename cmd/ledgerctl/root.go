package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/clock"
	"github.com/finance-tracker/ledger/internal/infra/db"
)

var (
	flagDriver  string
	flagDSN     string
	flagVerbose bool
	flagProfile string
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Personal finance ledger tool",
	Long:          "Export, restore, report on and seed a personal finance ledger database.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		p, err := loadProfile(flagProfile)
		if err != nil {
			return err
		}
		return applyProfile(cmd.Flags(), p)
	},
}

func init() {
	_ = godotenv.Load()
	defaults := config.Load()

	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", defaults.Database.Driver, "Database driver (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&flagDSN, "db", defaults.Database.URL, "Database URL or SQLite file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "config", defaultProfilePath(), "Profile with default settings (TOML)")

	rootCmd.AddCommand(exportCmd, importCmd, reportCmd, seedCmd, configCmd)
}

// openLedger connects, migrates and seeds the default categories.
func openLedger(ctx context.Context) (*db.Database, error) {
	cfg := config.Load().Database
	cfg.Driver = flagDriver
	cfg.URL = flagDSN

	database, err := db.NewConnection(&cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, err
	}
	if err := database.Seed(ctx); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

var systemClock = clock.New()

func closeLedger(database *db.Database) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close database: %v\n", err)
	}
}
