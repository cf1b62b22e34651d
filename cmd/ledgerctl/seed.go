package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/infra/demo"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

var (
	flagSeed   uint64
	flagMonths int
	flagForce  bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the ledger with generated demo data",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().Uint64Var(&flagSeed, "seed", 1, "Random seed")
	seedCmd.Flags().IntVar(&flagMonths, "months", 6, "Months of history")
	seedCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite a ledger that already has transactions")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	database, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger(database)

	if !flagForce {
		existing, err := persistence.NewTransactionRepository(database.DB()).List(ctx, nil)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("ledger has %d transactions; rerun with --force to replace them", len(existing))
		}
	}

	state := demo.Generate(demo.Options{Seed: flagSeed, Months: flagMonths, Until: systemClock.Now()})
	if err := persistence.NewBackupRepository(database.DB()).Replace(ctx, state); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d transactions over %d months\n", len(state.Transactions), flagMonths)
	return nil
}
