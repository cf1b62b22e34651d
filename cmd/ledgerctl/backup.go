package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/application/usecase/backup"
	"github.com/finance-tracker/ledger/internal/integration/export"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

var (
	flagFormat string
	flagOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the ledger as a JSON backup, CSV or XLSX file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the whole ledger with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagFormat, "format", "f", backup.DefaultFormat, "Export format: json, csv or xlsx")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default: generated name, - for stdout)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	database, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger(database)

	uc := backup.NewExportLedgerUseCase(
		persistence.NewBackupRepository(database.DB()),
		systemClock,
		export.NewJSONCodec(), export.NewCSVEncoder(), export.NewXLSXEncoder(),
	)
	out, err := uc.Execute(ctx, backup.ExportLedgerInput{Format: flagFormat})
	if err != nil {
		return err
	}

	if flagOutput == "-" {
		_, err := cmd.OutOrStdout().Write(out.Body)
		return err
	}
	path := flagOutput
	if path == "" {
		path = out.FileName
	}
	if err := os.WriteFile(path, out.Body, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bytes to %s\n", len(out.Body), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	database, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger(database)

	uc := backup.NewImportLedgerUseCase(persistence.NewBackupRepository(database.DB()), export.NewJSONCodec(), nil)
	out, err := uc.Execute(ctx, backup.ImportLedgerInput{Document: f})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Restored %d transactions, %d categories, %d budgets, %d goals, %d settings\n",
		out.Transactions, out.Categories, out.Budgets, out.Goals, out.Settings)
	return nil
}
