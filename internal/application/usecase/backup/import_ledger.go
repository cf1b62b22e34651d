package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ImportLedgerInput carries a raw backup document.
type ImportLedgerInput struct {
	Document io.Reader
}

// ImportLedgerOutput reports what was restored.
type ImportLedgerOutput struct {
	Settings     int
	Categories   int
	Budgets      int
	Goals        int
	Transactions int
}

// ImportLedgerUseCase replaces the whole ledger with a backup.
type ImportLedgerUseCase struct {
	backupRepo adapter.BackupRepository
	decoder    adapter.LedgerDecoder
	metrics    adapter.MetricsRecorder
}

// NewImportLedgerUseCase creates a new ImportLedgerUseCase instance.
func NewImportLedgerUseCase(backupRepo adapter.BackupRepository, decoder adapter.LedgerDecoder, metrics adapter.MetricsRecorder) *ImportLedgerUseCase {
	return &ImportLedgerUseCase{
		backupRepo: backupRepo,
		decoder:    decoder,
		metrics:    metrics,
	}
}

// Execute validates the document and restores it in a single unit.
func (uc *ImportLedgerUseCase) Execute(ctx context.Context, input ImportLedgerInput) (*ImportLedgerOutput, error) {
	meta, state, err := uc.decoder.Decode(input.Document)
	if err != nil {
		var backupErr *domainerror.BackupError
		if errors.As(err, &backupErr) {
			return nil, err
		}
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeInvalidBackup,
			"invalid backup file format",
			fmt.Errorf("%w: %v", domainerror.ErrInvalidBackup, err),
		)
	}

	if meta.Version != adapter.BackupVersion {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeUnsupportedBackupVersion,
			fmt.Sprintf("unsupported backup version %d", meta.Version),
			domainerror.ErrUnsupportedBackupVersion,
		)
	}

	if err := validateState(state); err != nil {
		return nil, err
	}

	// Wipe and restore
	if err := uc.backupRepo.Replace(ctx, state); err != nil {
		return nil, fmt.Errorf("restore failed: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.CountLedgerWrite("ledger", "restore")
	}
	slog.Info("ledger restored from backup",
		"exported_at", meta.ExportedAt,
		"transactions", len(state.Transactions),
	)

	return &ImportLedgerOutput{
		Settings:     len(state.Settings),
		Categories:   len(state.Categories),
		Budgets:      len(state.Budgets),
		Goals:        len(state.Goals),
		Transactions: len(state.Transactions),
	}, nil
}

// validateState checks identities and budget category references.
// Transactions may point at deleted categories and goals; analytics reports
// them as uncategorized.
func validateState(state *adapter.LedgerState) error {
	categories := make(map[uuid.UUID]bool, len(state.Categories))
	names := make(map[string]bool, len(state.Categories))
	for _, c := range state.Categories {
		if categories[c.ID] {
			return invalid("duplicate category id %s", c.ID)
		}
		if !entity.IsValidCategoryType(c.Type) {
			return invalid("category %s has invalid type %q", c.ID, c.Type)
		}
		key := strings.ToLower(c.Name)
		if names[key] {
			return invalid("duplicate category name %q", c.Name)
		}
		categories[c.ID] = true
		names[key] = true
	}

	settings := make(map[string]bool, len(state.Settings))
	for _, s := range state.Settings {
		if settings[s.Key] {
			return invalid("duplicate setting %q", s.Key)
		}
		settings[s.Key] = true
	}

	goals := make(map[uuid.UUID]bool, len(state.Goals))
	for _, g := range state.Goals {
		if goals[g.ID] {
			return invalid("duplicate goal id %s", g.ID)
		}
		if !entity.IsValidGoalPriority(g.Priority) {
			return invalid("goal %s has invalid priority %d", g.ID, g.Priority)
		}
		goals[g.ID] = true
	}

	type budgetKey struct {
		category uuid.UUID
		period   entity.Period
	}
	budgets := make(map[budgetKey]bool, len(state.Budgets))
	for _, b := range state.Budgets {
		if !categories[b.CategoryID] {
			return dangling("budget %s references unknown category %s", b.ID, b.CategoryID)
		}
		if !b.Amount.IsPositive() {
			return invalid("budget %s must have a positive amount", b.ID)
		}
		key := budgetKey{b.CategoryID, b.Period}
		if budgets[key] {
			return invalid("duplicate budget for category %s in %s", b.CategoryID, b.Period)
		}
		budgets[key] = true
	}

	transactions := make(map[uuid.UUID]bool, len(state.Transactions))
	for _, t := range state.Transactions {
		if transactions[t.ID] {
			return invalid("duplicate transaction id %s", t.ID)
		}
		if !t.Amount.IsPositive() {
			return invalid("transaction %s must have a positive amount", t.ID)
		}
		transactions[t.ID] = true
	}
	return nil
}

func invalid(format string, args ...any) error {
	return domainerror.NewBackupError(
		domainerror.ErrCodeInvalidBackup,
		fmt.Sprintf(format, args...),
		domainerror.ErrInvalidBackup,
	)
}

func dangling(format string, args ...any) error {
	return domainerror.NewBackupError(
		domainerror.ErrCodeBackupDanglingReference,
		fmt.Sprintf(format, args...),
		domainerror.ErrBackupDanglingReference,
	)
}
