// Package backup contains export and restore use cases.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// AppName is written into the meta block of every export.
const AppName = "personal-finance-ledger"

// DefaultFormat is used when no export format is requested.
const DefaultFormat = "json"

// ExportLedgerInput represents the input for exporting the ledger.
type ExportLedgerInput struct {
	Format string
}

// ExportLedgerOutput is an encoded ledger ready for download.
type ExportLedgerOutput struct {
	ContentType string
	FileName    string
	Body        []byte
}

// ExportLedgerUseCase dumps the ledger and encodes it.
type ExportLedgerUseCase struct {
	backupRepo adapter.BackupRepository
	clock      adapter.Clock
	encoders   map[string]adapter.LedgerEncoder
}

// NewExportLedgerUseCase creates a new ExportLedgerUseCase instance.
func NewExportLedgerUseCase(backupRepo adapter.BackupRepository, clock adapter.Clock, encoders ...adapter.LedgerEncoder) *ExportLedgerUseCase {
	byFormat := make(map[string]adapter.LedgerEncoder, len(encoders))
	for _, e := range encoders {
		byFormat[e.Format()] = e
	}
	return &ExportLedgerUseCase{
		backupRepo: backupRepo,
		clock:      clock,
		encoders:   byFormat,
	}
}

// Execute performs the export.
func (uc *ExportLedgerUseCase) Execute(ctx context.Context, input ExportLedgerInput) (*ExportLedgerOutput, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = DefaultFormat
	}
	encoder, ok := uc.encoders[format]
	if !ok {
		return nil, domainerror.NewBackupError(
			domainerror.ErrCodeUnsupportedExportFormat,
			fmt.Sprintf("unsupported export format %q", input.Format),
			domainerror.ErrUnsupportedExportFormat,
		)
	}

	state, err := uc.backupRepo.Dump(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	now := uc.clock.Now().UTC()
	meta := adapter.BackupMeta{Version: adapter.BackupVersion, ExportedAt: now, App: AppName}

	var buf bytes.Buffer
	if err := encoder.Encode(&buf, meta, state); err != nil {
		return nil, fmt.Errorf("failed to encode %s export: %w", format, err)
	}

	return &ExportLedgerOutput{
		ContentType: encoder.ContentType(),
		FileName:    encoder.FileName(now),
		Body:        buf.Bytes(),
	}, nil
}
