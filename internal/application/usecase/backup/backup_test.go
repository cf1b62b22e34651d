package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/adapter/adaptertest"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// countingEncoder writes a one-line summary of the state.
type countingEncoder struct{ meta adapter.BackupMeta }

func (e *countingEncoder) Format() string      { return "txt" }
func (e *countingEncoder) ContentType() string { return "text/plain" }
func (e *countingEncoder) FileName(date time.Time) string {
	return "ledger_" + date.Format(entity.DateLayout) + ".txt"
}
func (e *countingEncoder) Encode(w io.Writer, meta adapter.BackupMeta, state *adapter.LedgerState) error {
	e.meta = meta
	_, err := fmt.Fprintf(w, "%d transactions", len(state.Transactions))
	return err
}

// stubDecoder returns a fixed document.
type stubDecoder struct {
	meta  adapter.BackupMeta
	state *adapter.LedgerState
	err   error
}

func (d stubDecoder) Decode(io.Reader) (adapter.BackupMeta, *adapter.LedgerState, error) {
	return d.meta, d.state, d.err
}

func backupCode(t *testing.T, err error) domainerror.BackupErrorCode {
	t.Helper()
	var backupErr *domainerror.BackupError
	require.True(t, errors.As(err, &backupErr), "expected BackupError, got %v", err)
	return backupErr.Code
}

func sampleState() *adapter.LedgerState {
	groceries := entity.NewCategory("Groceries", entity.CategoryTypeExpense, "", "")
	goal := entity.NewGoal("Trip", decimal.NewFromInt(500), nil, 1)
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	return &adapter.LedgerState{
		Settings:   []entity.Setting{{Key: entity.SettingMonthlySalary, Value: "2000"}},
		Categories: []*entity.Category{groceries},
		Budgets:    []*entity.Budget{entity.NewBudget(groceries.ID, entity.PeriodOf(day), decimal.NewFromInt(300))},
		Goals:      []*entity.Goal{goal},
		Transactions: []*entity.Transaction{
			entity.NewTransaction(day, decimal.NewFromInt(40), entity.Expense{}, groceries.ID, ""),
			entity.NewTransaction(day, decimal.NewFromInt(60), entity.Transfer{GoalID: goal.ID}, groceries.ID, ""),
		},
	}
}

func TestExportLedgerUseCase(t *testing.T) {
	ctx := context.Background()
	ledger := adaptertest.NewLedger()
	require.NoError(t, ledger.BackupRepository().Replace(ctx, sampleState()))
	clock := adaptertest.Clock{At: time.Date(2024, 4, 15, 9, 0, 0, 0, time.UTC)}
	encoder := &countingEncoder{}
	uc := NewExportLedgerUseCase(ledger.BackupRepository(), clock, encoder)

	out, err := uc.Execute(ctx, ExportLedgerInput{Format: " TXT "})
	require.NoError(t, err)
	assert.Equal(t, "2 transactions", string(out.Body))
	assert.Equal(t, "ledger_2024-04-15.txt", out.FileName)
	assert.Equal(t, "text/plain", out.ContentType)
	assert.Equal(t, adapter.BackupVersion, encoder.meta.Version)
	assert.Equal(t, AppName, encoder.meta.App)

	_, err = uc.Execute(ctx, ExportLedgerInput{Format: "pdf"})
	assert.Equal(t, domainerror.ErrCodeUnsupportedExportFormat, backupCode(t, err))

	// json is the default but no json encoder was registered
	_, err = uc.Execute(ctx, ExportLedgerInput{})
	assert.Equal(t, domainerror.ErrCodeUnsupportedExportFormat, backupCode(t, err))
}

func TestImportLedgerUseCase(t *testing.T) {
	ctx := context.Background()
	meta := adapter.BackupMeta{Version: adapter.BackupVersion}

	t.Run("replaces the ledger", func(t *testing.T) {
		ledger := adaptertest.NewLedger()
		ledger.Categories = []*entity.Category{entity.NewCategory("Stale", entity.CategoryTypeIncome, "", "")}
		state := sampleState()
		metrics := &adaptertest.Metrics{}
		uc := NewImportLedgerUseCase(ledger.BackupRepository(), stubDecoder{meta: meta, state: state}, metrics)

		out, err := uc.Execute(ctx, ImportLedgerInput{Document: strings.NewReader("{}")})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Transactions)
		assert.Equal(t, 1, out.Budgets)
		require.Len(t, ledger.Categories, 1)
		assert.Equal(t, "Groceries", ledger.Categories[0].Name)
		assert.Equal(t, "2000", ledger.Settings[entity.SettingMonthlySalary])
		assert.Equal(t, []string{"ledger.restore"}, metrics.Writes)
	})

	t.Run("tolerates transactions of deleted categories", func(t *testing.T) {
		state := sampleState()
		state.Transactions[0].CategoryID = uuid.New()
		ledger := adaptertest.NewLedger()
		uc := NewImportLedgerUseCase(ledger.BackupRepository(), stubDecoder{meta: meta, state: state}, nil)
		_, err := uc.Execute(ctx, ImportLedgerInput{})
		require.NoError(t, err)
		assert.Len(t, ledger.Transactions, len(state.Transactions))
	})

	t.Run("tolerates dangling goal references", func(t *testing.T) {
		state := sampleState()
		state.Goals = nil
		uc := NewImportLedgerUseCase(adaptertest.NewLedger().BackupRepository(), stubDecoder{meta: meta, state: state}, nil)
		_, err := uc.Execute(ctx, ImportLedgerInput{})
		require.NoError(t, err)
	})

	cases := []struct {
		name    string
		decoder stubDecoder
		code    domainerror.BackupErrorCode
	}{
		{"undecodable", stubDecoder{err: errors.New("unexpected EOF")}, domainerror.ErrCodeInvalidBackup},
		{"wrong version", stubDecoder{meta: adapter.BackupMeta{Version: 2}, state: sampleState()}, domainerror.ErrCodeUnsupportedBackupVersion},
		{"dangling budget", stubDecoder{meta: meta, state: func() *adapter.LedgerState {
			s := sampleState()
			s.Budgets[0].CategoryID = uuid.New()
			return s
		}()}, domainerror.ErrCodeBackupDanglingReference},
		{"duplicate transaction", stubDecoder{meta: meta, state: func() *adapter.LedgerState {
			s := sampleState()
			s.Transactions[1].ID = s.Transactions[0].ID
			return s
		}()}, domainerror.ErrCodeInvalidBackup},
		{"duplicate category name", stubDecoder{meta: meta, state: func() *adapter.LedgerState {
			s := sampleState()
			s.Categories = append(s.Categories, entity.NewCategory("GROCERIES", entity.CategoryTypeExpense, "", ""))
			return s
		}()}, domainerror.ErrCodeInvalidBackup},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := adaptertest.NewLedger()
			ledger.Settings["keep"] = "me"
			uc := NewImportLedgerUseCase(ledger.BackupRepository(), tc.decoder, nil)

			_, err := uc.Execute(ctx, ImportLedgerInput{Document: strings.NewReader("")})
			assert.Equal(t, tc.code, backupCode(t, err))
			assert.Equal(t, "me", ledger.Settings["keep"])
		})
	}
}
