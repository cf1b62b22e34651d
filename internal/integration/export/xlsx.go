package export

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// Workbook sheet names.
const (
	SheetTransactions = "Transactions"
	SheetCategories   = "Categories"
	SheetBudgets      = "Budgets"
	SheetGoals        = "Goals"
	SheetSettings     = "Settings"
)

// XLSXEncoder writes the ledger as a workbook with one sheet per table.
type XLSXEncoder struct{}

// NewXLSXEncoder creates the spreadsheet exporter.
func NewXLSXEncoder() *XLSXEncoder { return &XLSXEncoder{} }

// Format implements adapter.LedgerEncoder.
func (*XLSXEncoder) Format() string { return "xlsx" }

// ContentType implements adapter.LedgerEncoder.
func (*XLSXEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName implements adapter.LedgerEncoder.
func (*XLSXEncoder) FileName(date time.Time) string {
	return "finance_ledger_" + date.Format(entity.DateLayout) + ".xlsx"
}

// Encode implements adapter.LedgerEncoder.
func (*XLSXEncoder) Encode(w io.Writer, meta adapter.BackupMeta, state *adapter.LedgerState) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	names := make(map[uuid.UUID]string, len(state.Categories))
	for _, c := range state.Categories {
		names[c.ID] = c.Name
	}

	sheets := []struct {
		name    string
		columns []any
		rows    [][]any
	}{
		{SheetTransactions, []any{"Date", "Amount", "Type", "Category", "Goal", "Description"}, transactionRows(state, names)},
		{SheetCategories, []any{"Name", "Type", "Icon", "Hidden", "Description"}, categoryRows(state)},
		{SheetBudgets, []any{"Month", "Category", "Amount"}, budgetRows(state, names)},
		{SheetGoals, []any{"Name", "Target", "Deadline", "Priority", "Completed"}, goalRows(state)},
		{SheetSettings, []any{"Key", "Value"}, settingRows(state, meta)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet.name, "A1", &sheet.columns); err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet.name, 1, 1, header); err != nil {
			return err
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sheet.name, r+2, err)
			}
		}
	}

	return f.Write(w)
}

func transactionRows(state *adapter.LedgerState, names map[uuid.UUID]string) [][]any {
	goals := make(map[uuid.UUID]string, len(state.Goals))
	for _, g := range state.Goals {
		goals[g.ID] = g.Name
	}
	rows := make([][]any, 0, len(state.Transactions))
	for _, t := range state.Transactions {
		goal := ""
		if id := t.GoalID(); id != nil {
			goal = goals[*id]
		}
		rows = append(rows, []any{
			t.Date.Format(entity.DateLayout), t.Amount.InexactFloat64(), string(t.Kind.Type()),
			names[t.CategoryID], goal, t.Description,
		})
	}
	return rows
}

func categoryRows(state *adapter.LedgerState) [][]any {
	rows := make([][]any, 0, len(state.Categories))
	for _, c := range state.Categories {
		rows = append(rows, []any{c.Name, string(c.Type), c.Icon, c.IsHidden, c.Description})
	}
	return rows
}

func budgetRows(state *adapter.LedgerState, names map[uuid.UUID]string) [][]any {
	rows := make([][]any, 0, len(state.Budgets))
	for _, b := range state.Budgets {
		rows = append(rows, []any{b.Period.String(), names[b.CategoryID], b.Amount.InexactFloat64()})
	}
	return rows
}

func goalRows(state *adapter.LedgerState) [][]any {
	rows := make([][]any, 0, len(state.Goals))
	for _, g := range state.Goals {
		deadline := ""
		if g.Deadline != nil {
			deadline = g.Deadline.Format(entity.DateLayout)
		}
		rows = append(rows, []any{g.Name, g.TargetAmount.InexactFloat64(), deadline, g.Priority, g.IsCompleted})
	}
	return rows
}

func settingRows(state *adapter.LedgerState, meta adapter.BackupMeta) [][]any {
	rows := make([][]any, 0, len(state.Settings)+1)
	for _, s := range state.Settings {
		rows = append(rows, []any{s.Key, s.Value})
	}
	return append(rows, []any{"exported_at", meta.ExportedAt.Format(time.RFC3339)})
}
