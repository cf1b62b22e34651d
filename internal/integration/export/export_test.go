package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

var exportedAt = time.Date(2024, 4, 15, 10, 30, 0, 0, time.UTC)

func sampleState() *adapter.LedgerState {
	groceries := entity.NewCategory("Groceries", entity.CategoryTypeExpense, "🛒", "food")
	savings := entity.NewCategory("Savings", entity.CategoryTypeSavings, "", "")
	deadline := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	trip := entity.NewGoal("Trip", decimal.NewFromInt(1200), &deadline, 1)
	april := entity.Period{Year: 2024, Month: time.April}

	return &adapter.LedgerState{
		Settings:   []entity.Setting{{Key: entity.SettingMonthlySalary, Value: "2500"}},
		Categories: []*entity.Category{groceries, savings},
		Budgets:    []*entity.Budget{entity.NewBudget(groceries.ID, april, decimal.NewFromInt(300))},
		Goals:      []*entity.Goal{trip},
		Transactions: []*entity.Transaction{
			entity.NewTransaction(april.Start(), decimal.RequireFromString("12.34"), entity.Expense{}, groceries.ID, `Milk, "organic"`),
			entity.NewTransaction(april.Start().AddDate(0, 0, 4), decimal.NewFromInt(100), entity.Transfer{GoalID: trip.ID}, savings.ID, "Saved towards goal"),
			entity.NewTransaction(april.Start().AddDate(0, 0, 2), decimal.NewFromInt(9), entity.Expense{}, uuid.New(), "orphan"),
		},
	}
}

func meta() adapter.BackupMeta {
	return adapter.BackupMeta{Version: adapter.BackupVersion, ExportedAt: exportedAt, App: "test"}
}

func TestJSONCodec_RoundTrip(t *testing.T) {
	codec := NewJSONCodec()
	state := sampleState()

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, meta(), state))
	assert.Contains(t, buf.String(), `"amount": 12.34`)
	assert.Contains(t, buf.String(), `"month_iso": "2024-04"`)

	gotMeta, got, err := codec.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, adapter.BackupVersion, gotMeta.Version)
	assert.True(t, exportedAt.Equal(gotMeta.ExportedAt))

	require.Len(t, got.Transactions, 3)
	for i, want := range state.Transactions {
		assert.Equal(t, want.ID, got.Transactions[i].ID)
		assert.Equal(t, want.Date, got.Transactions[i].Date)
		assert.True(t, want.Amount.Equal(got.Transactions[i].Amount))
		assert.Equal(t, want.Kind, got.Transactions[i].Kind)
		assert.Equal(t, want.Description, got.Transactions[i].Description)
	}
	assert.Equal(t, state.Categories[0].ID, got.Categories[0].ID)
	assert.Equal(t, "food", got.Categories[0].Description)
	assert.Equal(t, state.Budgets[0].Period, got.Budgets[0].Period)
	assert.Equal(t, *state.Goals[0].Deadline, *got.Goals[0].Deadline)
	assert.Equal(t, state.Settings, got.Settings)
}

func TestJSONCodec_DecodeLegacyBackup(t *testing.T) {
	doc := `{
	  "meta": {"version": 1, "exported_at": "2024-01-31T10:00:00.000Z", "app": "personal-finance-local"},
	  "settings": [{"key": "monthly_salary", "value": "3000"}],
	  "categories": [
	    {"id": 4, "name": "Groceries", "type": "expense", "icon": "🛒", "is_hidden": 0, "description": null},
	    {"id": 12, "name": "Savings", "type": "savings", "icon": "🏦", "is_hidden": 1}
	  ],
	  "budgets": [{"id": 1, "category_id": 4, "month_iso": "2024-01", "amount": 250}],
	  "goals": [{"id": 1, "name": "Car", "target_amount": 5000, "saved_amount": 0, "deadline": null, "priority": 2, "is_completed": 0}],
	  "transactions": [
	    {"id": 1, "date": "2024-01-05", "amount": 42.5, "description": "Market", "category_id": 4, "goal_id": null, "type": "expense"},
	    {"id": 2, "date": "2024-01-06", "amount": 100, "description": "Saved towards goal", "category_id": 12, "goal_id": 1, "type": "transfer"}
	  ]
	}`

	_, state, err := NewJSONCodec().Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, state.Categories, 2)
	assert.True(t, state.Categories[1].IsHidden)
	assert.Equal(t, state.Categories[0].ID, state.Budgets[0].CategoryID)
	assert.Equal(t, state.Categories[0].ID, state.Transactions[0].CategoryID)
	require.NotNil(t, state.Transactions[1].GoalID())
	assert.Equal(t, state.Goals[0].ID, *state.Transactions[1].GoalID())
	assert.NotEqual(t, state.Categories[0].ID, state.Goals[0].ID)
}

func TestJSONCodec_DecodeRejectsMalformed(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":               `nope`,
		"missing meta":           `{"transactions": []}`,
		"transactions not array": `{"meta": {"version": 1}, "transactions": {}}`,
		"missing transactions":   `{"meta": {"version": 1}}`,
		"transfer without goal":  `{"meta": {"version": 1}, "transactions": [{"id": 1, "date": "2024-01-01", "amount": 1, "category_id": 1, "type": "transfer"}]}`,
		"bad date":               `{"meta": {"version": 1}, "transactions": [{"id": 1, "date": "01/01/2024", "amount": 1, "category_id": 1, "type": "expense"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := NewJSONCodec().Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestCSVEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVEncoder().Encode(&buf, meta(), sampleState()))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,amount,type,category,description", lines[0])
	assert.Equal(t, `"2024-04-05","100","transfer","Savings","Saved towards goal"`, lines[1])
	assert.Equal(t, `"2024-04-03","9","expense","","orphan"`, lines[2])
	assert.Equal(t, `"2024-04-01","12.34","expense","Groceries","Milk, ""organic"""`, lines[3])
}

func TestXLSXEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXEncoder().Encode(&buf, meta(), sampleState()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetTransactions, SheetCategories, SheetBudgets, SheetGoals, SheetSettings}, f.GetSheetList())

	rows, err := f.GetRows(SheetTransactions)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Trip", rows[2][4])

	budgets, err := f.GetRows(SheetBudgets)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-04", "Groceries", "300"}, budgets[1])
}
