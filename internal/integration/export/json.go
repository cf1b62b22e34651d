// Package export encodes and decodes the ledger in its download formats.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// errMalformed marks documents that do not have the backup shape.
var errMalformed = errors.New("invalid backup file format")

// legacyNamespace derives stable UUIDs for backups that used integer row ids.
var legacyNamespace = uuid.MustParse("6f1c5a2e-9d0b-4d84-8a53-2f0e7c1b9a40")

// Document is the JSON backup layout.
type Document struct {
	Meta         *Meta         `json:"meta"`
	Settings     []Setting     `json:"settings"`
	Categories   []Category    `json:"categories"`
	Budgets      []Budget      `json:"budgets"`
	Goals        []Goal        `json:"goals"`
	Transactions []Transaction `json:"transactions"`
}

// Meta identifies the exporter.
type Meta struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	App        string    `json:"app"`
}

// Setting is one key/value row.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Category is one category row.
type Category struct {
	ID          Ref    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
	IsHidden    Flag   `json:"is_hidden"`
	Description string `json:"description"`
}

// Budget is one monthly limit.
type Budget struct {
	ID         Ref    `json:"id"`
	CategoryID Ref    `json:"category_id"`
	Month      string `json:"month_iso"`
	Amount     Number `json:"amount"`
}

// Goal is one savings goal.
type Goal struct {
	ID           Ref     `json:"id"`
	Name         string  `json:"name"`
	TargetAmount Number  `json:"target_amount"`
	Deadline     *string `json:"deadline"`
	Priority     int     `json:"priority"`
	IsCompleted  Flag    `json:"is_completed"`
}

// Transaction is one ledger movement.
type Transaction struct {
	ID          Ref    `json:"id"`
	Date        string `json:"date"`
	Amount      Number `json:"amount"`
	Description string `json:"description"`
	CategoryID  Ref    `json:"category_id"`
	GoalID      *Ref   `json:"goal_id"`
	Type        string `json:"type"`
}

// Number is a decimal written as a bare JSON number.
type Number decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings.
func (n *Number) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = Number(d)
	return nil
}

// Flag is a boolean that also reads the 0/1 integers older backups used.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid boolean %s", data)
	}
	return nil
}

// Ref is a row identifier: a UUID, or an integer id from a legacy backup.
type Ref struct {
	raw string
}

// RefOf wraps a UUID.
func RefOf(id uuid.UUID) Ref { return Ref{raw: id.String()} }

// MarshalJSON implements json.Marshaler.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.raw)
}

// UnmarshalJSON accepts strings and integers.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.raw = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	r.raw = n.String()
	return nil
}

// resolve maps the reference to a UUID within table.
func (r Ref) resolve(table string) (uuid.UUID, error) {
	if id, err := uuid.Parse(r.raw); err == nil {
		return id, nil
	}
	if _, err := strconv.ParseInt(r.raw, 10, 64); err == nil {
		return uuid.NewSHA1(legacyNamespace, []byte(table+":"+r.raw)), nil
	}
	return uuid.Nil, fmt.Errorf("invalid %s id %q", table, r.raw)
}

// JSONCodec writes and reads the full-state JSON backup.
type JSONCodec struct{}

// NewJSONCodec creates the JSON backup codec.
func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

// Format implements adapter.LedgerEncoder.
func (*JSONCodec) Format() string { return "json" }

// ContentType implements adapter.LedgerEncoder.
func (*JSONCodec) ContentType() string { return "application/json" }

// FileName implements adapter.LedgerEncoder.
func (*JSONCodec) FileName(date time.Time) string {
	return "finance_backup_" + date.Format(entity.DateLayout) + ".json"
}

// Encode implements adapter.LedgerEncoder.
func (*JSONCodec) Encode(w io.Writer, meta adapter.BackupMeta, state *adapter.LedgerState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToDocument(meta, state))
}

// Decode implements adapter.LedgerDecoder.
func (*JSONCodec) Decode(r io.Reader) (adapter.BackupMeta, *adapter.LedgerState, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return adapter.BackupMeta{}, nil, err
	}

	// transactions must be present and an array
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		return adapter.BackupMeta{}, nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if txs, ok := shape["transactions"]; !ok || !bytes.HasPrefix(bytes.TrimSpace(txs), []byte("[")) {
		return adapter.BackupMeta{}, nil, errMalformed
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return adapter.BackupMeta{}, nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if doc.Meta == nil {
		return adapter.BackupMeta{}, nil, errMalformed
	}
	return FromDocument(&doc)
}

// ToDocument converts a ledger state into its JSON layout.
func ToDocument(meta adapter.BackupMeta, state *adapter.LedgerState) *Document {
	doc := &Document{
		Meta:         &Meta{Version: meta.Version, ExportedAt: meta.ExportedAt, App: meta.App},
		Settings:     make([]Setting, 0, len(state.Settings)),
		Categories:   make([]Category, 0, len(state.Categories)),
		Budgets:      make([]Budget, 0, len(state.Budgets)),
		Goals:        make([]Goal, 0, len(state.Goals)),
		Transactions: make([]Transaction, 0, len(state.Transactions)),
	}
	for _, s := range state.Settings {
		doc.Settings = append(doc.Settings, Setting{Key: s.Key, Value: s.Value})
	}
	for _, c := range state.Categories {
		doc.Categories = append(doc.Categories, Category{
			ID: RefOf(c.ID), Name: c.Name, Type: string(c.Type), Icon: c.Icon,
			IsHidden: Flag(c.IsHidden), Description: c.Description,
		})
	}
	for _, b := range state.Budgets {
		doc.Budgets = append(doc.Budgets, Budget{
			ID: RefOf(b.ID), CategoryID: RefOf(b.CategoryID), Month: b.Period.String(), Amount: Number(b.Amount),
		})
	}
	for _, g := range state.Goals {
		var deadline *string
		if g.Deadline != nil {
			d := g.Deadline.Format(entity.DateLayout)
			deadline = &d
		}
		doc.Goals = append(doc.Goals, Goal{
			ID: RefOf(g.ID), Name: g.Name, TargetAmount: Number(g.TargetAmount), Deadline: deadline,
			Priority: g.Priority, IsCompleted: Flag(g.IsCompleted),
		})
	}
	for _, t := range state.Transactions {
		var goal *Ref
		if id := t.GoalID(); id != nil {
			r := RefOf(*id)
			goal = &r
		}
		doc.Transactions = append(doc.Transactions, Transaction{
			ID: RefOf(t.ID), Date: t.Date.Format(entity.DateLayout), Amount: Number(t.Amount),
			Description: t.Description, CategoryID: RefOf(t.CategoryID), GoalID: goal, Type: string(t.Kind.Type()),
		})
	}
	return doc
}

// FromDocument converts a decoded document back into a ledger state.
func FromDocument(doc *Document) (adapter.BackupMeta, *adapter.LedgerState, error) {
	meta := adapter.BackupMeta{}
	if doc.Meta != nil {
		meta = adapter.BackupMeta{Version: doc.Meta.Version, ExportedAt: doc.Meta.ExportedAt, App: doc.Meta.App}
	}

	state := &adapter.LedgerState{}
	for _, s := range doc.Settings {
		state.Settings = append(state.Settings, entity.Setting{Key: s.Key, Value: s.Value})
	}

	for _, c := range doc.Categories {
		id, err := c.ID.resolve("categories")
		if err != nil {
			return meta, nil, err
		}
		category := entity.NewCategory(c.Name, entity.CategoryType(c.Type), c.Icon, c.Description)
		category.ID = id
		category.IsHidden = bool(c.IsHidden)
		state.Categories = append(state.Categories, category)
	}

	for _, b := range doc.Budgets {
		id, err := b.ID.resolve("budgets")
		if err != nil {
			return meta, nil, err
		}
		categoryID, err := b.CategoryID.resolve("categories")
		if err != nil {
			return meta, nil, err
		}
		period, err := entity.ParsePeriod(b.Month)
		if err != nil {
			return meta, nil, fmt.Errorf("budget %s: %w", b.ID.raw, err)
		}
		budget := entity.NewBudget(categoryID, period, decimal.Decimal(b.Amount))
		budget.ID = id
		state.Budgets = append(state.Budgets, budget)
	}

	for _, g := range doc.Goals {
		id, err := g.ID.resolve("goals")
		if err != nil {
			return meta, nil, err
		}
		var deadline *time.Time
		if g.Deadline != nil && *g.Deadline != "" {
			d, err := entity.ParseDate(*g.Deadline)
			if err != nil {
				return meta, nil, fmt.Errorf("goal %s deadline: %w", g.ID.raw, err)
			}
			deadline = &d
		}
		goal := entity.NewGoal(g.Name, decimal.Decimal(g.TargetAmount), deadline, g.Priority)
		goal.ID = id
		goal.IsCompleted = bool(g.IsCompleted)
		state.Goals = append(state.Goals, goal)
	}

	for _, t := range doc.Transactions {
		id, err := t.ID.resolve("transactions")
		if err != nil {
			return meta, nil, err
		}
		categoryID, err := t.CategoryID.resolve("categories")
		if err != nil {
			return meta, nil, err
		}
		var goalID *uuid.UUID
		if t.GoalID != nil && t.GoalID.raw != "" {
			g, err := t.GoalID.resolve("goals")
			if err != nil {
				return meta, nil, err
			}
			goalID = &g
		}
		kind, err := entity.KindFor(entity.TransactionType(t.Type), goalID)
		if err != nil {
			return meta, nil, fmt.Errorf("transaction %s: %w", t.ID.raw, err)
		}
		date, err := entity.ParseDate(datePart(t.Date))
		if err != nil {
			return meta, nil, fmt.Errorf("transaction %s date: %w", t.ID.raw, err)
		}
		tx := entity.NewTransaction(date, decimal.Decimal(t.Amount), kind, categoryID, t.Description)
		tx.ID = id
		state.Transactions = append(state.Transactions, tx)
	}

	return meta, state, nil
}

// datePart keeps the calendar part of a date or timestamp.
func datePart(s string) string {
	if len(s) > len(entity.DateLayout) {
		return s[:len(entity.DateLayout)]
	}
	return s
}
