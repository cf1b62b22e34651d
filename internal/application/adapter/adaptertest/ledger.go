// Package adaptertest provides in-memory adapter implementations for use case tests.
package adaptertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// Ledger is an in-memory ledger implementing every repository interface.
// Err, when set, is returned by every method.
type Ledger struct {
	mu           sync.Mutex
	Transactions []*entity.Transaction
	Categories   []*entity.Category
	Budgets      []*entity.Budget
	Goals        []*entity.Goal
	Settings     map[string]string
	Err          error
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Settings: make(map[string]string)}
}

// TransactionRepository returns the ledger's transaction repository.
func (l *Ledger) TransactionRepository() adapter.TransactionRepository { return transactions{l} }

// CategoryRepository returns the ledger's category repository.
func (l *Ledger) CategoryRepository() adapter.CategoryRepository { return categories{l} }

// GoalRepository returns the ledger's goal repository.
func (l *Ledger) GoalRepository() adapter.GoalRepository { return goals{l} }

// BudgetRepository returns the ledger's budget repository.
func (l *Ledger) BudgetRepository() adapter.BudgetRepository { return budgets{l} }

// SettingRepository returns the ledger's setting repository.
func (l *Ledger) SettingRepository() adapter.SettingRepository { return settings{l} }

// BackupRepository returns the ledger's backup repository.
func (l *Ledger) BackupRepository() adapter.BackupRepository { return backup{l} }

// Reader returns the ledger as a LedgerReader.
func (l *Ledger) Reader() adapter.LedgerReader { return reader{l} }

type transactions struct{ l *Ledger }

func (r transactions) Create(_ context.Context, t *entity.Transaction) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	r.l.Transactions = append(r.l.Transactions, t)
	return nil
}

func (r transactions) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	for _, t := range r.l.Transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r transactions) List(_ context.Context, period *entity.Period) ([]*entity.Transaction, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	out := make([]*entity.Transaction, 0, len(r.l.Transactions))
	for _, t := range r.l.Transactions {
		if period == nil || period.Contains(t.Date) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r transactions) Delete(_ context.Context, id uuid.UUID) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	for i, t := range r.l.Transactions {
		if t.ID == id {
			r.l.Transactions = append(r.l.Transactions[:i], r.l.Transactions[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

type categories struct{ l *Ledger }

func (r categories) Create(_ context.Context, c *entity.Category) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	r.l.Categories = append(r.l.Categories, c)
	return nil
}

func (r categories) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	for _, c := range r.l.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r categories) FindAll(_ context.Context) ([]*entity.Category, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	return append([]*entity.Category(nil), r.l.Categories...), nil
}

func (r categories) FindByType(_ context.Context, categoryType entity.CategoryType) ([]*entity.Category, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	var out []*entity.Category
	for _, c := range r.l.Categories {
		if c.Type == categoryType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r categories) ExistsByName(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return false, r.l.Err
	}
	for _, c := range r.l.Categories {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r categories) Update(_ context.Context, c *entity.Category) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	for i, existing := range r.l.Categories {
		if existing.ID == c.ID {
			r.l.Categories[i] = c
			return nil
		}
	}
	return domainerror.ErrCategoryNotFound
}

func (r categories) Delete(_ context.Context, id uuid.UUID) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	for i, c := range r.l.Categories {
		if c.ID != id {
			continue
		}
		r.l.Categories = append(r.l.Categories[:i:i], r.l.Categories[i+1:]...)
		kept := r.l.Budgets[:0:0]
		for _, b := range r.l.Budgets {
			if b.CategoryID != id {
				kept = append(kept, b)
			}
		}
		r.l.Budgets = kept
		return nil
	}
	return domainerror.ErrCategoryNotFound
}

func (r categories) Count(_ context.Context) (int64, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	return int64(len(r.l.Categories)), r.l.Err
}

type goals struct{ l *Ledger }

func (r goals) Create(_ context.Context, g *entity.Goal) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	r.l.Goals = append(r.l.Goals, g)
	return nil
}

func (r goals) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	for _, g := range r.l.Goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domainerror.ErrGoalNotFound
}

func (r goals) List(_ context.Context, includeCompleted bool) ([]*entity.Goal, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	var out []*entity.Goal
	for _, g := range r.l.Goals {
		if includeCompleted || !g.IsCompleted {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RanksBefore(out[j]) })
	return out, nil
}

func (r goals) Update(_ context.Context, g *entity.Goal) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	for i, existing := range r.l.Goals {
		if existing.ID == g.ID {
			r.l.Goals[i] = g
			return nil
		}
	}
	return domainerror.ErrGoalNotFound
}

func (r goals) Delete(_ context.Context, id uuid.UUID) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	for i, g := range r.l.Goals {
		if g.ID == id {
			r.l.Goals = append(r.l.Goals[:i], r.l.Goals[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrGoalNotFound
}

type budgets struct{ l *Ledger }

func (r budgets) Upsert(_ context.Context, b *entity.Budget) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	for i, existing := range r.l.Budgets {
		if existing.CategoryID == b.CategoryID && existing.Period == b.Period {
			b.ID = existing.ID
			r.l.Budgets[i] = b
			return nil
		}
	}
	r.l.Budgets = append(r.l.Budgets, b)
	return nil
}

func (r budgets) DeleteByCategoryAndPeriod(_ context.Context, categoryID uuid.UUID, period entity.Period) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	kept := r.l.Budgets[:0]
	for _, b := range r.l.Budgets {
		if b.CategoryID != categoryID || b.Period != period {
			kept = append(kept, b)
		}
	}
	r.l.Budgets = kept
	return nil
}

func (r budgets) FindByPeriod(_ context.Context, period entity.Period) ([]*entity.Budget, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	var out []*entity.Budget
	for _, b := range r.l.Budgets {
		if b.Period == period {
			out = append(out, b)
		}
	}
	return out, nil
}

type settings struct{ l *Ledger }

func (r settings) Get(_ context.Context, key string) (string, bool, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return "", false, r.l.Err
	}
	v, ok := r.l.Settings[key]
	return v, ok, nil
}

func (r settings) Set(_ context.Context, key, value string) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	r.l.Settings[key] = value
	return nil
}

func (r settings) All(_ context.Context) ([]entity.Setting, error) {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return nil, r.l.Err
	}
	out := make([]entity.Setting, 0, len(r.l.Settings))
	for k, v := range r.l.Settings {
		out = append(out, entity.Setting{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

type backup struct{ l *Ledger }

func (r backup) Dump(ctx context.Context) (*adapter.LedgerState, error) {
	all, err := settings(r).All(ctx)
	if err != nil {
		return nil, err
	}
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	return &adapter.LedgerState{
		Settings:     all,
		Categories:   append([]*entity.Category(nil), r.l.Categories...),
		Budgets:      append([]*entity.Budget(nil), r.l.Budgets...),
		Goals:        append([]*entity.Goal(nil), r.l.Goals...),
		Transactions: append([]*entity.Transaction(nil), r.l.Transactions...),
	}, nil
}

func (r backup) Replace(_ context.Context, state *adapter.LedgerState) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	if r.l.Err != nil {
		return r.l.Err
	}
	r.l.Settings = make(map[string]string, len(state.Settings))
	for _, s := range state.Settings {
		r.l.Settings[s.Key] = s.Value
	}
	r.l.Categories = append([]*entity.Category(nil), state.Categories...)
	r.l.Budgets = append([]*entity.Budget(nil), state.Budgets...)
	r.l.Goals = append([]*entity.Goal(nil), state.Goals...)
	r.l.Transactions = append([]*entity.Transaction(nil), state.Transactions...)
	return nil
}

type reader struct{ l *Ledger }

func (r reader) ListTransactions(ctx context.Context, period *entity.Period) ([]*entity.Transaction, error) {
	return transactions(r).List(ctx, period)
}

func (r reader) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return categories(r).FindAll(ctx)
}

func (r reader) ListBudgets(ctx context.Context, period entity.Period) ([]*entity.Budget, error) {
	return budgets(r).FindByPeriod(ctx, period)
}

func (r reader) ListGoals(ctx context.Context, includeCompleted bool) ([]*entity.Goal, error) {
	return goals(r).List(ctx, includeCompleted)
}

func (r reader) GetSetting(ctx context.Context, key string) (*string, error) {
	v, ok, err := settings(r).Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// WithinSnapshot hands fn a reader over a copy of the ledger taken now.
func (r reader) WithinSnapshot(_ context.Context, fn func(adapter.LedgerReader) error) error {
	r.l.mu.Lock()
	frozen := &Ledger{
		Transactions: append([]*entity.Transaction(nil), r.l.Transactions...),
		Categories:   append([]*entity.Category(nil), r.l.Categories...),
		Budgets:      append([]*entity.Budget(nil), r.l.Budgets...),
		Goals:        append([]*entity.Goal(nil), r.l.Goals...),
		Settings:     make(map[string]string, len(r.l.Settings)),
		Err:          r.l.Err,
	}
	for k, v := range r.l.Settings {
		frozen.Settings[k] = v
	}
	r.l.mu.Unlock()
	return fn(reader{frozen})
}

// Clock is a fixed clock.
type Clock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c Clock) Now() time.Time { return c.At }

// Metrics records ledger writes and analytics calls.
type Metrics struct {
	mu       sync.Mutex
	Writes   []string
	Queries  []string
	Insights map[string]int
}

// ObserveAnalytics implements adapter.MetricsRecorder.
func (m *Metrics) ObserveAnalytics(operation string, _ float64, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, operation)
}

// CountInsights implements adapter.MetricsRecorder.
func (m *Metrics) CountInsights(rule string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Insights == nil {
		m.Insights = make(map[string]int)
	}
	m.Insights[rule] += n
}

// CountLedgerWrite implements adapter.MetricsRecorder as "entity.action".
func (m *Metrics) CountLedgerWrite(entityName, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes = append(m.Writes, entityName+"."+action)
}
