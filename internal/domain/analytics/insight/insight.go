// Package insight turns a ledger snapshot into short prioritized observations.
// Each Rule is evaluated independently; the Registry merges their output.
package insight

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/analytics"
)

// Type classifies an insight for presentation.
type Type string

const (
	TypeRisk        Type = "risk"
	TypeWarning     Type = "warning"
	TypeObservation Type = "observation"
	TypeTrend       Type = "trend"
	TypeOpportunity Type = "opportunity"
	TypeSuccess     Type = "success"
)

// Insight is one finding. Lower Priority is more urgent.
type Insight struct {
	Rule       string
	Type       Type
	Priority   int
	Title      string
	Message    string
	CategoryID *uuid.UUID
	GoalID     *uuid.UUID
	Amount     *decimal.Decimal
}

// Rule inspects a snapshot as of ref.
type Rule interface {
	Name() string
	Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight
}

// Registry evaluates rules in registration order.
type Registry struct {
	rules []Rule
}

// NewRegistry creates a registry over rules.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: rules}
}

// DefaultRegistry returns the registry with every built-in rule.
func DefaultRegistry() *Registry {
	return NewRegistry(
		SpendingSpike{},
		RecurringCreep{},
		LifestyleInflation{},
		GoalRisk{},
		Opportunity{},
		Celebration{},
		PacingAlert{},
	)
}

// Rules returns the registered rules.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Evaluate concatenates the output of every rule and sorts it by priority.
// Insights with equal priority keep registration order.
func (r *Registry) Evaluate(snap *analytics.Snapshot, ref time.Time) []Insight {
	insights := make([]Insight, 0)
	for _, rule := range r.rules {
		insights = append(insights, rule.Evaluate(snap, ref)...)
	}
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority < insights[j].Priority
	})
	return insights
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func amountPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func percent(f float64) string {
	return decimal.NewFromFloat(f * 100).Round(0).String() + "%"
}
