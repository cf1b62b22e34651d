package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal priorities. Lower numbers are more important.
const (
	GoalPriorityHigh   = 1
	GoalPriorityMedium = 2
	GoalPriorityLow    = 3

	DefaultGoalPriority = GoalPriorityMedium
)

// Goal is a savings target. Its balance is never stored; it is derived from
// the transfers and expenses linked to it.
type Goal struct {
	ID           uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Deadline     *time.Time
	Priority     int
	IsCompleted  bool
	CreatedAt    time.Time
}

// NewGoal creates a new Goal. A zero priority falls back to the default.
func NewGoal(name string, target decimal.Decimal, deadline *time.Time, priority int) *Goal {
	if priority == 0 {
		priority = DefaultGoalPriority
	}
	if deadline != nil {
		d := Day(*deadline)
		deadline = &d
	}
	return &Goal{
		ID:           uuid.New(),
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
		Priority:     priority,
		CreatedAt:    time.Now().UTC(),
	}
}

// IsValidGoalPriority reports whether p is 1, 2 or 3.
func IsValidGoalPriority(p int) bool {
	return p >= GoalPriorityHigh && p <= GoalPriorityLow
}

// RanksBefore orders goals by priority, then by deadline with undated goals last.
func (g *Goal) RanksBefore(other *Goal) bool {
	if g.Priority != other.Priority {
		return g.Priority < other.Priority
	}
	switch {
	case g.Deadline == nil:
		return false
	case other.Deadline == nil:
		return true
	default:
		return g.Deadline.Before(*other.Deadline)
	}
}
