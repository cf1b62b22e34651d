package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(100);not null"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Deadline     *time.Time      `gorm:"type:date"`
	Priority     int             `gorm:"not null;default:2"`
	IsCompleted  bool            `gorm:"not null;default:false;index"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deadline *time.Time
	if m.Deadline != nil {
		d := entity.Day(*m.Deadline)
		deadline = &d
	}

	return &entity.Goal{
		ID:           m.ID,
		Name:         m.Name,
		TargetAmount: m.TargetAmount,
		Deadline:     deadline,
		Priority:     m.Priority,
		IsCompleted:  m.IsCompleted,
		CreatedAt:    m.CreatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:           goal.ID,
		Name:         goal.Name,
		TargetAmount: goal.TargetAmount,
		Deadline:     goal.Deadline,
		Priority:     goal.Priority,
		IsCompleted:  goal.IsCompleted,
		CreatedAt:    goal.CreatedAt,
	}
}
