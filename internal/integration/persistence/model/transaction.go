package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	GoalID      *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
// Rows whose type and goal do not form a valid kind are rejected.
func (m *TransactionModel) ToEntity() (*entity.Transaction, error) {
	kind, err := entity.KindFor(entity.TransactionType(m.Type), m.GoalID)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", m.ID, err)
	}

	return &entity.Transaction{
		ID:          m.ID,
		Date:        entity.Day(m.Date),
		Amount:      m.Amount,
		Kind:        kind,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}, nil
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		Date:        entity.Day(transaction.Date),
		Amount:      transaction.Amount,
		Type:        string(transaction.Kind.Type()),
		CategoryID:  transaction.CategoryID,
		GoalID:      transaction.GoalID(),
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt,
	}
}

// TransactionsToEntities converts a slice of models.
func TransactionsToEntities(models []TransactionModel) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		t, err := models[i].ToEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
