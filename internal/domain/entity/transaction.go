// Package entity defines the core business entities for the domain layer.
package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the stored discriminator of a transaction kind.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

var (
	// ErrUnknownTransactionType is returned by KindFor for an unrecognised type.
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrTransferWithoutGoal is returned by KindFor when a transfer has no goal.
	ErrTransferWithoutGoal = errors.New("transfer requires a goal")
)

// Kind is the direction of a transaction. The set of implementations is closed:
// Income, Expense and Transfer.
type Kind interface {
	Type() TransactionType
	// Goal returns the goal the transaction is linked to, if any.
	Goal() *uuid.UUID
	sealed()
}

// Income is money received.
type Income struct{}

func (Income) Type() TransactionType { return TransactionTypeIncome }
func (Income) Goal() *uuid.UUID      { return nil }
func (Income) sealed()               {}

// Expense is money spent. An expense linked to a goal is a withdrawal from it.
type Expense struct {
	GoalID *uuid.UUID
}

func (Expense) Type() TransactionType { return TransactionTypeExpense }
func (e Expense) Goal() *uuid.UUID    { return e.GoalID }
func (Expense) sealed()               {}

// Transfer moves money into a savings goal.
type Transfer struct {
	GoalID uuid.UUID
}

func (Transfer) Type() TransactionType { return TransactionTypeTransfer }
func (t Transfer) Goal() *uuid.UUID {
	id := t.GoalID
	return &id
}
func (Transfer) sealed() {}

// KindFor rebuilds a Kind from its stored representation.
func KindFor(t TransactionType, goalID *uuid.UUID) (Kind, error) {
	switch t {
	case TransactionTypeIncome:
		return Income{}, nil
	case TransactionTypeExpense:
		return Expense{GoalID: goalID}, nil
	case TransactionTypeTransfer:
		if goalID == nil || *goalID == uuid.Nil {
			return nil, ErrTransferWithoutGoal
		}
		return Transfer{GoalID: *goalID}, nil
	default:
		return nil, ErrUnknownTransactionType
	}
}

// Transaction is a single ledger movement. Amount is never negative; the
// direction is carried by Kind.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Kind        Kind
	CategoryID  uuid.UUID
	Description string
	CreatedAt   time.Time
}

// NewTransaction creates a new Transaction dated on the calendar day of date.
func NewTransaction(date time.Time, amount decimal.Decimal, kind Kind, categoryID uuid.UUID, description string) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Date:        Day(date),
		Amount:      amount,
		Kind:        kind,
		CategoryID:  categoryID,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsIncome reports whether the transaction is income.
func (t *Transaction) IsIncome() bool {
	_, ok := t.Kind.(Income)
	return ok
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	_, ok := t.Kind.(Expense)
	return ok
}

// IsTransfer reports whether the transaction is a transfer into a goal.
func (t *Transaction) IsTransfer() bool {
	_, ok := t.Kind.(Transfer)
	return ok
}

// GoalID returns the linked goal, or nil.
func (t *Transaction) GoalID() *uuid.UUID {
	if t.Kind == nil {
		return nil
	}
	return t.Kind.Goal()
}
