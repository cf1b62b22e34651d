package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required,isodate"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=income expense transfer"`
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	GoalID      *string         `json:"goal_id,omitempty" binding:"omitempty,uuid"`
	Description string          `json:"description" binding:"max=255"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Type string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	Date        string                       `json:"date"`
	Amount      float64                      `json:"amount"`
	Type        string                       `json:"type"`
	CategoryID  string                       `json:"category_id"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	GoalID      *string                      `json:"goal_id,omitempty"`
	Description string                       `json:"description"`
	CreatedAt   time.Time                    `json:"created_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a transaction output to its DTO.
func ToTransactionResponse(out *transaction.TransactionOutput) TransactionResponse {
	t := out.Transaction
	resp := TransactionResponse{
		ID:          t.ID.String(),
		Date:        dateString(t.Date),
		Amount:      money(t.Amount),
		Type:        string(t.Kind.Type()),
		CategoryID:  t.CategoryID.String(),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
	if id := t.GoalID(); id != nil {
		s := id.String()
		resp.GoalID = &s
	}
	if out.Category != nil {
		resp.Category = &TransactionCategoryResponse{
			ID:   out.Category.ID.String(),
			Name: out.Category.Name,
			Icon: out.Category.Icon,
			Type: string(out.Category.Type),
		}
	}
	return resp
}

// ToTransactionListResponse converts transaction outputs to a TransactionListResponse.
func ToTransactionListResponse(outputs []*transaction.TransactionOutput) TransactionListResponse {
	out := make([]TransactionResponse, len(outputs))
	for i, o := range outputs {
		out[i] = ToTransactionResponse(o)
	}
	return TransactionListResponse{Transactions: out}
}
