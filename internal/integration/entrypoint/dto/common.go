// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse acknowledges a write that returns no resource.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AsOfQuery carries the optional reference date of analytics endpoints.
type AsOfQuery struct {
	AsOf string `form:"as_of" binding:"omitempty,isodate"`
}

// Date parses AsOf, returning nil when it is absent.
func (q AsOfQuery) Date() *time.Time {
	if q.AsOf == "" {
		return nil
	}
	d, err := entity.ParseDate(q.AsOf)
	if err != nil {
		return nil
	}
	return &d
}

// MonthQuery carries a YYYY-MM month filter.
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,period"`
}

// money renders a decimal as a JSON number.
func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func dateString(t time.Time) string {
	return t.Format(entity.DateLayout)
}

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateString(*t)
	return &s
}
