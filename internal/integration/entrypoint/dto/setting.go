package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest represents the request body for updating settings.
type UpdateSettingsRequest struct {
	Salary decimal.Decimal `json:"salary"`
}

// SettingsResponse is the key/value settings map.
type SettingsResponse map[string]string
