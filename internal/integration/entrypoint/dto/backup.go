package dto

import "github.com/finance-tracker/ledger/internal/application/usecase/backup"

// ExportQuery selects the export format.
type ExportQuery struct {
	Format string `form:"format"`
}

// RestoreStats counts the restored rows.
type RestoreStats struct {
	Settings     int `json:"settings"`
	Categories   int `json:"categories"`
	Budgets      int `json:"budgets"`
	Goals        int `json:"goals"`
	Transactions int `json:"transactions"`
}

// ImportResponse reports a successful restore.
type ImportResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Stats   RestoreStats `json:"stats"`
}

// ToImportResponse converts the restore output to its DTO.
func ToImportResponse(out *backup.ImportLedgerOutput) ImportResponse {
	return ImportResponse{
		Success: true,
		Message: "Restore successful",
		Stats: RestoreStats{
			Settings:     out.Settings,
			Categories:   out.Categories,
			Budgets:      out.Budgets,
			Goals:        out.Goals,
			Transactions: out.Transactions,
		},
	}
}
