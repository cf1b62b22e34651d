package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/backup"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// DataController handles export and restore of the whole ledger.
type DataController struct {
	exportUseCase  *backup.ExportLedgerUseCase
	importUseCase  *backup.ImportLedgerUseCase
	maxImportBytes int64
}

// NewDataController creates a new data controller instance. Import bodies
// larger than maxImportBytes are rejected.
func NewDataController(exportUseCase *backup.ExportLedgerUseCase, importUseCase *backup.ImportLedgerUseCase, maxImportBytes int64) *DataController {
	return &DataController{
		exportUseCase:  exportUseCase,
		importUseCase:  importUseCase,
		maxImportBytes: maxImportBytes,
	}
}

// Export handles GET /data/export requests.
func (c *DataController) Export(ctx *gin.Context) {
	var query dto.ExportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeUnsupportedExportFormat), err)
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), backup.ExportLedgerInput{Format: query.Format})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.FileName+`"`)
	ctx.Data(http.StatusOK, output.ContentType, output.Body)
}

// Import handles POST /data/import requests. The body is a JSON backup and
// replaces the whole ledger.
func (c *DataController) Import(ctx *gin.Context) {
	body := ctx.Request.Body
	if c.maxImportBytes > 0 {
		body = http.MaxBytesReader(ctx.Writer, body, c.maxImportBytes)
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), backup.ImportLedgerInput{Document: body})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportResponse(output))
}
