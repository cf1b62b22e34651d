package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/setting"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// SettingController handles ledger settings.
type SettingController struct {
	getUseCase          *setting.GetSettingsUseCase
	updateSalaryUseCase *setting.UpdateSalaryUseCase
}

// NewSettingController creates a new setting controller instance.
func NewSettingController(getUseCase *setting.GetSettingsUseCase, updateSalaryUseCase *setting.UpdateSalaryUseCase) *SettingController {
	return &SettingController{
		getUseCase:          getUseCase,
		updateSalaryUseCase: updateSalaryUseCase,
	}
}

// Get handles GET /settings requests.
func (c *SettingController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SettingsResponse(output.Settings))
}

// Update handles POST /settings requests.
func (c *SettingController) Update(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, string(domainerror.ErrCodeInvalidSalary), err)
		return
	}

	if _, err := c.updateSalaryUseCase.Execute(ctx.Request.Context(), setting.UpdateSalaryInput{Salary: req.Salary}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
