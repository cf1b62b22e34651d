// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// respondError maps a use case error to an HTTP response. Coded domain errors
// keep their code; anything else is an internal error.
func respondError(ctx *gin.Context, err error) {
	status, code, message := classify(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx.Request.Context(), "request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
	}
	ctx.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

// respondBindError rejects a request whose body or query failed binding.
func respondBindError(ctx *gin.Context, code string, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request",
		Code:    code,
		Details: err.Error(),
	})
}

func classify(err error) (int, string, string) {
	var (
		txnErr      *domainerror.TransactionError
		catErr      *domainerror.CategoryError
		goalErr     *domainerror.GoalError
		budgetErr   *domainerror.BudgetError
		analyticErr *domainerror.AnalyticsError
		backupErr   *domainerror.BackupError
	)

	switch {
	case errors.As(err, &txnErr):
		return transactionStatus(txnErr.Code), string(txnErr.Code), txnErr.Message
	case errors.As(err, &catErr):
		return categoryStatus(catErr.Code), string(catErr.Code), catErr.Message
	case errors.As(err, &goalErr):
		return goalStatus(goalErr.Code), string(goalErr.Code), goalErr.Message
	case errors.As(err, &budgetErr):
		return http.StatusBadRequest, string(budgetErr.Code), budgetErr.Message
	case errors.As(err, &analyticErr):
		if analyticErr.Code == domainerror.ErrCodeAnalyticsInternalError {
			return http.StatusInternalServerError, string(analyticErr.Code), analyticErr.Message
		}
		return http.StatusBadRequest, string(analyticErr.Code), analyticErr.Message
	case errors.As(err, &backupErr):
		if backupErr.Code == domainerror.ErrCodeTooManyRequests {
			return http.StatusTooManyRequests, string(backupErr.Code), backupErr.Message
		}
		return http.StatusBadRequest, string(backupErr.Code), backupErr.Message
	default:
		return http.StatusInternalServerError, "", "An internal error occurred"
	}
}

func transactionStatus(code domainerror.TransactionErrorCode) int {
	if code == domainerror.ErrCodeTransactionNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func categoryStatus(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func goalStatus(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeGoalAlreadyCompleted:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
