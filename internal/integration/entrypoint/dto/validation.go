package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// RegisterValidators installs the "period" (YYYY-MM) and "isodate"
// (YYYY-MM-DD) binding tags on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("period", validatePeriod); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", validateDate)
}

func validatePeriod(fl validator.FieldLevel) bool {
	_, err := entity.ParsePeriod(fl.Field().String())
	return err == nil
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := entity.ParseDate(fl.Field().String())
	return err == nil
}
