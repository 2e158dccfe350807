package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weathermap.app/internal/core/payment"
	"weathermap.app/internal/core/subscription"
	"weathermap.app/pkg/errors"
	"weathermap.app/pkg/validation"
)

func validateFrequency(fl validator.FieldLevel) bool {
	return subscription.FrequencyFromString(fl.Field().String()).IsValid()
}

func validateAlertType(fl validator.FieldLevel) bool {
	return subscription.AlertType(fl.Field().String()).IsValid()
}

func validateMethodType(fl validator.FieldLevel) bool {
	return payment.MethodType(fl.Field().String()).IsValid()
}

func validateCardNumber(fl validator.FieldLevel) bool {
	return validation.IsValidCardNumber(fl.Field().String())
}

func validateCVV(fl validator.FieldLevel) bool {
	return validation.IsValidCVV(fl.Field().String())
}

// registerValidators installs the form rules on gin's validator engine
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.NewConfigurationError("gin validator engine is not go-playground/validator", nil)
	}

	rules := map[string]validator.Func{
		"frequency":  validateFrequency,
		"alerttype":  validateAlertType,
		"methodtype": validateMethodType,
		"cardnumber": validateCardNumber,
		"cvv":        validateCVV,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
