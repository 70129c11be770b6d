package validator

import (
	"fmt"

	"perfume-boutique-ws/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
	validate.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return model.PaymentMethod(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Validate runs ValidateStruct and turns the first failure into a *model.ValidationError.
func Validate(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	reason := fmt.Sprintf("failed on tag '%s'", first.Tag)
	if first.Value != "" {
		reason = fmt.Sprintf("failed on tag '%s=%s'", first.Tag, first.Value)
	}
	return &model.ValidationError{Field: first.FailedField, Reason: reason}
}
