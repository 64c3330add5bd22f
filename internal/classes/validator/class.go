package validator

import (
	"errors"
	"fmt"

	"classbook/pkg/logger"
	"classbook/pkg/model"
	"classbook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ClassValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewClassValidator(log *logger.Logger) *ClassValidator {
	log.Info("Class validator initialized successfully")

	return &ClassValidator{
		validate: validation.New(),
		logger:   log,
	}
}

func (v *ClassValidator) Validate(class *model.Class) error {
	if err := v.validate.Struct(class); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if class.EndDate.Before(class.StartDate) {
		return validation.FieldErrors{
			validation.FieldError{
				Field:   "endDate",
				Message: "endDate must not be before startDate",
			},
		}
	}

	return nil
}

func (v *ClassValidator) translateValidationErrors(errs validator.ValidationErrors) validation.FieldErrors {
	var fieldErrors validation.FieldErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		}

		fieldErrors = append(fieldErrors, validation.FieldError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return fieldErrors
}
