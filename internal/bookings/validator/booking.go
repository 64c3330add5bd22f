package validator

import (
	"errors"

	bookingserrors "classbook/internal/bookings/errors"
	"classbook/pkg/logger"
	"classbook/pkg/model"
	"classbook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: validation.New(),
		logger:   log,
	}
}

// ValidateFields checks the fields a booking must carry on its own. Only the
// first failure is reported: name before date.
func (v *BookingValidator) ValidateFields(booking *model.Booking) *validation.FieldError {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return translateFieldError(validationErrs[0])
		}
		v.logger.Error("Unexpected booking validator failure", "error", err)
		return &validation.FieldError{Field: "booking", Message: err.Error()}
	}
	return nil
}

// ValidateSchedule checks the booking date against the class it references.
// Both the class start and end dates are bookable.
func (v *BookingValidator) ValidateSchedule(booking *model.Booking, class *model.Class) *validation.FieldError {
	if !class.Covers(booking.Date) {
		return &validation.FieldError{
			Field:   "date",
			Message: bookingserrors.ReasonDateOutOfRange,
		}
	}
	return nil
}

func translateFieldError(err validator.FieldError) *validation.FieldError {
	message := err.Error()

	switch err.Field() {
	case "name":
		message = bookingserrors.ReasonNameEmpty
	case "date":
		message = bookingserrors.ReasonDateNull
	}

	return &validation.FieldError{
		Field:   err.Field(),
		Message: message,
	}
}
