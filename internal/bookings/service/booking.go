package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "classbook/internal/bookings/errors"
	"classbook/internal/bookings/events"
	"classbook/internal/bookings/repository"
	"classbook/internal/bookings/validator"
	classeserrors "classbook/internal/classes/errors"
	classesrepository "classbook/internal/classes/repository"
	"classbook/pkg/config"
	apperrors "classbook/pkg/errors"
	"classbook/pkg/model"
	"classbook/pkg/validation"
)

const publishTimeout = 5 * time.Second

type BookingService interface {
	Create(ctx context.Context, candidate *model.Booking) (*model.Booking, error)
	Update(ctx context.Context, id int64, candidate *model.Booking) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	classes   classesrepository.ClassRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	classes classesrepository.ClassRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		classes:   classes,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, candidate *model.Booking) (*model.Booking, error) {
	booking := *candidate
	booking.ID = 0

	if err := s.validate(ctx, &booking); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"class_id", booking.ClassID,
		"date", booking.Date.String(),
	)
	s.publish(ctx, events.TypeBookingCreated, &booking)
	return &booking, nil
}

// Update validates the candidate before looking up the stored booking, so an
// invalid candidate is reported even when id does not exist.
func (s *bookingService) Update(ctx context.Context, id int64, candidate *model.Booking) (*model.Booking, error) {
	updated := *candidate
	if err := s.validate(ctx, &updated); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	existing.Name = updated.Name
	existing.Date = updated.Date
	existing.ClassID = updated.ClassID

	if err := s.repo.Save(ctx, existing); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", existing.ID,
		"class_id", existing.ClassID,
		"date", existing.Date.String(),
	)
	s.publish(ctx, events.TypeBookingUpdated, existing)
	return existing, nil
}

func (s *bookingService) List(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// validate runs the booking checks in order and returns the first failure:
// name, date, class reference, then the class date range.
func (s *bookingService) validate(ctx context.Context, booking *model.Booking) error {
	if fieldErr := s.validator.ValidateFields(booking); fieldErr != nil {
		s.cfg.Log.Warn("Booking validation failed", "field", fieldErr.Field, "reason", fieldErr.Message)
		return validationError(fieldErr)
	}

	class, err := s.resolveClass(ctx, booking.ClassID)
	if err != nil {
		return err
	}

	if fieldErr := s.validator.ValidateSchedule(booking, class); fieldErr != nil {
		s.cfg.Log.Warn("Booking outside class schedule",
			"class_id", class.ID,
			"date", booking.Date.String(),
			"start_date", class.StartDate.String(),
			"end_date", class.EndDate.String(),
		)
		return validationError(fieldErr)
	}
	return nil
}

func (s *bookingService) resolveClass(ctx context.Context, classID int64) (*model.Class, error) {
	if classID <= 0 {
		return nil, apperrors.NotFound(bookingserrors.ReasonInvalidClassID)
	}

	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, classeserrors.ErrNotFound) {
			s.cfg.Log.Warn("Booking references unknown class", "class_id", classID)
			return nil, apperrors.NotFound(bookingserrors.ReasonInvalidClassID)
		}
		s.cfg.Log.Error("Failed to resolve class", "class_id", classID, "error", err)
		return nil, apperrors.Internal("Failed to resolve class", err)
	}
	return class, nil
}

// publish never fails the caller; a lost event is only logged.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, booking)); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"type", eventType,
			"id", booking.ID,
			"error", err,
		)
	}
}

func validationError(fieldErr *validation.FieldError) error {
	return apperrors.Validation(fieldErr.Message, map[string]any{"field": fieldErr.Field})
}
