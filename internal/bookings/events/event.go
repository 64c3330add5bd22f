package events

import (
	"context"
	"time"

	"classbook/pkg/model"
)

const (
	TypeBookingCreated = "booking.created"
	TypeBookingUpdated = "booking.updated"

	Source        = "bookings"
	SchemaVersion = "1"
)

// Event is the payload published after a booking is persisted.
type Event struct {
	Type       string     `json:"type"`
	BookingID  int64      `json:"booking_id"`
	Name       string     `json:"name"`
	Date       model.Date `json:"date"`
	ClassID    int64      `json:"class_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func NewEvent(eventType string, booking *model.Booking) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		Name:       booking.Name,
		Date:       booking.Date,
		ClassID:    booking.ClassID,
		OccurredAt: time.Now().UTC(),
	}
}

func IsKnownType(eventType string) bool {
	return eventType == TypeBookingCreated || eventType == TypeBookingUpdated
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher discards events. Used when booking events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
