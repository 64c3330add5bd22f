package events

import (
	"context"
	"fmt"

	"classbook/pkg/kafka"
	"classbook/pkg/logger"
)

// AuditHandler writes one structured log line per booking event. Payloads
// that cannot be decoded are permanent failures.
func AuditHandler(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event Event
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("failed to decode booking event", err)
		}
		if !IsKnownType(event.Type) {
			return kafka.NewPermanentError(fmt.Sprintf("unknown booking event type %q", event.Type), nil)
		}

		log.Info("Booking event received",
			"event_id", msg.GetEventID(),
			"type", event.Type,
			"booking_id", event.BookingID,
			"name", event.Name,
			"date", event.Date.String(),
			"class_id", event.ClassID,
			"occurred_at", event.OccurredAt,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)
		return nil
	}
}
