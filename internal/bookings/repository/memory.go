package repository

import (
	"context"
	"sort"
	"sync"

	bookingserrors "classbook/internal/bookings/errors"
	"classbook/pkg/model"
)

type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[int64]model.Booking
	lastID   int64
}

// NewMemoryBookingRepository returns a process-local store. Identities come
// from a counter owned by the store and are never reused.
func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[int64]model.Booking),
	}
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return &booking, nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		booking := b
		bookings = append(bookings, &booking)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })

	return bookings, nil
}

func (r *memoryBookingRepository) Save(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID == 0 {
		r.lastID++
		booking.ID = r.lastID
	} else if _, ok := r.bookings[booking.ID]; !ok {
		return bookingserrors.ErrNotFound
	}

	r.bookings[booking.ID] = *booking
	return nil
}
