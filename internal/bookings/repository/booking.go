package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "classbook/internal/bookings/errors"
	"classbook/pkg/config"
	mongotx "classbook/pkg/db/mongo"
	"classbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

// BookingRepository persists bookings. Save assigns an identity when the
// booking has none and overwrites the stored record otherwise.
type BookingRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Booking, error)
	FindAll(ctx context.Context) ([]*model.Booking, error)
	Save(ctx context.Context, booking *model.Booking) error
}

type mongoBookingRepository struct {
	readTimeout  time.Duration
	writeTimeout time.Duration
	collection   *mongo.Collection
	sequence     *mongotx.Sequence
	txManager    mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		collection:   db.Collection(CollectionName),
		sequence:     mongotx.NewSequence(db, CollectionName),
		txManager:    mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Save(ctx context.Context, booking *model.Booking) error {
	if booking.ID == 0 {
		return r.insert(ctx, booking)
	}
	return r.replace(ctx, booking)
}

// insert draws the next identity and writes the document in one transaction,
// so a failed insert does not consume an identity.
func (r *mongoBookingRepository) insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		id, err := r.sequence.Next(sessCtx)
		if err != nil {
			return err
		}

		doc := *booking
		doc.ID = id
		if _, err := r.collection.InsertOne(sessCtx, doc); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		booking.ID = id
		return nil
	})
}

func (r *mongoBookingRepository) replace(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}
