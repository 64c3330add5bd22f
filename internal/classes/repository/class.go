package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	classeserrors "classbook/internal/classes/errors"
	"classbook/pkg/config"
	mongotx "classbook/pkg/db/mongo"
	"classbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Classes"
)

type ClassRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Class, error)
	FindAll(ctx context.Context) ([]*model.Class, error)
	Save(ctx context.Context, class *model.Class) error
}

type mongoClassRepository struct {
	readTimeout  time.Duration
	writeTimeout time.Duration
	collection   *mongo.Collection
	sequence     *mongotx.Sequence
	txManager    mongotx.TransactionManager
}

func NewMongoClassRepository(cfg *config.Config) ClassRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoClassRepository{
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		collection:   db.Collection(CollectionName),
		sequence:     mongotx.NewSequence(db, CollectionName),
		txManager:    mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

func (r *mongoClassRepository) FindByID(ctx context.Context, id int64) (*model.Class, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	var class model.Class
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&class)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, classeserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find class: %w", err)
	}

	return &class, nil
}

func (r *mongoClassRepository) FindAll(ctx context.Context) ([]*model.Class, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find classes: %w", err)
	}
	defer cursor.Close(ctx)

	classes := []*model.Class{}
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("failed to decode classes: %w", err)
	}

	return classes, nil
}

func (r *mongoClassRepository) Save(ctx context.Context, class *model.Class) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	if class.ID != 0 {
		result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": class.ID}, class)
		if err != nil {
			return fmt.Errorf("failed to update class: %w", err)
		}
		if result.MatchedCount == 0 {
			return classeserrors.ErrNotFound
		}
		return nil
	}

	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		id, err := r.sequence.Next(sessCtx)
		if err != nil {
			return err
		}

		doc := *class
		doc.ID = id
		if _, err := r.collection.InsertOne(sessCtx, doc); err != nil {
			return fmt.Errorf("failed to create class: %w", err)
		}

		class.ID = id
		return nil
	})
}
