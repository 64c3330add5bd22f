// Package mongotest connects integration tests to a live MongoDB.
//
// Tests using it are guarded by the integration build tag. Identity
// assignment runs inside transactions, so MONGO_URI must point at a replica
// set (a single-node replica set is enough).
package mongotest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"classbook/pkg/client"
	"classbook/pkg/config"
	"classbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultMongoURI   = "mongodb://localhost:27017/?replicaSet=rs0"
	ConnectionTimeout = 10 * time.Second
	opTimeout         = 5 * time.Second
)

type Helper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

// New connects to MONGO_URI and uses a database unique to the test, dropped
// on cleanup.
func New(t *testing.T) *Helper {
	t.Helper()

	mongoURI := os.Getenv(config.EnvMongoURI)
	if mongoURI == "" {
		mongoURI = DefaultMongoURI
	}
	dbName := fmt.Sprintf("classbook_test_%d", time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := mc.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	h := &Helper{
		Client:   mc,
		Database: mc.Database(dbName),
		DBName:   dbName,
	}
	t.Cleanup(func() { h.close(t) })
	return h
}

// Config returns a service configuration bound to the helper's database.
func (h *Helper) Config() *config.Config {
	return &config.Config{
		MongoDatabaseName: h.DBName,
		StorageDriver:     config.StorageMongo,
		ReadTimeout:       opTimeout,
		WriteTimeout:      opTimeout,
		Log:               logger.NewNop(),
		Client:            &client.Client{Mongo: &client.MongoClient{Client: h.Client}},
	}
}

func (h *Helper) CountDocuments(t *testing.T, collectionName string) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	count, err := h.Database.Collection(collectionName).CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("failed to count documents in %s: %v", collectionName, err)
	}
	return count
}

func (h *Helper) close(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := h.Database.Drop(ctx); err != nil {
		t.Logf("warning: failed to drop test database %s: %v", h.DBName, err)
	}
	if err := h.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}
