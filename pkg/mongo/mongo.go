package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IMongo is a single collection addressed by one unique key field.
type IMongo interface {
	ReplaceByKey(ctx context.Context, key any, doc any) error
	FindAllRaw(ctx context.Context) ([]bson.Raw, error)
	Close(ctx context.Context) error
}

type Options struct {
	URI        string
	Database   string
	Collection string
	KeyField   string
}

type mongoClient struct {
	client     *mongo.Client
	collection *mongo.Collection
	keyField   string
	log        *logrus.Logger
}

func New(ctx context.Context, opts Options, log *logrus.Logger) (IMongo, error) {
	if opts.URI == "" {
		return nil, errors.New("mongo URI is required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	collection := client.Database(opts.Database).Collection(opts.Collection)

	_, err = collection.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: opts.KeyField, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ensure unique index on %s: %w", opts.KeyField, err)
	}

	log.WithFields(logrus.Fields{
		"database":   opts.Database,
		"collection": opts.Collection,
	}).Info("Successfully connected to MongoDB")

	return &mongoClient{
		client:     client,
		collection: collection,
		keyField:   opts.KeyField,
		log:        log,
	}, nil
}

func (m *mongoClient) ReplaceByKey(ctx context.Context, key any, doc any) error {
	_, err := m.collection.ReplaceOne(ctx,
		bson.D{{Key: m.keyField, Value: key}},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// FindAllRaw returns every document sorted by the key field. On a cursor
// failure the documents read so far are returned with the error.
func (m *mongoClient) FindAllRaw(ctx context.Context) ([]bson.Raw, error) {
	cursor, err := m.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: m.keyField, Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.Raw
	for cursor.Next(ctx) {
		doc := make(bson.Raw, len(cursor.Current))
		copy(doc, cursor.Current)
		docs = append(docs, doc)
	}

	return docs, cursor.Err()
}

func (m *mongoClient) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
