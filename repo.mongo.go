package main

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type mongoDocumentStore struct {
	logger *zap.Logger
	db     *mongo.Database
}

// GetMongoClient provides a ready to use mongo client.
func GetMongoClient(config *Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to build the client: %v", err)
	}

	// test connection.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// NewMongoDocumentStore provides an instance of mongo-based document storage.
func NewMongoDocumentStore(logger *zap.Logger, db *mongo.Database) DocumentStore {
	return &mongoDocumentStore{
		logger: logger,
		db:     db,
	}
}

// FindAll retrieves all documents of a collection.
func (ms *mongoDocumentStore) FindAll(ctx context.Context, collection string) ([]bson.M, error) {
	cursor, err := ms.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	documents := []bson.M{}
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

// FindOne retrieves a single document based on its identifier.
func (ms *mongoDocumentStore) FindOne(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error) {
	var document bson.M
	err := ms.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return document, nil
}

// InsertOne inserts a new document and reports the store acknowledgment.
func (ms *mongoDocumentStore) InsertOne(ctx context.Context, collection string, document map[string]any) (InsertResult, error) {
	result, err := ms.db.Collection(collection).InsertOne(ctx, bson.M(document))
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return InsertResult{Acknowledged: false}, nil
	}
	if err != nil {
		return InsertResult{}, err
	}

	insertResult := InsertResult{Acknowledged: true}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		insertResult.InsertedID = oid.Hex()
	}
	return insertResult, nil
}

// UpdateOne applies a full-field replacement on the document matching the
// identifier and reports how many documents matched and actually changed.
func (ms *mongoDocumentStore) UpdateOne(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error) {
	result, err := ms.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(document)})
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

// DeleteOne removes the document matching the identifier and
// reports how many documents were removed.
func (ms *mongoDocumentStore) DeleteOne(ctx context.Context, collection string, id primitive.ObjectID) (int64, error) {
	result, err := ms.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
