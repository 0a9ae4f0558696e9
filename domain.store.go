package main

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDocumentNotFound reports a well-formed identifier matching no document.
var ErrDocumentNotFound = errors.New("document not found")

// Collections of the bookstore database.
const (
	BooksCollection   = "books"
	UsersCollection   = "users"
	OrdersCollection  = "orders"
	ReviewsCollection = "reviews"
)

// InsertResult carries the store acknowledgment of a document insertion.
type InsertResult struct {
	Acknowledged bool
	InsertedID   string
}

// UpdateResult carries the match and modification counts of a
// full-field document replacement.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// DocumentStore defines the single-call operations available on the
// named collections of the document database. Every resource handler
// performs exactly one of these per request.
type DocumentStore interface {
	FindAll(ctx context.Context, collection string) ([]bson.M, error)
	FindOne(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error)
	InsertOne(ctx context.Context, collection string, document map[string]any) (InsertResult, error)
	UpdateOne(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, id primitive.ObjectID) (int64, error)
}
