package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// StoreServiceProvider exposes the document operations consumed by the
// resource handlers.
type StoreServiceProvider interface {
	GetAll(ctx context.Context, collection string) ([]bson.M, error)
	GetOne(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error)
	Create(ctx context.Context, collection string, document map[string]any) (InsertResult, error)
	Update(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error)
	Delete(ctx context.Context, collection string, id primitive.ObjectID) (int64, error)
}

// StoreService sits between the resource handlers and the document store.
// It owns no request state: each call maps to exactly one store call.
type StoreService struct {
	logger  *zap.Logger
	config  *Config
	storage DocumentStore
}

func NewStoreService(logger *zap.Logger, config *Config, storage DocumentStore) StoreServiceProvider {
	return &StoreService{
		logger:  logger,
		config:  config,
		storage: storage,
	}
}

func (ss *StoreService) GetAll(ctx context.Context, collection string) ([]bson.M, error) {
	documents, err := ss.storage.FindAll(ctx, collection)
	return documents, err
}

func (ss *StoreService) GetOne(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error) {
	document, err := ss.storage.FindOne(ctx, collection, id)
	return document, err
}

func (ss *StoreService) Create(ctx context.Context, collection string, document map[string]any) (InsertResult, error) {
	result, err := ss.storage.InsertOne(ctx, collection, document)
	if err != nil {
		ss.logger.Error("service: failed to insert document", zap.String("collection", collection), zap.Error(err))
	}
	return result, err
}

func (ss *StoreService) Update(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error) {
	result, err := ss.storage.UpdateOne(ctx, collection, id, document)
	if err != nil {
		ss.logger.Error("service: failed to update document", zap.String("collection", collection), zap.Error(err))
	}
	return result, err
}

func (ss *StoreService) Delete(ctx context.Context, collection string, id primitive.ObjectID) (int64, error) {
	count, err := ss.storage.DeleteOne(ctx, collection, id)
	if err != nil {
		ss.logger.Error("service: failed to delete document", zap.String("collection", collection), zap.Error(err))
	}
	return count, err
}
