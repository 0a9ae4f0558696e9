package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// This file contains mocks definitions needed to perform unit tests.

type MockDocumentStore struct {
	FindAllFunc   func(ctx context.Context, collection string) ([]bson.M, error)
	FindOneFunc   func(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error)
	InsertOneFunc func(ctx context.Context, collection string, document map[string]any) (InsertResult, error)
	UpdateOneFunc func(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error)
	DeleteOneFunc func(ctx context.Context, collection string, id primitive.ObjectID) (int64, error)
}

// FindAll mocks the retrieval of all documents of a collection.
func (m *MockDocumentStore) FindAll(ctx context.Context, collection string) ([]bson.M, error) {
	return m.FindAllFunc(ctx, collection)
}

// FindOne mocks the retrieval of a document by its identifier.
func (m *MockDocumentStore) FindOne(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error) {
	return m.FindOneFunc(ctx, collection, id)
}

// InsertOne mocks the insertion of a document.
func (m *MockDocumentStore) InsertOne(ctx context.Context, collection string, document map[string]any) (InsertResult, error) {
	return m.InsertOneFunc(ctx, collection, document)
}

// UpdateOne mocks the replacement of a document by its identifier.
func (m *MockDocumentStore) UpdateOne(ctx context.Context, collection string, id primitive.ObjectID, document map[string]any) (UpdateResult, error) {
	return m.UpdateOneFunc(ctx, collection, id, document)
}

// DeleteOne mocks the removal of a document by its identifier.
func (m *MockDocumentStore) DeleteOne(ctx context.Context, collection string, id primitive.ObjectID) (int64, error) {
	return m.DeleteOneFunc(ctx, collection, id)
}

// MockSessionStore implements a fake SessionStore.
type MockSessionStore struct {
	GetFunc    func(ctx context.Context, id string) (Session, error)
	PutFunc    func(ctx context.Context, session Session) error
	DeleteFunc func(ctx context.Context, id string) error
}

// Get mocks the retrieval of a session by its identifier.
func (m *MockSessionStore) Get(ctx context.Context, id string) (Session, error) {
	return m.GetFunc(ctx, id)
}

// Put mocks the storage of a session.
func (m *MockSessionStore) Put(ctx context.Context, session Session) error {
	return m.PutFunc(ctx, session)
}

// Delete mocks the removal of a session by its identifier.
func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// newTestConfig provides the minimal configuration used by handler tests.
func newTestConfig() *Config {
	cfg := &Config{}
	cfg.Auth.SessionCookie = "bookhaven.sid"
	cfg.Auth.GatedResources = []string{"books", "orders"}
	cfg.OpsEndpointsEnable = true
	return cfg
}

// newTestAPIHandler wires an APIHandler over mocked collaborators.
func newTestAPIHandler(store DocumentStore, sessions SessionStore) *APIHandler {
	cfg := newTestConfig()
	return NewAPIHandler(
		zap.NewNop(),
		cfg,
		&Statistics{started: time.Now()},
		NewMockClocker(),
		NewMockUIDHandler("test-request-id"),
		NewStoreService(zap.NewNop(), cfg, store),
		sessions,
	)
}
