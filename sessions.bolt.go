package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltSessionStore struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltSessionStore provides an instance of bolt-based session storage.
// It backs the auth gate on development setups running without redis.
func NewBoltSessionStore(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) SessionStore {
	return &boltSessionStore{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based session storage.
func (bs *boltSessionStore) Close() error {
	return bs.client.Close()
}

// Get retrieves a session record based on its ID.
func (bs *boltSessionStore) Get(_ context.Context, id string) (Session, error) {
	var session Session
	// initialize a readable transaction.
	tx, err := bs.client.Begin(false)
	if err != nil {
		return session, err
	}
	defer tx.Rollback()

	result := tx.Bucket([]byte(bs.config.BucketName)).Get([]byte(id))
	if result == nil {
		return session, ErrSessionNotFound
	}
	err = json.Unmarshal(result, &session)
	return session, err
}

// Put stores a session record. Expiry is enforced at read
// time by the auth gate since bolt has no native TTL.
func (bs *boltSessionStore) Put(_ context.Context, session Session) error {
	sessionBytes, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bs.config.BucketName)).Put([]byte(session.ID), sessionBytes)
	})
}

// Delete removes a session record based on its ID.
func (bs *boltSessionStore) Delete(_ context.Context, id string) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bs.config.BucketName)).Delete([]byte(id))
	})
}
