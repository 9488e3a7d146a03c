package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrNotFound is returned by Get when a key does not exist.
var ErrNotFound = errors.New("key not found")

// Storage defines the interface for key-value blob storage.
// Implementations can be local filesystem, in-memory, Postgres or Redis.
type Storage interface {
	// Put stores content at the given key, replacing any previous value
	Put(ctx context.Context, key string, content []byte) error

	// Get retrieves content from the given key; missing keys wrap ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists checks if a value exists at the given key
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the value at the given key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// List returns all keys matching the given prefix, sorted
	List(ctx context.Context, prefix string) ([]string, error)
}

// StorageType represents the type of storage backend
type StorageType string

const (
	StorageTypeLocal    StorageType = "local"
	StorageTypeMemory   StorageType = "memory"
	StorageTypePostgres StorageType = "postgres"
	StorageTypeRedis    StorageType = "redis"
)

// ComputeChecksum computes SHA256 checksum for content
func ComputeChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
