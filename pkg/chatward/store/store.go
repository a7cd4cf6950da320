// Package store provides persistent storage for per-chat state
// (filter, settings, user variables), keyed by chat ID.
//
// The store holds opaque blobs; the chatward package owns the chat
// record encoding so the storage layer never depends on the language
// types.
package store

import (
	"errors"
	"time"
)

// Store persists per-chat state blobs.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the blob for a chat, overwriting any previous one.
	Save(chatID int64, data []byte) error

	// Load retrieves a chat's blob.
	// Returns ErrNotFound if the chat has never been saved.
	Load(chatID int64) ([]byte, error)

	// Delete removes a chat's blob.
	// Returns nil if the chat doesn't exist.
	Delete(chatID int64) error

	// List returns metadata for every stored chat, ordered by chat ID.
	List() ([]Info, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides chat metadata without loading the blob.
type Info struct {
	ChatID    int64
	UpdatedAt time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a chat has no stored state.
	ErrNotFound = errors.New("chat not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("chat store closed")
)
