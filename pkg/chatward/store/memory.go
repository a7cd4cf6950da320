package store

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory chat store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[int64]storedChat
	closed bool
}

// storedChat holds a chat blob with metadata for List().
type storedChat struct {
	data      []byte
	updatedAt time.Time
}

// NewMemoryStore creates a new in-memory chat store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[int64]storedChat)}
}

// Save implements Store.
func (m *MemoryStore) Save(chatID int64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy data to avoid retaining caller's slice
	stored := make([]byte, len(data))
	copy(stored, data)

	m.data[chatID] = storedChat{data: stored, updatedAt: time.Now().UTC()}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(chatID int64) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	chat, ok := m.data[chatID]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent modification
	result := make([]byte, len(chat.data))
	copy(result, chat.data)
	return result, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, chatID)
	return nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for chatID, chat := range m.data {
		infos = append(infos, Info{
			ChatID:    chatID,
			UpdatedAt: chat.updatedAt,
			Size:      int64(len(chat.data)),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ChatID < infos[j].ChatID
	})

	return infos, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored chats. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
