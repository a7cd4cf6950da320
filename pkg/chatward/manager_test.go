package chatward

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/chatward/pkg/chatward/store"
)

func TestManagerHandleMessage(t *testing.T) {
	mgr := New("guardbot")
	defer mgr.Close()

	updates, err := mgr.HandleMessage(context.Background(), 1, &Message{ID: 1, Text: "/help"}, false)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 1, mgr.Sessions())
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	mgr := New("guardbot")
	defer mgr.Close()
	ctx := context.Background()

	_, err := mgr.HandleMessage(ctx, 1, &Message{ID: 1, Text: "/set_filter has_sticker"}, true)
	require.NoError(t, err)

	// Chat 2 has no filter; its sticker passes.
	updates, err := mgr.HandleMessage(ctx, 2, &Message{ID: 2, HasSticker: true}, false)
	require.NoError(t, err)
	assert.Empty(t, updates)

	// Chat 1 deletes it.
	updates, err = mgr.HandleMessage(ctx, 1, &Message{ID: 3, HasSticker: true}, false)
	require.NoError(t, err)
	require.NotEmpty(t, updates)
	assert.Equal(t, DeleteUpdate{MessageID: 3}, updates[0])

	assert.Equal(t, 2, mgr.Sessions())
}

func TestManagerLazyLoadFromStore(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()
	ctx := context.Background()

	mgr1 := New("guardbot", WithStore(st))
	_, err := mgr1.HandleMessage(ctx, 5, &Message{ID: 1, Text: "/set_filter has_photo"}, true)
	require.NoError(t, err)
	require.NoError(t, mgr1.Close())

	// A fresh manager over the same store resumes the chat state.
	mgr2 := New("guardbot", WithStore(st))
	defer mgr2.Close()
	updates, err := mgr2.HandleMessage(ctx, 5, &Message{ID: 2, HasPhoto: true}, false)
	require.NoError(t, err)
	require.NotEmpty(t, updates)
	assert.Equal(t, DeleteUpdate{MessageID: 2}, updates[0])
}

func TestManagerEvictIdle(t *testing.T) {
	mgr := New("guardbot", WithSessionTTL(time.Minute))
	defer mgr.Close()
	ctx := context.Background()

	_, err := mgr.HandleMessage(ctx, 1, &Message{ID: 1, Text: "hello"}, false)
	require.NoError(t, err)
	_, err = mgr.HandleMessage(ctx, 2, &Message{ID: 2, Text: "hello"}, false)
	require.NoError(t, err)

	// Nothing idle yet.
	assert.Empty(t, mgr.EvictIdle())

	// Age one session past the TTL.
	s, ok := mgr.sessions.Get(1)
	require.True(t, ok)
	s.mu.Lock()
	s.lastActive = time.Now().Add(-2 * time.Minute)
	s.mu.Unlock()

	evicted := mgr.EvictIdle()
	assert.Equal(t, []int64{1}, evicted)
	assert.Equal(t, 1, mgr.Sessions())

	// Eviction loses nothing: the session is rebuilt from the store.
	_, err = mgr.HandleMessage(ctx, 1, &Message{ID: 3, Text: "hello"}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, mgr.Sessions())
}

func TestManagerClosed(t *testing.T) {
	mgr := New("guardbot")
	require.NoError(t, mgr.Close())

	_, err := mgr.HandleMessage(context.Background(), 1, &Message{ID: 1}, false)
	assert.ErrorIs(t, err, ErrManagerClosed)

	// Close is idempotent.
	assert.NoError(t, mgr.Close())
}

func TestManagerCloseKeepsProvidedStore(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	mgr := New("guardbot", WithStore(st))
	require.NoError(t, mgr.Close())

	// The caller's store is still usable.
	require.NoError(t, st.Save(1, []byte("{}")))
}

func TestManagerNilMessage(t *testing.T) {
	mgr := New("guardbot")
	defer mgr.Close()

	_, err := mgr.HandleMessage(context.Background(), 1, nil, false)
	assert.ErrorIs(t, err, ErrNilMessage)
}

func TestManagerWithLogger(t *testing.T) {
	mgr := New("guardbot", WithLogger(slog.Default()))
	defer mgr.Close()

	_, err := mgr.HandleMessage(context.Background(), 1, &Message{ID: 1, Text: "/help"}, false)
	assert.NoError(t, err)
}
