package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Seats []string `json:"seats"`
}

func setupMemoryStoreTest() (*MemoryStore, *time.Time) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(30 * time.Minute)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestMemoryStore_SetGet(t *testing.T) {
	store, _ := setupMemoryStoreTest()
	ctx := context.Background()
	id := uuid.New()

	in := sample{Name: "draft", Seats: []string{"1-E1-1"}}
	require.NoError(t, store.Set(ctx, id, KeyDraft, in))

	var out sample
	require.NoError(t, store.Get(ctx, id, KeyDraft, &out))
	assert.Equal(t, in, out)

	// decoded values are copies
	out.Seats[0] = "changed"
	var again sample
	require.NoError(t, store.Get(ctx, id, KeyDraft, &again))
	assert.Equal(t, "1-E1-1", again.Seats[0])
}

func TestMemoryStore_NotFound(t *testing.T) {
	store, _ := setupMemoryStoreTest()
	ctx := context.Background()
	id := uuid.New()

	var out sample
	assert.ErrorIs(t, store.Get(ctx, id, KeyDraft, &out), ErrNotFound)

	require.NoError(t, store.Set(ctx, id, KeyDraft, sample{}))
	assert.ErrorIs(t, store.Get(ctx, id, KeyCheckout, &out), ErrNotFound)
}

func TestMemoryStore_SessionsIsolated(t *testing.T) {
	store, _ := setupMemoryStoreTest()
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, store.Set(ctx, a, KeyDraft, sample{Name: "a"}))

	var out sample
	assert.ErrorIs(t, store.Get(ctx, b, KeyDraft, &out), ErrNotFound)
}

func TestMemoryStore_DeleteAndClear(t *testing.T) {
	store, _ := setupMemoryStoreTest()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, store.Set(ctx, id, KeyDraft, sample{Name: "draft"}))
	require.NoError(t, store.Set(ctx, id, KeyBooking, sample{Name: "booking"}))

	require.NoError(t, store.Delete(ctx, id, KeyDraft))
	var out sample
	assert.ErrorIs(t, store.Get(ctx, id, KeyDraft, &out), ErrNotFound)
	assert.NoError(t, store.Get(ctx, id, KeyBooking, &out))

	require.NoError(t, store.Clear(ctx, id))
	assert.ErrorIs(t, store.Get(ctx, id, KeyBooking, &out), ErrNotFound)
	assert.Equal(t, 0, tracked(store))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store, now := setupMemoryStoreTest()
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, store.Set(ctx, id, KeyDraft, sample{Name: "draft"}))

	*now = now.Add(29 * time.Minute)
	var out sample
	require.NoError(t, store.Get(ctx, id, KeyDraft, &out))

	*now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, store.Get(ctx, id, KeyDraft, &out), ErrNotFound)

	// writing after expiry starts a fresh session
	require.NoError(t, store.Set(ctx, id, KeyBooking, sample{Name: "booking"}))
	assert.ErrorIs(t, store.Get(ctx, id, KeyDraft, &out), ErrNotFound)
}

func TestMemoryStore_PurgeExpired(t *testing.T) {
	store, now := setupMemoryStoreTest()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, uuid.New(), KeyDraft, sample{}))
	*now = now.Add(20 * time.Minute)
	require.NoError(t, store.Set(ctx, uuid.New(), KeyDraft, sample{}))
	*now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, store.PurgeExpired())
	assert.Equal(t, 1, tracked(store))
}

func TestMemoryStore_EncodeError(t *testing.T) {
	store, _ := setupMemoryStoreTest()

	err := store.Set(context.Background(), uuid.New(), KeyDraft, make(chan int))
	assert.Error(t, err)
}

// tracked returns the number of sessions held, expired ones included
func tracked(s *MemoryStore) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
