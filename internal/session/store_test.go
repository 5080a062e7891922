package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroomclient/internal/domain"
)

type memBlob struct {
	store map[string][]byte
}

func newMemBlob() *memBlob {
	return &memBlob{store: make(map[string][]byte)}
}

func (m *memBlob) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.store[key]
	return v, ok
}

func (m *memBlob) Set(_ context.Context, key string, data []byte) error {
	m.store[key] = data
	return nil
}

func (m *memBlob) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

var alice = domain.UserProfile{ID: 7, Name: "Alice", Email: "alice@hust.edu.vn", Role: domain.RoleStudent, MSSV: "20225001"}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyStoreMisses", func(t *testing.T) {
		s := NewStore(ctx, newMemBlob())
		_, ok := s.Current()
		assert.False(t, ok)
		assert.Empty(t, s.Token())
	})

	t.Run("SetSessionThenRead", func(t *testing.T) {
		s := NewStore(ctx, newMemBlob())
		require.NoError(t, s.SetSession(ctx, "tok-123", alice))

		got, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, alice, got)
		assert.Equal(t, "tok-123", s.Token())
	})

	t.Run("UpdateProfileKeepsToken", func(t *testing.T) {
		s := NewStore(ctx, newMemBlob())
		require.NoError(t, s.SetSession(ctx, "tok-123", alice))

		renamed := alice
		renamed.Name = "Alice N."
		require.NoError(t, s.UpdateProfile(ctx, renamed))

		got, _ := s.Current()
		assert.Equal(t, "Alice N.", got.Name)
		assert.Equal(t, "tok-123", s.Token())
	})

	t.Run("ClearWipesEverything", func(t *testing.T) {
		blob := newMemBlob()
		s := NewStore(ctx, blob)
		require.NoError(t, s.SetSession(ctx, "tok-123", alice))
		require.NoError(t, s.Clear(ctx))

		_, ok := s.Current()
		assert.False(t, ok)
		assert.Empty(t, s.Token())

		// A store mounted after logout must not see a cached profile.
		fresh := NewStore(ctx, blob)
		_, ok = fresh.Current()
		assert.False(t, ok)
	})

	t.Run("SubscribersSeeChanges", func(t *testing.T) {
		s := NewStore(ctx, newMemBlob())

		var events []*domain.UserProfile
		cancel := s.Subscribe(func(p *domain.UserProfile) {
			events = append(events, p)
		})

		require.NoError(t, s.SetSession(ctx, "tok", alice))
		require.NoError(t, s.Clear(ctx))
		cancel()
		require.NoError(t, s.SetSession(ctx, "tok2", alice))

		require.Len(t, events, 2)
		require.NotNil(t, events[0])
		assert.Equal(t, alice.ID, events[0].ID)
		assert.Nil(t, events[1])
	})

	t.Run("CorruptProfileBlobIgnored", func(t *testing.T) {
		blob := newMemBlob()
		blob.store["token"] = []byte("tok")
		blob.store["user_info"] = []byte("{not json")

		s := NewStore(ctx, blob)
		_, ok := s.Current()
		assert.False(t, ok)
		assert.Equal(t, "tok", s.Token())
	})
}

func TestFileBlob(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsAcrossStores", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		blob := NewFileBlob(path)

		s := NewStore(ctx, blob)
		require.NoError(t, s.SetSession(ctx, "tok-9", alice))

		reopened := NewStore(ctx, NewFileBlob(path))
		got, ok := reopened.Current()
		require.True(t, ok)
		assert.Equal(t, alice, got)
		assert.Equal(t, "tok-9", reopened.Token())
	})

	t.Run("MissingFileMisses", func(t *testing.T) {
		blob := NewFileBlob(filepath.Join(t.TempDir(), "absent.json"))
		_, ok := blob.Get(ctx, "token")
		assert.False(t, ok)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		blob := NewFileBlob(filepath.Join(t.TempDir(), "session.json"))
		require.NoError(t, blob.Set(ctx, "token", []byte("x")))
		require.NoError(t, blob.Delete(ctx, "token"))
		require.NoError(t, blob.Delete(ctx, "token"))
		_, ok := blob.Get(ctx, "token")
		assert.False(t, ok)
	})
}
