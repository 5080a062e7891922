// Package session holds the client-local login state: the bearer token and a
// cached copy of the signed-in user's profile. The backing store is a plain
// key-value blob store (a JSON file by default, redis when shared), mirroring
// the two localStorage keys the web client keeps.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"classroomclient/internal/domain"
)

const (
	tokenKey   = "token"
	profileKey = "user_info"
)

// Blob is the key-value store behind a Store.
type Blob interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Store owns the live session for this process. Exactly one profile is live
// at a time; login and profile-edit flows write it, everything else reads it
// or subscribes for changes.
type Store struct {
	mu      sync.RWMutex
	blob    Blob
	token   string
	profile *domain.UserProfile

	subMu   sync.Mutex
	subs    map[int]func(*domain.UserProfile)
	nextSub int
}

// NewStore loads any persisted session from blob. A corrupt profile blob is
// discarded rather than surfaced: the user just logs in again.
func NewStore(ctx context.Context, blob Blob) *Store {
	s := &Store{
		blob: blob,
		subs: make(map[int]func(*domain.UserProfile)),
	}
	if raw, ok := blob.Get(ctx, tokenKey); ok {
		s.token = string(raw)
	}
	if raw, ok := blob.Get(ctx, profileKey); ok {
		var profile domain.UserProfile
		if err := json.Unmarshal(raw, &profile); err == nil {
			s.profile = &profile
		}
	}
	return s
}

// Current returns a copy of the cached profile.
func (s *Store) Current() (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return domain.UserProfile{}, false
	}
	return *s.profile, true
}

// Token returns the bearer token, empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetSession stores the token and profile issued at login.
func (s *Store) SetSession(ctx context.Context, token string, profile domain.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := s.blob.Set(ctx, tokenKey, []byte(token)); err != nil {
		return err
	}
	if err := s.blob.Set(ctx, profileKey, raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.profile = &profile
	s.mu.Unlock()
	s.notify(&profile)
	return nil
}

// UpdateProfile replaces the cached profile after a profile or avatar edit,
// keeping the token.
func (s *Store) UpdateProfile(ctx context.Context, profile domain.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := s.blob.Set(ctx, profileKey, raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()
	s.notify(&profile)
	return nil
}

// Clear wipes the session at logout. After Clear returns, Current misses and
// Token is empty; subscribers receive nil.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.blob.Delete(ctx, tokenKey); err != nil {
		return err
	}
	if err := s.blob.Delete(ctx, profileKey); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()
	s.notify(nil)
	return nil
}

// Subscribe registers fn to run on every session change (login, profile
// update, logout). fn receives nil on logout. The returned cancel func
// removes the subscription.
func (s *Store) Subscribe(fn func(*domain.UserProfile)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(profile *domain.UserProfile) {
	s.subMu.Lock()
	fns := make([]func(*domain.UserProfile), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(profile)
	}
}
