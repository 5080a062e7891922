package screen

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"classroomclient/internal/api"
	"classroomclient/internal/ctxdata"
	"classroomclient/internal/domain"
	"classroomclient/internal/optimistic"
)

// Feed is the client-side mirror of one user's notification list. Mark-read
// flows mutate the mirror optimistically and revert on backend failure;
// periodic refreshes replace it wholesale, so the last resolved write wins.
type Feed struct {
	mu    sync.RWMutex
	items []domain.Notification
}

// Snapshot returns a copy of the mirrored list.
func (f *Feed) Snapshot() []domain.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	items := make([]domain.Notification, len(f.items))
	copy(items, f.items)
	return items
}

func (f *Feed) replace(items []domain.Notification) {
	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
}

// UnreadCount is what the bell badge shows.
func (f *Feed) UnreadCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	count := 0
	for _, n := range f.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// FeedSet holds one Feed per signed-in user id.
type FeedSet struct {
	mu     sync.Mutex
	api    *api.Client
	byUser map[int]*Feed
}

func NewFeedSet(client *api.Client) *FeedSet {
	return &FeedSet{
		api:    client,
		byUser: make(map[int]*Feed),
	}
}

func (s *FeedSet) ForUser(userID int) *Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed, ok := s.byUser[userID]
	if !ok {
		feed = &Feed{}
		s.byUser[userID] = feed
	}
	return feed
}

// Drop forgets a user's mirror, used at logout.
func (s *FeedSet) Drop(userID int) {
	s.mu.Lock()
	delete(s.byUser, userID)
	s.mu.Unlock()
}

// Refresh replaces the user's mirror with the backend's current list.
func (s *FeedSet) Refresh(ctx context.Context, userID int) error {
	items, err := s.api.ListNotifications(ctx, userID)
	if err != nil {
		return err
	}
	s.ForUser(userID).replace(items)
	return nil
}

// MarkRead flips one entry to read in the mirror first, then confirms with
// the backend, restoring the pre-mutation list if the call fails.
func (s *FeedSet) MarkRead(ctx context.Context, userID, notificationID int) error {
	feed := s.ForUser(userID)
	return optimistic.Apply(ctx,
		feed.Snapshot,
		feed.replace,
		func(items []domain.Notification) []domain.Notification {
			// Mutate a copy: the input slice is the revert snapshot.
			next := make([]domain.Notification, len(items))
			copy(next, items)
			for i := range next {
				if next[i].ID == notificationID {
					next[i].Read = true
				}
			}
			return next
		},
		func(ctx context.Context) error {
			return s.api.MarkNotificationRead(ctx, notificationID)
		},
	)
}

// MarkAllRead clears the badge optimistically, then confirms with the
// backend.
func (s *FeedSet) MarkAllRead(ctx context.Context, userID int) error {
	feed := s.ForUser(userID)
	return optimistic.Apply(ctx,
		feed.Snapshot,
		feed.replace,
		func(items []domain.Notification) []domain.Notification {
			next := make([]domain.Notification, len(items))
			copy(next, items)
			for i := range next {
				next[i].Read = true
			}
			return next
		},
		func(ctx context.Context) error {
			return s.api.MarkAllNotificationsRead(ctx, userID)
		},
	)
}

// notificationView decorates a feed entry with the relative-time label the
// UI renders.
type notificationView struct {
	domain.Notification
	TimeAgo string `json:"timeAgo"`
}

// ListNotifications refreshes the caller's mirror and returns it. When the
// backend is unreachable the stale mirror is served rather than an error.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())

	if err := h.feeds.Refresh(r.Context(), userID); err != nil {
		h.log.Warn(r.Context(), "notification refresh failed, serving cached feed", zap.Error(err))
	}

	items := h.feeds.ForUser(userID).Snapshot()
	now := time.Now()
	views := make([]notificationView, 0, len(items))
	for _, n := range items {
		views = append(views, notificationView{Notification: n, TimeAgo: relativeTime(n.CreatedAt, now)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": views,
		"unread":        h.feeds.ForUser(userID).UnreadCount(),
	})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	notificationID, err := pathInt(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.feeds.MarkRead(r.Context(), userID, notificationID); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": h.feeds.ForUser(userID).UnreadCount()})
}

func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxdata.GetUserID(r.Context())
	if err := h.feeds.MarkAllRead(r.Context(), userID); err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": h.feeds.ForUser(userID).UnreadCount()})
}
