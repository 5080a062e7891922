// Package screen is the local HTTP surface the console UI talks to. Handlers
// compose the api facade, the session store, the reconciler and the
// notification feeds into role-specific views, one route subtree per role.
package screen

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"classroomclient/internal/api"
	"classroomclient/internal/domain"
	"classroomclient/internal/logging"
	"classroomclient/internal/session"
)

// Handler carries the shared dependencies of every screen endpoint.
type Handler struct {
	api     *api.Client
	session *session.Store
	feeds   *FeedSet
	log     *logging.Logger
}

func NewHandler(client *api.Client, store *session.Store, feeds *FeedSet, log *logging.Logger) *Handler {
	return &Handler{
		api:     client,
		session: store,
		feeds:   feeds,
		log:     log,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	w.Write(data)
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp, _ := json.Marshal(map[string]string{"error": message})
	w.Write(resp)
}

// writeAPIError maps a facade error onto the local response. Transport
// failures surface as 502; a backend 401 additionally hints the UI to send
// the user back to login.
func writeAPIError(w http.ResponseWriter, err error) {
	statusCode := api.StatusOf(err)
	if statusCode == 0 {
		statusCode = http.StatusBadGateway
	}
	if statusCode == http.StatusUnauthorized {
		w.Header().Set("X-Login-Required", "true")
	}
	writeErrorJSON(w, statusCode, err.Error())
}

func pathInt(r *http.Request, key string) (int, error) {
	val := chi.URLParam(r, key)
	if val == "" {
		return 0, fmt.Errorf("missing path param: %s", key)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("path param %s is not a number: %q", key, val)
	}
	return n, nil
}

func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// relativeTime renders a timestamp as a feed label. Zero timestamps render
// as an empty string.
func relativeTime(ts domain.Timestamp, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	diff := now.Sub(ts.Time)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	default:
		return ts.Time.Format("02/01/2006")
	}
}
