package domain

import (
	"strings"
	"time"
)

// Timestamp is a wire timestamp that tolerates the backend's two encodings:
// RFC 3339 and the zone-less LocalDateTime form ("2006-01-02T15:04:05").
// Unparseable or null values decode to the zero Timestamp; records without a
// timestamp are treated as older than anything that has one, so a malformed
// value never fails a fetch.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}
