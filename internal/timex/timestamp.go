package timex

import (
	"bytes"
	"encoding/json"
	"time"
)

// ISOLayout renders UTC instants the way JavaScript's toISOString does,
// e.g. 2024-05-01T10:00:00.000Z.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatISO formats t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseISO accepts any RFC 3339 timestamp, with or without fractional seconds.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Timestamp is a time.Time encoded as an ISO-8601 JSON string. JSON null
// decodes to the zero value.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatISO(t.Time))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseISO(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
