package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DisplayLayout is how String renders a timestamp, in local time.
const DisplayLayout = "2006-01-02 15:04"

// Timestamp is a nullable backend time. The zero value encodes as null.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp accepts RFC 3339, RFC 1123 and the naive ISO forms the
// backend emits for datetimes without a zone (read as UTC). DisplayLayout is
// read as local time, so String output parses back.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	if t, err := time.ParseInLocation(DisplayLayout, s, time.Local); err == nil {
		return Timestamp{Time: t}, nil
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// {"$date": ...} as produced by bson json_util
		var wrapped struct {
			Date json.RawMessage `json:"$date"`
		}
		if err2 := json.Unmarshal(b, &wrapped); err2 != nil || wrapped.Date == nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		return t.unmarshalDate(wrapped.Date)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *Timestamp) unmarshalDate(raw json.RawMessage) error {
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	return t.UnmarshalJSON(raw)
}

// String renders the date for tables; "-" when unset.
func (t Timestamp) String() string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DisplayLayout)
}
