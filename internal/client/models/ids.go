package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Identifiable is implemented by every entity kept in a list store.
type Identifiable interface {
	Key() string
}

// pickID returns the first non-empty id among the given raw fields. Ids may be
// strings, numbers, or Mongo-style {"$oid": "..."} objects.
func pickID(raws ...json.RawMessage) (string, error) {
	for _, raw := range raws {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		id, err := decodeID(raw)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}
	return "", nil
}

func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}

	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &oid); err == nil && oid.OID != "" {
		return oid.OID, nil
	}

	return "", fmt.Errorf("unsupported id value %s", strconv.Quote(string(raw)))
}
