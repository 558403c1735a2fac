package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotObject is returned when the payload is valid JSON but not an object
	ErrNotObject = errors.New("status payload is not a JSON object")
	// ErrNoComponents is returned when the components object is missing,
	// null or empty
	ErrNoComponents = errors.New("status payload has no components")
)

// Decode parses a status endpoint body. A single component block missing
// from the payload decodes to its zero value, which renders as
// disconnected; a payload with no component blocks at all is rejected.
func Decode(body []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if json.Valid(trimmed) {
			return nil, ErrNotObject
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return nil, fmt.Errorf("decode status snapshot: %w", err)
	}

	var present struct {
		Components map[string]json.RawMessage `json:"components"`
	}
	if err := json.Unmarshal(trimmed, &present); err != nil {
		return nil, fmt.Errorf("decode status snapshot: %w", err)
	}
	if len(present.Components) == 0 {
		return nil, ErrNoComponents
	}
	return &snap, nil
}
