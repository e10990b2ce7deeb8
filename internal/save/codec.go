package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/mazecrawl/internal/gamestate"
)

// FormatVersion is the envelope version written by Encode.
const FormatVersion = 1

// envelope wraps the encoded state with a version and a checksum of the exact
// state bytes.
type envelope struct {
	Version  int             `json:"version"`
	SavedAt  time.Time       `json:"savedAt"`
	Checksum string          `json:"checksum"`
	State    json.RawMessage `json:"state"`
}

// requiredKeys lists the state fields that must be present in a save. Fields
// not listed fall back to their zero value and are then checked by Validate.
var requiredKeys = [][]string{
	{"currentScene"},
	{"roster"},
	{"party", "inMaze"},
	{"party", "members"},
	{"party", "formation", "frontRow"},
	{"party", "formation", "backRow"},
	{"dungeon", "currentLevel"},
	{"settings", "difficulty"},
}

// Encode serializes state into a save envelope.
func Encode(state *gamestate.GameState, savedAt time.Time) (string, error) {
	if err := state.Validate(); err != nil {
		return "", fmt.Errorf("invalid game state: %w", err)
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("encode game state: %w", err)
	}
	data, err := json.Marshal(envelope{
		Version:  FormatVersion,
		SavedAt:  savedAt.UTC(),
		Checksum: checksum(raw),
		State:    raw,
	})
	if err != nil {
		return "", fmt.Errorf("encode save envelope: %w", err)
	}
	return string(data), nil
}

// Decode parses a save envelope. Any failure is reported as ErrCorrupted with
// the reason as its cause; nothing is coerced into shape.
func Decode(data string) (*gamestate.GameState, error) {
	var env envelope
	if err := decodeStrict([]byte(data), &env); err != nil {
		return nil, corrupted(fmt.Errorf("decode envelope: %w", err))
	}
	if env.Version != FormatVersion {
		return nil, corrupted(fmt.Errorf("unsupported save version %d", env.Version))
	}
	if len(env.State) == 0 {
		return nil, corrupted(errors.New("missing state"))
	}
	if env.Checksum != checksum(env.State) {
		return nil, corrupted(errors.New("checksum mismatch"))
	}
	if err := requireKeys(env.State); err != nil {
		return nil, corrupted(err)
	}

	var state gamestate.GameState
	if err := decodeStrict(env.State, &state); err != nil {
		return nil, corrupted(fmt.Errorf("decode state: %w", err))
	}
	if err := state.Validate(); err != nil {
		return nil, corrupted(err)
	}
	return &state, nil
}

func checksum(raw []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(raw))
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func requireKeys(raw json.RawMessage) error {
	for _, path := range requiredKeys {
		current := raw
		for i, key := range path {
			var object map[string]json.RawMessage
			if err := json.Unmarshal(current, &object); err != nil || object == nil {
				return fmt.Errorf("%s is not an object", describe(path[:i]))
			}
			next, ok := object[key]
			if !ok {
				return fmt.Errorf("missing %s", describe(path[:i+1]))
			}
			current = next
		}
	}
	return nil
}

func describe(path []string) string {
	if len(path) == 0 {
		return "state"
	}
	return strings.Join(path, ".")
}
