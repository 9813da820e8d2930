// Package catalog resolves which catalog collections may hold a scene.
//
// Collection names follow <satellite>_<sensor>_<level>_<kind>, for example
// CBERS4A_WPM_L4_DN. Scene identifiers start with the satellite and a sensor
// token that may carry extra digits, for example CBERS4A_WPM22912420250110 or
// CBERS4A_WFI21414220210804_...
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedCollectionName = errors.New("malformed collection name")
	ErrMalformedSceneID        = errors.New("malformed scene id")
)

// CollectionKey is a collection name split into its four segments.
type CollectionKey struct {
	Satellite string
	Sensor    string
	Level     string
	Kind      string
}

// Name joins the key back into a collection name.
func (k CollectionKey) Name() string {
	return strings.Join([]string{k.Satellite, k.Sensor, k.Level, k.Kind}, "_")
}

// ParseCollectionKey splits name into exactly four non-empty segments.
func ParseCollectionKey(name string) (CollectionKey, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 4 {
		return CollectionKey{}, fmt.Errorf("%w: %q has %d segments, want 4", ErrMalformedCollectionName, name, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return CollectionKey{}, fmt.Errorf("%w: %q has an empty segment", ErrMalformedCollectionName, name)
		}
	}
	return CollectionKey{Satellite: parts[0], Sensor: parts[1], Level: parts[2], Kind: parts[3]}, nil
}

// SceneKey holds the leading segments of a scene identifier.
type SceneKey struct {
	ID        string
	Satellite string
	Sensor    string
}

// ParseSceneID reads the satellite and sensor tokens of a scene id. Any
// segments after the second are ignored.
func ParseSceneID(id string) (SceneKey, error) {
	parts := strings.Split(id, "_")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return SceneKey{}, fmt.Errorf("%w: %q", ErrMalformedSceneID, id)
	}
	return SceneKey{ID: id, Satellite: parts[0], Sensor: parts[1]}, nil
}

// Matches reports whether the scene may belong to a collection with key k.
func (s SceneKey) Matches(k CollectionKey) bool {
	return strings.Contains(s.Satellite, k.Satellite) && strings.Contains(s.Sensor, k.Sensor)
}
