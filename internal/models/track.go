package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultTitle is displayed when a track has no title.
const DefaultTitle = "No title"

// TrackState describes the currently loaded track.
type TrackState struct {
	Src    string `json:"src"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Request is the payload accepted by the load-and-play entry point.
type Request struct {
	Source string `json:"source"`
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
}

// Track converts the request into the state it loads.
func (r Request) Track() TrackState {
	return TrackState{Src: r.Source, Title: r.Title, Artist: r.Artist}
}

// Empty reports whether no source is set.
func (t TrackState) Empty() bool {
	return t.Src == ""
}

// DisplayTitle returns the title as given, or placeholder when it is empty.
func (t TrackState) DisplayTitle(placeholder string) string {
	if t.Title == "" {
		return placeholder
	}
	return t.Title
}

// DisplayArtist returns the artist; absent artists display as the empty string.
func (t TrackState) DisplayArtist() string {
	return t.Artist
}

// Encode serializes the track for persistence.
func (t TrackState) Encode() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to encode track state: %w", err)
	}
	return string(data), nil
}

// DecodeTrackState parses a persisted value.
//
// An empty value decodes to the zero TrackState without error; anything that is not a JSON object
// (including "null") returns the zero TrackState, and an error for malformed input.
func DecodeTrackState(raw string) (TrackState, error) {
	var t TrackState
	if strings.TrimSpace(raw) == "" {
		return t, nil
	}

	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return TrackState{}, fmt.Errorf("failed to decode track state: %w", err)
	}

	return t, nil
}
