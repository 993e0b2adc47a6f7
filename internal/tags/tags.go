// Package tags reads track titles and artists from audio file metadata.
package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/gp/internal/models"
	"github.com/dhowden/tag"
)

// ReadTrack returns a [models.TrackState] for the local file at path.
//
// Title and artist come from ID3, MP4, FLAC or OGG tags when present. A missing title falls back to the
// file name without its extension; a missing artist stays empty.
func ReadTrack(path string) (models.TrackState, error) {
	track := models.TrackState{Src: path}

	f, err := os.Open(path)
	if err != nil {
		return track, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if meta, err := tag.ReadFrom(f); err == nil {
		track.Title = strings.TrimSpace(meta.Title())
		track.Artist = strings.TrimSpace(meta.Artist())
	}

	if track.Title == "" {
		track.Title = TitleFromPath(path)
	}

	return track, nil
}

// TitleFromPath derives a title from a file name, turning underscores into spaces.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
}

// Merge fills the blank fields of req from track. Explicit values always win.
func Merge(req models.Request, track models.TrackState) models.Request {
	if req.Title == "" {
		req.Title = track.Title
	}
	if req.Artist == "" {
		req.Artist = track.Artist
	}
	return req
}
