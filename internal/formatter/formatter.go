// package formatter renders the persisted track as CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/desertthunder/gp/internal/models"
	"github.com/desertthunder/gp/internal/shared"
)

// Output formats. JSON is written by the caller.
const (
	JSON     = "json"
	CSV      = "csv"
	Markdown = "markdown"
	Text     = "text"
)

// Formats lists the accepted format names.
var Formats = []string{JSON, CSV, Markdown, Text}

// Format renders track as format. Display fields substitute placeholder for a blank title.
func Format(track models.TrackState, format, placeholder string) ([]byte, error) {
	switch strings.ToLower(format) {
	case CSV:
		return ExportToCSV(track)
	case Markdown, "md":
		return ExportToMarkdown(track, placeholder), nil
	case Text, "txt":
		return ExportToText(track, placeholder), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// ExportToCSV converts a track to CSV with columns: Source, Title, Artist
func ExportToCSV(track models.TrackState) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Source", "Title", "Artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.Write([]string{track.Src, track.Title, track.Artist}); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a track to a Markdown section
func ExportToMarkdown(track models.TrackState, placeholder string) []byte {
	var buf bytes.Buffer

	if track.Empty() {
		buf.WriteString("_Nothing loaded._\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "# %s\n\n", track.DisplayTitle(placeholder))
	if artist := track.DisplayArtist(); artist != "" {
		fmt.Fprintf(&buf, "**Artist**: %s\n\n", artist)
	}
	fmt.Fprintf(&buf, "**Source**: `%s`\n", track.Src)

	return buf.Bytes()
}

// ExportToText converts a track to a single "Artist - Title" line followed by its source
func ExportToText(track models.TrackState, placeholder string) []byte {
	if track.Empty() {
		return []byte("nothing loaded\n")
	}

	line := track.DisplayTitle(placeholder)
	if artist := track.DisplayArtist(); artist != "" {
		line = artist + " - " + line
	}
	return fmt.Appendf(nil, "%s\n%s\n", line, track.Src)
}
