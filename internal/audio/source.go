package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/desertthunder/gp/internal/shared"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// readSeekCloser is a downloaded source held in memory.
type readSeekCloser struct {
	*bytes.Reader
}

func (readSeekCloser) Close() error { return nil }

// Opener resolves a source string into seekable bytes and the extension used to pick a decoder.
type Opener struct {
	Client   *http.Client
	MaxBytes int64
}

// Open supports local paths, file:// URLs and http(s):// URLs. Remote sources are downloaded in full.
func (o Opener) Open(ctx context.Context, src string) (io.ReadCloser, string, error) {
	if src == "" {
		return nil, "", shared.ErrNoSource
	}

	u, err := url.Parse(src)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return o.download(ctx, u)
		case "file":
			return o.openFile(u.Path)
		}
	}

	return o.openFile(src)
}

// IsRemote reports whether src is fetched over http(s).
func IsRemote(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func (o Opener) openFile(p string) (io.ReadCloser, string, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", p, err)
	}
	return f, strings.ToLower(filepath.Ext(p)), nil
}

func (o Opener) download(ctx context.Context, u *url.URL) (io.ReadCloser, string, error) {
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch %s: status %d", u, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if o.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, o.MaxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", u, err)
	}
	if o.MaxBytes > 0 && int64(len(data)) > o.MaxBytes {
		return nil, "", fmt.Errorf("%w: %s exceeds %d bytes", shared.ErrInvalidInput, u, o.MaxBytes)
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		ext = extForContentType(resp.Header.Get("Content-Type"))
	}

	return readSeekCloser{bytes.NewReader(data)}, ext, nil
}

func extForContentType(ct string) string {
	switch {
	case strings.Contains(ct, "mpeg"), strings.Contains(ct, "mp3"):
		return ".mp3"
	case strings.Contains(ct, "wav"):
		return ".wav"
	case strings.Contains(ct, "flac"):
		return ".flac"
	default:
		return ""
	}
}

// Decode picks a decoder by extension. The returned streamer owns rc.
func Decode(rc io.ReadCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)

	switch ext {
	case ".mp3":
		s, format, err = mp3.Decode(rc)
	case ".wav":
		s, format, err = wav.Decode(rc)
	case ".flac":
		s, format, err = flac.Decode(rc)
	default:
		rc.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %q", shared.ErrUnsupportedMedia, ext)
	}

	if err != nil {
		rc.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", ext, err)
	}
	return s, format, nil
}
