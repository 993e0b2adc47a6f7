package player_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gp/internal/controls"
	"github.com/desertthunder/gp/internal/models"
	"github.com/desertthunder/gp/internal/player"
	"github.com/desertthunder/gp/internal/shared"
	tu "github.com/desertthunder/gp/internal/testing"
)

type fixture struct {
	media    *tu.MockMedia
	store    *tu.MockStore
	play     *controls.Button
	pause    *controls.Button
	title    *controls.Label
	artist   *controls.Label
	progress *controls.Range
}

func newFixture(stored map[string]string) *fixture {
	return &fixture{
		media:    tu.NewMockMedia(),
		store:    tu.NewMockStore(stored),
		play:     controls.NewButton("play"),
		pause:    controls.NewButton("pause"),
		title:    controls.NewLabel(),
		artist:   controls.NewLabel(),
		progress: controls.NewRange(),
	}
}

func (f *fixture) options() player.Options {
	return player.Options{
		Bindings: player.Bindings{
			Audio:    f.media,
			Play:     f.play,
			Pause:    f.pause,
			Title:    f.title,
			Artist:   f.artist,
			Progress: f.progress,
		},
		Store:  f.store,
		Logger: shared.NewLogger(io.Discard),
	}
}

func (f *fixture) mustNew(t *testing.T) *player.MiniPlayer {
	t.Helper()
	p, err := player.New(f.options())
	if err != nil {
		t.Fatalf("failed to create player: %v", err)
	}
	return p
}

func TestNew(t *testing.T) {
	t.Run("missing bindings", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*player.Options)
		}{
			{"audio", func(o *player.Options) { o.Audio = nil }},
			{"play button", func(o *player.Options) { o.Play = nil }},
			{"pause button", func(o *player.Options) { o.Pause = nil }},
			{"title label", func(o *player.Options) { o.Title = nil }},
			{"artist label", func(o *player.Options) { o.Artist = nil }},
			{"progress scrubber", func(o *player.Options) { o.Progress = nil }},
			{"store", func(o *player.Options) { o.Store = nil }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				opts := newFixture(nil).options()
				tt.mutate(&opts)

				_, err := player.New(opts)
				if !errors.Is(err, shared.ErrMissingBinding) {
					t.Fatalf("expected ErrMissingBinding, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.name) {
					t.Errorf("expected error to name %q, got %v", tt.name, err)
				}
			})
		}
	})

	t.Run("empty storage loads nothing", func(t *testing.T) {
		f := newFixture(nil)
		p := f.mustNew(t)

		if !p.Current().Empty() {
			t.Errorf("expected no track, got %+v", p.Current())
		}
		if f.media.SetSourceCalls != 0 {
			t.Errorf("expected no source change, got %d", f.media.SetSourceCalls)
		}
		if f.store.Sets() != 0 {
			t.Errorf("expected no writes, got %d", f.store.Sets())
		}
	})

	t.Run("restores persisted track without autoplay", func(t *testing.T) {
		f := newFixture(map[string]string{
			player.DefaultStateKey: `{"src":"a.mp3","title":"Song","artist":"Band"}`,
		})
		p := f.mustNew(t)

		if f.media.Source() != "a.mp3" {
			t.Errorf("expected source a.mp3, got %q", f.media.Source())
		}
		if f.title.Text() != "Song" || f.artist.Text() != "Band" {
			t.Errorf("expected Song/Band, got %q/%q", f.title.Text(), f.artist.Text())
		}
		if !f.media.Paused() {
			t.Error("restored track should not autoplay")
		}
		if p.Current().Src != "a.mp3" {
			t.Errorf("expected current src a.mp3, got %q", p.Current().Src)
		}
	})

	t.Run("malformed persisted values are treated as absent", func(t *testing.T) {
		for _, raw := range []string{"not-json", "{", "[]", `{"src":1}`, `{"title":"no source"}`, "null"} {
			t.Run(raw, func(t *testing.T) {
				f := newFixture(map[string]string{player.DefaultStateKey: raw})
				p := f.mustNew(t)

				if !p.Current().Empty() {
					t.Errorf("expected no track, got %+v", p.Current())
				}
				if f.media.SetSourceCalls != 0 {
					t.Errorf("expected no source change, got %d", f.media.SetSourceCalls)
				}
			})
		}
	})

	t.Run("unreadable storage is treated as absent", func(t *testing.T) {
		f := newFixture(nil)
		f.store.GetErr = errors.New("disk gone")
		p := f.mustNew(t)

		if !p.Current().Empty() {
			t.Errorf("expected no track, got %+v", p.Current())
		}
	})

	t.Run("restore persistence failure is logged", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := newFixture(map[string]string{player.DefaultStateKey: `{"src":"a.mp3"}`})
		f.store.SetErr = errors.New("read-only")
		opts := f.options()
		opts.Logger = shared.NewLogger(buf)

		if _, err := player.New(opts); err != nil {
			t.Fatalf("restore failures should not fail construction: %v", err)
		}
		if !strings.Contains(buf.String(), "restored track with errors") {
			t.Errorf("expected warning in log, got %q", buf.String())
		}
	})

	t.Run("custom state key and placeholder", func(t *testing.T) {
		f := newFixture(map[string]string{"other": `{"src":"x.mp3"}`})
		opts := f.options()
		opts.StateKey = "other"
		opts.Placeholder = "Untitled"

		if _, err := player.New(opts); err != nil {
			t.Fatalf("failed to create player: %v", err)
		}
		if f.title.Text() != "Untitled" {
			t.Errorf("expected Untitled, got %q", f.title.Text())
		}
	})
}

func TestPlayTrack(t *testing.T) {
	t.Run("displays literal values or placeholders", func(t *testing.T) {
		tc := []struct {
			name       string
			req        models.Request
			wantTitle  string
			wantArtist string
		}{
			{"title and artist", models.Request{Source: "a.mp3", Title: "Song", Artist: "Band"}, "Song", "Band"},
			{"missing title", models.Request{Source: "a.mp3", Artist: "Band"}, models.DefaultTitle, "Band"},
			{"missing artist", models.Request{Source: "a.mp3", Title: "Song"}, "Song", ""},
			{"missing both", models.Request{Source: "a.mp3"}, models.DefaultTitle, ""},
			{"whitespace title shown as given", models.Request{Source: "a.mp3", Title: "   "}, "   ", ""},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(nil)
				p := f.mustNew(t)

				if err := p.PlayTrack(tt.req); err != nil {
					t.Fatalf("PlayTrack() error = %v", err)
				}
				if f.title.Text() != tt.wantTitle {
					t.Errorf("title = %q, want %q", f.title.Text(), tt.wantTitle)
				}
				if f.artist.Text() != tt.wantArtist {
					t.Errorf("artist = %q, want %q", f.artist.Text(), tt.wantArtist)
				}
			})
		}
	})

	t.Run("starts playback and persists state", func(t *testing.T) {
		f := newFixture(nil)
		p := f.mustNew(t)

		if err := p.PlayTrack(models.Request{Source: "a.mp3", Title: "Song"}); err != nil {
			t.Fatalf("PlayTrack() error = %v", err)
		}

		if f.media.Paused() {
			t.Error("expected playback to start")
		}
		if !f.play.Hidden() {
			t.Error("expected play control hidden")
		}
		if f.pause.Hidden() {
			t.Error("expected pause control visible")
		}

		want := `{"src":"a.mp3","title":"Song","artist":""}`
		if got := f.store.Value(player.DefaultStateKey); got != want {
			t.Errorf("persisted %s, want %s", got, want)
		}
	})

	t.Run("same source skips reassignment but refreshes everything else", func(t *testing.T) {
		f := newFixture(nil)
		p := f.mustNew(t)

		if err := p.PlayTrack(models.Request{Source: "a.mp3", Title: "One"}); err != nil {
			t.Fatalf("PlayTrack() error = %v", err)
		}
		f.media.SetDuration(200)
		f.media.Advance(100)
		if f.progress.Value() != 50 {
			t.Fatalf("expected progress 50, got %v", f.progress.Value())
		}

		if err := p.PlayTrack(models.Request{Source: "a.mp3", Title: "Two", Artist: "Band"}); err != nil {
			t.Fatalf("PlayTrack() error = %v", err)
		}

		if f.media.SetSourceCalls != 1 {
			t.Errorf("expected 1 source assignment, got %d", f.media.SetSourceCalls)
		}
		if f.media.CurrentTime() != 100 {
			t.Errorf("expected playback position kept at 100, got %v", f.media.CurrentTime())
		}
		if f.title.Text() != "Two" || f.artist.Text() != "Band" {
			t.Errorf("expected Two/Band, got %q/%q", f.title.Text(), f.artist.Text())
		}
		if f.progress.Value() != 0 {
			t.Errorf("expected progress reset to 0, got %v", f.progress.Value())
		}
		if f.store.Sets() != 2 {
			t.Errorf("expected 2 writes, got %d", f.store.Sets())
		}
		if got := f.store.Value(player.DefaultStateKey); got != `{"src":"a.mp3","title":"Two","artist":"Band"}` {
			t.Errorf("unexpected persisted state %s", got)
		}
	})

	t.Run("retrying a source that failed to open skips reassignment", func(t *testing.T) {
		f := newFixture(nil)
		p := f.mustNew(t)
		f.media.SourceErr = tu.ErrMock

		if err := p.PlayTrack(models.Request{Source: "broken.mp3"}); !errors.Is(err, shared.ErrSourceFailed) {
			t.Fatalf("expected ErrSourceFailed, got %v", err)
		}
		f.media.SourceErr = nil

		if err := p.PlayTrack(models.Request{Source: "broken.mp3"}); err != nil {
			t.Fatalf("expected retry of the recorded source to succeed quietly, got %v", err)
		}
		if f.media.SetSourceCalls != 1 {
			t.Errorf("expected 1 source assignment, got %d", f.media.SetSourceCalls)
		}
		if f.media.Source() != "broken.mp3" {
			t.Errorf("expected source recorded, got %q", f.media.Source())
		}
	})

	t.Run("different source resets playback", func(t *testing.T) {
		f := newFixture(nil)
		p := f.mustNew(t)

		p.PlayTrack(models.Request{Source: "a.mp3"})
		f.media.SetDuration(100)
		f.media.Advance(30)
		p.PlayTrack(models.Request{Source: "b.mp3"})

		if f.media.Source() != "b.mp3" {
			t.Errorf("expected b.mp3, got %q", f.media.Source())
		}
		if f.media.SetSourceCalls != 2 {
			t.Errorf("expected 2 source assignments, got %d", f.media.SetSourceCalls)
		}
		if f.media.CurrentTime() != 0 {
			t.Errorf("expected reset position, got %v", f.media.CurrentTime())
		}
	})

	t.Run("blocked autoplay is silent", func(t *testing.T) {
		f := newFixture(nil)
		f.media.PlayErr = errors.New("autoplay blocked")
		p := f.mustNew(t)

		if err := p.PlayTrack(models.Request{Source: "a.mp3", Title: "Song"}); err != nil {
			t.Fatalf("autoplay failure should not be returned, got %v", err)
		}
		if !f.media.Paused() {
			t.Error("expected media to stay paused")
		}
		if f.play.Hidden() {
			t.Error("play control should stay visible when playback never began")
		}
		if f.store.Sets() != 1 {
			t.Errorf("expected state persisted, got %d writes", f.store.Sets())
		}
	})

	t.Run("source failure still refreshes and persists", func(t *testing.T) {
		f := newFixture(nil)
		f.media.SourceErr = errors.New("no such file")
		p := f.mustNew(t)

		err := p.PlayTrack(models.Request{Source: "missing.mp3", Title: "Gone"})
		if !errors.Is(err, shared.ErrSourceFailed) {
			t.Fatalf("expected ErrSourceFailed, got %v", err)
		}
		if f.title.Text() != "Gone" {
			t.Errorf("expected title Gone, got %q", f.title.Text())
		}
		if f.store.Sets() != 1 {
			t.Errorf("expected state persisted, got %d writes", f.store.Sets())
		}
	})

	t.Run("persistence failure is returned after playback starts", func(t *testing.T) {
		f := newFixture(nil)
		f.store.SetErr = errors.New("quota exceeded")
		p := f.mustNew(t)

		err := p.PlayTrack(models.Request{Source: "a.mp3"})
		if !errors.Is(err, shared.ErrPersistState) {
			t.Fatalf("expected ErrPersistState, got %v", err)
		}
		if f.media.Paused() {
			t.Error("expected playback to start despite persistence failure")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	store := tu.NewMockStore(nil)

	first := newFixture(nil)
	first.store = store
	p := first.mustNew(t)
	if err := p.PlayTrack(models.Request{Source: "song.flac", Title: "Song", Artist: "Band"}); err != nil {
		t.Fatalf("PlayTrack() error = %v", err)
	}

	second := newFixture(nil)
	second.store = store
	restored := second.mustNew(t)

	if second.media.Source() != "song.flac" {
		t.Errorf("expected restored source song.flac, got %q", second.media.Source())
	}
	if second.title.Text() != "Song" || second.artist.Text() != "Band" {
		t.Errorf("expected Song/Band, got %q/%q", second.title.Text(), second.artist.Text())
	}
	if !second.media.Paused() {
		t.Error("restored track should not autoplay")
	}
	if restored.Current() != p.Current() {
		t.Errorf("expected %+v, got %+v", p.Current(), restored.Current())
	}
}

func TestControls(t *testing.T) {
	t.Run("buttons drive playback", func(t *testing.T) {
		f := newFixture(nil)
		p := f.mustNew(t)
		p.PlayTrack(models.Request{Source: "a.mp3"})

		f.pause.Click()
		if !f.media.Paused() {
			t.Error("expected pause click to pause")
		}
		if f.play.Hidden() || !f.pause.Hidden() {
			t.Error("expected play visible and pause hidden after pause")
		}

		f.play.Click()
		if f.media.Paused() {
			t.Error("expected play click to play")
		}
		if !f.play.Hidden() || f.pause.Hidden() {
			t.Error("expected play hidden and pause visible after play")
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		f := newFixture(nil)
		p := f.mustNew(t)
		p.PlayTrack(models.Request{Source: "a.mp3"})

		p.Toggle()
		if !f.media.Paused() {
			t.Error("expected Toggle to pause")
		}
		p.Toggle()
		if f.media.Paused() {
			t.Error("expected Toggle to play")
		}
	})
}

func TestScrubber(t *testing.T) {
	t.Run("time progress maps onto 0-100", func(t *testing.T) {
		tc := []struct {
			duration, position, want float64
		}{
			{200, 0, 0},
			{200, 50, 25},
			{200, 200, 100},
			{3, 1, 100.0 / 3},
		}

		for _, tt := range tc {
			f := newFixture(nil)
			p := f.mustNew(t)
			p.PlayTrack(models.Request{Source: "a.mp3"})
			f.media.SetDuration(tt.duration)
			f.media.Advance(tt.position)

			if math.Abs(f.progress.Value()-tt.want) > 1e-9 {
				t.Errorf("D=%v P=%v: progress = %v, want %v", tt.duration, tt.position, f.progress.Value(), tt.want)
			}
		}
	})

	t.Run("manual input seeks", func(t *testing.T) {
		tc := []struct {
			duration, value, want float64
		}{
			{200, 0, 0},
			{200, 25, 50},
			{200, 100, 200},
			{90, 50, 45},
		}

		for _, tt := range tc {
			f := newFixture(nil)
			p := f.mustNew(t)
			p.PlayTrack(models.Request{Source: "a.mp3"})
			f.media.SetDuration(tt.duration)
			f.progress.Input(tt.value)

			if math.Abs(f.media.CurrentTime()-tt.want) > 1e-9 {
				t.Errorf("D=%v V=%v: position = %v, want %v", tt.duration, tt.value, f.media.CurrentTime(), tt.want)
			}
		}
	})

	t.Run("unknown duration ignores sync and seeks", func(t *testing.T) {
		for _, d := range []float64{0, math.NaN(), math.Inf(1)} {
			f := newFixture(nil)
			p := f.mustNew(t)
			p.PlayTrack(models.Request{Source: "a.mp3"})
			f.media.SetDuration(d)

			f.media.Advance(12)
			if f.progress.Value() != 0 {
				t.Errorf("D=%v: expected progress untouched, got %v", d, f.progress.Value())
			}

			f.progress.Input(60)
			if f.media.CurrentTime() != 12 {
				t.Errorf("D=%v: expected position unchanged at 12, got %v", d, f.media.CurrentTime())
			}
		}
	})

	t.Run("metadata arriving later enables seeking", func(t *testing.T) {
		f := newFixture(nil)
		p := f.mustNew(t)
		p.PlayTrack(models.Request{Source: "a.mp3"})

		f.progress.Input(50)
		if f.media.CurrentTime() != 0 {
			t.Fatalf("expected no seek before metadata, got %v", f.media.CurrentTime())
		}

		f.media.SetDuration(10)
		f.progress.Input(50)
		if f.media.CurrentTime() != 5 {
			t.Errorf("expected seek to 5, got %v", f.media.CurrentTime())
		}
	})
}

func TestMappings(t *testing.T) {
	if got := player.ProgressFor(30, 120); got != 25 {
		t.Errorf("ProgressFor(30, 120) = %v, want 25", got)
	}
	if got := player.PositionFor(25, 120); got != 30 {
		t.Errorf("PositionFor(25, 120) = %v, want 30", got)
	}
}

func TestLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	f := newFixture(nil)
	opts := f.options()
	opts.Logger = shared.NewLogger(buf)
	shared.SetLogLevel(opts.Logger, log.DebugLevel)
	f.media.PlayErr = errors.New("blocked")

	p, err := player.New(opts)
	if err != nil {
		t.Fatalf("failed to create player: %v", err)
	}
	p.PlayTrack(models.Request{Source: "a.mp3"})

	out := buf.String()
	if !strings.Contains(out, "track loaded") {
		t.Errorf("expected load entry, got %q", out)
	}
	if !strings.Contains(out, "playback did not start") {
		t.Errorf("expected debug entry for blocked playback, got %q", out)
	}
}
