package player

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gp/internal/models"
	"github.com/desertthunder/gp/internal/shared"
)

// DefaultStateKey is the storage key of the persisted track.
const DefaultStateKey = "gp-state"

// Options contains the dependencies of a [MiniPlayer].
type Options struct {
	Bindings
	Store       Storage
	StateKey    string      // defaults to [DefaultStateKey]
	Placeholder string      // title shown for untitled tracks, defaults to [models.DefaultTitle]
	Logger      *log.Logger // defaults to [shared.NewLogger]
}

// MiniPlayer binds one [Media] element to its controls and persists the last loaded track.
type MiniPlayer struct {
	media       Media
	play        Button
	pause       Button
	title       Label
	artist      Label
	progress    Scrubber
	store       Storage
	key         string
	placeholder string
	logger      *log.Logger
	current     models.TrackState
}

// New binds the player to opts, wires observers and restores the persisted track without autoplay.
//
// Returns an error wrapping [shared.ErrMissingBinding] if any binding or the store is nil.
func New(opts Options) (*MiniPlayer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if opts.StateKey == "" {
		opts.StateKey = DefaultStateKey
	}
	if opts.Placeholder == "" {
		opts.Placeholder = models.DefaultTitle
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	p := &MiniPlayer{
		media:       opts.Audio,
		play:        opts.Play,
		pause:       opts.Pause,
		title:       opts.Title,
		artist:      opts.Artist,
		progress:    opts.Progress,
		store:       opts.Store,
		key:         opts.StateKey,
		placeholder: opts.Placeholder,
		logger:      opts.Logger,
	}

	p.wire()
	p.restore()

	return p, nil
}

func (o Options) validate() error {
	bindings := []struct {
		name  string
		isNil bool
	}{
		{"audio", o.Audio == nil},
		{"play button", o.Play == nil},
		{"pause button", o.Pause == nil},
		{"title label", o.Title == nil},
		{"artist label", o.Artist == nil},
		{"progress scrubber", o.Progress == nil},
		{"store", o.Store == nil},
	}

	for _, b := range bindings {
		if b.isNil {
			return fmt.Errorf("%w: %s", shared.ErrMissingBinding, b.name)
		}
	}
	return nil
}

func (p *MiniPlayer) wire() {
	p.play.OnClick(p.Play)
	p.pause.OnClick(p.Pause)

	p.media.On(EventPlay, p.syncButtons)
	p.media.On(EventPause, p.syncButtons)
	p.media.On(EventTimeUpdate, p.syncProgress)
	p.progress.OnInput(p.seek)
}

// restore reads the persisted slot once.
func (p *MiniPlayer) restore() {
	raw, err := p.store.Get(p.key)
	if err != nil {
		p.logger.Debug("persisted state unavailable, starting empty", "key", p.key, "error", err)
		return
	}

	track, err := models.DecodeTrackState(raw)
	if err != nil {
		p.logger.Debug("ignoring malformed persisted state", "key", p.key, "error", err)
		return
	}
	if track.Empty() {
		return
	}

	if err := p.load(track, false); err != nil {
		p.logger.Warn("restored track with errors", "src", track.Src, "error", err)
	}
}

// PlayTrack is the external load-and-play entry point.
//
// The display, scrubber and persisted state are always refreshed. Playback start is not awaited.
func (p *MiniPlayer) PlayTrack(req models.Request) error {
	return p.load(req.Track(), true)
}

// Play starts playback of the loaded source. Failures are logged only.
func (p *MiniPlayer) Play() {
	if err := p.media.Play(); err != nil {
		p.logger.Debug("playback did not start", "src", p.media.Source(), "error", err)
	}
}

// Pause stops playback.
func (p *MiniPlayer) Pause() {
	if err := p.media.Pause(); err != nil {
		p.logger.Debug("pause failed", "src", p.media.Source(), "error", err)
	}
}

// Toggle plays when paused and pauses when playing.
func (p *MiniPlayer) Toggle() {
	if p.media.Paused() {
		p.Play()
		return
	}
	p.Pause()
}

// Current returns the last loaded track, zero if none.
func (p *MiniPlayer) Current() models.TrackState {
	return p.current
}

func (p *MiniPlayer) load(track models.TrackState, autoplay bool) error {
	var errs []error

	if p.media.Source() != track.Src {
		if err := p.media.SetSource(track.Src); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", shared.ErrSourceFailed, track.Src, err))
		}
	}

	p.current = track
	p.title.SetText(track.DisplayTitle(p.placeholder))
	p.artist.SetText(track.DisplayArtist())
	p.progress.SetValue(0)

	if err := p.persist(track); err != nil {
		errs = append(errs, err)
	}

	p.logger.Info("track loaded", "src", track.Src, "title", track.Title, "artist", track.Artist, "autoplay", autoplay)

	if autoplay {
		p.Play()
	}

	return errors.Join(errs...)
}

func (p *MiniPlayer) persist(track models.TrackState) error {
	value, err := track.Encode()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistState, err)
	}

	if err := p.store.Set(p.key, value); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPersistState, err)
	}
	return nil
}

func (p *MiniPlayer) syncButtons() {
	paused := p.media.Paused()
	p.play.SetHidden(!paused)
	p.pause.SetHidden(paused)
}

func (p *MiniPlayer) syncProgress() {
	d := p.media.Duration()
	if !known(d) {
		return
	}
	p.progress.SetValue(ProgressFor(p.media.CurrentTime(), d))
}

func (p *MiniPlayer) seek() {
	d := p.media.Duration()
	if !known(d) {
		return
	}
	p.media.SetCurrentTime(PositionFor(p.progress.Value(), d))
}

// ProgressFor maps position within duration onto the 0-100 scrubber scale.
func ProgressFor(position, duration float64) float64 {
	return position / duration * 100
}

// PositionFor maps a 0-100 scrubber value onto a position within duration.
func PositionFor(value, duration float64) float64 {
	return duration * (value / 100)
}

// known reports whether a duration can drive the scrubber.
func known(d float64) bool {
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}
