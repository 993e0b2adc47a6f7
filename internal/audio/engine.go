package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gp/internal/controls"
	"github.com/desertthunder/gp/internal/player"
	"github.com/desertthunder/gp/internal/shared"
	"github.com/faiface/beep"
)

var _ player.Media = (*Engine)(nil)

// EngineOpts contains configuration options for creating an [Engine].
type EngineOpts struct {
	Output     Output          // defaults to [Speaker]
	Opener     Opener          // resolves sources
	Post       func(fn func()) // runs notifications raised off the caller's goroutine; defaults to a direct call
	Context    context.Context // parent of remote loads, defaults to context.Background
	SampleRate int             // output sample rate, defaults to 44100
	Buffer     time.Duration   // output buffer, defaults to 100ms
	Tick       time.Duration   // time-progress interval, defaults to 250ms
	Logger     *log.Logger
}

// Engine is a single-source media element.
type Engine struct {
	mu     sync.Mutex
	out    Output
	opener Opener
	post   func(fn func())
	rate   beep.SampleRate
	tick   time.Duration
	logger *log.Logger
	events *controls.Emitter[player.Event]

	ctx        context.Context
	cancelLoad context.CancelFunc
	loading    bool // a remote source is being fetched
	playOnLoad bool // Play was called while loading
	loadErr    error

	src    string
	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	gen    int // incremented per source so stale callbacks are ignored
	ticker chan struct{}
}

// NewEngine initializes the output and returns an idle [Engine].
func NewEngine(opts EngineOpts) (*Engine, error) {
	if opts.Output == nil {
		opts.Output = Speaker{}
	}
	if opts.Post == nil {
		opts.Post = func(fn func()) { fn() }
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 100 * time.Millisecond
	}
	if opts.Tick <= 0 {
		opts.Tick = 250 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	rate := beep.SampleRate(opts.SampleRate)
	if err := opts.Output.Init(rate, rate.N(opts.Buffer)); err != nil {
		return nil, fmt.Errorf("failed to initialize audio output: %w", err)
	}

	return &Engine{
		out:    opts.Output,
		opener: opts.Opener,
		post:   opts.Post,
		ctx:    opts.Context,
		rate:   rate,
		tick:   opts.Tick,
		logger: opts.Logger,
		events: controls.NewEmitter[player.Event](),
	}, nil
}

func (e *Engine) On(event player.Event, fn func()) {
	e.events.On(event, fn)
}

func (e *Engine) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

// SetSource stops the current source and loads src paused at the start.
//
// Local files are decoded before SetSource returns. Remote sources are fetched on another goroutine
// and attached through Post; until then the engine has no duration and [Engine.Play] is deferred.
// The source is recorded even when it cannot be opened, leaving the engine without a stream.
func (e *Engine) SetSource(src string) error {
	wasPlaying := !e.Paused()

	e.mu.Lock()
	e.reset()
	e.src = src
	gen := e.gen

	if IsRemote(src) {
		ctx, cancel := context.WithCancel(e.ctx)
		e.cancelLoad = cancel
		e.loading = true
		e.mu.Unlock()

		if wasPlaying {
			e.events.Emit(player.EventPause)
		}

		e.logger.Debug("fetching source", "src", src)
		go e.fetch(ctx, gen, src)
		return nil
	}
	e.mu.Unlock()

	if wasPlaying {
		e.events.Emit(player.EventPause)
	}

	stream, format, err := e.open(context.Background(), src)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.attach(gen, stream, format)
	return nil
}

// Loading reports whether a remote source is still being fetched.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// LoadErr returns why the last remote source failed to load, if it did.
func (e *Engine) LoadErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadErr
}

func (e *Engine) open(ctx context.Context, src string) (beep.StreamSeekCloser, beep.Format, error) {
	rc, ext, err := e.opener.Open(ctx, src)
	if err != nil {
		return nil, beep.Format{}, err
	}
	return Decode(rc, ext)
}

// fetch downloads and decodes src, then hands the result to the Post goroutine.
func (e *Engine) fetch(ctx context.Context, gen int, src string) {
	stream, format, err := e.open(ctx, src)
	if ctx.Err() != nil {
		if stream != nil {
			stream.Close()
		}
		return
	}
	e.post(func() { e.loaded(gen, stream, format, err) })
}

// loaded attaches a fetched stream unless a newer source replaced it, starting playback if it was requested.
func (e *Engine) loaded(gen int, stream beep.StreamSeekCloser, format beep.Format, err error) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		if stream != nil {
			stream.Close()
		}
		return
	}

	autoplay := e.playOnLoad
	e.loading = false
	e.playOnLoad = false
	e.cancelLoad = nil

	if err != nil {
		e.loadErr = err
		e.mu.Unlock()

		e.logger.Warn("failed to load source", "src", e.Source(), "error", err)
		if autoplay {
			e.events.Emit(player.EventPause)
		}
		return
	}

	e.attach(gen, stream, format)
	if autoplay {
		e.out.Lock()
		e.ctrl.Paused = false
		e.out.Unlock()
		e.startTicker()
	}
	e.mu.Unlock()

	e.events.Emit(player.EventTimeUpdate)
}

// attach makes stream the current source. Must be called with e.mu held.
func (e *Engine) attach(gen int, stream beep.StreamSeekCloser, format beep.Format) {
	if gen != e.gen {
		stream.Close()
		return
	}
	e.stream = stream
	e.format = format
	e.queue()

	e.logger.Debug("source loaded", "src", e.src, "sample_rate", format.SampleRate, "channels", format.NumChannels)
}

// reset drops the current source and any load in flight. Must be called with e.mu held.
func (e *Engine) reset() {
	e.stopTicker()
	e.out.Clear()
	if e.cancelLoad != nil {
		e.cancelLoad()
		e.cancelLoad = nil
	}
	if e.stream != nil {
		e.stream.Close()
	}
	e.stream = nil
	e.ctrl = nil
	e.loading = false
	e.playOnLoad = false
	e.loadErr = nil
	e.gen++
}

// Play resumes the loaded source and fires "play".
//
// While a remote source is loading, playback is deferred until it arrives and "play" fires now.
func (e *Engine) Play() error {
	e.mu.Lock()
	if e.loading {
		wasPaused := !e.playOnLoad
		e.playOnLoad = true
		e.mu.Unlock()

		if wasPaused {
			e.events.Emit(player.EventPlay)
		}
		return nil
	}
	if e.ctrl == nil {
		e.mu.Unlock()
		return shared.ErrNoSource
	}

	e.out.Lock()
	if e.stream.Position() >= e.stream.Len() {
		e.stream.Seek(0)
	}
	wasPaused := e.ctrl.Paused
	e.ctrl.Paused = false
	e.out.Unlock()

	if wasPaused {
		e.startTicker()
	}
	e.mu.Unlock()

	if wasPaused {
		e.events.Emit(player.EventPlay)
	}
	return nil
}

// Pause halts the loaded source and fires "pause".
func (e *Engine) Pause() error {
	e.mu.Lock()
	if e.loading {
		wasPlaying := e.playOnLoad
		e.playOnLoad = false
		e.mu.Unlock()

		if wasPlaying {
			e.events.Emit(player.EventPause)
		}
		return nil
	}
	if e.ctrl == nil {
		e.mu.Unlock()
		return nil
	}

	e.out.Lock()
	wasPlaying := !e.ctrl.Paused
	e.ctrl.Paused = true
	e.out.Unlock()

	e.stopTicker()
	e.mu.Unlock()

	if wasPlaying {
		e.events.Emit(player.EventPause)
	}
	return nil
}

// Paused is true while nothing is playing, including before any source loads.
// A loading source with deferred playback counts as playing.
func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loading {
		return !e.playOnLoad
	}
	if e.ctrl == nil {
		return true
	}

	e.out.Lock()
	defer e.out.Unlock()
	return e.ctrl.Paused
}

// Duration returns the source length in seconds, or 0 without a source.
func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stream == nil {
		return 0
	}
	return e.format.SampleRate.D(e.stream.Len()).Seconds()
}

func (e *Engine) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stream == nil {
		return 0
	}

	e.out.Lock()
	pos := e.stream.Position()
	e.out.Unlock()

	return e.format.SampleRate.D(pos).Seconds()
}

// SetCurrentTime seeks to seconds, clamped to the source, and fires "timeupdate".
func (e *Engine) SetCurrentTime(seconds float64) {
	e.mu.Lock()
	if e.stream == nil {
		e.mu.Unlock()
		return
	}

	n := e.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	n = max(0, min(n, e.stream.Len()))

	e.out.Lock()
	err := e.stream.Seek(n)
	e.out.Unlock()
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn("seek failed", "position", seconds, "error", err)
		return
	}
	e.events.Emit(player.EventTimeUpdate)
}

// Close releases the current source and cancels a load in flight.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	stream := e.stream
	e.stream = nil
	e.reset()
	if stream == nil {
		return nil
	}
	return stream.Close()
}

// ended pauses at the end of the stream gen was loaded with.
func (e *Engine) ended(gen int) {
	e.mu.Lock()
	if gen != e.gen || e.ctrl == nil {
		e.mu.Unlock()
		return
	}

	e.out.Lock()
	e.ctrl.Paused = true
	e.out.Unlock()
	e.stopTicker()

	// the sequence has drained, queue the source again for the next Play
	e.queue()
	e.mu.Unlock()

	e.events.Emit(player.EventTimeUpdate)
	e.events.Emit(player.EventPause)
}

// queue hands the current stream to the output, paused. Must be called with e.mu held.
func (e *Engine) queue() {
	var s beep.Streamer = e.stream
	if e.format.SampleRate != e.rate {
		s = beep.Resample(4, e.format.SampleRate, e.rate, e.stream)
	}

	gen := e.gen
	e.ctrl = &beep.Ctrl{Streamer: s, Paused: true}
	e.out.Play(beep.Seq(e.ctrl, beep.Callback(func() {
		go e.post(func() { e.ended(gen) })
	})))
}

// startTicker must be called with e.mu held.
func (e *Engine) startTicker() {
	if e.ticker != nil {
		return
	}

	stop := make(chan struct{})
	e.ticker = stop

	go func() {
		t := time.NewTicker(e.tick)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				e.post(func() { e.events.Emit(player.EventTimeUpdate) })
			}
		}
	}()
}

// stopTicker must be called with e.mu held.
func (e *Engine) stopTicker() {
	if e.ticker != nil {
		close(e.ticker)
		e.ticker = nil
	}
}
