package audio

import (
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Output is where decoded samples go.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// Speaker plays through the system sound card.
type Speaker struct{}

func (Speaker) Init(sr beep.SampleRate, bufferSize int) error { return speaker.Init(sr, bufferSize) }
func (Speaker) Play(s ...beep.Streamer)                       { speaker.Play(s...) }
func (Speaker) Clear()                                        { speaker.Clear() }
func (Speaker) Lock()                                         { speaker.Lock() }
func (Speaker) Unlock()                                       { speaker.Unlock() }

// Discard accepts streamers without pulling samples from them unless asked to with [Discard.Pull].
type Discard struct {
	mu        sync.Mutex
	stream    sync.Mutex
	streamers []beep.Streamer
}

func NewDiscard() *Discard { return &Discard{} }

func (d *Discard) Init(beep.SampleRate, int) error { return nil }

func (d *Discard) Play(s ...beep.Streamer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.streamers = append(d.streamers, s...)
}

func (d *Discard) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.streamers = nil
}

func (d *Discard) Lock()   { d.stream.Lock() }
func (d *Discard) Unlock() { d.stream.Unlock() }

// Pull streams n samples from every queued streamer, as a sound card would.
func (d *Discard) Pull(n int) {
	d.mu.Lock()
	streamers := append([]beep.Streamer{}, d.streamers...)
	d.mu.Unlock()

	d.stream.Lock()
	defer d.stream.Unlock()

	buf := make([][2]float64, n)
	for _, s := range streamers {
		s.Stream(buf)
	}
}

// Queued returns the number of streamers currently playing.
func (d *Discard) Queued() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.streamers)
}
