package player

// Event names a media element notification.
type Event string

const (
	EventPlay       Event = "play"
	EventPause      Event = "pause"
	EventTimeUpdate Event = "timeupdate"
)

// Media is the playable-media element.
//
// Times are in seconds. Duration returns 0 until the source's length is known.
type Media interface {
	Source() string
	SetSource(src string) error // SetSource replaces the source and resets playback
	Play() error                // Play starts playback; completion is signalled by [EventPlay]
	Pause() error
	Paused() bool
	Duration() float64
	CurrentTime() float64
	SetCurrentTime(seconds float64)
	On(event Event, fn func()) // On registers an observer for event
}

// Button is a play or pause trigger.
type Button interface {
	SetHidden(hidden bool)
	OnClick(fn func())
}

// Label displays a line of text.
type Label interface {
	SetText(text string)
}

// Scrubber is a range input on a 0-100 scale.
type Scrubber interface {
	Value() float64
	SetValue(v float64)
	OnInput(fn func())
}

// Storage is the persistence port.
//
// Get returns "" and a nil error when key has never been set.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Bindings groups the UI collaborators the player is bound to.
type Bindings struct {
	Audio    Media
	Play     Button
	Pause    Button
	Title    Label
	Artist   Label
	Progress Scrubber
}
