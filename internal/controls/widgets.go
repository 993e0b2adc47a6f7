package controls

import (
	"math"
	"sync"
)

const (
	clickEvent = "click"
	inputEvent = "input"
)

// Button is a clickable control that can be hidden.
type Button struct {
	mu     sync.RWMutex
	label  string
	hidden bool
	events *Emitter[string]
}

// NewButton creates a visible [Button].
func NewButton(label string) *Button {
	return &Button{label: label, events: NewEmitter[string]()}
}

func (b *Button) Label() string { return b.label }

func (b *Button) SetHidden(hidden bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hidden = hidden
}

func (b *Button) Hidden() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hidden
}

// OnClick registers fn to run on every [Button.Click].
func (b *Button) OnClick(fn func()) { b.events.On(clickEvent, fn) }

// Click fires click observers. Hidden buttons still fire; hosts decide what is clickable.
func (b *Button) Click() { b.events.Emit(clickEvent) }

// Label is a text display.
type Label struct {
	mu   sync.RWMutex
	text string
}

func NewLabel() *Label { return &Label{} }

func (l *Label) SetText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
}

func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// Range is a 0-100 slider.
type Range struct {
	mu     sync.RWMutex
	value  float64
	events *Emitter[string]
}

func NewRange() *Range { return &Range{events: NewEmitter[string]()} }

func (r *Range) Value() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// SetValue moves the slider programmatically without firing input observers.
func (r *Range) SetValue(v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = clamp(v)
}

// OnInput registers fn to run on every [Range.Input].
func (r *Range) OnInput(fn func()) { r.events.On(inputEvent, fn) }

// Input simulates the user dragging the slider to v.
func (r *Range) Input(v float64) {
	r.SetValue(v)
	r.events.Emit(inputEvent)
}

// Step nudges the slider by delta as user input.
func (r *Range) Step(delta float64) {
	r.Input(r.Value() + delta)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
