// package testing contains shared testing utilities
package testing

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/gp/internal/controls"
	"github.com/desertthunder/gp/internal/player"
)

var _ player.Media = (*MockMedia)(nil)

// ErrMock is a generic failure for test doubles.
var ErrMock = errors.New("mock failure")

// MockMedia is a test double for [player.Media] that behaves like a browser media element: playing
// fires "play", pausing fires "pause", seeking fires "timeupdate", and a new source resets playback.
type MockMedia struct {
	mu          sync.Mutex
	src         string
	paused      bool
	duration    float64
	currentTime float64
	events      *controls.Emitter[player.Event]

	// SetSourceCalls counts source replacements.
	SetSourceCalls int
	// PlayErr is returned by Play without starting playback, e.g. a blocked autoplay.
	PlayErr error
	// SourceErr is returned by SetSource after the source is recorded.
	SourceErr error
	// DurationOnLoad is the duration a newly set source reports.
	DurationOnLoad float64
}

func NewMockMedia() *MockMedia {
	return &MockMedia{paused: true, events: controls.NewEmitter[player.Event]()}
}

func (m *MockMedia) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.src
}

func (m *MockMedia) SetSource(src string) error {
	m.mu.Lock()
	m.src = src
	m.paused = true
	m.currentTime = 0
	m.duration = m.DurationOnLoad
	m.SetSourceCalls++
	err := m.SourceErr
	m.mu.Unlock()
	return err
}

func (m *MockMedia) Play() error {
	m.mu.Lock()
	if m.PlayErr != nil {
		err := m.PlayErr
		m.mu.Unlock()
		return err
	}
	m.paused = false
	m.mu.Unlock()

	m.events.Emit(player.EventPlay)
	return nil
}

func (m *MockMedia) Pause() error {
	m.mu.Lock()
	m.paused = true
	m.mu.Unlock()

	m.events.Emit(player.EventPause)
	return nil
}

func (m *MockMedia) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *MockMedia) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

// SetDuration simulates metadata becoming available.
func (m *MockMedia) SetDuration(d float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *MockMedia) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

func (m *MockMedia) SetCurrentTime(seconds float64) {
	m.mu.Lock()
	m.currentTime = seconds
	m.mu.Unlock()

	m.events.Emit(player.EventTimeUpdate)
}

// Advance simulates playback progress to position and fires "timeupdate".
func (m *MockMedia) Advance(position float64) {
	m.SetCurrentTime(position)
}

func (m *MockMedia) On(event player.Event, fn func()) {
	m.events.On(event, fn)
}

// MockStore is an in-memory [player.Storage] that can be made to fail.
type MockStore struct {
	mu     sync.Mutex
	values map[string]string
	sets   int

	GetErr error
	SetErr error
}

func NewMockStore(values map[string]string) *MockStore {
	if values == nil {
		values = map[string]string{}
	}
	return &MockStore{values: values}
}

func (s *MockStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", s.GetErr
	}
	return s.values[key], nil
}

func (s *MockStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.values[key] = value
	s.sets++
	return nil
}

// Sets returns the number of successful writes.
func (s *MockStore) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

// Value returns the raw stored value for key.
func (s *MockStore) Value(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
