package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/gp/internal/controls"
	"github.com/desertthunder/gp/internal/models"
	"github.com/desertthunder/gp/internal/player"
	"github.com/desertthunder/gp/internal/shared"
)

const defaultSeekStep = 5.0

// Controls are the widgets a [player.MiniPlayer] drives and the [Model] renders.
type Controls struct {
	Play     *controls.Button
	Pause    *controls.Button
	Title    *controls.Label
	Artist   *controls.Label
	Progress *controls.Range
}

// NewControls creates the widget set with the pause button hidden.
func NewControls() Controls {
	c := Controls{
		Play:     controls.NewButton("▶ play"),
		Pause:    controls.NewButton("❚❚ pause"),
		Title:    controls.NewLabel(),
		Artist:   controls.NewLabel(),
		Progress: controls.NewRange(),
	}
	c.Pause.SetHidden(true)
	return c
}

// Bindings pairs the widgets with media for [player.New].
func (c Controls) Bindings(media player.Media) player.Bindings {
	return player.Bindings{
		Audio:    media,
		Play:     c.Play,
		Pause:    c.Pause,
		Title:    c.Title,
		Artist:   c.Artist,
		Progress: c.Progress,
	}
}

// Options contains the dependencies of a [Model].
type Options struct {
	Player   *player.MiniPlayer
	Media    player.Media
	Controls Controls
	Loop     *controls.Loop
	SeekStep float64 // scrubber percent per key press
	Logger   *log.Logger
	Err      error // shown until the next successful load
}

// Model represents the TUI application state.
type Model struct {
	player    *player.MiniPlayer
	media     player.Media
	controls  Controls
	loop      *controls.Loop
	step      float64
	logger    *log.Logger
	bar       progress.Model
	prompt    textinput.Model
	prompting bool
	status    string
	err       error
	width     int
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(opts Options) *Model {
	if opts.SeekStep <= 0 {
		opts.SeekStep = defaultSeekStep
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	prompt := textinput.New()
	prompt.Placeholder = "path or URL"
	prompt.Prompt = "open: "
	prompt.CharLimit = 2048

	return &Model{
		player:   opts.Player,
		media:    opts.Media,
		controls: opts.Controls,
		loop:     opts.Loop,
		step:     opts.SeekStep,
		logger:   opts.Logger,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		prompt:   prompt,
		err:      opts.Err,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init starts draining player callbacks.
func (m *Model) Init() tea.Cmd {
	return m.waitForCallback()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(10, min(msg.Width-24, 60))
		m.help.Width = msg.Width
		return m, nil

	case callbackMsg:
		msg()
		return m, m.waitForCallback()

	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKeys(msg)
		}
		return m.handlePlayerKeys(msg)
	}

	return m, nil
}

func (m *Model) handlePlayerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		m.clickVisible()
	case key.Matches(msg, m.keys.back):
		m.controls.Progress.Step(-m.step)
	case key.Matches(msg, m.keys.forward):
		m.controls.Progress.Step(m.step)
	case key.Matches(msg, m.keys.open):
		m.prompting = true
		m.prompt.SetValue(m.player.Current().Src)
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.showHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		src := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if src != "" {
			m.load(models.Request{Source: src})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// clickVisible clicks whichever of play and pause is showing.
func (m *Model) clickVisible() {
	if !m.controls.Play.Hidden() {
		m.controls.Play.Click()
		return
	}
	m.controls.Pause.Click()
}

func (m *Model) load(req models.Request) {
	m.err = m.player.PlayTrack(req)
	if m.err != nil {
		m.status = ""
		m.logger.Warn("load failed", "src", req.Source, "error", m.err)
		return
	}
	m.status = "loaded " + req.Source
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.Reset()
}

// View renders the player.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(m.controls.Title.Text()))
	b.WriteString("\n")
	if artist := m.controls.Artist.Text(); artist != "" {
		b.WriteString(styles.artist.Render(artist))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderButton())
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(m.controls.Progress.Value() / 100))
	b.WriteString(" ")
	b.WriteString(styles.clock.Render(m.renderClock()))
	b.WriteString("\n\n")

	switch {
	case m.prompting:
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.cancel}))
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	default:
		if m.status != "" {
			b.WriteString(styles.help.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(m.help.View(m.keys))
	}

	return styles.frame.Render(b.String())
}

func (m *Model) renderButton() string {
	if !m.controls.Play.Hidden() {
		return styles.button.Render(m.controls.Play.Label())
	}
	return styles.button.Render(m.controls.Pause.Label())
}

func (m *Model) renderClock() string {
	d := m.media.Duration()
	if d <= 0 || math.IsInf(d, 0) || math.IsNaN(d) {
		return FormatClock(m.media.CurrentTime()) + " / --:--"
	}
	return FormatClock(m.media.CurrentTime()) + " / " + FormatClock(d)
}

// FormatClock renders seconds as m:ss, or h:mm:ss past an hour.
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}

	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
