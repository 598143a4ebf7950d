package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/voltlab/gpumon/internal/logger"
	"github.com/voltlab/gpumon/internal/telemetry"
)

// DefaultInterval is the refresh interval used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// tickMsg signals that the refresh interval elapsed with no input.
type tickMsg time.Time

// Model is the Bubble Tea model for the telemetry dashboard. State is owned
// exclusively by the update loop; there is no shared mutable state.
type Model struct {
	sampler  telemetry.Sampler
	interval time.Duration
	log      logger.Logger

	// tick is the counter handed to the next Sample call; frame is the
	// counter that produced the metrics currently on screen.
	tick    uint64
	frame   uint64
	metrics []telemetry.DeviceSample

	width    int
	height   int
	keys     keyMap
	help     help.Model
	quitting bool
}

// NewModel builds the dashboard model and applies one forced tick so the
// first frame is populated rather than blank.
func NewModel(sampler telemetry.Sampler, interval time.Duration, log logger.Logger) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Default()
	}

	m := Model{
		sampler:  sampler,
		interval: interval,
		log:      log,
		keys:     defaultKeyMap(),
		help:     help.New(),
		width:    80,
		height:   24,
	}
	m.advanceTick()
	return m
}

// Init starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles input and timer messages. Key presses never advance the
// tick counter; only an expired refresh interval does.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.log.Debug("quit requested after %d ticks", m.frame)
			return m, tea.Quit
		}
		// All other keys are no-ops.
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.advanceTick()
		return m, m.tickCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// advanceTick replaces the sample set wholesale and bumps the counter.
// Old samples never linger past a tick.
func (m *Model) advanceTick() {
	m.metrics = m.sampler.Sample(m.tick)
	m.frame = m.tick
	m.tick++
}

// tickCmd schedules the next refresh.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Running reports whether the dashboard is still live.
func (m Model) Running() bool {
	return !m.quitting
}

// Tick returns the counter that will feed the next sample.
func (m Model) Tick() uint64 {
	return m.tick
}

// Frame returns the counter of the sample set currently displayed.
func (m Model) Frame() uint64 {
	return m.frame
}

// Metrics returns the current sample set.
func (m Model) Metrics() []telemetry.DeviceSample {
	return m.metrics
}
