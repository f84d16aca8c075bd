package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/olivier-w/springcurve/internal/bezier"
	"github.com/olivier-w/springcurve/internal/canvas"
	"github.com/olivier-w/springcurve/internal/config"
	"github.com/olivier-w/springcurve/internal/geom"
	"github.com/olivier-w/springcurve/internal/render"
	"github.com/olivier-w/springcurve/internal/snapshot"
	"github.com/olivier-w/springcurve/internal/util"
)

// Rows around the canvas: blank, header and blank above it; blank, status,
// save message, help and the trailing newline below it.
const (
	padLeft     = 2
	canvasTop   = 3
	chromeLines = canvasTop + 5
	nudge       = 10.0
)

// Model is the Bubbletea model for the springcurve TUI.
type Model struct {
	cfg     config.Config
	style   render.Style
	curve   *bezier.Curve
	canvas  *canvas.Canvas
	samples []bezier.Sample
	log     *zap.Logger
	keys    keyMap
	help    help.Model

	pointer  geom.Pointer
	overlay  OverlayMode
	paused   bool
	frames   uint64
	started  time.Time
	width    int
	height   int
	quitting bool

	frameView   string
	saveMsg     string    // transient status message
	saveMsgTime time.Time // when saveMsg was set
	saving      bool      // snapshot in progress
}

// New creates a Model around a curve laid out on the configured surface.
// The pointer starts at the centre of the surface.
func New(cfg config.Config, style render.Style, profile canvas.Profile, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		cfg:     cfg,
		style:   style,
		curve:   bezier.ForSurface(cfg),
		canvas:  canvas.New(1, 1, profile),
		log:     log,
		keys:    defaultKeys(),
		help:    help.New(),
		pointer: geom.Pointer{X: cfg.Surface.Width / 2, Y: cfg.Surface.Height / 2},
		started: time.Now(),
	}
	m.resize(80, 24)
	m.redraw()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.cfg.FPS), tea.SetWindowTitle("springcurve"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if p, ok := m.pointerAt(msg.X, msg.Y); ok {
			m.pointer = p
		}
		return m, nil

	case frameMsg:
		m.step()
		if m.saveMsg != "" && time.Since(m.saveMsgTime) > 5*time.Second {
			m.saveMsg = ""
		}
		return m, frameCmd(m.cfg.FPS)

	case snapshotSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.log.Error("snapshot failed", zap.String("path", msg.path), zap.Error(msg.err))
			m.saveMsg = fmt.Sprintf("Snapshot failed: %v", msg.err)
		} else {
			m.log.Info("snapshot saved", zap.String("path", msg.path))
			m.saveMsg = fmt.Sprintf("Saved %s", msg.path)
		}
		m.saveMsgTime = time.Now()
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.redraw()
		m.log.Debug("resize", zap.Int("width", msg.Width), zap.Int("height", msg.Height))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.keys.isQuit(msg) {
		m.quitting = true
		m.log.Info("quit", zap.Uint64("frames", m.frames), zap.Duration("uptime", time.Since(m.started)))
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}

	switch {
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Overlay):
		m.overlay = m.overlay.Next()
		m.redraw()
	case key.Matches(msg, m.keys.Reset):
		m.curve.Reset()
		m.redraw()
	case key.Matches(msg, m.keys.Save):
		return m.beginSnapshot()
	case key.Matches(msg, m.keys.Up):
		m.movePointer(0, -nudge)
	case key.Matches(msg, m.keys.Down):
		m.movePointer(0, nudge)
	case key.Matches(msg, m.keys.Left):
		m.movePointer(-nudge, 0)
	case key.Matches(msg, m.keys.Right):
		m.movePointer(nudge, 0)
	}
	return m, nil
}

// step advances the springs one frame toward the current pointer and
// redraws. A paused model keeps its last picture.
func (m *Model) step() {
	if m.paused {
		return
	}
	m.curve.Advance(m.pointer)
	m.frames++
	m.redraw()
}

func (m *Model) beginSnapshot() (Model, tea.Cmd) {
	if m.saving {
		return *m, nil
	}
	m.saving = true
	m.saveMsg = "Saving..."
	m.saveMsgTime = time.Now()

	frame := render.Capture(m.curve, m.overlay.Layers())
	style := m.style
	w, h := int(m.cfg.Surface.Width), int(m.cfg.Surface.Height)
	path := fmt.Sprintf("springcurve-%s.png", time.Now().Format("20060102-150405"))
	return *m, func() tea.Msg {
		err := snapshot.Save(path, frame, style, w, h)
		return snapshotSavedMsg{path: path, err: err}
	}
}

func (m *Model) movePointer(dx, dy float64) {
	m.pointer.X = clamp(m.pointer.X+dx, 0, m.cfg.Surface.Width)
	m.pointer.Y = clamp(m.pointer.Y+dy, 0, m.cfg.Surface.Height)
}

// pointerAt maps a terminal cell to logical surface coordinates, aiming at
// the centre of the cell. Cells outside the canvas report false.
func (m Model) pointerAt(col, row int) (geom.Pointer, bool) {
	cols, rows := m.canvas.Cells()
	cx, cy := col-padLeft, row-canvasTop
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return geom.Pointer{}, false
	}
	s := m.cfg.Surface
	return geom.Pointer{
		X: (float64(cx) + 0.5) * s.Width / float64(cols),
		Y: (float64(cy) + 0.5) * s.Height / float64(rows),
	}, true
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	cols := max(width-2*padLeft, 10)
	rows := max(height-chromeLines, 4)
	m.canvas.Resize(cols, rows)
	m.help.Width = max(width-2*padLeft, 0)
}

func (m *Model) redraw() {
	m.canvas.Clear()
	m.samples = m.curve.SampleInto(m.samples)
	frame := render.Frame{
		Samples:  m.samples,
		Controls: m.curve.Controls(),
		Layers:   m.overlay.Layers(),
	}
	surface := render.Terminal{Canvas: m.canvas, Width: m.cfg.Surface.Width, Height: m.cfg.Surface.Height}
	render.Draw(surface, frame, m.style)

	pad := spaces(padLeft)
	m.frameView = pad + strings.ReplaceAll(m.canvas.String(), "\n", "\n"+pad)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render("springcurve")
	if m.paused {
		header += "  " + pausedStyle.Render("❚❚ paused")
	}

	ctl := m.curve.Controls()
	lag := m.curve.Lag(m.pointer)
	meter := meterStyle.Render(renderMeter(lag, m.cfg.Curve.ControlOffset*2, 14))
	status := statusStyle.Render(fmt.Sprintf("ptr %s  p1 %s  p2 %s  lag ",
		util.FormatPoint(geom.Pt(m.pointer.X, m.pointer.Y)), util.FormatPoint(ctl[1]), util.FormatPoint(ctl[2]))) +
		meter +
		statusStyle.Render(fmt.Sprintf("  guides %s  %s", m.overlay, util.FormatDuration(time.Since(m.started))))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + header + "\n")
	b.WriteString("\n")
	b.WriteString(m.frameView + "\n")
	b.WriteString("\n")
	b.WriteString("  " + status + "\n")
	if m.saveMsg != "" {
		b.WriteString("  " + helpStyle.Render(m.saveMsg) + "\n")
	}
	b.WriteString("  " + helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())) + "\n")

	view := b.String()
	if gap := m.height - lipgloss.Height(view); gap > 0 {
		view += strings.Repeat("\n", gap)
	}
	return view
}

// Frames returns how many frames the springs have been advanced.
func (m Model) Frames() uint64 {
	return m.frames
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
