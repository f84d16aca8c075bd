package ui

import (
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/springcurve/internal/canvas"
	"github.com/olivier-w/springcurve/internal/config"
	"github.com/olivier-w/springcurve/internal/geom"
	"github.com/olivier-w/springcurve/internal/render"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	style, err := render.StyleFrom(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m := New(cfg, style, canvas.ProfileNone, nil)
	next, _ := m.handleMsg(tea.WindowSizeMsg{Width: 84, Height: 28})
	return next
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}

func TestMouseMapsCellsToSurface(t *testing.T) {
	m := newTestModel(t)
	if cols, rows := m.canvas.Cells(); cols != 80 || rows != 20 {
		t.Fatalf("expected 80x20 canvas, got %dx%d", cols, rows)
	}

	next, _ := m.handleMsg(tea.MouseMsg{X: padLeft, Y: canvasTop, Action: tea.MouseActionMotion})
	if next.pointer != (geom.Pointer{X: 5, Y: 12.5}) {
		t.Fatalf("expected top-left cell centre (5, 12.5), got %+v", next.pointer)
	}

	next, _ = next.handleMsg(tea.MouseMsg{X: padLeft + 79, Y: canvasTop + 19, Action: tea.MouseActionMotion})
	if next.pointer != (geom.Pointer{X: 795, Y: 487.5}) {
		t.Fatalf("expected bottom-right cell centre (795, 487.5), got %+v", next.pointer)
	}
}

func TestMouseOutsideCanvasKeepsPointer(t *testing.T) {
	m := newTestModel(t)
	before := m.pointer

	for _, msg := range []tea.MouseMsg{{X: 0, Y: 10}, {X: 10, Y: 1}, {X: 10, Y: canvasTop + 20}} {
		next, _ := m.handleMsg(msg)
		if next.pointer != before {
			t.Fatalf("expected pointer unchanged for %+v, got %+v", msg, next.pointer)
		}
	}
}

func TestFrameAdvancesSprings(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.handleMsg(frameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected next frame to be scheduled")
	}
	if next.Frames() != 1 {
		t.Fatalf("expected 1 frame, got %d", next.Frames())
	}

	// Pointer starts at (400, 250): p1 chases (300, 250), p2 chases (500, 250).
	ctl := next.curve.Controls()
	if !near(ctl[1].X, 269.0133) || !near(ctl[2].X, 530.9867) {
		t.Fatalf("unexpected control points after one frame: %v %v", ctl[1], ctl[2])
	}
}

func TestPauseFreezesSprings(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.handleMsg(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !next.paused {
		t.Fatal("expected paused after space")
	}
	before := next.curve.Controls()

	next, cmd := next.handleMsg(frameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected frames to keep ticking while paused")
	}
	if next.Frames() != 0 || next.curve.Controls() != before {
		t.Fatal("expected paused frame to leave the springs alone")
	}
	if !strings.Contains(next.View(), "paused") {
		t.Fatal("expected paused indicator in view")
	}
}

func TestResetRestoresRestPositions(t *testing.T) {
	m := newTestModel(t)
	rest := m.curve.Controls()

	m.pointer = geom.Pointer{X: 100, Y: 50}
	for _i := 0; _i < 5; _i++ {
		m, _ = m.handleMsg(frameMsg(time.Now()))
	}
	if m.curve.Controls() == rest {
		t.Fatal("expected springs to move")
	}

	m, _ = m.handleMsg(runes("r"))
	if m.curve.Controls() != rest {
		t.Fatalf("expected rest positions after reset, got %v", m.curve.Controls())
	}
}

func TestArrowKeysNudgePointer(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.handleMsg(tea.KeyMsg{Type: tea.KeyRight})
	next, _ = next.handleMsg(tea.KeyMsg{Type: tea.KeyUp})
	if next.pointer != (geom.Pointer{X: 410, Y: 240}) {
		t.Fatalf("expected (410, 240), got %+v", next.pointer)
	}

	next.pointer = geom.Pointer{X: 795, Y: 0}
	next, _ = next.handleMsg(tea.KeyMsg{Type: tea.KeyRight})
	next, _ = next.handleMsg(tea.KeyMsg{Type: tea.KeyUp})
	if next.pointer != (geom.Pointer{X: 800, Y: 0}) {
		t.Fatalf("expected pointer clamped to the surface, got %+v", next.pointer)
	}
}

func TestOverlayCycle(t *testing.T) {
	want := []OverlayMode{OverlayTangents, OverlaySkeleton, OverlayNone, OverlayAll}
	m := newTestModel(t)
	for _, w := range want {
		m, _ = m.handleMsg(runes("o"))
		if m.overlay != w {
			t.Fatalf("expected %s, got %s", w, m.overlay)
		}
	}
	if OverlayNone.Layers() != 0 || OverlayAll.Layers() != render.LayerAll {
		t.Fatal("unexpected overlay layers")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.handleMsg(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.quitting {
		t.Fatal("expected quitting state")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestViewPadsToWindowHeight(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	if got := lipgloss.Height(view); got != 28 {
		t.Fatalf("expected view height 28, got %d", got)
	}
	if !strings.Contains(view, "springcurve") {
		t.Fatal("expected header in view")
	}
	if !strings.Contains(view, "quit") {
		t.Fatal("expected help line in view")
	}

	m.saveMsg = "Saved x.png"
	if got := lipgloss.Height(m.View()); got != 28 {
		t.Fatalf("expected save message to fit in the chrome, got height %d", got)
	}
}

func TestViewDrawsCurve(t *testing.T) {
	m := newTestModel(t)
	lines := strings.Split(m.View(), "\n")
	canvasLines := lines[canvasTop : canvasTop+20]

	// The resting curve lies on the midline of the surface.
	if blankRow(canvasLines[10]) {
		t.Fatalf("expected curve on the midline, got %q", canvasLines[10])
	}
	if !blankRow(canvasLines[0]) {
		t.Fatalf("expected empty top row, got %q", canvasLines[0])
	}
}

func blankRow(s string) bool {
	return strings.Trim(s, " ⠀") == ""
}

func TestSnapshotSavesFrame(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	m := newTestModel(t)

	next, cmd := m.handleMsg(runes("s"))
	if cmd == nil || !next.saving {
		t.Fatal("expected snapshot command")
	}
	if _, again := next.handleMsg(runes("s")); again != nil {
		t.Fatal("expected no second snapshot while one is running")
	}

	msg, ok := cmd().(snapshotSavedMsg)
	if !ok {
		t.Fatal("expected snapshotSavedMsg")
	}
	if msg.err != nil {
		t.Fatalf("snapshot failed: %v", msg.err)
	}
	if _, err := os.Stat(msg.path); err != nil {
		t.Fatalf("expected snapshot file: %v", err)
	}

	next, _ = next.handleMsg(msg)
	if next.saving || !strings.HasPrefix(next.saveMsg, "Saved ") {
		t.Fatalf("unexpected state after save: saving=%v msg=%q", next.saving, next.saveMsg)
	}
}

func TestSnapshotFailureShowsMessage(t *testing.T) {
	m := newTestModel(t)
	m.saving = true

	next, _ := m.handleMsg(snapshotSavedMsg{path: "x.png", err: errors.New("disk full")})
	if next.saving {
		t.Fatal("expected saving cleared")
	}
	if !strings.Contains(next.saveMsg, "disk full") {
		t.Fatalf("expected error in status, got %q", next.saveMsg)
	}
}
