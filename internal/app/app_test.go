package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/multicaret/internal/config"
	"github.com/dshills/multicaret/internal/input"
	"github.com/dshills/multicaret/internal/input/key"
	"github.com/dshills/multicaret/internal/input/mouse"
	"github.com/dshills/multicaret/internal/renderer/backend"
	"github.com/dshills/multicaret/internal/renderer/overlay"
)

type testApp struct {
	*Application
	path string
	dir  string
	null *backend.NullBackend
	clip *input.MemoryClipboard
	logs *observer.ObservedLogs
}

// newTestApp opens text from a temporary file. files are written to the
// config directory first, e.g. "config.toml".
func newTestApp(t *testing.T, text string, files map[string]string) *testApp {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	core, logs := observer.New(zapcore.DebugLevel)
	clip := &input.MemoryClipboard{}
	application, err := New(Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		File:       path,
		Logger:     zap.New(core),
		Clipboard:  clip,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(application.Shutdown)

	null := backend.NewNullBackend(40, 5)
	if err := application.SetBackend(null); err != nil {
		t.Fatalf("SetBackend failed: %v", err)
	}
	return &testApp{Application: application, path: path, dir: dir, null: null, clip: clip, logs: logs}
}

// start prepares the backend without running the event loop.
func (a *testApp) start(t *testing.T) {
	t.Helper()
	if err := a.null.Init(); err != nil {
		t.Fatal(err)
	}
	a.resize(a.null.Size())
}

func (a *testApp) keys(t *testing.T, events ...key.Event) {
	t.Helper()
	for _, ev := range events {
		if err := a.handleEvent(backend.Event{Type: backend.EventKey, Key: ev}); err != nil {
			t.Fatalf("key %v: %v", ev, err)
		}
	}
}

func (a *testApp) mouse(ev mouse.Event) {
	_ = a.handleEvent(backend.Event{Type: backend.EventMouse, Mouse: ev})
}

func ctrl(r rune) key.Event       { return key.NewRuneEvent(r, key.ModCtrl) }
func char(r rune) key.Event       { return key.NewRuneEvent(r, key.ModNone) }
func special(k key.Key) key.Event { return key.NewSpecialEvent(k, key.ModNone) }

func TestNew(t *testing.T) {
	a := newTestApp(t, "foo bar foo", nil)

	if a.Document().Text() != "foo bar foo" {
		t.Errorf("unexpected text %q", a.Document().Text())
	}
	if a.Document().Name != "doc.txt" {
		t.Errorf("unexpected name %q", a.Document().Name)
	}
	if a.Session().Active() {
		t.Error("session should start inactive")
	}
	if a.Config().Engine.MaxCursors != config.Default().Engine.MaxCursors {
		t.Error("expected default configuration")
	}
	if a.Notice() != "" {
		t.Errorf("unexpected notice %q", a.Notice())
	}
}

func TestNew_BadConfigFallsBack(t *testing.T) {
	a := newTestApp(t, "x", map[string]string{"config.toml": "[engine]\nmax_cursors = -1\n"})

	if a.Config().Engine.MaxCursors != config.Default().Engine.MaxCursors {
		t.Errorf("MaxCursors = %d, want default", a.Config().Engine.MaxCursors)
	}
	if !strings.Contains(a.Notice(), "config error") {
		t.Errorf("notice = %q", a.Notice())
	}
	if a.logs.FilterMessage("config load failed, using defaults").Len() != 1 {
		t.Error("expected a warning for the bad config")
	}
}

func TestRun_RequiresBackend(t *testing.T) {
	a := newTestApp(t, "", nil)
	a.backend = nil
	if err := a.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() = %v, want ErrNoBackend", err)
	}
}

func TestRun_TypeSaveQuit(t *testing.T) {
	a := newTestApp(t, "foo bar foo", nil)
	for _, ev := range []key.Event{char('X'), ctrl('s'), ctrl('q')} {
		a.null.PostEvent(backend.Event{Type: backend.EventKey, Key: ev})
	}

	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}
	data, err := os.ReadFile(a.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Xfoo bar foo" {
		t.Errorf("saved %q", data)
	}
	if a.null.Shows() == 0 {
		t.Error("expected the screen to be shown")
	}
	if a.logs.FilterMessage("saved").Len() != 1 {
		t.Error("expected a save log entry")
	}
}

func TestRun_BackendClosed(t *testing.T) {
	a := newTestApp(t, "foo", nil)
	a.null.Shutdown()
	if err := a.Run(); err != nil {
		t.Errorf("Run() = %v, want nil after the backend closed", err)
	}
}

func TestQuit_UnsavedChanges(t *testing.T) {
	a := newTestApp(t, "foo", nil)
	a.start(t)
	a.keys(t, char('a'))

	if err := a.handleEvent(backend.Event{Type: backend.EventKey, Key: ctrl('q')}); err != nil {
		t.Fatalf("first ctrl+q = %v, want nil", err)
	}
	if !strings.Contains(a.Notice(), "unsaved") {
		t.Errorf("notice = %q", a.Notice())
	}
	if err := a.handleEvent(backend.Event{Type: backend.EventKey, Key: ctrl('q')}); !errors.Is(err, ErrQuit) {
		t.Errorf("second ctrl+q = %v, want ErrQuit", err)
	}
}

func TestDispatcherHandlesMultiCursorKeys(t *testing.T) {
	a := newTestApp(t, "foo bar foo", nil)
	a.start(t)

	a.keys(t, ctrl('d'))
	if a.Session().Active() {
		t.Fatal("first ctrl+d should only select the word")
	}
	a.keys(t, ctrl('d'), char('X'))

	if got := a.Document().Text(); got != "X bar X" {
		t.Errorf("text = %q, want %q", got, "X bar X")
	}
	if n := a.Session().Cursors().Len(); n != 2 {
		t.Errorf("cursors = %d, want 2", n)
	}

	a.keys(t, special(key.KeyEscape))
	if a.Session().Active() {
		t.Error("esc should return to a single cursor")
	}
}

func TestUndoRedo(t *testing.T) {
	a := newTestApp(t, "foo bar foo", nil)
	a.start(t)
	doc := a.Document()

	a.keys(t, ctrl('d'), ctrl('d'), char('X'))
	if got := doc.Text(); got != "X bar X" {
		t.Fatalf("text = %q, want %q", got, "X bar X")
	}

	a.keys(t, ctrl('z'))
	if got := doc.Text(); got != "foo bar foo" {
		t.Errorf("after undo: %q", got)
	}
	if a.Session().Active() {
		t.Error("undo should return to a single cursor")
	}
	if start, end := doc.NativeSelection(); start != 3 || end != 3 {
		t.Errorf("caret = %d..%d, want 3", start, end)
	}

	a.keys(t, ctrl('z'))
	if a.Notice() != "nothing to undo" {
		t.Errorf("notice = %q", a.Notice())
	}

	a.keys(t, ctrl('y'))
	if got := doc.Text(); got != "X bar X" {
		t.Errorf("after redo: %q", got)
	}
	if start, end := doc.NativeSelection(); start != 7 || end != 7 {
		t.Errorf("caret = %d..%d, want 7", start, end)
	}

	a.keys(t, ctrl('y'))
	if a.Notice() != "nothing to redo" {
		t.Errorf("notice = %q", a.Notice())
	}
}

func TestUndoTypingIsPerKey(t *testing.T) {
	a := newTestApp(t, "", nil)
	a.start(t)

	a.keys(t, char('a'), char('b'), ctrl('z'))
	if got := a.Document().Text(); got != "a" {
		t.Errorf("after undo: %q, want %q", got, "a")
	}
	if !a.Document().History().CanRedo() {
		t.Error("expected a redo entry")
	}
}

func TestSingleCursorEditing(t *testing.T) {
	a := newTestApp(t, "héllo\nworld", nil)
	a.start(t)
	doc := a.Document()

	a.keys(t, special(key.KeyEnd), special(key.KeyBackspace))
	if got := doc.Text(); got != "héll\nworld" {
		t.Fatalf("after backspace: %q", got)
	}

	a.keys(t, special(key.KeyLeft), special(key.KeyLeft), special(key.KeyBackspace))
	if got := doc.Text(); got != "hll\nworld" {
		t.Fatalf("after backspace over é: %q", got)
	}

	a.keys(t, special(key.KeyDelete))
	if got := doc.Text(); got != "hl\nworld" {
		t.Fatalf("after delete: %q", got)
	}

	a.keys(t, key.NewSpecialEvent(key.KeyRight, key.ModShift), char('Z'), special(key.KeyEnter))
	if got := doc.Text(); got != "hZ\n\nworld" {
		t.Errorf("after replacing the selection: %q", got)
	}
	if start, end := doc.NativeSelection(); start != 3 || end != 3 {
		t.Errorf("caret = %d..%d, want 3", start, end)
	}
}

func TestSingleCursorMotion(t *testing.T) {
	a := newTestApp(t, "abc\nde", nil)
	a.start(t)

	a.keys(t, special(key.KeyRight), special(key.KeyRight), special(key.KeyDown))
	if _, caret := a.selection(); caret != 6 {
		t.Errorf("caret after down = %d, want 6 (clamped to the line end)", caret)
	}

	a.keys(t, key.NewSpecialEvent(key.KeyHome, key.ModShift))
	if start, end := a.Document().NativeSelection(); start != 4 || end != 6 {
		t.Errorf("selection = %d..%d, want 4..6", start, end)
	}
	if anchor, caret := a.selection(); anchor != 6 || caret != 4 {
		t.Errorf("anchor, caret = %d, %d; want 6, 4", anchor, caret)
	}

	a.keys(t, special(key.KeyLeft))
	if start, end := a.Document().NativeSelection(); start != 4 || end != 4 {
		t.Errorf("left should collapse to the start, got %d..%d", start, end)
	}
}

func TestSingleCursorClipboard(t *testing.T) {
	a := newTestApp(t, "foo bar", nil)
	a.start(t)

	a.keys(t, ctrl('a'), ctrl('c'))
	if a.Document().Text() != "foo bar" {
		t.Fatal("copy must not change the text")
	}
	if got, _ := a.clip.ReadAll(); got != "foo bar" {
		t.Errorf("clipboard = %q", got)
	}

	a.keys(t, ctrl('x'))
	if got := a.Document().Text(); got != "" {
		t.Errorf("after cut: %q", got)
	}

	a.keys(t, ctrl('v'), ctrl('v'))
	if got := a.Document().Text(); got != "foo barfoo bar" {
		t.Errorf("after paste: %q", got)
	}
}

func TestPasteEvent(t *testing.T) {
	a := newTestApp(t, "", nil)
	a.start(t)

	_ = a.handleEvent(backend.Event{Type: backend.EventPaste, Text: "a\r\nb"})
	if got := a.Document().Text(); got != "a\nb" {
		t.Errorf("text = %q", got)
	}
}

func TestMouseClickAndDrag(t *testing.T) {
	a := newTestApp(t, "hello world", nil)
	a.start(t)

	at := func(x int, action mouse.Action, mods key.Modifier) mouse.Event {
		return mouse.Event{Position: mouse.Position{X: x}, Button: mouse.ButtonLeft, Modifiers: mods, Action: action}
	}

	a.mouse(at(6, mouse.ActionPress, key.ModNone))
	a.mouse(at(11, mouse.ActionDrag, key.ModNone))
	a.mouse(at(11, mouse.ActionRelease, key.ModNone))
	if start, end := a.Document().NativeSelection(); start != 6 || end != 11 {
		t.Errorf("selection = %d..%d, want 6..11", start, end)
	}

	a.mouse(at(0, mouse.ActionPress, key.ModCtrl))
	if n := a.Session().Cursors().Len(); n != 2 {
		t.Fatalf("cursors after ctrl+click = %d, want 2", n)
	}
	if got := strings.Join(a.Session().SelectedTexts(), "|"); !strings.Contains(got, "world") {
		t.Errorf("selected texts = %q, want the dragged selection kept", got)
	}
}

func TestMouseWheel(t *testing.T) {
	a := newTestApp(t, strings.Repeat("line\n", 10), nil)
	a.start(t)

	a.mouse(mouse.Event{Button: mouse.ButtonScrollDown, Action: mouse.ActionPress})
	if a.Document().Top() != wheelLines {
		t.Errorf("Top() = %d, want %d", a.Document().Top(), wheelLines)
	}
	a.mouse(mouse.Event{Button: mouse.ButtonScrollUp, Action: mouse.ActionPress})
	if a.Document().Top() != 0 {
		t.Errorf("Top() = %d, want 0", a.Document().Top())
	}
}

func TestConfigReloadInterrupt(t *testing.T) {
	a := newTestApp(t, "foo foo", nil)
	a.start(t)

	cfg := config.Default()
	cfg.Engine.MaxCursors = 2
	cfg.Keymap.SelectNext = "ctrl+n"
	_ = a.handleEvent(backend.Event{Type: backend.EventInterrupt, Data: configReload{cfg: cfg}})

	if got := a.Session().Limits().MaxCursors; got != 2 {
		t.Errorf("MaxCursors = %d, want 2", got)
	}
	if a.Notice() != "configuration reloaded" {
		t.Errorf("notice = %q", a.Notice())
	}
	a.keys(t, ctrl('n'), ctrl('n'))
	if !a.Session().Active() {
		t.Error("the reloaded binding should select the next occurrence")
	}

	_ = a.handleEvent(backend.Event{Type: backend.EventInterrupt, Data: configFailure{err: errors.New("bad")}})
	if !strings.Contains(a.Notice(), "keeping previous settings") {
		t.Errorf("notice = %q", a.Notice())
	}
	if a.logs.FilterMessage("config reload failed").Len() != 1 {
		t.Error("expected a warning for the failed reload")
	}
}

func TestInitScripts(t *testing.T) {
	a := newTestApp(t, "foo bar", map[string]string{
		"config.toml": "[plugins]\nenabled = true\nscripts = [\"init.lua\"]\n",
		"init.lua":    "mc.add(4)\nprint(\"ready\")\n",
	})

	if n := a.Session().Cursors().Len(); n != 2 {
		t.Errorf("cursors = %d, want 2", n)
	}
	if a.Notice() != "ready" {
		t.Errorf("notice = %q, want script output", a.Notice())
	}
	if a.logs.FilterMessage("init scripts loaded").Len() != 1 {
		t.Error("expected an info entry for the scripts")
	}
}

func TestInitScripts_Error(t *testing.T) {
	a := newTestApp(t, "foo", map[string]string{
		"config.toml": "[plugins]\nenabled = true\nscripts = [\"init.lua\"]\n",
		"init.lua":    "error(\"boom\")\n",
	})

	if a.Notice() != "script error, see log" {
		t.Errorf("notice = %q", a.Notice())
	}
	if a.logs.FilterMessage("init scripts failed").Len() != 1 {
		t.Error("expected an error entry for the script")
	}
}

func TestDrawStatusAndOverlay(t *testing.T) {
	a := newTestApp(t, "foo bar foo", nil)
	a.start(t)

	a.draw()
	if got := a.null.Line(4); !strings.Contains(got, "doc.txt") || !strings.Contains(got, "Ln 1, Col 1") {
		t.Errorf("status = %q", got)
	}
	if x, y, visible := a.null.CursorPosition(); !visible || x != 0 || y != 0 {
		t.Errorf("cursor = %d,%d visible=%v", x, y, visible)
	}

	a.keys(t, ctrl('d'), ctrl('d'))
	a.draw()
	if got := a.null.Line(4); !strings.Contains(got, "2 cursors") {
		t.Errorf("status = %q", got)
	}

	sel := overlay.DefaultConfig().SelectionStyle
	if a.null.GetCell(0, 0).Style != sel && a.null.GetCell(8, 0).Style != sel {
		t.Error("expected one occurrence drawn as a secondary selection")
	}
}

func TestDrawOnSimulationScreen(t *testing.T) {
	a := newTestApp(t, "foo", nil)
	sim := tcell.NewSimulationScreen("UTF-8")
	term := backend.NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	sim.SetSize(20, 3)

	if err := a.SetBackend(term); err != nil {
		t.Fatal(err)
	}
	a.resize(20, 3)
	a.keys(t, special(key.KeyEnd), char('d'))
	a.draw()

	for x, want := range "food" {
		r, _, _, _ := sim.GetContent(x, 0) //nolint:staticcheck // GetContent is the correct API
		if r != want {
			t.Errorf("cell %d = %q, want %q", x, r, want)
		}
	}
	r, _, style, _ := sim.GetContent(1, 2) //nolint:staticcheck // GetContent is the correct API
	if r != 'd' || style != statusStyle {
		t.Errorf("status cell = %q %v", r, style)
	}
}
