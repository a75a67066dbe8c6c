package editor

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"termedit/config"
	"termedit/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func newTestEditor(t *testing.T, path string) *Editor {
	t.Helper()
	cfg := config.Default()
	cfg.WatchFile = false
	cfg.RestoreSession = false

	sim := newSimScreen(t, 40, 11)
	e := New(cfg, nil)
	e.screen = sim
	e.term = NewScreen(sim, tcell.StyleDefault)
	e.statusBar = ui.NewStatusBar()
	e.view = NewView(e.viewSize(), ViewOptions{TabSize: 4, ExpandTabs: true})
	if path != "" {
		e.openFile(path)
	}
	return e
}

func TestRunAppliesKeysAndSavesSession(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	file := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, file, "hello\nworld\n")

	cfg := config.Default()
	cfg.WatchFile = false

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	sim.SetSize(40, 10)
	sim.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyEnd, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, '!', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	e := New(cfg, nil)
	if err := e.run(sim, file); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	expectText(t, e.view, "hello\nworld!")

	v := newTestView("hello\nworld!", 40, 9)
	if !RestoreSession(file, v) {
		t.Fatalf("expected a saved session")
	}
	expectLocation(t, v, 1, 6)
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	e := newTestEditor(t, filepath.Join(t.TempDir(), "new.txt"))
	if !e.view.Buffer().IsEmpty() {
		t.Fatalf("expected an empty buffer")
	}
	if !strings.HasPrefix(e.statusBar.Message, "New file") || e.statusBar.IsError {
		t.Fatalf("unexpected status %q", e.statusBar.Message)
	}
}

func TestOpenBinaryFileReportsError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blob.bin")
	writeFile(t, file, "abc\x00def")
	e := newTestEditor(t, file)
	if !e.view.Buffer().IsEmpty() {
		t.Fatalf("binary file should not be loaded")
	}
	if !e.statusBar.IsError {
		t.Fatalf("expected an error message, got %q", e.statusBar.Message)
	}
}

func TestResizeLeavesStatusRow(t *testing.T) {
	e := newTestEditor(t, "")
	e.handleEvent(tcell.NewEventResize(30, 6))
	if got := e.view.Size(); got != (Size{Width: 30, Height: 5}) {
		t.Fatalf("unexpected view size %+v", got)
	}
}

func TestQuitKeyStopsEditor(t *testing.T) {
	e := newTestEditor(t, "")
	e.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	if e.quit {
		t.Fatalf("typing should not quit")
	}
	e.handleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	if !e.quit {
		t.Fatalf("expected quit")
	}
}

func TestCopyLineSetsMessage(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, file, "first\nsecond")
	e := newTestEditor(t, file)
	e.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if e.statusBar.Message != "Copied line" {
		t.Fatalf("unexpected status %q", e.statusBar.Message)
	}
	expectText(t, e.view, "first\nsecond")
}

func TestWatchEventReloadsCleanBuffer(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, file, "one\ntwo\nthree")
	e := newTestEditor(t, file)
	e.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))

	writeFile(t, file, "one\n2")
	e.handleEvent(&FileWatchEvent{Path: e.path, Op: fsnotify.Write})

	expectText(t, e.view, "one\n2")
	expectLocation(t, e.view, 1, 0)
	if !strings.Contains(e.statusBar.Message, "reloaded") {
		t.Fatalf("unexpected status %q", e.statusBar.Message)
	}
}

func TestWatchEventKeepsModifiedBuffer(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, file, "one")
	e := newTestEditor(t, file)
	e.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	writeFile(t, file, "changed")
	e.handleEvent(&FileWatchEvent{Path: e.path, Op: fsnotify.Write})

	expectText(t, e.view, "xone")
	if !e.statusBar.IsError || !strings.Contains(e.statusBar.Message, "modified externally") {
		t.Fatalf("unexpected status %q", e.statusBar.Message)
	}
}

func TestWatchEventReportsDeletion(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, file, "one")
	e := newTestEditor(t, file)

	if err := os.Remove(file); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	e.handleEvent(&FileWatchEvent{Path: e.path, Op: fsnotify.Remove})

	expectText(t, e.view, "one")
	if !strings.Contains(e.statusBar.Message, "deleted externally") {
		t.Fatalf("unexpected status %q", e.statusBar.Message)
	}
}

func TestWatchEventForOtherFileIgnored(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, file, "one")
	e := newTestEditor(t, file)
	e.statusBar.Message = ""

	e.handleEvent(&FileWatchEvent{Path: file + ".swp", Op: fsnotify.Write})
	if e.statusBar.Message != "" {
		t.Fatalf("unexpected status %q", e.statusBar.Message)
	}
}

func TestRenderDrawsStatusBar(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, file, "abc")
	e := newTestEditor(t, file)
	e.statusBar.Message = ""
	e.render()

	if got := screenRow(e.screen, 0); got != "abc" {
		t.Fatalf("expected buffer on row 0, got %q", got)
	}
	status := screenRow(e.screen, 10)
	if !strings.HasPrefix(status, " a.txt") || !strings.Contains(status, "Ln 1, Col 1") {
		t.Fatalf("unexpected status row %q", status)
	}
}

func TestRepeatedRenderFailureWarnsOnce(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := New(config.Default(), logger)

	v := newTestView("a\nb", 10, 2)
	term := newFakeTerminal()
	term.failRow = 1
	for range 3 {
		e.logRenderError(v.Render(term))
	}
	if got := strings.Count(out.String(), "level=WARN"); got != 1 {
		t.Fatalf("expected one warning, got %d:\n%s", got, out.String())
	}
	if got := strings.Count(out.String(), "level=DEBUG"); got != 2 {
		t.Fatalf("expected repeats at debug, got %d:\n%s", got, out.String())
	}

	term.failRow = -1
	e.logRenderError(v.Render(term))
	term.failRow = 0
	v.HandleCommand(Command{Kind: CmdInsert, Char: 'x'})
	e.logRenderError(v.Render(term))
	if got := strings.Count(out.String(), "level=WARN"); got != 2 {
		t.Fatalf("a new failure after recovery should warn again, got %d", got)
	}
}
