package cli

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sherif414/floattree/pkg/floating"
)

func newBrowseFixture() BrowseModel {
	coord := floating.New(&floating.Config{
		RootID:    "app",
		RootLabel: "App",
		Logger:    log.New(io.Discard),
	})
	coord.RegisterWithID("file", "File", "app")
	coord.RegisterWithID("recent", "Recent", "file")
	coord.SetOpen("file", true)
	coord.SetOpen("recent", true)
	return NewBrowseModel("demo", coord)
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModelNavigation(t *testing.T) {
	m := newBrowseFixture()

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(BrowseModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(BrowseModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}

	// Cursor clamps at the top.
	updated, _ = m.Update(keyMsg("k"))
	m = updated.(BrowseModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after clamping", m.Cursor)
	}
}

func TestBrowseModelToggleCascades(t *testing.T) {
	m := newBrowseFixture()

	// Move to "file" (row 1, DFS order: app, file, recent) and toggle it closed.
	updated, _ := m.Update(keyMsg("j"))
	m = updated.(BrowseModel)
	updated, _ = m.Update(keyMsg(" "))
	m = updated.(BrowseModel)

	if !m.Dirty {
		t.Error("toggle should mark the model dirty")
	}
	if m.coord.IsOpen("file") {
		t.Error("file should be closed after toggle")
	}
	if m.coord.IsOpen("recent") {
		t.Error("recent should be cascade-closed with its parent")
	}
}

func TestBrowseModelView(t *testing.T) {
	m := newBrowseFixture()
	view := m.View()

	for _, want := range []string{"demo", "File", "Recent"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "▸") {
		t.Errorf("view missing cursor:\n%s", view)
	}
	if strings.Contains(view, "unsaved") {
		t.Error("clean model should not warn about unsaved changes")
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := newBrowseFixture()
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}
