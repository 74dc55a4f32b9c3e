package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout"
	"github.com/matzehuels/panelfit/pkg/pipeline"
	"github.com/matzehuels/panelfit/pkg/scene"
)

func previewScene() *scene.Scene {
	return &scene.Scene{
		Container: geom.Size{Width: 160, Height: 44},
		Randomize: pipeline.Bool(false),
		Items: []scene.Item{
			{ID: "a", Label: "Alpha", Width: 40, Height: 12},
			{ID: "b", Width: 40, Height: 12},
			{ID: "c", Width: 40, Height: 12, Hidden: true},
		},
	}
}

func newTestPreview(t *testing.T) previewModel {
	t.Helper()
	sc := previewScene()
	opts := pipeline.Defaults().Merge(pipeline.FromScene(sc))
	m, err := newPreviewModel("scene.json", sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func send(t *testing.T, m previewModel, msg tea.Msg) previewModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(previewModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCellSize(t *testing.T) {
	tests := []struct {
		container geom.Size
		want      geom.Size
	}{
		{geom.Size{Width: 160, Height: 44}, geom.Size{Width: 2, Height: 2}},
		{geom.Size{Width: 800, Height: 600}, geom.Size{Width: 10, Height: 28}},
		{geom.Size{Width: 10, Height: 10}, geom.Size{Width: 1, Height: 1}},
	}
	for _, tt := range tests {
		if got := cellSize(tt.container); got != tt.want {
			t.Errorf("cellSize(%v) = %v, want %v", tt.container, got, tt.want)
		}
	}
}

func TestPreviewLayoutOnResize(t *testing.T) {
	m := newTestPreview(t)
	if m.View() != "" {
		t.Error("view before the first resize should be empty")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if got, want := m.container(), (geom.Size{Width: 160, Height: 44}); got != want {
		t.Errorf("container = %v, want %v", got, want)
	}
	if m.result.Engine != layout.EngineRows || len(m.result.Positions) != 2 {
		t.Fatalf("result = %+v", m.result)
	}
	if m.boxes[0].Pos != (geom.Point{}) || m.boxes[1].Pos != (geom.Point{X: 40}) {
		t.Errorf("positions = %v, %v", m.boxes[0].Pos, m.boxes[1].Pos)
	}

	view := m.View()
	if !strings.Contains(view, "Alpha") || !strings.Contains(view, "scene.json") {
		t.Errorf("view missing label or title:\n%s", view)
	}
	if strings.Contains(view, "│c") {
		t.Error("hidden item drawn")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if got := m.coord.Stats().Computed; got != 2 {
		t.Errorf("Computed = %d after two sizes, want 2", got)
	}
	// Same size again is served from the coordinator's cache.
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	if got := m.coord.Stats().CacheHits; got != 1 {
		t.Errorf("CacheHits = %d, want 1", got)
	}
}

func TestPreviewKeys(t *testing.T) {
	m := send(t, newTestPreview(t), tea.WindowSizeMsg{Width: 80, Height: 24})

	m = send(t, m, key("r"))
	if !m.opts.IsRandomized() || m.result.Engine != layout.EngineScatter {
		t.Errorf("after r: randomize=%v engine=%s", m.opts.IsRandomized(), m.result.Engine)
	}

	m = send(t, m, key("s"))
	if m.coord.Options().Seed != pipeline.DefaultSeed+1 {
		t.Errorf("after s: seed = %d", m.coord.Options().Seed)
	}

	m = send(t, m, key("t"))
	if m.opts.Style != "prefer-bottom" {
		t.Errorf("after t: style = %q", m.opts.Style)
	}
	m = send(t, m, key("a"))
	if m.opts.Align != "center" {
		t.Errorf("after a: align = %q", m.opts.Align)
	}
	m = send(t, m, key("g"))
	if m.opts.Gap != "auto" {
		t.Errorf("after g: gap = %q", m.opts.Gap)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestCycle(t *testing.T) {
	names := []string{"x", "y", "z"}
	for cur, want := range map[string]string{"x": "y", "z": "x", "Y": "z", "": "x"} {
		if got := cycle(names, cur); got != want {
			t.Errorf("cycle(%q) = %q, want %q", cur, got, want)
		}
	}
}
