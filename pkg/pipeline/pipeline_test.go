package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/panelfit/pkg/cache"
	"github.com/matzehuels/panelfit/pkg/errors"
	"github.com/matzehuels/panelfit/pkg/geom"
	"github.com/matzehuels/panelfit/pkg/layout"
	"github.com/matzehuels/panelfit/pkg/layout/rows"
	"github.com/matzehuels/panelfit/pkg/observability"
	"github.com/matzehuels/panelfit/pkg/scene"
)

func testScene(t *testing.T, n, w, h int) *scene.Scene {
	t.Helper()
	sc := &scene.Scene{Container: geom.Size{Width: 100, Height: 100}}
	for range n {
		sc.Items = append(sc.Items, scene.Item{Width: w, Height: h})
	}
	sc.Normalize()
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestDefaults(t *testing.T) {
	o := Defaults()
	if o.Width != DefaultWidth || o.Height != DefaultHeight || o.SeedValue() != DefaultSeed {
		t.Errorf("defaults = %+v", o)
	}
	if !o.IsRandomized() || o.Style != "prefer-top" || o.Align != "left" || o.Gap != "none" {
		t.Errorf("defaults = %+v", o)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
	if !(Options{}).IsRandomized() {
		t.Error("unset Randomize should use the default")
	}
}

func TestMergePrecedence(t *testing.T) {
	config := Options{Width: 1024, Style: "balanced", Formats: []string{"json"}}
	sc := &scene.Scene{
		Container: geom.Size{Width: 300, Height: 200},
		Randomize: Bool(false),
		Rows:      scene.Rows{Align: "center"},
	}
	flags := Options{Seed: Uint64(9), Style: "prefer-bottom"}

	o := Defaults().Merge(config).Merge(FromScene(sc)).Merge(flags)

	if o.Width != 300 || o.Height != 200 {
		t.Errorf("container = %dx%d, want scene's 300x200", o.Width, o.Height)
	}
	if o.IsRandomized() {
		t.Error("scene randomize=false was overridden")
	}
	if o.Style != "prefer-bottom" || o.Align != "center" || o.Gap != "none" {
		t.Errorf("rows = %s/%s/%s", o.Style, o.Align, o.Gap)
	}
	if o.SeedValue() != 9 {
		t.Errorf("seed = %d, want flag's 9", o.SeedValue())
	}
	if len(o.Formats) != 1 || o.Formats[0] != "json" {
		t.Errorf("formats = %v", o.Formats)
	}

	config.Formats[0] = "svg"
	if o.Formats[0] != "json" {
		t.Error("Merge aliases the Formats slice")
	}
}

func TestFromSceneSeed(t *testing.T) {
	seed := uint64(77)
	if got := FromScene(&scene.Scene{Seed: &seed}).Seed; got == nil || *got != 77 {
		t.Errorf("seed = %v", got)
	}
	if got := FromScene(&scene.Scene{}).Seed; got != nil {
		t.Errorf("unset seed = %d", *got)
	}

	zero := uint64(0)
	o := Defaults().Merge(FromScene(&scene.Scene{Seed: &zero}))
	if o.SeedValue() != 0 {
		t.Errorf("scene seed 0 merged to %d", o.SeedValue())
	}
	lo, err := o.LayoutOptions(&scene.Scene{})
	if err != nil {
		t.Fatal(err)
	}
	if lo.Seed != 0 {
		t.Errorf("layout seed = %d, want 0", lo.Seed)
	}
	if Defaults().LayoutKeyOpts().Seed == o.LayoutKeyOpts().Seed {
		t.Error("seed 0 and the default seed share a cache key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		over Options
		code errors.Code
	}{
		{"valid", Options{Style: "balanced", Formats: []string{"svg", "dot"}}, ""},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidContainer},
		{"bad style", Options{Style: "zigzag"}, errors.ErrCodeInvalidOption},
		{"bad align", Options{Align: "justify"}, errors.ErrCodeInvalidOption},
		{"bad gap", Options{Gap: "wide"}, errors.ErrCodeInvalidOption},
		{"negative gap", Options{MinVGap: -2}, errors.ErrCodeInvalidOption},
		{"negative padding", Options{Padding: -1}, errors.ErrCodeInvalidOption},
		{"bad format", Options{Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Defaults().Merge(tt.over).Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLayoutOptions(t *testing.T) {
	sc := &scene.Scene{
		Insets: geom.Uniform(5),
		Rows:   scene.Rows{Uniform: true, Style: "balanced"},
	}
	o := Defaults().Merge(Options{Style: "prefer-bottom", Gap: "auto", MinHGap: 3, Padding: 8, MaxTries: 5, Seed: Uint64(11)})

	lo, err := o.LayoutOptions(sc)
	if err != nil {
		t.Fatal(err)
	}
	if !lo.Randomize || lo.Seed != 11 {
		t.Errorf("randomize/seed = %v/%d", lo.Randomize, lo.Seed)
	}
	// The options' style wins over the scene's raw rows block; the merge
	// into Options already applied the scene.
	if lo.Rows.Style != rows.PreferBottom || lo.Rows.Gap != rows.GapAuto || lo.Rows.MinHorizontalGap != 3 {
		t.Errorf("rows = %+v", lo.Rows)
	}
	if !lo.Rows.UniformSize || lo.Rows.Insets != geom.Uniform(5) {
		t.Errorf("scene-only settings lost: %+v", lo.Rows)
	}
	if lo.Scatter.Padding != 8 || lo.Scatter.MaxTotalTries != 5 || lo.Scatter.MaxFreePlacement == 0 {
		t.Errorf("scatter = %+v", *lo.Scatter)
	}
	if lo.MinSize != (geom.Size{Width: 10, Height: 10}) {
		t.Errorf("MinSize = %v", lo.MinSize)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "width = 1024\nrandomize = false\nstyle = \"balanced\"\nformats = [\"svg\", \"json\"]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if o.Width != 1024 || o.IsRandomized() || o.Style != "balanced" || len(o.Formats) != 2 {
		t.Errorf("config = %+v", o)
	}
	if o.Height != 0 {
		t.Error("unset keys should stay zero so defaults apply")
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing explicit config: %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", dir)
	if o, err := LoadConfig(""); err != nil || o.Width != 0 {
		t.Errorf("missing default config = %+v, %v", o, err)
	}

	bad := filepath.Join(dir, "bad.toml")
	_ = os.WriteFile(bad, []byte("colour = \"red\"\n"), 0644)
	if _, err := LoadConfig(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown key: %v", err)
	}
	_ = os.WriteFile(bad, []byte("align = \"justify\"\n"), 0644)
	if _, err := LoadConfig(bad); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("bad value: %v", err)
	}
}

func TestArrangeScatter(t *testing.T) {
	sc := testScene(t, 4, 40, 40)
	l, stats, err := Arrange(sc, Defaults().Merge(FromScene(sc)).Merge(Options{Seed: Uint64(1)}))
	if err != nil {
		t.Fatal(err)
	}
	if l.Engine != layout.EngineScatter || stats.Fallbacks != 0 {
		t.Fatalf("engine = %s, fallbacks = %d", l.Engine, stats.Fallbacks)
	}
	if len(l.Items) != 4 || l.Seed != 1 || l.Size != sc.Container {
		t.Errorf("layout = %+v", l)
	}
}

func TestArrangeForcedSizePlacementsDoNotOverlap(t *testing.T) {
	for _, randomize := range []bool{false, true} {
		sc := testScene(t, 3, 50, 50)
		sc.Container = geom.Size{Width: 200, Height: 100}
		sc.Rows.ForceSize = &geom.Size{Width: 10, Height: 10}
		sc.Randomize = Bool(randomize)

		l, _, err := Arrange(sc, Defaults().Merge(FromScene(sc)))
		if err != nil {
			t.Fatal(err)
		}
		if len(l.Items) != 3 {
			t.Fatalf("items = %d, want 3", len(l.Items))
		}
		rects := make([]geom.Rect, len(l.Items))
		for i, p := range l.Items {
			if p.Width != 10 || p.Height != 10 {
				t.Errorf("randomize=%v: %s exported as %dx%d, want 10x10", randomize, p.ID, p.Width, p.Height)
			}
			rects[i] = geom.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
		}
		for i := range rects {
			for j := i + 1; j < len(rects); j++ {
				if rects[i].Overlaps(rects[j]) {
					t.Errorf("randomize=%v: %v and %v overlap", randomize, rects[i], rects[j])
				}
			}
		}
		for _, b := range l.Frame().Blocks {
			if b.Rect.Size() != (geom.Size{Width: 10, Height: 10}) {
				t.Errorf("randomize=%v: rendered block %s is %v", randomize, b.ID, b.Rect.Size())
			}
		}
	}
}

func TestArrangeFallback(t *testing.T) {
	sc := testScene(t, 5, 60, 60)
	sc.Items[2].Hidden = true
	l, stats, err := Arrange(sc, Defaults().Merge(FromScene(sc)))
	if err != nil {
		t.Fatal(err)
	}
	if l.Engine != layout.EngineRows || !l.FellBack || stats.Fallbacks != 1 {
		t.Fatalf("engine = %s fellBack = %v", l.Engine, l.FellBack)
	}
	if len(l.Items) != 4 || l.Items[2].ID != "item-4" {
		t.Errorf("items = %+v", l.Items)
	}
	if l.Items[3].Y != 180 {
		t.Errorf("last item y = %d, want 180", l.Items[3].Y)
	}
}

func TestLayoutFrame(t *testing.T) {
	l := Layout{
		Size:   geom.Size{Width: 10, Height: 10},
		Engine: layout.EngineRows,
		Items:  []Placement{{ID: "a", X: 1, Y: 2, Width: 3, Height: 4}},
	}
	f := l.Frame()
	if f.Blocks[0].Rect != (geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}) || f.Engine != layout.EngineRows {
		t.Errorf("frame = %+v", f)
	}
	data, _ := MarshalLayout(l)
	back, err := UnmarshalLayout(data)
	if err != nil || back.Items[0] != l.Items[0] {
		t.Errorf("cached layout = %+v, %v", back, err)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	layouts, hits, misses int
}

func (h *countingHooks) OnLayoutStart(context.Context, int, bool) { h.layouts++ }
func (h *countingHooks) OnCacheHit(context.Context, string)       { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)      { h.misses++ }

func TestRunnerCaching(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	mem := cache.NewMemoryCache()
	r := NewRunner(mem, nil, nil)
	sc := testScene(t, 3, 30, 30)
	opts := Defaults().Merge(FromScene(sc)).Merge(Options{Formats: []string{"svg", "json", "dot"}, Labels: true})

	first, err := r.Execute(ctx, sc, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}
	for _, f := range []string{"svg", "json", "dot"} {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(first.Artifacts["svg"]), "<text") {
		t.Error("labels option not applied")
	}
	if first.Stats.Items != 3 || first.Stats.Visible != 3 || first.SceneHash == "" {
		t.Errorf("stats = %+v hash = %q", first.Stats, first.SceneHash)
	}
	// one layout entry plus three artifacts
	if mem.Len() != 4 {
		t.Errorf("cache entries = %d, want 4", mem.Len())
	}

	second, err := r.Execute(ctx, sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}
	if string(second.Artifacts["json"]) != string(first.Artifacts["json"]) {
		t.Error("cached artifact differs")
	}
	if hooks.layouts != 1 {
		t.Errorf("layouts computed = %d, want 1", hooks.layouts)
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, sc, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || hooks.layouts != 2 {
		t.Error("Refresh should bypass the cache")
	}

	opts.Refresh = false
	opts.Seed = Uint64(5)
	if l, hit, _ := r.ArrangeWithCacheInfo(ctx, sc, opts); hit || l.Seed != 5 {
		t.Errorf("different seed served from cache (hit=%v seed=%d)", hit, l.Seed)
	}
}

func TestRunnerRejectsInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	sc := testScene(t, 1, 10, 10)
	_, err := r.Execute(context.Background(), sc, Defaults().Merge(Options{Style: "zigzag"}))
	if !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("err = %v", err)
	}
}

func TestExampleConfig(t *testing.T) {
	o, err := LoadConfig("../../examples/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if o.Width != 1024 || !o.Labels || len(o.Formats) != 2 {
		t.Errorf("config = %+v", o)
	}
}
