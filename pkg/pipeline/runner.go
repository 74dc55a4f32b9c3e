package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelfit/pkg/cache"
	"github.com/matzehuels/panelfit/pkg/errors"
	"github.com/matzehuels/panelfit/pkg/observability"
	"github.com/matzehuels/panelfit/pkg/scene"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	SceneHash string
	Layout    Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	Visible    int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// Runner executes the pipeline with caching. It holds no per-run state
// and may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute arranges and renders a scene.
func (r *Runner) Execute(ctx context.Context, sc *scene.Scene, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Stats: Stats{Items: len(sc.Items), Visible: sc.VisibleCount()}}
	var err error
	result.SceneHash, err = SceneHash(sc)
	if err != nil {
		return nil, err
	}

	layoutStart := time.Now()
	l, hit, err := r.arrange(ctx, sc, result.SceneHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"items", len(l.Items),
		"engine", l.Engine,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SceneHash returns the content hash used in layout cache keys.
func SceneHash(sc *scene.Scene) (string, error) {
	h, err := cache.HashJSON(sc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash scene")
	}
	return h, nil
}

// ArrangeWithCacheInfo computes a layout with caching and reports whether
// it came from the cache.
func (r *Runner) ArrangeWithCacheInfo(ctx context.Context, sc *scene.Scene, opts Options) (Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return Layout{}, false, err
	}
	h, err := SceneHash(sc)
	if err != nil {
		return Layout{}, false, err
	}
	return r.arrange(ctx, sc, h, opts)
}

// Arrange is ArrangeWithCacheInfo without the cache hit flag.
func (r *Runner) Arrange(ctx context.Context, sc *scene.Scene, opts Options) (Layout, error) {
	l, _, err := r.ArrangeWithCacheInfo(ctx, sc, opts)
	return l, err
}

func (r *Runner) arrange(ctx context.Context, sc *scene.Scene, sceneHash string, opts Options) (Layout, bool, error) {
	key := r.Keyer.LayoutKey(sceneHash, opts.LayoutKeyOpts())
	hooks := observability.Pipeline()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return l, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("layout cache unavailable", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks.OnLayoutStart(ctx, sc.VisibleCount(), opts.IsRandomized())
	start := time.Now()
	l, stats, err := Arrange(sc, opts)
	hooks.OnLayoutComplete(ctx, l.Engine, l.FellBack, time.Since(start), err)
	if err != nil {
		return Layout{}, false, err
	}
	if stats.Fallbacks > 0 {
		r.Logger.Debug("random placement fell back to rows", "seed", l.Seed)
	}

	if data, err := MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache layout", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// RenderWithCacheInfo renders a layout with caching and reports whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	formats, err := opts.RenderFormats()
	if err != nil {
		return nil, false, err
	}
	data, err := MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(formats))
	if !opts.Refresh {
		for _, format := range formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[string(format)] = data
		}
		if len(artifacts) == len(formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, names)
	start := time.Now()
	rendered, err := Render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, names, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for _, format := range formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		out := rendered[string(format)]
		if err := r.Cache.Set(ctx, key, out, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(out))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, l Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
