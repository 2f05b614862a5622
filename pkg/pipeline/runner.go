package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/shaftworks/shaftdraw/pkg/cache"
	"github.com/shaftworks/shaftdraw/pkg/document"
	"github.com/shaftworks/shaftdraw/pkg/drawing"
	"github.com/shaftworks/shaftdraw/pkg/errors"
	"github.com/shaftworks/shaftdraw/pkg/observability"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → resolve → layout → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, docHash, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.DocHash = docHash
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Resolve
	resolveStart := time.Now()
	observability.Pipeline().OnResolveStart(ctx, docHash)
	resolved, err := ResolveComponents(doc, opts)
	observability.Pipeline().OnResolveComplete(ctx, docHash, len(resolved), time.Since(resolveStart), err)
	if err != nil {
		return nil, err
	}
	result.Resolved = resolved
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.Stats.ComponentCount = len(resolved)
	for _, rc := range resolved {
		if rc.IsAuto() {
			result.Stats.AutoCount++
		}
	}

	r.Logger.Info("resolved shaft",
		"components", result.Stats.ComponentCount,
		"auto", result.Stats.AutoCount,
		"duration", result.Stats.ResolveTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.PageName(doc), len(resolved))
	layout, w, layoutHit, err := r.BuildLayoutWithCacheInfo(ctx, doc, docHash, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.PageName(doc), time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Window = w
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RailCount = railCount(layout)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"rails", result.Stats.RailCount,
		"scale", layout.ScaleLabel,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads, parses, and validates the shaft document named by the options
// and returns it with its content hash.
func (r *Runner) Load(opts Options) (*document.Document, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}

	data := opts.Source
	if opts.Path != "" {
		var err error
		data, err = os.ReadFile(opts.Path)
		if os.IsNotExist(err) {
			return nil, "", errors.New(errors.ErrCodeFileNotFound, "document %s does not exist", opts.Path)
		}
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "read %s", opts.Path)
		}
	}

	doc, err := document.Parse(data)
	if err != nil {
		return nil, "", err
	}
	if err := doc.Validate(); err != nil {
		return nil, "", err
	}
	return doc, cache.Hash(data), nil
}

// BuildLayoutWithCacheInfo computes a layout with caching and returns cache
// hit info. The window is recomputed on a hit; it is derived data an order
// of magnitude cheaper than the layout itself.
func (r *Runner) BuildLayoutWithCacheInfo(ctx context.Context, doc *document.Document, docHash string, opts Options) (drawing.Layout, shaft.Window, bool, error) {
	cacheKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts(doc))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached drawing.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				resolved, err := ResolveComponents(doc, opts)
				if err != nil {
					return drawing.Layout{}, shaft.Window{}, false, err
				}
				w, err := shaft.ComputeWindow(effectiveSpan(doc, resolved), doc.Segments())
				if err != nil {
					return drawing.Layout{}, shaft.Window{}, false, err
				}
				return cached, w, true, nil
			}
			// Corrupt entry, fall through to recompute
		}
	}

	resolved, err := ResolveComponents(doc, opts)
	if err != nil {
		return drawing.Layout{}, shaft.Window{}, false, err
	}
	layout, w, err := BuildLayout(doc, resolved, opts)
	if err != nil {
		return drawing.Layout{}, shaft.Window{}, false, err
	}

	observability.Cache().OnCacheMiss(ctx, "layout")
	if data, err := json.Marshal(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return layout, w, false, nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout drawing.Layout, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	layoutData, err := json.Marshal(layout)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := RenderFromLayout(layout, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout drawing.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// railCount counts the occupied rails of a built layout. Rails share a Y
// coordinate exactly when they share a rail index.
func railCount(l drawing.Layout) int {
	ys := make(map[float64]struct{}, len(l.Rails))
	for _, rl := range l.Rails {
		ys[rl.Y] = struct{}{}
	}
	return len(ys)
}
