package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lmgraph/pkg/cache"
	lmerrors "github.com/matzehuels/lmgraph/pkg/errors"
	lmio "github.com/matzehuels/lmgraph/pkg/io"
	"github.com/matzehuels/lmgraph/pkg/landmarks"
	"github.com/matzehuels/lmgraph/pkg/landmarks/transform"
	"github.com/matzehuels/lmgraph/pkg/observability"
	"github.com/matzehuels/lmgraph/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating the stage logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// selects the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → reduce → number → emit pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	result := &Result{}

	// Stage 1: Load
	start := time.Now()
	loaded, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Loaded = loaded
	result.Stats.LoadTime = time.Since(start)
	r.Logger.Info("loaded landmarks",
		"landmarks", loaded.Graph.NumLandmarks(),
		"orderings", loaded.Graph.NumEdges(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Reduce
	start = time.Now()
	result.Stats.RemovedLandmarks, result.Stats.RemovedOrderings = r.Reduce(ctx, loaded.Graph, opts)
	result.Stats.ReduceTime = time.Since(start)

	// Stage 3: Number
	loaded.Graph.SetLandmarkIDs()
	result.Stats.GraphStats = Summarize(loaded.Graph)

	// Stage 4: Emit
	start = time.Now()
	result.DOT = nodelink.ToDOT(loaded.Graph, loaded.Variables, nodelink.Options{Detailed: opts.Detailed})
	artifacts, hit, err := r.Emit(ctx, loaded, result.DOT, opts)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit

	if opts.OutputDir != "" {
		files, err := r.Write(loaded, artifacts, opts)
		if err != nil {
			return nil, err
		}
		result.Files = files
	}
	result.Stats.EmitTime = time.Since(start)
	r.Logger.Info("emitted outputs",
		"formats", opts.Formats,
		"sccs", result.Stats.SCCs,
		"cached", hit,
		"duration", result.Stats.EmitTime)

	return result, nil
}

// Load reads the description selected by opts.
func (r *Runner) Load(ctx context.Context, opts Options) (*lmio.Loaded, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	src := opts.source()
	observability.Pipeline().OnLoadStart(ctx, src)
	start := time.Now()

	var loaded *lmio.Loaded
	var err error
	if opts.Description != nil {
		loaded, err = lmio.Read(bytes.NewReader(opts.Description), opts.Format)
	} else {
		loaded, err = lmio.ImportFile(opts.Input)
	}

	n := 0
	if loaded != nil {
		n = loaded.Graph.NumLandmarks()
	}
	observability.Pipeline().OnLoadComplete(ctx, src, n, time.Since(start), err)
	return loaded, err
}

// Reduce applies the reduction passes selected by opts and returns the
// number of removed landmarks and orderings. Orderings removed together
// with a landmark are not counted separately. opts must have passed
// [Options.Validate].
func (r *Runner) Reduce(ctx context.Context, g *landmarks.Graph, opts Options) (removedLandmarks, removedOrderings int) {
	start := time.Now()
	if opts.DiscardDisjunctive {
		n := transform.DiscardDisjunctive(g)
		r.Logger.Debug("discarded disjunctive landmarks", "removed", n)
		removedLandmarks += n
	}
	if opts.DiscardConjunctive {
		n := transform.DiscardConjunctive(g)
		r.Logger.Debug("discarded conjunctive landmarks", "removed", n)
		removedLandmarks += n
	}
	if opts.minOrdering > landmarks.EdgeReasonable {
		n := transform.DiscardOrderings(g, transform.AtLeast(opts.minOrdering))
		r.Logger.Debug("discarded weak orderings", "min", opts.minOrdering, "removed", n)
		removedOrderings += n
	}
	if opts.Acyclic {
		n := transform.MakeAcyclic(g)
		r.Logger.Debug("broke ordering cycles", "removed", n)
		removedOrderings += n
	}
	observability.Pipeline().OnReduceComplete(ctx, removedLandmarks, removedOrderings, time.Since(start))
	return removedLandmarks, removedOrderings
}

// Emit produces every requested format. JSON and DOT are generated
// directly; SVG, PNG and PDF are rendered from dot through the cache. The
// returned flag reports whether all rendered formats were cache hits.
func (r *Runner) Emit(ctx context.Context, loaded *lmio.Loaded, dot string, opts Options) (map[string][]byte, bool, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, hit, err := r.emit(ctx, loaded, dot, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) emit(ctx context.Context, loaded *lmio.Loaded, dot string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := opts.NeedsRender()

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := lmio.WriteJSON(loaded.Graph, loaded.Variables, &buf); err != nil {
				return nil, false, lmerrors.Wrap(lmerrors.ErrCodeExportFailed, err, "export json")
			}
			artifacts[format] = buf.Bytes()
		case FormatDOT:
			artifacts[format] = []byte(dot)
		default:
			data, hit, err := r.Render(ctx, dot, format, opts)
			if err != nil {
				return nil, false, err
			}
			allHit = allHit && hit
			artifacts[format] = data
		}
	}
	return artifacts, allHit, nil
}

// Render renders dot into one of the Graphviz formats, consulting the cache
// unless opts.Refresh is set.
func (r *Runner) Render(ctx context.Context, dot, format string, opts Options) ([]byte, bool, error) {
	keyOpts := cache.RenderOpts{Format: format}
	if format == FormatPNG {
		keyOpts.Scale = opts.Scale
	}
	key := cache.RenderKey(dot, keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return data, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	data, err := renderFormat(ctx, dot, format, opts.Scale)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, TTLRender); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}

func renderFormat(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	var data []byte
	var err error
	switch format {
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, scale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	default:
		return nil, lmerrors.New(lmerrors.ErrCodeUnsupported, "unsupported render format: %s", format)
	}
	if err != nil {
		if lmerrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, lmerrors.Wrap(lmerrors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return data, nil
}

// Write stores artifacts in opts.OutputDir, creating it if needed, and
// returns the written paths by format. The JSON export is written with
// [lmio.ExportGraph]; other formats are named landmark_graph.<format>.
func (r *Runner) Write(loaded *lmio.Loaded, artifacts map[string][]byte, opts Options) (map[string]string, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, lmerrors.Wrap(lmerrors.ErrCodeExportFailed, err, "create %s", opts.OutputDir)
	}
	files := make(map[string]string, len(artifacts))
	for _, format := range opts.Formats {
		if format == FormatJSON {
			path, err := lmio.ExportGraph(loaded.Graph, loaded.Variables, opts.OutputDir)
			if err != nil {
				return nil, err
			}
			files[format] = path
			continue
		}
		path := filepath.Join(opts.OutputDir, FileName(format))
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, lmerrors.Wrap(lmerrors.ErrCodeExportFailed, err, "write %s", path)
		}
		files[format] = path
	}
	for format, path := range files {
		r.Logger.Debug("wrote output", "format", format, "path", path)
	}
	return files, nil
}

// FileName returns the name of the output file for format.
func FileName(format string) string {
	if format == FormatJSON {
		return lmio.GraphFileName
	}
	return "landmark_graph." + format
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
