package bibliography

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/CutieJi/citation-generator/pkg/citation"
)

// DefaultWorkers is the rendering concurrency used when none is configured.
const DefaultWorkers = 4

// Result is the outcome of rendering one entry.
type Result struct {
	ID       string
	Source   citation.SourceType
	Style    citation.Style
	Citation string
	Err      error
}

// Renderer builds every entry of a bibliography concurrently.
type Renderer struct {
	logger   *zap.Logger
	workers  int
	override citation.Style
	fallback citation.Style
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithWorkers limits how many entries are built at once.
func WithWorkers(workers int) RendererOption {
	return func(r *Renderer) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

// WithStyle forces every entry into style, ignoring per-entry and file styles.
func WithStyle(style citation.Style) RendererOption {
	return func(r *Renderer) { r.override = style }
}

// WithDefaultStyle sets the style for entries when neither the entry nor
// the file names one. APA if unset.
func WithDefaultStyle(style citation.Style) RendererOption {
	return func(r *Renderer) { r.fallback = style }
}

// NewRenderer creates a Renderer. A nil logger is replaced by a no-op logger.
func NewRenderer(logger *zap.Logger, opts ...RendererOption) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{
		logger:   logger,
		workers:  DefaultWorkers,
		fallback: citation.StyleAPA,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds all entries of file. Results keep the order of
// file.Entries; an entry that fails validation carries its error in
// Result.Err and does not stop the others. The returned error is non-nil
// only when ctx is cancelled.
func (r *Renderer) Render(ctx context.Context, file *File) ([]Result, error) {
	results := make([]Result, len(file.Entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, entry := range file.Entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			style := file.StyleFor(entry, r.override, r.fallback)
			text, err := citation.Build(entry.Type, style, entry.Fields)
			results[i] = Result{ID: entry.ID, Source: entry.Type, Style: style, Citation: text, Err: err}
			if err != nil {
				r.logger.Warn("Entry rejected",
					zap.String("id", entry.ID),
					zap.String("type", string(entry.Type)),
					zap.Error(err))
				return nil
			}
			r.logger.Debug("Entry rendered", zap.String("id", entry.ID), zap.String("style", string(style)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	return failed
}
