// Package pipeline turns design component nodes into persisted artifacts.
//
// For every component node it normalizes the subtree, fetches a rendition,
// encodes the result and hands both to a store. A failure in one component
// is recorded in the summary and never stops the others.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/kataras/figma-components/pkg/extractor"
	"github.com/kataras/figma-components/pkg/figma"
	"github.com/kataras/figma-components/pkg/rendition"
	"github.com/kataras/figma-components/pkg/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Logger receives progress messages. A nil Logger is silent.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

const (
	DefaultConcurrency      = 4
	DefaultRenditionTimeout = 60 * time.Second
	DefaultRenditionExt     = "svg"
)

// Config controls a pipeline run. Zero values select the defaults.
type Config struct {
	// Concurrency is the number of components processed at once.
	Concurrency int
	// RenditionTimeout bounds each rendition fetch.
	RenditionTimeout time.Duration
	// Format is the artifact encoding, JSON by default.
	Format Format
	// RenditionExt is the extension of the rendition sidecar file.
	RenditionExt string
	// PermissiveNames keeps '_' and '-' in artifact names.
	PermissiveNames bool
	// SkipRenditions disables rendition fetching.
	SkipRenditions bool
}

func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.RenditionTimeout <= 0 {
		c.RenditionTimeout = DefaultRenditionTimeout
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.RenditionExt == "" {
		c.RenditionExt = DefaultRenditionExt
	}
	return c
}

// Stage names the step of per-component processing that failed.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageRender    Stage = "render"
	StageEncode    Stage = "encode"
	StagePersist   Stage = "persist"
)

// ComponentError is the failure of a single component.
type ComponentError struct {
	NodeID string
	Stage  Stage
	Err    error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %s: %s: %v", e.NodeID, e.Stage, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one component.
type Result struct {
	NodeID      string
	Name        string
	Kind        extractor.VariantKind
	Artifact    string // base name, without extension
	Paths       []string
	Description string
	// HasRendition reports whether a rendition was persisted with the artifact.
	HasRendition bool
	// Err is a *ComponentError when the component could not be persisted.
	Err error
}

// Summary reports a run.
type Summary struct {
	RunID         string
	Namespace     string
	StartedAt     time.Time
	FinishedAt    time.Time
	Found         int
	Persisted     int
	Failed        int
	WithRendition int
	// Results are in document order.
	Results []Result
}

// Duration returns the wall time of the run.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// prefetcher is implemented by rendition sources that can resolve many nodes at once.
type prefetcher interface {
	Prefetch(ctx context.Context, ids []string) error
}

// Pipeline processes component nodes of one design file.
type Pipeline struct {
	walker     *extractor.Walker
	renditions rendition.Source
	store      store.Store
	namespace  string
	cfg        Config
	logger     Logger
}

// New returns a Pipeline writing artifacts of namespace (the file key) to st.
// renditions may be nil, in which case no renditions are fetched.
func New(walker *extractor.Walker, renditions rendition.Source, st store.Store, namespace string, cfg Config, logger Logger) (*Pipeline, error) {
	if walker == nil {
		return nil, errors.New("pipeline: nil walker")
	}
	if st == nil {
		return nil, errors.New("pipeline: nil store")
	}
	if namespace == "" {
		return nil, errors.New("pipeline: empty namespace")
	}
	if _, err := ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}

	return &Pipeline{
		walker:     walker,
		renditions: renditions,
		store:      st,
		namespace:  namespace,
		cfg:        cfg.withDefaults(),
		logger:     logger,
	}, nil
}

// Run processes nodes with bounded concurrency and returns the summary.
// Per-component failures are reported in the summary only; the returned
// error is non-nil only when ctx is done before the run completes.
func (p *Pipeline) Run(ctx context.Context, nodes []*figma.Node) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		Namespace: p.namespace,
		StartedAt: time.Now(),
		Found:     len(nodes),
		Results:   make([]Result, len(nodes)),
	}

	if pf, ok := p.renditions.(prefetcher); ok && !p.cfg.SkipRenditions && len(nodes) > 0 {
		ids := make([]string, 0, len(nodes))
		for _, n := range nodes {
			ids = append(ids, n.ID)
		}
		if err := pf.Prefetch(ctx, ids); err != nil {
			p.warnf("Rendition prefetch incomplete, falling back to per-component lookups: %v", err)
		}
	}

	var g errgroup.Group
	g.SetLimit(p.cfg.Concurrency)
	for i, n := range nodes {
		g.Go(func() error {
			summary.Results[i] = p.process(ctx, n)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range summary.Results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Persisted++
		if r.HasRendition {
			summary.WithRendition++
		}
	}
	summary.FinishedAt = time.Now()

	return summary, ctx.Err()
}

func (p *Pipeline) process(ctx context.Context, raw *figma.Node) (res Result) {
	if raw == nil {
		return Result{Err: &ComponentError{Stage: StageNormalize, Err: errors.New("nil node")}}
	}
	res = Result{NodeID: raw.ID, Name: raw.Name}
	stage := StageNormalize

	fail := func(err error) Result {
		res.Err = &ComponentError{NodeID: raw.ID, Stage: stage, Err: err}
		p.errorf("Failed to %s component %q (%s): %v", stage, raw.Name, raw.ID, err)
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			res = fail(fmt.Errorf("panic: %v\n%s", r, debug.Stack()))
		}
	}()

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	comp := p.walker.Normalize(raw)
	if comp == nil {
		return fail(errors.New("normalization produced no component"))
	}
	res.Kind = comp.Metadata.VariantKind
	res.Description = comp.Description
	res.Artifact = ArtifactName(raw.Name, raw.ID, p.cfg.PermissiveNames)

	stage = StageRender
	if data := p.fetchRendition(ctx, raw); len(data) > 0 {
		comp.Rendition = data
	}

	stage = StageEncode
	encoded, err := Encode(comp, p.cfg.Format)
	if err != nil {
		return fail(err)
	}

	stage = StagePersist
	artifactPath := res.Artifact + "." + p.cfg.Format.Ext()
	if err := p.store.Put(ctx, p.namespace, artifactPath, encoded); err != nil {
		return fail(err)
	}
	res.Paths = append(res.Paths, artifactPath)

	if len(comp.Rendition) > 0 {
		renditionPath := res.Artifact + "." + p.cfg.RenditionExt
		if err := p.store.Put(ctx, p.namespace, renditionPath, comp.Rendition); err != nil {
			p.warnf("Failed to persist rendition of %q (%s): %v", raw.Name, raw.ID, err)
		} else {
			res.Paths = append(res.Paths, renditionPath)
			res.HasRendition = true
		}
	}

	p.infof("Saved %s", artifactPath)
	return res
}

// fetchRendition returns the rendition of raw or nil. Failures are logged, never returned.
func (p *Pipeline) fetchRendition(ctx context.Context, raw *figma.Node) []byte {
	if p.cfg.SkipRenditions || p.renditions == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.RenditionTimeout)
	defer cancel()

	data, err := p.renditions.FetchRendition(ctx, raw.ID)
	switch {
	case errors.Is(err, rendition.ErrNoRendition):
		p.infof("No rendition for %q (%s)", raw.Name, raw.ID)
		return nil
	case err != nil:
		p.warnf("Rendition of %q (%s) unavailable: %v", raw.Name, raw.ID, err)
		return nil
	}
	return data
}

func (p *Pipeline) infof(format string, args ...any) {
	if p.logger != nil {
		p.logger.Infof(format, args...)
	}
}

func (p *Pipeline) warnf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Warnf(format, args...)
	}
}

func (p *Pipeline) errorf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Errorf(format, args...)
	}
}
