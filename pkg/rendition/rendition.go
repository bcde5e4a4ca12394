// Package rendition resolves and downloads rendered images of design nodes.
package rendition

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kataras/figma-components/pkg/figma"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrNoRendition reports that a node has no rendered image: the image API
// returned no URL for it or the download was empty. It is never fatal.
var ErrNoRendition = errors.New("rendition: no rendition available")

// Source returns the rendered image bytes of a node.
type Source interface {
	FetchRendition(ctx context.Context, nodeID string) ([]byte, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context, nodeID string) ([]byte, error)

// FetchRendition calls f(ctx, nodeID).
func (f SourceFunc) FetchRendition(ctx context.Context, nodeID string) ([]byte, error) {
	return f(ctx, nodeID)
}

// ImageAPI is the subset of the Figma client used to render nodes.
// *figma.Client implements it.
type ImageAPI interface {
	GetImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (*figma.ImagesResponse, error)
	Download(ctx context.Context, imageURL string) ([]byte, error)
}

const (
	// maxNodesPerRequest is the image endpoint's id limit per call.
	maxNodesPerRequest = 100

	DefaultFormat      = "svg"
	DefaultScale       = 1.0
	DefaultTimeout     = 60 * time.Second
	DefaultCacheSize   = 512
	DefaultConcurrency = 4
)

// Option configures a FigmaSource.
type Option func(*FigmaSource)

// WithFormat sets the export format ("svg", "png", "jpg" or "pdf").
func WithFormat(format string) Option {
	return func(s *FigmaSource) {
		if format != "" {
			s.format = format
		}
	}
}

// WithScale sets the raster scale. It is ignored for svg and pdf.
func WithScale(scale float64) Option {
	return func(s *FigmaSource) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// WithTimeout bounds every image API call and download.
func WithTimeout(d time.Duration) Option {
	return func(s *FigmaSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCacheSize sets how many renditions are kept in memory.
func WithCacheSize(n int) Option {
	return func(s *FigmaSource) {
		if n > 0 {
			s.cacheSize = n
		}
	}
}

// WithConcurrency limits parallel image API calls during Prefetch.
func WithConcurrency(n int) Option {
	return func(s *FigmaSource) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// FigmaSource renders nodes through the Figma image API.
// It is safe for concurrent use.
type FigmaSource struct {
	api         ImageAPI
	fileKey     string
	format      string
	scale       float64
	timeout     time.Duration
	cacheSize   int
	concurrency int

	cache *lru.Cache[string, []byte]
	group singleflight.Group

	mu   sync.RWMutex
	urls map[string]string // node id -> image URL, "" when the API had none
}

// NewFigmaSource returns a Source rendering nodes of fileKey.
func NewFigmaSource(api ImageAPI, fileKey string, opts ...Option) (*FigmaSource, error) {
	if api == nil {
		return nil, errors.New("rendition: nil image API")
	}
	if fileKey == "" {
		return nil, errors.New("rendition: empty file key")
	}

	s := &FigmaSource{
		api:         api,
		fileKey:     fileKey,
		format:      DefaultFormat,
		scale:       DefaultScale,
		timeout:     DefaultTimeout,
		cacheSize:   DefaultCacheSize,
		concurrency: DefaultConcurrency,
		urls:        make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := lru.New[string, []byte](s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("rendition: create cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// Format returns the export format, which is also the rendition file extension.
func (s *FigmaSource) Format() string {
	return s.format
}

// Prefetch resolves image URLs for ids in batches of at most 100 per request.
// Ids already resolved are skipped. A failed batch is reported but the
// others still complete; unresolved ids are resolved one by one on fetch.
func (s *FigmaSource) Prefetch(ctx context.Context, ids []string) error {
	pending := s.unresolved(ids)
	if len(pending) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var (
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < len(pending); i += maxNodesPerRequest {
		end := i + maxNodesPerRequest
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[i:end]

		g.Go(func() error {
			if err := s.resolve(ctx, batch); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// FetchRendition returns the rendered bytes of nodeID, from cache when possible.
func (s *FigmaSource) FetchRendition(ctx context.Context, nodeID string) ([]byte, error) {
	if data, ok := s.cache.Get(nodeID); ok {
		return data, nil
	}

	v, err, _ := s.group.Do(nodeID, func() (any, error) {
		return s.fetch(ctx, nodeID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *FigmaSource) fetch(ctx context.Context, nodeID string) ([]byte, error) {
	imageURL, ok := s.lookup(nodeID)
	if !ok {
		if err := s.resolve(ctx, []string{nodeID}); err != nil {
			return nil, err
		}
		imageURL, _ = s.lookup(nodeID)
	}
	if imageURL == "" {
		return nil, fmt.Errorf("%w: no image URL for node %s", ErrNoRendition, nodeID)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.api.Download(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("download rendition of node %s: %w", nodeID, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload for node %s", ErrNoRendition, nodeID)
	}

	s.cache.Add(nodeID, data)
	return data, nil
}

func (s *FigmaSource) resolve(ctx context.Context, ids []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	scale := s.scale
	if s.format == "svg" || s.format == "pdf" {
		scale = 1
	}

	resp, err := s.api.GetImages(ctx, s.fileKey, ids, s.format, scale)
	if err != nil {
		return fmt.Errorf("resolve images for %d node(s): %w", len(ids), err)
	}

	s.mu.Lock()
	for _, id := range ids {
		s.urls[id] = resp.URL(id)
	}
	s.mu.Unlock()
	return nil
}

func (s *FigmaSource) lookup(id string) (string, bool) {
	s.mu.RLock()
	u, ok := s.urls[id]
	s.mu.RUnlock()
	return u, ok
}

func (s *FigmaSource) unresolved(ids []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.urls[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
