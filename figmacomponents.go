package figmacomponents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kataras/figma-components/pkg/extractor"
	"github.com/kataras/figma-components/pkg/figma"
	"github.com/kataras/figma-components/pkg/formatter"
	"github.com/kataras/figma-components/pkg/pipeline"
	"github.com/kataras/figma-components/pkg/rendition"
	"github.com/kataras/figma-components/pkg/store"
)

// Logger receives progress messages. A nil Logger means silent operation.
type Logger = pipeline.Logger

// DocumentSource fetches design documents. *figma.Client implements it.
type DocumentSource interface {
	GetFile(ctx context.Context, fileKey string, opts figma.FileOptions) (*figma.FileResponse, error)
	GetFileNodes(ctx context.Context, fileKey string, nodeIDs []string, opts figma.FileOptions) (*figma.NodesResponse, error)
}

// Options configures a run.
type Options struct {
	AccessToken string
	FileURL     string   // Figma file URL; ignored when FileKey is set
	FileKey     string   // explicit file key
	NodeIDs     []string // empty = node ids of FileURL, or the entire file

	// FetchDepth is the tree depth requested from the API: 0 requests the
	// default of 10 levels and a negative value the full tree.
	FetchDepth int
	// MaxDepth is the normalization depth ceiling: nil selects
	// extractor.DefaultMaxDepth and 0 keeps only each component root.
	MaxDepth          *int
	SkipStyles        bool
	SkipDocumentation bool

	Concurrency      int
	Format           string // "json" (default) or "yaml"
	PermissiveNames  bool
	SkipRenditions   bool
	RenditionFormat  string  // "svg" (default), "png", "jpg" or "pdf"
	RenditionScale   float64 // raster scale, 1 by default
	RenditionTimeout time.Duration

	// OutputDir is the root of the default file store.
	OutputDir string
	// Store overrides the file store rooted at OutputDir.
	Store store.Store
	// Documents overrides the Figma client as document source.
	Documents DocumentSource
	// Renditions overrides the Figma image API as rendition source.
	Renditions rendition.Source

	// Verbose reports every node dropped by the depth ceiling.
	Verbose bool
	Logger  Logger // nil = no logging
}

// Result contains the run output.
type Result struct {
	FileName   string // Figma file name
	FileKey    string
	Components int // component nodes found
	Summary    *pipeline.Summary
	Markdown   string // formatted markdown report
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run fetches the design file, finds every component and component set,
// and persists one artifact per component.
//
// Only setup problems, the document fetch and an oversized document are
// fatal. Failures of single components are reported in Result.Summary.
func Run(ctx context.Context, opts Options) (*Result, error) {
	format, err := pipeline.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	fileKey := strings.TrimSpace(opts.FileKey)
	if fileKey == "" {
		if opts.FileURL == "" {
			return nil, errors.New("a file key or a Figma file URL is required")
		}
		opts.logInfo("Extracting file key from URL...")
		fileKey, err = figma.ExtractFileKey(opts.FileURL)
		if err != nil {
			return nil, fmt.Errorf("extract file key: %w", err)
		}
	}
	opts.logInfo("File key: %s", fileKey)

	targetNodeIDs := opts.NodeIDs
	if len(targetNodeIDs) > 0 {
		opts.logInfo("Using %d explicit node ID(s)", len(targetNodeIDs))
	} else if opts.FileURL != "" {
		urlNodeIDs, err := figma.ExtractNodeIDs(opts.FileURL)
		if err != nil {
			return nil, fmt.Errorf("extract node IDs from URL: %w", err)
		}
		if len(urlNodeIDs) > 0 {
			targetNodeIDs = urlNodeIDs
			opts.logInfo("Found %d node(s) in URL", len(targetNodeIDs))
		}
	}

	documents := opts.Documents
	imageAPI, _ := opts.Documents.(rendition.ImageAPI)
	needImages := opts.Renditions == nil && !opts.SkipRenditions && imageAPI == nil
	if documents == nil || needImages {
		if opts.AccessToken == "" {
			return nil, errors.New("a Figma access token is required")
		}
		opts.logInfo("Authenticating with Figma API...")
		client := figma.NewClient(opts.AccessToken)
		if documents == nil {
			documents = client
		}
		if imageAPI == nil {
			imageAPI = client
		}
	}

	fileOpts := figma.DefaultFileOptions()
	if opts.FetchDepth > 0 {
		fileOpts.Depth = opts.FetchDepth
	} else if opts.FetchDepth < 0 {
		fileOpts.Depth = 0
	}

	doc, err := fetchDocument(ctx, &opts, documents, fileKey, targetNodeIDs, fileOpts)
	if err != nil {
		return nil, err
	}
	opts.logInfo("File: %s", doc.name)

	opts.logInfo("Finding components...")
	nodes, err := findComponents(doc.roots)
	if err != nil {
		return nil, err
	}
	opts.logInfo("Found %d component(s)", len(nodes))

	walkerCfg := extractor.Config{
		MaxDepth:          opts.MaxDepth,
		FileKey:           fileKey,
		SkipStyles:        opts.SkipStyles,
		SkipDocumentation: opts.SkipDocumentation,
		Documentation:     doc.components,
	}
	if opts.Verbose {
		walkerCfg.OnElide = func(n *figma.Node, depth int) {
			opts.logInfo("Elided %q (%s) at depth %d", n.Name, n.ID, depth)
		}
	}
	walker := extractor.NewWalker(walkerCfg)

	renditions, renditionExt, err := buildRenditions(&opts, imageAPI, fileKey)
	if err != nil {
		return nil, err
	}

	st := opts.Store
	if st == nil {
		fs, err := store.NewFileStore(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		opts.logInfo("Writing artifacts to %s", fs.Root())
		st = fs
	}

	p, err := pipeline.New(walker, renditions, st, fileKey, pipeline.Config{
		Concurrency:      opts.Concurrency,
		RenditionTimeout: opts.RenditionTimeout,
		Format:           format,
		RenditionExt:     renditionExt,
		PermissiveNames:  opts.PermissiveNames,
		SkipRenditions:   opts.SkipRenditions,
	}, opts.Logger)
	if err != nil {
		return nil, err
	}

	summary, err := p.Run(ctx, nodes)
	if err != nil {
		return nil, fmt.Errorf("process components: %w", err)
	}

	opts.logInfo("Generating markdown report...")
	return &Result{
		FileName:   doc.name,
		FileKey:    fileKey,
		Components: len(nodes),
		Summary:    summary,
		Markdown:   formatter.ToMarkdown(summary, doc.name),
	}, nil
}

// findComponents collects the components of every root in document order.
// Scoped roots may overlap, and the API returns each one as a separate copy,
// so a component already found under an earlier root is skipped. Components
// sharing an id within one tree are all kept.
func findComponents(roots []*figma.Node) ([]*figma.Node, error) {
	var (
		nodes []*figma.Node
		seen  = make(map[string]struct{})
	)
	for _, root := range roots {
		found, err := extractor.FindComponents(root, extractor.DefaultFinderLimits)
		if err != nil {
			return nil, fmt.Errorf("find components: %w", err)
		}
		for _, n := range found {
			if _, dup := seen[n.ID]; !dup {
				nodes = append(nodes, n)
			}
		}
		if len(roots) > 1 {
			for _, n := range found {
				seen[n.ID] = struct{}{}
			}
		}
	}
	return nodes, nil
}

type document struct {
	name       string
	roots      []*figma.Node
	components map[string]figma.Component
}

// fetchDocument fetches the whole file, or only the subtrees of nodeIDs.
func fetchDocument(ctx context.Context, opts *Options, src DocumentSource, fileKey string, nodeIDs []string, fileOpts figma.FileOptions) (*document, error) {
	doc := &document{components: make(map[string]figma.Component)}

	if len(nodeIDs) == 0 {
		opts.logInfo("Fetching file data from Figma...")
		resp, err := src.GetFile(ctx, fileKey, fileOpts)
		if err != nil {
			return nil, fmt.Errorf("fetch file: %w", err)
		}
		doc.name = resp.Name
		doc.roots = []*figma.Node{&resp.Document}
		mergeComponents(doc.components, resp.Components, resp.ComponentSets)
		return doc, nil
	}

	opts.logInfo("Fetching %d node(s) from Figma...", len(nodeIDs))
	resp, err := src.GetFileNodes(ctx, fileKey, nodeIDs, fileOpts)
	if err != nil {
		return nil, fmt.Errorf("fetch nodes: %w", err)
	}
	doc.name = resp.Name
	for _, id := range nodeIDs {
		nd := resp.Nodes[id]
		if nd == nil {
			opts.logWarn("Node %s not found in file", id)
			continue
		}
		doc.roots = append(doc.roots, &nd.Document)
		mergeComponents(doc.components, nd.Components, nd.ComponentSets)
	}
	if len(doc.roots) == 0 {
		return nil, fmt.Errorf("fetch nodes: none of %s exist: %w", strings.Join(nodeIDs, ", "), figma.ErrNotFound)
	}
	return doc, nil
}

func mergeComponents(dst map[string]figma.Component, sources ...map[string]figma.Component) {
	for _, src := range sources {
		for id, c := range src {
			dst[id] = c
		}
	}
}

// buildRenditions returns the rendition source of the run and the sidecar extension.
func buildRenditions(opts *Options, api rendition.ImageAPI, fileKey string) (rendition.Source, string, error) {
	ext := strings.ToLower(opts.RenditionFormat)
	if ext == "" {
		ext = rendition.DefaultFormat
	}
	switch ext {
	case "svg", "png", "jpg", "pdf":
	default:
		return nil, "", fmt.Errorf("invalid rendition format %q (must be svg, png, jpg, or pdf)", opts.RenditionFormat)
	}

	if opts.SkipRenditions {
		return nil, ext, nil
	}
	if opts.Renditions != nil {
		return opts.Renditions, ext, nil
	}

	src, err := rendition.NewFigmaSource(api, fileKey,
		rendition.WithFormat(ext),
		rendition.WithScale(opts.RenditionScale),
		rendition.WithTimeout(opts.RenditionTimeout),
		rendition.WithConcurrency(opts.Concurrency),
	)
	if err != nil {
		return nil, "", err
	}
	return src, ext, nil
}

// ParseNodeIDs parses a comma-separated string of node IDs and returns a slice.
// Dash-separated ids as they appear in URLs ("1-2") are converted to "1:2".
func ParseNodeIDs(nodeIDsStr string) []string {
	parts := strings.Split(nodeIDsStr, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if !strings.Contains(trimmed, ":") {
			trimmed = strings.Replace(trimmed, "-", ":", 1)
		}
		result = append(result, trimmed)
	}

	return result
}
