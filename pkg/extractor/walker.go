package extractor

import (
	"fmt"
	"time"

	"github.com/kataras/figma-components/pkg/figma"
)

const (
	// DefaultMaxDepth matches the nesting depth requested from the file endpoint.
	DefaultMaxDepth = 10
	// HardMaxDepth bounds recursion regardless of configuration.
	HardMaxDepth = 512
)

// Config controls normalization. The zero value is usable: every extractor
// is enabled and the depth ceiling is DefaultMaxDepth.
type Config struct {
	// MaxDepth is the deepest level emitted (the root is depth 0). Nodes
	// below it are elided with their whole subtree. Nil or a negative value
	// selects DefaultMaxDepth, zero keeps only the root and values above
	// HardMaxDepth are clamped.
	MaxDepth *int
	// FileKey is recorded as the source of every component.
	FileKey string
	// SkipStyles omits the style sub-record.
	SkipStyles bool
	// SkipDocumentation omits component documentation.
	SkipDocumentation bool
	// Documentation maps component and component set ids to their published metadata.
	Documentation map[string]figma.Component
	// Clock returns the extraction timestamp. Defaults to time.Now in UTC.
	Clock func() time.Time
	// OnElide, if set, is called for each node dropped by the depth ceiling.
	OnElide func(node *figma.Node, depth int)
}

// Walker turns raw node trees into Components.
// It holds no mutable state and is safe for concurrent use.
type Walker struct {
	cfg      Config
	maxDepth int
}

// NewWalker returns a Walker for cfg.
func NewWalker(cfg Config) *Walker {
	depth := DefaultMaxDepth
	if cfg.MaxDepth != nil && *cfg.MaxDepth >= 0 {
		depth = *cfg.MaxDepth
	}
	if depth > HardMaxDepth {
		depth = HardMaxDepth
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}
	return &Walker{cfg: cfg, maxDepth: depth}
}

// MaxDepth returns the effective depth ceiling.
func (w *Walker) MaxDepth() int {
	return w.maxDepth
}

// Normalize walks a component root.
func (w *Walker) Normalize(root *figma.Node) *Component {
	return w.Walk(root, nil, 0)
}

// Walk normalizes raw at the given depth. parent is only used for the
// back-reference. It returns nil when raw is nil or depth is beyond the
// ceiling. All components of one call share the same extraction timestamp.
func (w *Walker) Walk(raw, parent *figma.Node, depth int) *Component {
	return w.walk(raw, parent, depth, w.cfg.Clock())
}

func (w *Walker) walk(raw, parent *figma.Node, depth int, extractedAt time.Time) *Component {
	if raw == nil || depth > w.maxDepth {
		return nil
	}

	kind := Classify(raw.Type)
	c := &Component{
		Metadata: Metadata{
			ID:            raw.ID,
			Name:          raw.Name,
			Type:          kind,
			VariantKind:   kind.Variant(),
			Visible:       derefBool(raw.Visible, true),
			Locked:        derefBool(raw.Locked, false),
			SourceFileKey: w.cfg.FileKey,
			SourceURL:     w.sourceURL(raw.ID),
			ExtractedAt:   extractedAt,
			DepthLevel:    depth,
			Documentation: w.documentation(raw.ID, kind),
		},
		Parent:       parentRef(parent),
		Layout:       extractLayout(raw),
		TypeSpecific: extractTypeSpecific(raw, kind),
		Children:     make([]*Component, 0, len(raw.Children)),
	}
	if !w.cfg.SkipStyles {
		c.Style = extractStyle(raw, kind)
	}

	for i := range raw.Children {
		child := &raw.Children[i]
		if depth+1 > w.maxDepth {
			if w.cfg.OnElide != nil {
				w.cfg.OnElide(child, depth+1)
			}
			continue
		}
		c.Children = append(c.Children, w.walk(child, raw, depth+1, extractedAt))
	}

	c.Description = Describe(c)
	return c
}

func (w *Walker) sourceURL(id string) string {
	if w.cfg.FileKey == "" || id == "" {
		return ""
	}
	return fmt.Sprintf("https://www.figma.com/file/%s/?node-id=%s", w.cfg.FileKey, id)
}

func (w *Walker) documentation(id string, kind Kind) *Documentation {
	if w.cfg.SkipDocumentation || (kind != KindComponent && kind != KindComponentSet) {
		return nil
	}
	meta, ok := w.cfg.Documentation[id]
	if !ok || (meta.Key == "" && meta.Description == "") {
		return nil
	}
	return &Documentation{Key: meta.Key, Description: meta.Description}
}

func parentRef(parent *figma.Node) *ParentRef {
	if parent == nil {
		return nil
	}
	kind := Classify(parent.Type)
	return &ParentRef{ID: parent.ID, Name: parent.Name, Type: kind, VariantKind: kind.Variant()}
}
