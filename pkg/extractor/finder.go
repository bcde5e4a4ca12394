package extractor

import (
	"errors"
	"fmt"

	"github.com/kataras/figma-components/pkg/figma"
)

// ErrTraversalLimit is returned when a document is deeper or larger than the finder accepts.
var ErrTraversalLimit = errors.New("extractor: traversal limit exceeded")

// FinderLimits bound the component search. They are independent of the
// normalization depth ceiling and exist only to stop pathological inputs.
type FinderLimits struct {
	MaxDepth int // deepest nesting level visited
	MaxNodes int // total nodes visited
}

// DefaultFinderLimits are generous enough for any real design file.
var DefaultFinderLimits = FinderLimits{MaxDepth: 4096, MaxNodes: 2_000_000}

type frame struct {
	node  *figma.Node
	depth int
}

// FindComponents returns every COMPONENT and COMPONENT_SET node under root
// (root included) in document order. The returned pointers reference nodes
// inside root; nothing is copied or normalized.
//
// Nested components are all reported: a component set and its variants
// each appear. Zero limits select DefaultFinderLimits.
func FindComponents(root *figma.Node, limits FinderLimits) ([]*figma.Node, error) {
	if root == nil {
		return nil, nil
	}
	if limits.MaxDepth <= 0 {
		limits.MaxDepth = DefaultFinderLimits.MaxDepth
	}
	if limits.MaxNodes <= 0 {
		limits.MaxNodes = DefaultFinderLimits.MaxNodes
	}

	var (
		found   []*figma.Node
		visited int
		stack   = []frame{{node: root}}
	)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visited++
		if visited > limits.MaxNodes {
			return nil, fmt.Errorf("%w: more than %d nodes", ErrTraversalLimit, limits.MaxNodes)
		}
		if top.depth > limits.MaxDepth {
			return nil, fmt.Errorf("%w: node %q is nested deeper than %d", ErrTraversalLimit, top.node.ID, limits.MaxDepth)
		}

		if IsComponentDefinition(top.node.Type) {
			found = append(found, top.node)
		}

		// Push in reverse so the first child is popped first (pre-order).
		children := top.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &children[i], depth: top.depth + 1})
		}
	}

	return found, nil
}
