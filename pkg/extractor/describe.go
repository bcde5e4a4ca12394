package extractor

import (
	"fmt"
	"math"
	"strings"
)

// Describe builds a one-sentence summary of an already normalized component.
// It only reads populated fields and is deterministic. Numbers are rounded
// half up (2.5 -> 3, -2.5 -> -2).
//
// Example:
//
//	Card is a frame_or_group element, sized 320x200, positioned at (16, 24),
//	using VERTICAL auto-layout with MIN primary alignment, constrained LEFT
//	horizontally and TOP vertically, with 1 fill(s) and 1 effect(s),
//	containing 2 child element(s).
func Describe(c *Component) string {
	if c == nil {
		return ""
	}

	name := c.Metadata.Name
	if name == "" {
		name = "Unnamed"
	}
	kind := c.Metadata.VariantKind
	if kind == "" {
		kind = VariantNone
	}

	clauses := []string{fmt.Sprintf("%s is a %s element", name, kind)}

	if l := c.Layout; l != nil {
		if g := l.Geometry; g != nil {
			clauses = append(clauses,
				fmt.Sprintf("sized %dx%d", roundHalfUp(g.Width), roundHalfUp(g.Height)),
				fmt.Sprintf("positioned at (%d, %d)", roundHalfUp(g.X), roundHalfUp(g.Y)))
		}
		if a := l.AutoLayout; a != nil {
			clause := fmt.Sprintf("using %s auto-layout", a.Direction)
			if a.PrimaryAlign != "" {
				clause += fmt.Sprintf(" with %s primary alignment", a.PrimaryAlign)
			}
			clauses = append(clauses, clause)
		}
		if ct := l.Constraints; ct != nil {
			var axes []string
			if ct.Horizontal != "" {
				axes = append(axes, ct.Horizontal+" horizontally")
			}
			if ct.Vertical != "" {
				axes = append(axes, ct.Vertical+" vertically")
			}
			if len(axes) > 0 {
				clauses = append(clauses, "constrained "+strings.Join(axes, " and "))
			}
		}
	}

	if s := c.Style; s != nil {
		var counts []string
		if n := len(s.Fills); n > 0 {
			counts = append(counts, fmt.Sprintf("%d fill(s)", n))
		}
		if n := len(s.Strokes); n > 0 {
			counts = append(counts, fmt.Sprintf("%d stroke(s)", n))
		}
		if n := len(s.Effects); n > 0 {
			counts = append(counts, fmt.Sprintf("%d effect(s)", n))
		}
		if len(counts) > 0 {
			clauses = append(clauses, "with "+joinAnd(counts))
		}
	}

	if n := len(c.Children); n > 0 {
		clauses = append(clauses, fmt.Sprintf("containing %d child element(s)", n))
	}

	return strings.Join(clauses, ", ") + "."
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// joinAnd joins items as "a", "a and b" or "a, b and c".
func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
