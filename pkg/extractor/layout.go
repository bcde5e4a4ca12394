package extractor

import (
	"strings"

	"github.com/kataras/figma-components/pkg/figma"
)

// extractLayout collects geometry, constraints, auto-layout, corner radius and grids.
// It returns nil when the node carries none of them.
func extractLayout(n *figma.Node) *Layout {
	l := &Layout{
		Geometry:     extractGeometry(n.AbsoluteBoundingBox),
		Transform:    copyTransform(n.RelativeTransform),
		Constraints:  extractConstraints(n.Constraints),
		AutoLayout:   extractAutoLayout(n),
		CornerRadius: normalizeCornerRadius(n),
		Grids:        extractGrids(n.LayoutGrids),
	}

	if l.Geometry == nil && l.Transform == nil && l.Constraints == nil &&
		l.AutoLayout == nil && l.CornerRadius == nil && len(l.Grids) == 0 {
		return nil
	}
	return l
}

func extractGeometry(r *figma.Rectangle) *Geometry {
	if r == nil {
		return nil
	}
	return &Geometry{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func copyTransform(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func extractConstraints(c *figma.LayoutConstraint) *Constraints {
	if c == nil || (c.Horizontal == "" && c.Vertical == "") {
		return nil
	}
	return &Constraints{Horizontal: c.Horizontal, Vertical: c.Vertical}
}

// extractAutoLayout returns the auto-layout policy. A missing layoutMode and
// layoutMode NONE both mean the frame does not use auto-layout.
func extractAutoLayout(n *figma.Node) *AutoLayout {
	mode := deref(n.LayoutMode)
	if mode == "" || strings.EqualFold(mode, "NONE") {
		return nil
	}

	return &AutoLayout{
		Direction: mode,
		Wrap:      deref(n.LayoutWrap),
		Padding: Padding{
			Top:    copyFloat(n.PaddingTop),
			Right:  copyFloat(n.PaddingRight),
			Bottom: copyFloat(n.PaddingBottom),
			Left:   copyFloat(n.PaddingLeft),
		},
		ItemSpacing:   copyFloat(n.ItemSpacing),
		PrimaryAlign:  deref(n.PrimaryAxisAlignItems),
		CounterAlign:  deref(n.CounterAxisAlignItems),
		PrimarySizing: deref(n.PrimaryAxisSizingMode),
		CounterSizing: deref(n.CounterAxisSizingMode),
	}
}

// normalizeCornerRadius emits exactly one of the two radius forms.
//
// A four-field cornerRadius object is always per-corner. rectangleCornerRadii
// is per-corner unless all four corners are equal. A scalar cornerRadius is
// uniform. Corners missing from an object read as 0.
func normalizeCornerRadius(n *figma.Node) *CornerRadius {
	if n.CornerRadius != nil && n.CornerRadius.Corners != nil {
		c := n.CornerRadius.Corners
		return &CornerRadius{
			Kind: RadiusPerCorner,
			Corners: &Corners{
				TopLeft:     derefFloat(c.TopLeft),
				TopRight:    derefFloat(c.TopRight),
				BottomRight: derefFloat(c.BottomRight),
				BottomLeft:  derefFloat(c.BottomLeft),
			},
		}
	}

	if radii := n.RectangleCornerRadii; len(radii) == 4 {
		if radii[0] != radii[1] || radii[1] != radii[2] || radii[2] != radii[3] {
			return &CornerRadius{
				Kind: RadiusPerCorner,
				Corners: &Corners{
					TopLeft:     radii[0],
					TopRight:    radii[1],
					BottomRight: radii[2],
					BottomLeft:  radii[3],
				},
			}
		}
		if n.CornerRadius == nil || n.CornerRadius.Scalar == nil {
			v := radii[0]
			return &CornerRadius{Kind: RadiusUniform, Value: &v}
		}
	}

	if n.CornerRadius != nil && n.CornerRadius.Scalar != nil {
		return &CornerRadius{Kind: RadiusUniform, Value: copyFloat(n.CornerRadius.Scalar)}
	}
	return nil
}

func extractGrids(grids []figma.LayoutGrid) []Grid {
	if len(grids) == 0 {
		return nil
	}

	out := make([]Grid, 0, len(grids))
	for _, g := range grids {
		grid := Grid{
			Pattern:     strings.ToLower(g.Pattern),
			Alignment:   g.Alignment,
			SectionSize: copyFloat(g.SectionSize),
			GutterSize:  copyFloat(g.GutterSize),
			Offset:      copyFloat(g.Offset),
			Visible:     derefBool(g.Visible, true),
			Color:       colorFrom(g.Color),
		}
		// The API sends -1 for "auto" column/row counts.
		if g.Count != nil && *g.Count >= 0 {
			count := *g.Count
			grid.Count = &count
		}
		out = append(out, grid)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefBool(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
