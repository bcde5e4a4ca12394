package extractor

import (
	"github.com/kataras/figma-components/pkg/figma"
)

const (
	defaultStrokeWeight = 1
	defaultStrokeAlign  = "INSIDE"
	defaultOpacity      = 1
)

// extractStyle collects visible fills, strokes and effects, and typography
// for text nodes. It returns nil when there is nothing to report.
func extractStyle(n *figma.Node, kind Kind) *Style {
	s := &Style{
		Fills:   extractFills(n.Fills),
		Strokes: extractStrokes(n),
		Effects: extractEffects(n.Effects),
	}
	if kind == KindText {
		s.Text = extractText(n)
	}

	if len(s.Fills) == 0 && len(s.Strokes) == 0 && len(s.Effects) == 0 && s.Text == nil {
		return nil
	}
	return s
}

func extractFills(paints []figma.Paint) []Fill {
	var fills []Fill
	for _, p := range paints {
		if !derefBool(p.Visible, true) {
			continue
		}
		opacity := float64(defaultOpacity)
		if p.Opacity != nil {
			opacity = *p.Opacity
		}
		fills = append(fills, Fill{
			Kind:      p.Type,
			BlendMode: p.BlendMode,
			Opacity:   opacity,
			Color:     colorFrom(p.Color),
			Gradient:  extractGradient(p.GradientStops),
			ImageRef:  p.ImageRef,
			ScaleMode: p.ScaleMode,
		})
	}
	return fills
}

// extractStrokes reports visible stroke paints. Weight, alignment and join
// settings live on the node and apply to every stroke paint.
func extractStrokes(n *figma.Node) []Stroke {
	var strokes []Stroke

	weight := float64(defaultStrokeWeight)
	if n.StrokeWeight != nil {
		weight = *n.StrokeWeight
	}
	align := defaultStrokeAlign
	if n.StrokeAlign != nil && *n.StrokeAlign != "" {
		align = *n.StrokeAlign
	}

	for _, p := range n.Strokes {
		if !derefBool(p.Visible, true) {
			continue
		}
		strokes = append(strokes, Stroke{
			Kind:       p.Type,
			BlendMode:  p.BlendMode,
			Weight:     weight,
			Align:      align,
			Join:       deref(n.StrokeJoin),
			Cap:        deref(n.StrokeCap),
			MiterAngle: copyFloat(n.StrokeMiterAngle),
			Color:      colorFrom(p.Color),
			Gradient:   extractGradient(p.GradientStops),
		})
	}
	return strokes
}

func extractEffects(effects []figma.Effect) []Effect {
	var out []Effect
	for _, e := range effects {
		if !derefBool(e.Visible, true) {
			continue
		}
		effect := Effect{
			Kind:      e.Type,
			BlendMode: e.BlendMode,
			Radius:    derefFloat(e.Radius),
			Spread:    copyFloat(e.Spread),
			Color:     colorFrom(e.Color),
		}
		if e.Offset != nil {
			effect.Offset = &Offset{X: e.Offset.X, Y: e.Offset.Y}
		}
		out = append(out, effect)
	}
	return out
}

func extractGradient(stops []figma.ColorStop) []GradientStop {
	if len(stops) == 0 {
		return nil
	}
	out := make([]GradientStop, 0, len(stops))
	for _, s := range stops {
		out = append(out, GradientStop{Position: s.Position, Color: colorFrom(s.Color)})
	}
	return out
}

func extractText(n *figma.Node) *Text {
	t := &Text{Content: deref(n.Characters)}
	if st := n.Style; st != nil {
		t.Font = Font{
			Family:         st.FontFamily,
			PostScriptName: st.FontPostScriptName,
			Weight:         copyFloat(st.FontWeight),
			Size:           copyFloat(st.FontSize),
			Italic:         derefBool(st.Italic, false),
			LineHeight:     copyFloat(st.LineHeightPx),
			LetterSpacing:  copyFloat(st.LetterSpacing),
			TextCase:       st.TextCase,
			TextDecoration: st.TextDecoration,
		}
		t.Align = TextAlign{Horizontal: st.TextAlignHorizontal, Vertical: st.TextAlignVertical}
	}
	// Some exports carry the alignment on the node rather than its style.
	if t.Align.Horizontal == "" {
		t.Align.Horizontal = deref(n.TextAlignHorizontal)
	}
	if t.Align.Vertical == "" {
		t.Align.Vertical = deref(n.TextAlignVertical)
	}
	return t
}
