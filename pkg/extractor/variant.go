package extractor

import (
	"unicode/utf8"

	"github.com/kataras/figma-components/pkg/figma"
)

// extractTypeSpecific dispatches on the variant of kind and fills exactly one payload.
func extractTypeSpecific(n *figma.Node, kind Kind) TypeSpecific {
	ts := TypeSpecific{Kind: kind.Variant()}

	switch ts.Kind {
	case VariantComponentSet:
		ts.ComponentSet = extractComponentSet(n)
	case VariantInstance:
		ts.Instance = extractInstance(n)
	case VariantText:
		ts.Text = extractTextPayload(n)
	case VariantFrameOrGroup:
		ts.Frame = &FramePayload{
			ChildCount:      len(n.Children),
			IsComponent:     kind == KindComponent,
			BackgroundColor: colorFrom(n.BackgroundColor),
		}
		if n.ClipsContent != nil {
			clips := *n.ClipsContent
			ts.Frame.ClipsContent = &clips
		}
	case VariantShape:
		ts.Shape = extractShape(n, kind)
	case VariantVector:
		ts.Vector = &VectorPayload{
			FillPaths:        extractPaths(n.FillGeometry),
			StrokePaths:      extractPaths(n.StrokeGeometry),
			BooleanOperation: deref(n.BooleanOperation),
		}
	}

	return ts
}

// extractComponentSet counts variants: the direct COMPONENT children of the set.
func extractComponentSet(n *figma.Node) *ComponentSetPayload {
	p := &ComponentSetPayload{}
	for i := range n.Children {
		if Classify(n.Children[i].Type) != KindComponent {
			continue
		}
		p.VariantCount++
		p.VariantNames = append(p.VariantNames, n.Children[i].Name)
	}

	if len(n.ComponentPropertyDefinitions) > 0 {
		p.Properties = make(map[string]PropertyDefinition, len(n.ComponentPropertyDefinitions))
		for name, def := range n.ComponentPropertyDefinitions {
			p.Properties[name] = PropertyDefinition{
				Type:           def.Type,
				DefaultValue:   def.DefaultValue,
				VariantOptions: append([]string(nil), def.VariantOptions...),
			}
		}
	}
	return p
}

func extractInstance(n *figma.Node) *InstancePayload {
	p := &InstancePayload{ComponentID: n.ComponentID}

	for _, o := range n.Overrides {
		p.Overrides = append(p.Overrides, Override{
			ID:     o.ID,
			Fields: append([]string{}, o.OverriddenFields...),
		})
	}

	if len(n.ComponentProperties) > 0 {
		p.Properties = make(map[string]PropertyValue, len(n.ComponentProperties))
		for name, prop := range n.ComponentProperties {
			p.Properties[name] = PropertyValue{Type: prop.Type, Value: prop.Value}
		}
	}
	return p
}

func extractTextPayload(n *figma.Node) *TextPayload {
	return &TextPayload{
		CharacterCount:    utf8.RuneCountInString(deref(n.Characters)),
		AutoResize:        deref(n.TextAutoResize),
		HasStyleOverrides: len(n.CharacterStyleOverrides) > 0,
	}
}

func extractShape(n *figma.Node, kind Kind) *ShapePayload {
	p := &ShapePayload{Shape: string(kind)}
	if kind == KindEllipse && n.ArcData != nil {
		p.Arc = &Arc{
			StartingAngle: n.ArcData.StartingAngle,
			EndingAngle:   n.ArcData.EndingAngle,
			InnerRadius:   n.ArcData.InnerRadius,
		}
	}
	return p
}

func extractPaths(paths []figma.Path) []Path {
	if len(paths) == 0 {
		return nil
	}
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		out = append(out, Path{Data: p.Path, WindingRule: p.WindingRule})
	}
	return out
}
