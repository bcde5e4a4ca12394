package extractor

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kataras/figma-components/pkg/figma"
)

func ptr[T any](v T) *T { return &v }

func mustNode(t *testing.T, raw string) *figma.Node {
	t.Helper()
	var n figma.Node
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatalf("invalid node JSON: %v", err)
	}
	return &n
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestWalk_FrameWithText(t *testing.T) {
	root := mustNode(t, `{"type":"FRAME","id":"1:1","name":"Card","children":[
		{"type":"TEXT","id":"1:2","name":"Label","characters":"Hi","fills":[{"type":"SOLID","color":{"r":0,"g":0,"b":0,"a":1}}]}
	]}`)

	w := NewWalker(Config{FileKey: "KEY", Clock: fixedClock})
	got := w.Walk(root, nil, 0)
	if got == nil {
		t.Fatal("Walk() = nil")
	}

	if got.Metadata.VariantKind != VariantFrameOrGroup {
		t.Errorf("root variantKind = %v, want %v", got.Metadata.VariantKind, VariantFrameOrGroup)
	}
	if got.Parent != nil {
		t.Errorf("root parent = %+v, want nil", got.Parent)
	}
	if !got.Metadata.Visible || got.Metadata.Locked {
		t.Errorf("root visible/locked = %v/%v, want true/false", got.Metadata.Visible, got.Metadata.Locked)
	}
	if got.Metadata.SourceURL != "https://www.figma.com/file/KEY/?node-id=1:1" {
		t.Errorf("root sourceUrl = %q", got.Metadata.SourceURL)
	}
	if !strings.Contains(got.Description, "containing 1 child element(s)") {
		t.Errorf("root description = %q, want child count", got.Description)
	}
	if len(got.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(got.Children))
	}

	child := got.Children[0]
	if child.Metadata.VariantKind != VariantText {
		t.Errorf("child variantKind = %v, want %v", child.Metadata.VariantKind, VariantText)
	}
	if child.Metadata.DepthLevel != 1 {
		t.Errorf("child depthLevel = %d, want 1", child.Metadata.DepthLevel)
	}
	if child.Parent == nil || child.Parent.ID != "1:1" || child.Parent.Type != KindFrame {
		t.Errorf("child parent = %+v, want 1:1 frame", child.Parent)
	}
	if child.Parent != nil && child.Parent.VariantKind != VariantFrameOrGroup {
		t.Errorf("child parent variantKind = %v, want %v", child.Parent.VariantKind, VariantFrameOrGroup)
	}
	if child.Style == nil || child.Style.Text == nil || child.Style.Text.Content != "Hi" {
		t.Fatalf("child text = %+v, want content Hi", child.Style)
	}
	if len(child.Style.Fills) != 1 || child.Style.Fills[0].Color.Hex != "#000000" {
		t.Errorf("child fills = %+v", child.Style.Fills)
	}
	if child.TypeSpecific.Text == nil || child.TypeSpecific.Text.CharacterCount != 2 {
		t.Errorf("child text payload = %+v", child.TypeSpecific.Text)
	}
	if child.Description != "Label is a text element, with 1 fill(s)." {
		t.Errorf("child description = %q", child.Description)
	}
}

// chain builds a linear tree FRAME(0) > FRAME(1) > ... of the given depth.
func chain(depth int) *figma.Node {
	leaf := figma.Node{ID: fmt.Sprintf("n:%d", depth), Name: "leaf", Type: "RECTANGLE"}
	for d := depth - 1; d >= 0; d-- {
		leaf = figma.Node{ID: fmt.Sprintf("n:%d", d), Name: "level", Type: "FRAME", Children: []figma.Node{leaf}}
	}
	return &leaf
}

func maxDepthOf(c *Component) int {
	deepest := c.Metadata.DepthLevel
	for _, child := range c.Children {
		if d := maxDepthOf(child); d > deepest {
			deepest = d
		}
	}
	return deepest
}

func TestWalk_DepthCeiling(t *testing.T) {
	tests := []struct {
		treeDepth int
		ceiling   int
		want      int
	}{
		{treeDepth: 6, ceiling: 2, want: 2},
		{treeDepth: 6, ceiling: 1, want: 1},
		{treeDepth: 3, ceiling: 10, want: 3},
		{treeDepth: 4, ceiling: 0, want: 0},
		{treeDepth: 20, ceiling: -1, want: DefaultMaxDepth},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("depth %d ceiling %d", tt.treeDepth, tt.ceiling), func(t *testing.T) {
			var elided []int
			w := NewWalker(Config{
				MaxDepth: ptr(tt.ceiling),
				Clock:    fixedClock,
				OnElide:  func(_ *figma.Node, depth int) { elided = append(elided, depth) },
			})

			got := w.Normalize(chain(tt.treeDepth))
			if d := maxDepthOf(got); d != tt.want {
				t.Errorf("deepest emitted node = %d, want %d", d, tt.want)
			}

			wantElided := 0
			if tt.treeDepth > tt.want {
				wantElided = 1
			}
			if len(elided) != wantElided {
				t.Errorf("elided %v, want %d elision(s)", elided, wantElided)
			}
		})
	}
}

func TestWalk_ElidedChildIsNotAStub(t *testing.T) {
	w := NewWalker(Config{MaxDepth: ptr(1), Clock: fixedClock})
	got := w.Normalize(chain(3))

	level1 := got.Children[0]
	if len(level1.Children) != 0 {
		t.Fatalf("depth-1 node has %d children, want 0", len(level1.Children))
	}
	if strings.Contains(level1.Description, "child") {
		t.Errorf("description %q counts elided children", level1.Description)
	}
	if level1.TypeSpecific.Frame == nil || level1.TypeSpecific.Frame.ChildCount != 1 {
		t.Errorf("frame payload keeps the source child count, got %+v", level1.TypeSpecific.Frame)
	}
}

func TestWalk_BeyondCeilingReturnsNil(t *testing.T) {
	w := NewWalker(Config{MaxDepth: ptr(2)})
	if got := w.Walk(chain(1), nil, 3); got != nil {
		t.Errorf("Walk() at depth 3 = %+v, want nil", got)
	}
	if got := w.Walk(nil, nil, 0); got != nil {
		t.Errorf("Walk(nil) = %+v, want nil", got)
	}
}

func TestNewWalker_ClampsDepth(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth *int
		want     int
	}{
		{"unset", nil, DefaultMaxDepth},
		{"negative", ptr(-3), DefaultMaxDepth},
		{"root only", ptr(0), 0},
		{"above hard limit", ptr(1 << 20), HardMaxDepth},
	}

	for _, tt := range tests {
		if got := NewWalker(Config{MaxDepth: tt.maxDepth}).MaxDepth(); got != tt.want {
			t.Errorf("%s: MaxDepth() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func clearTimestamps(c *Component) {
	c.Metadata.ExtractedAt = time.Time{}
	for _, child := range c.Children {
		clearTimestamps(child)
	}
}

func TestWalk_Idempotent(t *testing.T) {
	root := mustNode(t, `{"type":"COMPONENT_SET","id":"2:1","name":"Button","children":[
		{"type":"COMPONENT","id":"2:2","name":"State=Default","cornerRadius":6,
		 "absoluteBoundingBox":{"x":0,"y":0,"width":120,"height":40},
		 "componentPropertyDefinitions":{"Label":{"type":"TEXT","defaultValue":"Go"}},
		 "fills":[{"type":"GRADIENT_LINEAR","gradientStops":[{"position":0,"color":{"r":1,"g":0,"b":0,"a":1}},{"position":1,"color":{"r":0,"g":0,"b":1,"a":1}}]}]},
		{"type":"COMPONENT","id":"2:3","name":"State=Hover"}
	],"componentPropertyDefinitions":{"State":{"type":"VARIANT","defaultValue":"Default","variantOptions":["Default","Hover"]},"Icon":{"type":"BOOLEAN","defaultValue":true}}}`)

	tick := 0
	w := NewWalker(Config{FileKey: "KEY", Clock: func() time.Time {
		tick++
		return fixedClock().Add(time.Duration(tick) * time.Minute)
	}})

	first, second := w.Normalize(root), w.Normalize(root)
	if first.Metadata.ExtractedAt.Equal(second.Metadata.ExtractedAt) {
		t.Fatalf("expected distinct timestamps between runs")
	}

	clearTimestamps(first)
	clearTimestamps(second)
	a, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("normalizing twice differs:\n%s\n%s", a, b)
	}
}

func TestWalk_SharedTimestamp(t *testing.T) {
	calls := 0
	w := NewWalker(Config{Clock: func() time.Time {
		calls++
		return fixedClock()
	}})
	w.Normalize(chain(4))
	if calls != 1 {
		t.Errorf("clock called %d times for one tree, want 1", calls)
	}
}

func TestWalk_CornerRadiusForms(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantKind    RadiusKind
		wantValue   float64
		wantCorners *Corners
	}{
		{
			name:      "scalar",
			raw:       `{"type":"RECTANGLE","id":"1","cornerRadius":8}`,
			wantKind:  RadiusUniform,
			wantValue: 8,
		},
		{
			name:        "per-corner object",
			raw:         `{"type":"RECTANGLE","id":"1","cornerRadius":{"topLeft":8,"topRight":8,"bottomRight":0,"bottomLeft":2}}`,
			wantKind:    RadiusPerCorner,
			wantCorners: &Corners{TopLeft: 8, TopRight: 8, BottomRight: 0, BottomLeft: 2},
		},
		{
			name:        "object with equal corners stays per-corner",
			raw:         `{"type":"FRAME","id":"1","cornerRadius":{"topLeft":4,"topRight":4,"bottomRight":4,"bottomLeft":4}}`,
			wantKind:    RadiusPerCorner,
			wantCorners: &Corners{TopLeft: 4, TopRight: 4, BottomRight: 4, BottomLeft: 4},
		},
		{
			name:        "rectangleCornerRadii mixed",
			raw:         `{"type":"RECTANGLE","id":"1","rectangleCornerRadii":[1,2,3,4]}`,
			wantKind:    RadiusPerCorner,
			wantCorners: &Corners{TopLeft: 1, TopRight: 2, BottomRight: 3, BottomLeft: 4},
		},
		{
			name:      "rectangleCornerRadii equal",
			raw:       `{"type":"RECTANGLE","id":"1","rectangleCornerRadii":[5,5,5,5]}`,
			wantKind:  RadiusUniform,
			wantValue: 5,
		},
		{
			name:      "scalar zero is present",
			raw:       `{"type":"RECTANGLE","id":"1","cornerRadius":0}`,
			wantKind:  RadiusUniform,
			wantValue: 0,
		},
	}

	w := NewWalker(Config{Clock: fixedClock})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.Normalize(mustNode(t, tt.raw))
			if got.Layout == nil || got.Layout.CornerRadius == nil {
				t.Fatalf("no corner radius in %+v", got.Layout)
			}
			r := got.Layout.CornerRadius
			if r.Kind != tt.wantKind {
				t.Fatalf("CornerRadius.Kind = %v, want %v", r.Kind, tt.wantKind)
			}

			switch r.Kind {
			case RadiusUniform:
				if r.Corners != nil {
					t.Errorf("uniform radius also has corners %+v", r.Corners)
				}
				if r.Value == nil || *r.Value != tt.wantValue {
					t.Errorf("CornerRadius.Value = %v, want %v", r.Value, tt.wantValue)
				}
			case RadiusPerCorner:
				if r.Value != nil {
					t.Errorf("per-corner radius also has value %v", *r.Value)
				}
				if r.Corners == nil || *r.Corners != *tt.wantCorners {
					t.Errorf("CornerRadius.Corners = %+v, want %+v", r.Corners, tt.wantCorners)
				}
			}
		})
	}

	if got := w.Normalize(&figma.Node{ID: "1", Type: "RECTANGLE"}); got.Layout != nil {
		t.Errorf("node without geometry or radius has layout %+v", got.Layout)
	}
}

func TestWalk_UnknownTypes(t *testing.T) {
	w := NewWalker(Config{Clock: fixedClock})
	for _, typ := range []string{"WIDGET", "STICKY", "", "shape_with_text"} {
		t.Run(typ, func(t *testing.T) {
			got := w.Normalize(&figma.Node{
				ID:    "9:9",
				Name:  "Thing",
				Type:  typ,
				Fills: []figma.Paint{{Type: "SOLID", Color: &figma.Color{R: 1}}},
			})
			if got == nil {
				t.Fatal("Normalize() = nil")
			}
			if got.Metadata.Type != KindOther || got.Metadata.VariantKind != VariantNone {
				t.Errorf("type/variant = %v/%v, want other/none", got.Metadata.Type, got.Metadata.VariantKind)
			}
			if got.TypeSpecific.Kind != VariantNone {
				t.Errorf("TypeSpecific.Kind = %v, want none", got.TypeSpecific.Kind)
			}
			if got.Style == nil || len(got.Style.Fills) != 1 {
				t.Errorf("generic style extraction missing: %+v", got.Style)
			}
			if got.Description != "Thing is a none element, with 1 fill(s)." {
				t.Errorf("description = %q", got.Description)
			}
		})
	}
}

func TestWalk_StyleDefaults(t *testing.T) {
	root := mustNode(t, `{"type":"RECTANGLE","id":"3:1","name":"Box",
		"fills":[
			{"type":"SOLID","color":{"r":1,"g":1,"b":1}},
			{"type":"SOLID","visible":false,"color":{"r":0,"g":0,"b":0}},
			{"type":"IMAGE","imageRef":"img-1","scaleMode":"FILL","opacity":0.4}
		],
		"strokes":[{"type":"SOLID","color":{"r":0,"g":0,"b":0,"a":0.5}}],
		"effects":[
			{"type":"DROP_SHADOW","color":{"r":0,"g":0,"b":0,"a":0.25},"offset":{"x":0,"y":4},"radius":8},
			{"type":"LAYER_BLUR"},
			{"type":"INNER_SHADOW","visible":false,"radius":2}
		]}`)

	got := NewWalker(Config{Clock: fixedClock}).Normalize(root)
	s := got.Style
	if s == nil {
		t.Fatal("Style = nil")
	}
	if s.Text != nil {
		t.Errorf("non-text node has text style %+v", s.Text)
	}

	if len(s.Fills) != 2 {
		t.Fatalf("got %d fills, want 2 visible", len(s.Fills))
	}
	if s.Fills[0].Opacity != 1 {
		t.Errorf("default opacity = %v, want 1", s.Fills[0].Opacity)
	}
	if s.Fills[1].ImageRef != "img-1" || s.Fills[1].Color != nil || s.Fills[1].Opacity != 0.4 {
		t.Errorf("image fill = %+v", s.Fills[1])
	}

	if len(s.Strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(s.Strokes))
	}
	if s.Strokes[0].Weight != 1 || s.Strokes[0].Align != "INSIDE" {
		t.Errorf("stroke defaults = %v/%v, want 1/INSIDE", s.Strokes[0].Weight, s.Strokes[0].Align)
	}
	if s.Strokes[0].Color.RGBA != "rgba(0, 0, 0, 0.5)" {
		t.Errorf("stroke color = %v", s.Strokes[0].Color.RGBA)
	}

	if len(s.Effects) != 2 {
		t.Fatalf("got %d effects, want 2 visible", len(s.Effects))
	}
	if s.Effects[0].Offset == nil || s.Effects[0].Offset.Y != 4 || s.Effects[0].Radius != 8 {
		t.Errorf("shadow = %+v", s.Effects[0])
	}
	if blur := s.Effects[1]; blur.Radius != 0 || blur.Color != nil || blur.Offset != nil || blur.Spread != nil {
		t.Errorf("blur should only carry defaults, got %+v", blur)
	}

	if got.TypeSpecific.Shape == nil || got.TypeSpecific.Shape.Shape != "rectangle" {
		t.Errorf("shape payload = %+v", got.TypeSpecific.Shape)
	}
}

func TestWalk_LayoutExtraction(t *testing.T) {
	root := mustNode(t, `{"type":"FRAME","id":"4:1","name":"Stack",
		"absoluteBoundingBox":{"x":10.5,"y":-2.5,"width":319.6,"height":200},
		"relativeTransform":[[1,0,10.5],[0,1,-2.5]],
		"constraints":{"horizontal":"LEFT_RIGHT","vertical":"TOP"},
		"layoutMode":"VERTICAL","paddingTop":16,"paddingLeft":8,"itemSpacing":12,
		"primaryAxisAlignItems":"CENTER","counterAxisAlignItems":"MIN",
		"layoutGrids":[{"pattern":"COLUMNS","alignment":"STRETCH","count":12,"gutterSize":20,"offset":0},{"pattern":"GRID","sectionSize":8,"count":-1,"visible":false}]
	}`)

	got := NewWalker(Config{Clock: fixedClock}).Normalize(root)
	l := got.Layout
	if l == nil {
		t.Fatal("Layout = nil")
	}
	if l.Geometry == nil || l.Geometry.Width != 319.6 {
		t.Errorf("geometry = %+v", l.Geometry)
	}
	if len(l.Transform) != 2 || l.Transform[0][2] != 10.5 {
		t.Errorf("transform = %v", l.Transform)
	}

	a := l.AutoLayout
	if a == nil {
		t.Fatal("AutoLayout = nil")
	}
	if a.Direction != "VERTICAL" || a.PrimaryAlign != "CENTER" || a.CounterAlign != "MIN" {
		t.Errorf("auto layout = %+v", a)
	}
	if a.Padding.Top == nil || *a.Padding.Top != 16 || a.Padding.Right != nil || a.Padding.Bottom != nil {
		t.Errorf("padding = %+v, want only top and left", a.Padding)
	}
	if a.ItemSpacing == nil || *a.ItemSpacing != 12 {
		t.Errorf("item spacing = %v", a.ItemSpacing)
	}

	if len(l.Grids) != 2 {
		t.Fatalf("got %d grids, want 2", len(l.Grids))
	}
	if g := l.Grids[0]; g.Pattern != "columns" || g.Count == nil || *g.Count != 12 || !g.Visible {
		t.Errorf("column grid = %+v", g)
	}
	if g := l.Grids[1]; g.Count != nil || g.Visible {
		t.Errorf("auto-count grid = %+v, want nil count and hidden", g)
	}

	want := "Stack is a frame_or_group element, sized 320x200, positioned at (11, -2), " +
		"using VERTICAL auto-layout with CENTER primary alignment, " +
		"constrained LEFT_RIGHT horizontally and TOP vertically."
	if got.Description != want {
		t.Errorf("description =\n%q\nwant\n%q", got.Description, want)
	}
}

func TestWalk_LayoutModeNone(t *testing.T) {
	got := NewWalker(Config{Clock: fixedClock}).Normalize(&figma.Node{ID: "1", Type: "FRAME", LayoutMode: ptr("NONE")})
	if got.Layout != nil {
		t.Errorf("layoutMode NONE produced layout %+v", got.Layout)
	}
}

func TestWalk_TypeSpecificPayloads(t *testing.T) {
	w := NewWalker(Config{Clock: fixedClock})

	set := w.Normalize(mustNode(t, `{"type":"COMPONENT_SET","id":"5:1","name":"Toggle",
		"componentPropertyDefinitions":{"State":{"type":"VARIANT","defaultValue":"On","variantOptions":["On","Off"]}},
		"children":[{"type":"COMPONENT","id":"5:2","name":"State=On"},{"type":"COMPONENT","id":"5:3","name":"State=Off"},{"type":"TEXT","id":"5:4","name":"note"}]}`))
	cs := set.TypeSpecific.ComponentSet
	if cs == nil || cs.VariantCount != 2 || len(cs.VariantNames) != 2 || cs.VariantNames[1] != "State=Off" {
		t.Errorf("component set payload = %+v", cs)
	}
	if def, ok := cs.Properties["State"]; !ok || def.Type != "VARIANT" || len(def.VariantOptions) != 2 {
		t.Errorf("State property = %+v", def)
	}
	if set.Children[0].TypeSpecific.Frame == nil || !set.Children[0].TypeSpecific.Frame.IsComponent {
		t.Errorf("variant component payload = %+v", set.Children[0].TypeSpecific)
	}

	inst := w.Normalize(mustNode(t, `{"type":"INSTANCE","id":"6:1","name":"Toggle","componentId":"5:2",
		"overrides":[{"id":"6:1;5:4","overriddenFields":["characters"]}],
		"componentProperties":{"State":{"type":"VARIANT","value":"On"},"Icon":{"type":"BOOLEAN","value":false}}}`))
	ip := inst.TypeSpecific.Instance
	if ip == nil || ip.ComponentID != "5:2" {
		t.Fatalf("instance payload = %+v", ip)
	}
	if len(ip.Overrides) != 1 || ip.Overrides[0].Fields[0] != "characters" {
		t.Errorf("overrides = %+v", ip.Overrides)
	}
	if v := ip.Properties["Icon"]; v.Type != "BOOLEAN" || v.Value != false {
		t.Errorf("Icon property = %+v", v)
	}

	vec := w.Normalize(mustNode(t, `{"type":"BOOLEAN_OPERATION","id":"7:1","name":"Icon","booleanOperation":"UNION",
		"fillGeometry":[{"path":"M0 0L10 0L10 10Z","windingRule":"NONZERO"}]}`))
	vp := vec.TypeSpecific.Vector
	if vp == nil || vp.BooleanOperation != "UNION" || len(vp.FillPaths) != 1 || vp.FillPaths[0].Data != "M0 0L10 0L10 10Z" {
		t.Errorf("vector payload = %+v", vp)
	}

	ellipse := w.Normalize(mustNode(t, `{"type":"ELLIPSE","id":"8:1","arcData":{"startingAngle":0,"endingAngle":3.14,"innerRadius":0.5}}`))
	if sp := ellipse.TypeSpecific.Shape; sp == nil || sp.Shape != "ellipse" || sp.Arc == nil || sp.Arc.InnerRadius != 0.5 {
		t.Errorf("ellipse payload = %+v", sp)
	}

	frame := w.Normalize(mustNode(t, `{"type":"GROUP","id":"9:1","clipsContent":false,"backgroundColor":{"r":1,"g":1,"b":1,"a":1}}`))
	fp := frame.TypeSpecific.Frame
	if fp == nil || fp.ClipsContent == nil || *fp.ClipsContent || fp.BackgroundColor == nil || fp.BackgroundColor.Hex != "#ffffff" {
		t.Errorf("group payload = %+v", fp)
	}
}

func TestWalk_Documentation(t *testing.T) {
	root := &figma.Node{ID: "1:1", Name: "Button", Type: "COMPONENT", Children: []figma.Node{{ID: "1:2", Type: "FRAME"}}}
	docs := map[string]figma.Component{
		"1:1": {Key: "k1", Description: "Primary action"},
		"1:2": {Key: "ignored", Description: "not a component"},
	}

	got := NewWalker(Config{Documentation: docs, Clock: fixedClock}).Normalize(root)
	if d := got.Metadata.Documentation; d == nil || d.Key != "k1" || d.Description != "Primary action" {
		t.Errorf("documentation = %+v", d)
	}
	if got.Children[0].Metadata.Documentation != nil {
		t.Errorf("non-component got documentation")
	}

	skipped := NewWalker(Config{Documentation: docs, SkipDocumentation: true, SkipStyles: true, Clock: fixedClock}).Normalize(root)
	if skipped.Metadata.Documentation != nil {
		t.Errorf("SkipDocumentation ignored")
	}
}

func TestWalk_VisibilityAndLock(t *testing.T) {
	got := NewWalker(Config{Clock: fixedClock}).Normalize(&figma.Node{ID: "1", Type: "TEXT", Visible: ptr(false), Locked: ptr(true)})
	if got.Metadata.Visible || !got.Metadata.Locked {
		t.Errorf("visible/locked = %v/%v, want false/true", got.Metadata.Visible, got.Metadata.Locked)
	}
	if got.Style == nil || got.Style.Text == nil || got.Style.Text.Content != "" {
		t.Errorf("text node without characters should still have empty text style, got %+v", got.Style)
	}
}

func TestExtractText_Alignment(t *testing.T) {
	tests := []struct {
		name           string
		json           string
		wantHorizontal string
		wantVertical   string
	}{
		{
			name:           "style",
			json:           `{"type":"TEXT","id":"1","style":{"textAlignHorizontal":"CENTER","textAlignVertical":"TOP"}}`,
			wantHorizontal: "CENTER",
			wantVertical:   "TOP",
		},
		{
			name:           "node level",
			json:           `{"type":"TEXT","id":"1","textAlignHorizontal":"RIGHT","textAlignVertical":"BOTTOM"}`,
			wantHorizontal: "RIGHT",
			wantVertical:   "BOTTOM",
		},
		{
			name:           "style wins",
			json:           `{"type":"TEXT","id":"1","textAlignHorizontal":"RIGHT","textAlignVertical":"BOTTOM","style":{"textAlignHorizontal":"LEFT"}}`,
			wantHorizontal: "LEFT",
			wantVertical:   "BOTTOM",
		},
		{
			name: "absent",
			json: `{"type":"TEXT","id":"1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractText(mustNode(t, tt.json)).Align
			if got.Horizontal != tt.wantHorizontal || got.Vertical != tt.wantVertical {
				t.Errorf("extractText().Align = %+v, want %s/%s", got, tt.wantHorizontal, tt.wantVertical)
			}
		})
	}
}
