package extractor

import "time"

// Component is the normalized record of one design node and its visible subtree.
//
// A Component is built once by a Walker and not modified afterwards, except
// for the single attachment of a rendition by the artifact pipeline.
type Component struct {
	Metadata     Metadata     `json:"metadata" yaml:"metadata"`
	Parent       *ParentRef   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Layout       *Layout      `json:"layout,omitempty" yaml:"layout,omitempty"`
	Style        *Style       `json:"style,omitempty" yaml:"style,omitempty"`
	TypeSpecific TypeSpecific `json:"typeSpecific" yaml:"typeSpecific"`
	Children     []*Component `json:"children" yaml:"children"`
	// Rendition is the raw rendered image. It is persisted as a sidecar file, never inline.
	Rendition   []byte `json:"-" yaml:"-"`
	Description string `json:"description" yaml:"description"`
}

// Metadata identifies a node and where it sits in the traversal.
type Metadata struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	Type          Kind           `json:"type" yaml:"type"`
	VariantKind   VariantKind    `json:"variantKind" yaml:"variantKind"`
	Visible       bool           `json:"visible" yaml:"visible"`
	Locked        bool           `json:"locked" yaml:"locked"`
	SourceFileKey string         `json:"sourceFileKey" yaml:"sourceFileKey"`
	SourceURL     string         `json:"sourceUrl,omitempty" yaml:"sourceUrl,omitempty"`
	ExtractedAt   time.Time      `json:"extractedAt" yaml:"extractedAt"`
	DepthLevel    int            `json:"depthLevel" yaml:"depthLevel"`
	Documentation *Documentation `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// Documentation is the published description of a component or component set.
type Documentation struct {
	Key         string `json:"key,omitempty" yaml:"key,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ParentRef is an informational back-reference to the raw parent node.
type ParentRef struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	VariantKind VariantKind `json:"variantKind" yaml:"variantKind"`
	Type        Kind        `json:"type" yaml:"type"`
}

// Layout holds geometry and layout policy.
type Layout struct {
	Geometry     *Geometry     `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Transform    [][]float64   `json:"transform,omitempty" yaml:"transform,omitempty"`
	Constraints  *Constraints  `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	AutoLayout   *AutoLayout   `json:"autoLayout,omitempty" yaml:"autoLayout,omitempty"`
	CornerRadius *CornerRadius `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty"`
	Grids        []Grid        `json:"grids,omitempty" yaml:"grids,omitempty"`
}

// Geometry is the absolute bounding box of a node.
type Geometry struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Constraints are the resize constraints of a node along each axis.
type Constraints struct {
	Horizontal string `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty" yaml:"vertical,omitempty"`
}

// AutoLayout is the auto-layout policy of a frame.
type AutoLayout struct {
	Direction     string   `json:"direction" yaml:"direction"`
	Wrap          string   `json:"wrap,omitempty" yaml:"wrap,omitempty"`
	Padding       Padding  `json:"padding" yaml:"padding"`
	ItemSpacing   *float64 `json:"itemSpacing,omitempty" yaml:"itemSpacing,omitempty"`
	PrimaryAlign  string   `json:"primaryAxisAlign,omitempty" yaml:"primaryAxisAlign,omitempty"`
	CounterAlign  string   `json:"counterAxisAlign,omitempty" yaml:"counterAxisAlign,omitempty"`
	PrimarySizing string   `json:"primaryAxisSizing,omitempty" yaml:"primaryAxisSizing,omitempty"`
	CounterSizing string   `json:"counterAxisSizing,omitempty" yaml:"counterAxisSizing,omitempty"`
}

// Padding is per-edge padding. Edges the source did not send stay nil.
type Padding struct {
	Top    *float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Right  *float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom *float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   *float64 `json:"left,omitempty" yaml:"left,omitempty"`
}

// RadiusKind discriminates the two corner radius forms.
type RadiusKind string

const (
	RadiusUniform   RadiusKind = "uniform"
	RadiusPerCorner RadiusKind = "per_corner"
)

// CornerRadius is either a uniform scalar (Value) or four corners (Corners), never both.
type CornerRadius struct {
	Kind    RadiusKind `json:"kind" yaml:"kind"`
	Value   *float64   `json:"value,omitempty" yaml:"value,omitempty"`
	Corners *Corners   `json:"corners,omitempty" yaml:"corners,omitempty"`
}

// Corners is the per-corner radius form.
type Corners struct {
	TopLeft     float64 `json:"topLeft" yaml:"topLeft"`
	TopRight    float64 `json:"topRight" yaml:"topRight"`
	BottomRight float64 `json:"bottomRight" yaml:"bottomRight"`
	BottomLeft  float64 `json:"bottomLeft" yaml:"bottomLeft"`
}

// Grid is a normalized layout grid.
type Grid struct {
	Pattern     string   `json:"pattern" yaml:"pattern"`
	Alignment   string   `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Count       *int     `json:"count,omitempty" yaml:"count,omitempty"`
	SectionSize *float64 `json:"sectionSize,omitempty" yaml:"sectionSize,omitempty"`
	GutterSize  *float64 `json:"gutterSize,omitempty" yaml:"gutterSize,omitempty"`
	Offset      *float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
	Visible     bool     `json:"visible" yaml:"visible"`
	Color       *Color   `json:"color,omitempty" yaml:"color,omitempty"`
}

// Style holds paints, effects and, for text nodes only, typography.
type Style struct {
	Fills   []Fill   `json:"fills,omitempty" yaml:"fills,omitempty"`
	Strokes []Stroke `json:"strokes,omitempty" yaml:"strokes,omitempty"`
	Effects []Effect `json:"effects,omitempty" yaml:"effects,omitempty"`
	Text    *Text    `json:"text,omitempty" yaml:"text,omitempty"`
}

// GradientStop is one stop of a gradient paint.
type GradientStop struct {
	Position float64 `json:"position" yaml:"position"`
	Color    *Color  `json:"color,omitempty" yaml:"color,omitempty"`
}

// Fill is one visible fill paint.
type Fill struct {
	Kind      string         `json:"kind" yaml:"kind"`
	BlendMode string         `json:"blendMode,omitempty" yaml:"blendMode,omitempty"`
	Opacity   float64        `json:"opacity" yaml:"opacity"`
	Color     *Color         `json:"color,omitempty" yaml:"color,omitempty"`
	Gradient  []GradientStop `json:"gradient,omitempty" yaml:"gradient,omitempty"`
	ImageRef  string         `json:"imageRef,omitempty" yaml:"imageRef,omitempty"`
	ScaleMode string         `json:"scaleMode,omitempty" yaml:"scaleMode,omitempty"`
}

// Stroke is one visible stroke paint with the node's stroke geometry.
type Stroke struct {
	Kind       string         `json:"kind" yaml:"kind"`
	BlendMode  string         `json:"blendMode,omitempty" yaml:"blendMode,omitempty"`
	Weight     float64        `json:"weight" yaml:"weight"`
	Align      string         `json:"align" yaml:"align"`
	Join       string         `json:"join,omitempty" yaml:"join,omitempty"`
	Cap        string         `json:"cap,omitempty" yaml:"cap,omitempty"`
	MiterAngle *float64       `json:"miterAngle,omitempty" yaml:"miterAngle,omitempty"`
	Color      *Color         `json:"color,omitempty" yaml:"color,omitempty"`
	Gradient   []GradientStop `json:"gradient,omitempty" yaml:"gradient,omitempty"`
}

// Offset is the x/y offset of a shadow.
type Offset struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Effect is one visible shadow or blur.
type Effect struct {
	Kind      string   `json:"kind" yaml:"kind"`
	BlendMode string   `json:"blendMode,omitempty" yaml:"blendMode,omitempty"`
	Radius    float64  `json:"radius" yaml:"radius"`
	Spread    *float64 `json:"spread,omitempty" yaml:"spread,omitempty"`
	Color     *Color   `json:"color,omitempty" yaml:"color,omitempty"`
	Offset    *Offset  `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// Text is the typography of a text node.
type Text struct {
	Content string    `json:"content" yaml:"content"`
	Font    Font      `json:"font" yaml:"font"`
	Align   TextAlign `json:"align" yaml:"align"`
}

// Font describes the base font of a text node.
type Font struct {
	Family         string   `json:"family,omitempty" yaml:"family,omitempty"`
	PostScriptName string   `json:"postScriptName,omitempty" yaml:"postScriptName,omitempty"`
	Weight         *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Size           *float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Italic         bool     `json:"italic,omitempty" yaml:"italic,omitempty"`
	LineHeight     *float64 `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	LetterSpacing  *float64 `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
	TextCase       string   `json:"textCase,omitempty" yaml:"textCase,omitempty"`
	TextDecoration string   `json:"textDecoration,omitempty" yaml:"textDecoration,omitempty"`
}

// TextAlign is the horizontal and vertical text alignment.
type TextAlign struct {
	Horizontal string `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty" yaml:"vertical,omitempty"`
}

// TypeSpecific is a tagged union: Kind selects which one of the payload
// pointers is set. VariantNone carries no payload.
type TypeSpecific struct {
	Kind         VariantKind          `json:"kind" yaml:"kind"`
	ComponentSet *ComponentSetPayload `json:"componentSet,omitempty" yaml:"componentSet,omitempty"`
	Instance     *InstancePayload     `json:"instance,omitempty" yaml:"instance,omitempty"`
	Text         *TextPayload         `json:"text,omitempty" yaml:"text,omitempty"`
	Frame        *FramePayload        `json:"frame,omitempty" yaml:"frame,omitempty"`
	Shape        *ShapePayload        `json:"shape,omitempty" yaml:"shape,omitempty"`
	Vector       *VectorPayload       `json:"vector,omitempty" yaml:"vector,omitempty"`
}

// ComponentSetPayload describes a set of component variants.
type ComponentSetPayload struct {
	VariantCount int                           `json:"variantCount" yaml:"variantCount"`
	VariantNames []string                      `json:"variantNames,omitempty" yaml:"variantNames,omitempty"`
	Properties   map[string]PropertyDefinition `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// PropertyDefinition declares a component property.
type PropertyDefinition struct {
	Type           string   `json:"type" yaml:"type"`
	DefaultValue   any      `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	VariantOptions []string `json:"variantOptions,omitempty" yaml:"variantOptions,omitempty"`
}

// InstancePayload describes an instance of a component.
type InstancePayload struct {
	ComponentID string                   `json:"componentId,omitempty" yaml:"componentId,omitempty"`
	Overrides   []Override               `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Properties  map[string]PropertyValue `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Override lists the fields an instance overrides on one nested node.
type Override struct {
	ID     string   `json:"id" yaml:"id"`
	Fields []string `json:"fields" yaml:"fields"`
}

// PropertyValue is the resolved value of a property on an instance.
type PropertyValue struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// TextPayload carries text-only attributes that are not typography.
type TextPayload struct {
	CharacterCount    int    `json:"characterCount" yaml:"characterCount"`
	AutoResize        string `json:"autoResize,omitempty" yaml:"autoResize,omitempty"`
	HasStyleOverrides bool   `json:"hasStyleOverrides" yaml:"hasStyleOverrides"`
}

// FramePayload describes frames, groups and components.
type FramePayload struct {
	ClipsContent    *bool  `json:"clipsContent,omitempty" yaml:"clipsContent,omitempty"`
	ChildCount      int    `json:"childCount" yaml:"childCount"`
	IsComponent     bool   `json:"isComponent" yaml:"isComponent"`
	BackgroundColor *Color `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
}

// ShapePayload describes rectangles and ellipses.
type ShapePayload struct {
	Shape string `json:"shape" yaml:"shape"`
	Arc   *Arc   `json:"arc,omitempty" yaml:"arc,omitempty"`
}

// Arc is the partial-ellipse data of an ellipse.
type Arc struct {
	StartingAngle float64 `json:"startingAngle" yaml:"startingAngle"`
	EndingAngle   float64 `json:"endingAngle" yaml:"endingAngle"`
	InnerRadius   float64 `json:"innerRadius" yaml:"innerRadius"`
}

// VectorPayload carries vector path geometry.
type VectorPayload struct {
	FillPaths        []Path `json:"fillPaths,omitempty" yaml:"fillPaths,omitempty"`
	StrokePaths      []Path `json:"strokePaths,omitempty" yaml:"strokePaths,omitempty"`
	BooleanOperation string `json:"booleanOperation,omitempty" yaml:"booleanOperation,omitempty"`
}

// Path is an SVG path with its winding rule.
type Path struct {
	Data        string `json:"data" yaml:"data"`
	WindingRule string `json:"windingRule,omitempty" yaml:"windingRule,omitempty"`
}
