package figma

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileResponse represents the complete response from the Figma file API endpoint.
// It contains the file metadata, document structure, component metadata, published styles and schema version.
type FileResponse struct {
	Name          string               `json:"name"`
	LastModified  string               `json:"lastModified"`
	ThumbnailURL  string               `json:"thumbnailUrl"`
	Version       string               `json:"version"`
	Document      Node                 `json:"document"`
	Components    map[string]Component `json:"components,omitempty"`
	ComponentSets map[string]Component `json:"componentSets,omitempty"`
	Styles        map[string]Style     `json:"styles,omitempty"`
	SchemaVersion int                  `json:"schemaVersion"`
}

// NodesResponse represents the response from the Figma nodes API endpoint when fetching specific nodes.
// It contains file metadata and a map of node IDs to their corresponding NodeData.
// A requested node that does not exist is returned as a nil entry.
type NodesResponse struct {
	Name         string               `json:"name"`
	LastModified string               `json:"lastModified"`
	Version      string               `json:"version"`
	Nodes        map[string]*NodeData `json:"nodes"`
}

// NodeData wraps a node with its document structure and optional component/style information.
type NodeData struct {
	Document      Node                 `json:"document"`
	Components    map[string]Component `json:"components,omitempty"`
	ComponentSets map[string]Component `json:"componentSets,omitempty"`
	Styles        map[string]Style     `json:"styles,omitempty"`
}

// ImagesResponse is the response of the render (images) endpoint: node id -> temporary image URL.
// A node that could not be rendered maps to an empty string (null in the payload).
type ImagesResponse struct {
	Err    *string            `json:"err"`
	Images map[string]*string `json:"images"`
}

// URL returns the rendered image URL for a node, or "" when there is none.
func (r *ImagesResponse) URL(nodeID string) string {
	if r == nil || r.Images == nil {
		return ""
	}
	if u := r.Images[nodeID]; u != nil {
		return *u
	}
	return ""
}

// Component represents a Figma component (or component set) definition with its documentation.
type Component struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ComponentSetID string `json:"componentSetId,omitempty"`
	Remote         bool   `json:"remote,omitempty"`
}

// Style represents a published Figma style with its basic properties.
// Styles can be colors (FILL), text styles (TEXT), effects (EFFECT), or layout grids (GRID).
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"styleType"`
}

// Node is a single raw element of the Figma document tree.
//
// The shape of a node depends on its Type: every field other than ID and
// Type is optional, and optional scalars are pointers so that an absent
// field can be told apart from a zero value.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Visible  *bool  `json:"visible,omitempty"`
	Locked   *bool  `json:"locked,omitempty"`
	Children []Node `json:"children,omitempty"`

	// Geometry
	AbsoluteBoundingBox *Rectangle        `json:"absoluteBoundingBox,omitempty"`
	RelativeTransform   [][]float64       `json:"relativeTransform,omitempty"`
	Constraints         *LayoutConstraint `json:"constraints,omitempty"`
	ClipsContent        *bool             `json:"clipsContent,omitempty"`

	// Auto-layout
	LayoutMode            *string  `json:"layoutMode,omitempty"`
	LayoutWrap            *string  `json:"layoutWrap,omitempty"`
	PrimaryAxisSizingMode *string  `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode *string  `json:"counterAxisSizingMode,omitempty"`
	PrimaryAxisAlignItems *string  `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems *string  `json:"counterAxisAlignItems,omitempty"`
	PaddingLeft           *float64 `json:"paddingLeft,omitempty"`
	PaddingRight          *float64 `json:"paddingRight,omitempty"`
	PaddingTop            *float64 `json:"paddingTop,omitempty"`
	PaddingBottom         *float64 `json:"paddingBottom,omitempty"`
	ItemSpacing           *float64 `json:"itemSpacing,omitempty"`

	CornerRadius         *Radius      `json:"cornerRadius,omitempty"`
	RectangleCornerRadii []float64    `json:"rectangleCornerRadii,omitempty"`
	LayoutGrids          []LayoutGrid `json:"layoutGrids,omitempty"`

	// Style
	BlendMode        string   `json:"blendMode,omitempty"`
	Opacity          *float64 `json:"opacity,omitempty"`
	BackgroundColor  *Color   `json:"backgroundColor,omitempty"`
	Fills            []Paint  `json:"fills,omitempty"`
	Strokes          []Paint  `json:"strokes,omitempty"`
	StrokeWeight     *float64 `json:"strokeWeight,omitempty"`
	StrokeAlign      *string  `json:"strokeAlign,omitempty"`
	StrokeJoin       *string  `json:"strokeJoin,omitempty"`
	StrokeCap        *string  `json:"strokeCap,omitempty"`
	StrokeMiterAngle *float64 `json:"strokeMiterAngle,omitempty"`
	Effects          []Effect `json:"effects,omitempty"`

	// Text
	Characters              *string    `json:"characters,omitempty"`
	Style                   *TypeStyle `json:"style,omitempty"`
	TextAutoResize          *string    `json:"textAutoResize,omitempty"`
	TextAlignHorizontal     *string    `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical       *string    `json:"textAlignVertical,omitempty"`
	CharacterStyleOverrides []int      `json:"characterStyleOverrides,omitempty"`

	// Components and instances
	ComponentID                  string                        `json:"componentId,omitempty"`
	ComponentProperties          map[string]ComponentProperty  `json:"componentProperties,omitempty"`
	ComponentPropertyDefinitions map[string]PropertyDefinition `json:"componentPropertyDefinitions,omitempty"`
	Overrides                    []Override                    `json:"overrides,omitempty"`

	// Shapes and vectors
	ArcData          *ArcData `json:"arcData,omitempty"`
	FillGeometry     []Path   `json:"fillGeometry,omitempty"`
	StrokeGeometry   []Path   `json:"strokeGeometry,omitempty"`
	BooleanOperation *string  `json:"booleanOperation,omitempty"`
}

// Radius is the cornerRadius field of a node, which the source sends either
// as a single number or as a four-corner object. Exactly one of Scalar and
// Corners is set after decoding.
type Radius struct {
	Scalar  *float64
	Corners *RadiusCorners
}

// RadiusCorners is the four-corner form of a corner radius.
type RadiusCorners struct {
	TopLeft     *float64 `json:"topLeft,omitempty"`
	TopRight    *float64 `json:"topRight,omitempty"`
	BottomRight *float64 `json:"bottomRight,omitempty"`
	BottomLeft  *float64 `json:"bottomLeft,omitempty"`
}

// UniformRadius returns a scalar corner radius.
func UniformRadius(v float64) *Radius {
	return &Radius{Scalar: &v}
}

// UnmarshalJSON accepts a number or a {topLeft,topRight,bottomRight,bottomLeft} object.
func (r *Radius) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '{' {
		var corners RadiusCorners
		if err := json.Unmarshal(data, &corners); err != nil {
			return fmt.Errorf("corner radius object: %w", err)
		}
		r.Corners = &corners
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("corner radius: %w", err)
	}
	r.Scalar = &v
	return nil
}

// MarshalJSON writes the radius back in the form it was decoded from.
func (r Radius) MarshalJSON() ([]byte, error) {
	if r.Corners != nil {
		return json.Marshal(r.Corners)
	}
	if r.Scalar != nil {
		return json.Marshal(*r.Scalar)
	}
	return []byte("null"), nil
}

// Color represents an RGBA color with float values ranging from 0 to 1.
// A nil A means the alpha channel was not sent and is fully opaque.
type Color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// Alpha returns the alpha channel, defaulting to 1.
func (c *Color) Alpha() float64 {
	if c == nil || c.A == nil {
		return 1
	}
	return *c.A
}

// ColorStop is one stop of a gradient paint.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    *Color  `json:"color,omitempty"`
}

// Paint represents a fill or stroke applied to a Figma node.
// It includes the paint type (SOLID, GRADIENT_LINEAR, IMAGE, etc.), visibility, opacity and color information.
type Paint struct {
	Type          string      `json:"type"`
	Visible       *bool       `json:"visible,omitempty"`
	Opacity       *float64    `json:"opacity,omitempty"`
	BlendMode     string      `json:"blendMode,omitempty"`
	Color         *Color      `json:"color,omitempty"`
	GradientStops []ColorStop `json:"gradientStops,omitempty"`
	ImageRef      string      `json:"imageRef,omitempty"`
	ScaleMode     string      `json:"scaleMode,omitempty"`
}

// Effect represents a visual effect applied to a Figma node such as drop shadows, inner shadows, or blur effects.
type Effect struct {
	Type      string   `json:"type"`
	Visible   *bool    `json:"visible,omitempty"`
	Radius    *float64 `json:"radius,omitempty"`
	Color     *Color   `json:"color,omitempty"`
	Offset    *Vector  `json:"offset,omitempty"`
	Spread    *float64 `json:"spread,omitempty"`
	BlendMode string   `json:"blendMode,omitempty"`
}

// Vector represents a 2D coordinate or offset with X and Y values.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle represents text styling properties from Figma.
type TypeStyle struct {
	FontFamily          string   `json:"fontFamily,omitempty"`
	FontPostScriptName  string   `json:"fontPostScriptName,omitempty"`
	FontWeight          *float64 `json:"fontWeight,omitempty"`
	FontSize            *float64 `json:"fontSize,omitempty"`
	Italic              *bool    `json:"italic,omitempty"`
	LineHeightPx        *float64 `json:"lineHeightPx,omitempty"`
	LetterSpacing       *float64 `json:"letterSpacing,omitempty"`
	TextCase            string   `json:"textCase,omitempty"`
	TextDecoration      string   `json:"textDecoration,omitempty"`
	TextAlignHorizontal string   `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string   `json:"textAlignVertical,omitempty"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutConstraint defines how a node's position and size behave when its parent is resized.
type LayoutConstraint struct {
	Vertical   string `json:"vertical"`
	Horizontal string `json:"horizontal"`
}

// LayoutGrid is a layout grid (columns, rows or a uniform grid) attached to a frame.
type LayoutGrid struct {
	Pattern     string   `json:"pattern"`
	Alignment   string   `json:"alignment,omitempty"`
	SectionSize *float64 `json:"sectionSize,omitempty"`
	GutterSize  *float64 `json:"gutterSize,omitempty"`
	Offset      *float64 `json:"offset,omitempty"`
	Count       *int     `json:"count,omitempty"`
	Visible     *bool    `json:"visible,omitempty"`
	Color       *Color   `json:"color,omitempty"`
}

// ComponentProperty is the resolved value of a component property on an instance.
type ComponentProperty struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// PropertyDefinition declares a property on a component or component set.
type PropertyDefinition struct {
	Type           string   `json:"type"`
	DefaultValue   any      `json:"defaultValue,omitempty"`
	VariantOptions []string `json:"variantOptions,omitempty"`
}

// Override lists the fields of a nested node that an instance overrides.
type Override struct {
	ID               string   `json:"id"`
	OverriddenFields []string `json:"overriddenFields"`
}

// ArcData describes a partial ellipse.
type ArcData struct {
	StartingAngle float64 `json:"startingAngle"`
	EndingAngle   float64 `json:"endingAngle"`
	InnerRadius   float64 `json:"innerRadius"`
}

// Path is an SVG path returned with geometry=paths.
type Path struct {
	Path        string `json:"path"`
	WindingRule string `json:"windingRule,omitempty"`
}
