package extractor

import (
	"strings"

	"github.com/kataras/figma-components/pkg/figma"
)

// Kind is the classified type of a raw node.
type Kind string

const (
	KindComponent    Kind = "component"
	KindComponentSet Kind = "component_set"
	KindInstance     Kind = "instance"
	KindText         Kind = "text"
	KindFrame        Kind = "frame"
	KindGroup        Kind = "group"
	KindRectangle    Kind = "rectangle"
	KindEllipse      Kind = "ellipse"
	KindVector       Kind = "vector"
	KindOther        Kind = "other"
)

// VariantKind selects which type-specific payload a Component carries.
type VariantKind string

const (
	VariantComponentSet VariantKind = "component_set"
	VariantInstance     VariantKind = "instance"
	VariantText         VariantKind = "text"
	VariantFrameOrGroup VariantKind = "frame_or_group"
	VariantShape        VariantKind = "shape"
	VariantVector       VariantKind = "vector"
	VariantNone         VariantKind = "none"
)

var kindsByType = map[string]Kind{
	"component":         KindComponent,
	"component_set":     KindComponentSet,
	"instance":          KindInstance,
	"text":              KindText,
	"frame":             KindFrame,
	"group":             KindGroup,
	"rectangle":         KindRectangle,
	"ellipse":           KindEllipse,
	"vector":            KindVector,
	"line":              KindVector,
	"star":              KindVector,
	"regular_polygon":   KindVector,
	"boolean_operation": KindVector,
}

// Classify maps a raw node type tag (case-insensitive) to a Kind.
// Unknown and missing tags classify to KindOther; it never fails.
func Classify(nodeType string) Kind {
	if k, ok := kindsByType[strings.ToLower(strings.TrimSpace(nodeType))]; ok {
		return k
	}
	return KindOther
}

// ClassifyNode is Classify over a raw node; a nil node is KindOther.
func ClassifyNode(n *figma.Node) Kind {
	if n == nil {
		return KindOther
	}
	return Classify(n.Type)
}

// Variant returns the payload variant for a kind. Components are frame-like
// containers and share the frame_or_group payload.
func (k Kind) Variant() VariantKind {
	switch k {
	case KindComponentSet:
		return VariantComponentSet
	case KindInstance:
		return VariantInstance
	case KindText:
		return VariantText
	case KindFrame, KindGroup, KindComponent:
		return VariantFrameOrGroup
	case KindRectangle, KindEllipse:
		return VariantShape
	case KindVector:
		return VariantVector
	default:
		return VariantNone
	}
}

// IsComponentDefinition reports whether a raw type tag defines a component
// (COMPONENT or COMPONENT_SET).
func IsComponentDefinition(nodeType string) bool {
	k := Classify(nodeType)
	return k == KindComponent || k == KindComponentSet
}
