package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/kataras/figma-components/pkg/extractor"

	"gopkg.in/yaml.v3"
)

// Format is the structured-text encoding of an artifact.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml" case-insensitively. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported artifact format %q (want json or yaml)", s)
	}
}

// Ext returns the file extension of f.
func (f Format) Ext() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Encode serializes a component. Output is deterministic for equal input.
func Encode(c *extractor.Component, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(c)
	case FormatJSON, "":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", f)
	}
}

// ArtifactName derives the stable base file name of a component:
// the sanitized name, an underscore and the sanitized id.
//
// Name characters that are not letters or digits become '_'. With
// permissive set, '_' and '-' are kept as well. In the id ':' becomes '-'
// and anything else that is not a letter, digit or '-' becomes '_'.
func ArtifactName(name, id string, permissive bool) string {
	if strings.TrimSpace(name) == "" {
		name = "Unnamed"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case permissive && (r == '_' || r == '-'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	b.WriteByte('_')
	for _, r := range id {
		switch {
		case r == ':':
			b.WriteByte('-')
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
