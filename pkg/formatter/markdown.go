package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kataras/figma-components/pkg/pipeline"
)

// ToMarkdown renders a pipeline run as a markdown report: run totals, a
// components table in document order, the synthesized description of each
// component and the failures, if any.
func ToMarkdown(summary *pipeline.Summary, fileName string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Figma Components - %s\n\n", fileName))
	if summary == nil {
		sb.WriteString("No components were processed.\n")
		return sb.String()
	}

	sb.WriteString("This document lists the components extracted from the Figma file.\n\n")

	// Totals
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Run**: `%s`\n", summary.RunID))
	if summary.Namespace != "" {
		sb.WriteString(fmt.Sprintf("- **File Key**: `%s`\n", summary.Namespace))
	}
	if !summary.StartedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Started**: %s\n", summary.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC")))
	}
	sb.WriteString(fmt.Sprintf("- **Found**: %d\n", summary.Found))
	sb.WriteString(fmt.Sprintf("- **Persisted**: %d\n", summary.Persisted))
	sb.WriteString(fmt.Sprintf("- **With Rendition**: %d\n", summary.WithRendition))
	sb.WriteString(fmt.Sprintf("- **Failed**: %d\n\n", summary.Failed))

	if len(summary.Results) == 0 {
		return sb.String()
	}

	// Components
	sb.WriteString("## Components\n\n")
	sb.WriteString("| Component | ID | Kind | Artifact | Rendition |\n")
	sb.WriteString("|-----------|----|------|----------|-----------|\n")
	for _, r := range summary.Results {
		if r.Err != nil {
			continue
		}
		rendition := "-"
		if r.HasRendition {
			rendition = "yes"
		}
		sb.WriteString(fmt.Sprintf("| [%s](#%s) | `%s` | %s | `%s` | %s |\n",
			escapeCell(displayName(r.Name)), anchor(r), r.NodeID, r.Kind, r.Artifact, rendition))
	}
	sb.WriteString("\n")

	// Descriptions
	sb.WriteString("## Descriptions\n\n")
	for _, r := range summary.Results {
		if r.Err != nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("### %s\n\n", displayName(r.Name)))
		sb.WriteString(fmt.Sprintf("<a id=\"%s\"></a>\n\n", anchor(r)))
		sb.WriteString(r.Description + "\n\n")
		for _, p := range r.Paths {
			sb.WriteString(fmt.Sprintf("- `%s`\n", p))
		}
		if len(r.Paths) > 0 {
			sb.WriteString("\n")
		}
	}

	// Failures
	if summary.Failed > 0 {
		sb.WriteString("## Failures\n\n")
		sb.WriteString("| Component | ID | Stage | Error |\n")
		sb.WriteString("|-----------|----|-------|-------|\n")
		for _, r := range summary.Results {
			if r.Err == nil {
				continue
			}
			stage, msg := "-", r.Err.Error()
			var cerr *pipeline.ComponentError
			if errors.As(r.Err, &cerr) {
				stage, msg = string(cerr.Stage), cerr.Err.Error()
			}
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %s | %s |\n",
				escapeCell(displayName(r.Name)), r.NodeID, stage, escapeCell(firstLine(msg))))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Unnamed"
	}
	return name
}

func anchor(r pipeline.Result) string {
	a := toKebabCase(r.Name)
	if a == "" {
		a = "component"
	}
	return a + "-" + toKebabCase(strings.ReplaceAll(r.NodeID, ":", "-"))
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// toKebabCase converts a string to kebab-case format (lowercase with hyphens).
// Special characters are removed, and spaces/underscores are replaced with hyphens.
func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
