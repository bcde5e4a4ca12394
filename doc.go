// Package figmacomponents extracts the components of a Figma file via the
// Figma API and persists one normalized artifact per component, together
// with a rendered image of it when one is available.
//
// Every COMPONENT and COMPONENT_SET node of the file is normalized into a
// self-contained record: metadata, layout (geometry, constraints,
// auto-layout, corner radius), visual style (fills, strokes, effects,
// typography), a type-specific payload and a one-sentence description.
// Children are normalized recursively up to a configurable depth ceiling;
// deeper nodes are elided.
//
// The CLI lives in cmd/figma-components; this root package exposes the same
// pipeline as a Go API so that callers can embed extraction in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmacomponents:
//
//	import "github.com/kataras/figma-components" // package figmacomponents
//
// # Quick start
//
//	result, err := figmacomponents.Run(ctx, figmacomponents.Options{
//	    AccessToken: os.Getenv("FIGMA_TOKEN"),
//	    FileURL:     "https://www.figma.com/design/ABC123/My-Design",
//	    OutputDir:   "components",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d of %d components persisted\n", result.Summary.Persisted, result.Summary.Found)
//
// Artifacts are named after the sanitized component name and id, for
// example components/ABC123/Primary_Button_1-2.json with the rendition in
// Primary_Button_1-2.svg, so re-runs overwrite earlier output.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # Node-scoped extraction
//
// To extract the components inside specific frames or pages rather than the
// entire file, populate [Options.NodeIDs] or include node-id query
// parameters in the Figma URL.
//
// # Storage
//
// Artifacts go to a directory tree by default. Set [Options.Store] to any
// store.Store to persist them elsewhere: package store also provides S3
// (minio), sqlite and postgres back-ends.
package figmacomponents
