package figmacomponents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/kataras/figma-components/pkg/extractor"
	"github.com/kataras/figma-components/pkg/figma"
	"github.com/kataras/figma-components/pkg/rendition"
	"github.com/kataras/figma-components/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fileJSON = `{
  "name": "Design System",
  "document": {"id": "0:0", "name": "Document", "type": "DOCUMENT", "children": [
    {"id": "0:1", "name": "Page 1", "type": "CANVAS", "children": [
      {"id": "1:1", "name": "Card", "type": "COMPONENT", "children": [
        {"id": "1:2", "name": "Label", "type": "TEXT", "characters": "Hi",
         "fills": [{"type": "SOLID", "color": {"r": 0, "g": 0, "b": 0, "a": 1}}]}
      ]},
      {"id": "2:1", "name": "Button", "type": "COMPONENT_SET", "children": [
        {"id": "2:2", "name": "State=Default", "type": "COMPONENT"}
      ]},
      {"id": "3:1", "name": "Loose frame", "type": "FRAME"}
    ]}
  ]},
  "components": {"1:1": {"key": "card-key", "name": "Card", "description": "A card"}}
}`

type fakeDocuments struct {
	file      *figma.FileResponse
	nodes     *figma.NodesResponse
	err       error
	gotIDs    []string
	gotOpts   figma.FileOptions
	fileCalls int
}

func (f *fakeDocuments) GetFile(_ context.Context, _ string, opts figma.FileOptions) (*figma.FileResponse, error) {
	f.fileCalls++
	f.gotOpts = opts
	return f.file, f.err
}

func (f *fakeDocuments) GetFileNodes(_ context.Context, _ string, ids []string, opts figma.FileOptions) (*figma.NodesResponse, error) {
	f.gotIDs = ids
	f.gotOpts = opts
	return f.nodes, f.err
}

func loadFile(t *testing.T) *figma.FileResponse {
	t.Helper()
	var resp figma.FileResponse
	require.NoError(t, json.Unmarshal([]byte(fileJSON), &resp))
	return &resp
}

func TestRun(t *testing.T) {
	docs := &fakeDocuments{file: loadFile(t)}
	st := store.NewMemoryStore()
	renditions := rendition.SourceFunc(func(_ context.Context, id string) ([]byte, error) {
		if id == "2:2" {
			return nil, errors.New("render failed")
		}
		return []byte("<svg/>"), nil
	})

	result, err := Run(context.Background(), Options{
		FileURL:    "https://www.figma.com/design/KEY123/Design-System",
		Documents:  docs,
		Renditions: renditions,
		Store:      st,
	})
	require.NoError(t, err)

	assert.Equal(t, "Design System", result.FileName)
	assert.Equal(t, "KEY123", result.FileKey)
	assert.Equal(t, 3, result.Components)
	assert.Equal(t, 3, result.Summary.Persisted)
	assert.Equal(t, 2, result.Summary.WithRendition)
	assert.Equal(t, 10, docs.gotOpts.Depth)
	assert.Contains(t, result.Markdown, "# Figma Components - Design System")

	paths, err := st.List(context.Background(), "KEY123")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Button_2-1.json", "Button_2-1.svg",
		"Card_1-1.json", "Card_1-1.svg",
		"State_Default_2-2.json",
	}, paths)

	data, err := st.Get(context.Background(), "KEY123", "Card_1-1.json")
	require.NoError(t, err)
	var card extractor.Component
	require.NoError(t, json.Unmarshal(data, &card))

	assert.Equal(t, extractor.VariantFrameOrGroup, card.Metadata.VariantKind)
	assert.Equal(t, "KEY123", card.Metadata.SourceFileKey)
	require.NotNil(t, card.Metadata.Documentation)
	assert.Equal(t, "A card", card.Metadata.Documentation.Description)
	require.Len(t, card.Children, 1)
	assert.Equal(t, "Hi", card.Children[0].Style.Text.Content)
	assert.Contains(t, card.Description, "containing 1 child element(s)")
}

func TestRun_ScopedNodes(t *testing.T) {
	file := loadFile(t)
	page := file.Document.Children[0]
	docs := &fakeDocuments{nodes: &figma.NodesResponse{
		Name: "Design System",
		Nodes: map[string]*figma.NodeData{
			"2:1":  {Document: page.Children[1]},
			"1:1":  {Document: page.Children[0]},
			"99:9": nil,
		},
	}}

	result, err := Run(context.Background(), Options{
		FileKey:        "KEY123",
		NodeIDs:        []string{"2:1", "99:9", "1:1", "2:1"},
		Documents:      docs,
		SkipRenditions: true,
		Store:          store.NewMemoryStore(),
		FetchDepth:     -1,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, docs.fileCalls)
	assert.Equal(t, 0, docs.gotOpts.Depth)

	var ids []string
	for _, r := range result.Summary.Results {
		ids = append(ids, r.NodeID)
	}
	assert.Equal(t, []string{"2:1", "2:2", "1:1"}, ids)
	assert.Equal(t, 0, result.Summary.WithRendition)
}

func TestRun_KeepsComponentsSharingAnID(t *testing.T) {
	file := &figma.FileResponse{Name: "Dupes", Document: figma.Node{ID: "0:0", Type: "DOCUMENT", Children: []figma.Node{
		{ID: "0:1", Type: "CANVAS", Children: []figma.Node{
			{ID: "5:5", Name: "Alpha", Type: "COMPONENT"},
			{ID: "5:5", Name: "Beta", Type: "COMPONENT"},
		}},
	}}}
	st := store.NewMemoryStore()

	result, err := Run(context.Background(), Options{
		FileKey:        "KEY123",
		Documents:      &fakeDocuments{file: file},
		SkipRenditions: true,
		Store:          st,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.Found)
	assert.Equal(t, 2, result.Summary.Persisted)

	paths, err := st.List(context.Background(), "KEY123")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha_5-5.json", "Beta_5-5.json"}, paths)
}

func TestRun_OverlappingScopedRoots(t *testing.T) {
	file := loadFile(t)
	set := file.Document.Children[0].Children[1]
	docs := &fakeDocuments{nodes: &figma.NodesResponse{
		Name: "Design System",
		Nodes: map[string]*figma.NodeData{
			"2:1": {Document: set},
			"2:2": {Document: set.Children[0]},
		},
	}}

	result, err := Run(context.Background(), Options{
		FileKey:        "KEY123",
		NodeIDs:        []string{"2:1", "2:2"},
		Documents:      docs,
		SkipRenditions: true,
		Store:          store.NewMemoryStore(),
	})
	require.NoError(t, err)

	var ids []string
	for _, r := range result.Summary.Results {
		ids = append(ids, r.NodeID)
	}
	assert.Equal(t, []string{"2:1", "2:2"}, ids)
}

func TestRun_NodeIDsFromURL(t *testing.T) {
	docs := &fakeDocuments{err: figma.ErrNotFound}
	_, err := Run(context.Background(), Options{
		FileURL:        "https://www.figma.com/design/KEY123/Design?node-id=5-7",
		Documents:      docs,
		SkipRenditions: true,
		Store:          store.NewMemoryStore(),
	})
	require.ErrorIs(t, err, figma.ErrNotFound)
	assert.Equal(t, []string{"5:7"}, docs.gotIDs)
}

func TestRun_FatalErrors(t *testing.T) {
	docs := &fakeDocuments{file: loadFile(t)}
	mem := store.NewMemoryStore()

	tests := []struct {
		name string
		opts Options
	}{
		{"no file", Options{Documents: docs, SkipRenditions: true, Store: mem}},
		{"bad url", Options{FileURL: "https://example.com/x", Documents: docs, SkipRenditions: true, Store: mem}},
		{"no token", Options{FileKey: "K"}},
		{"bad format", Options{FileKey: "K", Documents: docs, SkipRenditions: true, Store: mem, Format: "xml"}},
		{"bad rendition format", Options{FileKey: "K", Documents: docs, Renditions: rendition.SourceFunc(nil), Store: mem, RenditionFormat: "gif"}},
		{"document fetch", Options{FileKey: "K", Documents: &fakeDocuments{err: errors.New("offline")}, SkipRenditions: true, Store: mem}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestRun_FileStoreAndYAML(t *testing.T) {
	dir := t.TempDir()
	depth := 1
	result, err := Run(context.Background(), Options{
		FileKey:        "KEY123",
		Documents:      &fakeDocuments{file: loadFile(t)},
		SkipRenditions: true,
		OutputDir:      dir,
		Format:         "yaml",
		MaxDepth:       &depth,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Summary.Persisted)

	_, err = os.Stat(filepath.Join(dir, "KEY123", "Card_1-1.yaml"))
	assert.NoError(t, err)
}

func TestRun_VerboseReportsElision(t *testing.T) {
	file := &figma.FileResponse{Name: "Deep", Document: figma.Node{ID: "0:0", Type: "DOCUMENT", Children: []figma.Node{
		{ID: "1:1", Name: "Card", Type: "COMPONENT", Children: []figma.Node{
			{ID: "1:2", Name: "Body", Type: "FRAME", Children: []figma.Node{
				{ID: "1:3", Name: "Label", Type: "TEXT"},
			}},
		}},
	}}}

	logger := &testLogger{}
	depth := 1
	result, err := Run(context.Background(), Options{
		FileKey:        "KEY123",
		Documents:      &fakeDocuments{file: file},
		SkipRenditions: true,
		Store:          store.NewMemoryStore(),
		MaxDepth:       &depth,
		Verbose:        true,
		Logger:         logger,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Persisted)
	assert.Contains(t, logger.messages(), `Elided "Label" (1:3) at depth 2`)
}

type testLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *testLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *testLogger) Warnf(format string, args ...any)  {}
func (l *testLogger) Errorf(format string, args ...any) {}

func (l *testLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.infos...)
}

func TestParseNodeIDs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"1:2", []string{"1:2"}},
		{"1:2, 3:4 ,", []string{"1:2", "3:4"}},
		{"1-2,5-6", []string{"1:2", "5:6"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		if got := ParseNodeIDs(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseNodeIDs(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
