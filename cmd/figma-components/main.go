package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	figmacomponents "github.com/kataras/figma-components"
	"github.com/kataras/figma-components/pkg/config"
	"github.com/kataras/figma-components/pkg/figma"
	"github.com/kataras/figma-components/pkg/pipeline"
	"github.com/kataras/figma-components/pkg/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = figma.Version

var (
	figmaURL        string
	fileKey         string
	accessToken     string
	nodeIDs         string
	outputDir       string
	format          string
	maxDepth        int
	concurrency     int
	storeKind       string
	storeDSN        string
	noRenditions    bool
	permissiveNames bool
	reportFile      string
	verbose         bool
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Width(16)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-components",
		Short: "Extract the components of a Figma file",
		Long: "A tool to extract every component and component set of a Figma file via the Figma API, " +
			"persisting one normalized JSON or YAML artifact per component plus its SVG rendition",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&figmaURL, "url", "u", "", "Figma file URL (env FIGMA_FILE_URL)")
	flags.StringVarP(&fileKey, "file-key", "k", "", "Figma file key, instead of --url (env FIGMA_FILE_KEY)")
	flags.StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (env FIGMA_TOKEN)")
	flags.StringVarP(&nodeIDs, "node-ids", "n", "", "Comma-separated node IDs; only components inside them are extracted")
	flags.StringVarP(&outputDir, "output", "o", "", "Output directory of the file store (env FIGMA_OUTPUT_DIR, default \"figma_components\")")
	flags.StringVar(&format, "format", "", "Artifact format: json or yaml (env FIGMA_FORMAT)")
	flags.IntVar(&maxDepth, "max-depth", 0, "Normalization depth ceiling, 0 keeps only component roots (env FIGMA_MAX_DEPTH, default 10)")
	flags.IntVar(&concurrency, "concurrency", 0, "Components processed in parallel (env FIGMA_CONCURRENCY, default 4)")
	flags.StringVar(&storeKind, "store", "", "Artifact store: file, s3, sqlite or postgres (env FIGMA_STORE)")
	flags.StringVar(&storeDSN, "dsn", "", "sqlite path or postgres DSN (env FIGMA_STORE_DSN)")
	flags.BoolVar(&noRenditions, "no-renditions", false, "Do not fetch SVG renditions")
	flags.BoolVar(&permissiveNames, "permissive-names", false, "Keep '_' and '-' in artifact file names")
	flags.StringVar(&reportFile, "report", "", "Write a markdown report to this file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Report every node elided by the depth ceiling")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-components version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	cyan.Println("\n🎨 Figma Component Extractor")
	cyan.Println("=============================")
	cyan.Println()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	if cfg.FileKey == "" && cfg.FileURL == "" {
		return fmt.Errorf("a Figma file is required: pass --url or --file-key (or set FIGMA_FILE_URL / FIGMA_FILE_KEY)")
	}
	if cfg.Token == "" {
		return fmt.Errorf("a Figma access token is required: pass --token or set FIGMA_TOKEN")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		Kind: store.Kind(cfg.Store),
		Dir:  cfg.OutputDir,
		DSN:  cfg.StoreDSN,
		S3: store.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		},
	})
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer store.Close(st)

	var parsedNodeIDs []string
	if nodeIDs != "" {
		parsedNodeIDs = figmacomponents.ParseNodeIDs(nodeIDs)
	}

	result, err := figmacomponents.Run(ctx, figmacomponents.Options{
		AccessToken:     cfg.Token,
		FileURL:         cfg.FileURL,
		FileKey:         cfg.FileKey,
		NodeIDs:         parsedNodeIDs,
		MaxDepth:        &cfg.MaxDepth,
		Concurrency:     cfg.Concurrency,
		Format:          cfg.Format,
		PermissiveNames: permissiveNames,
		SkipRenditions:  noRenditions,
		Store:           st,
		Verbose:         verbose,
		Logger:          &cliLogger{},
	})
	if err != nil {
		return err
	}

	printSummary(cfg, result)

	if reportFile != "" {
		green.Printf("\n💾 Writing report to %s... ", reportFile)
		if err := os.WriteFile(reportFile, []byte(result.Markdown), 0644); err != nil {
			color.New(color.FgRed).Printf("✗\n")
			return err
		}
		green.Println("✓")
	}

	green.Printf("\n✨ Extracted %d of %d component(s) from %s\n\n", result.Summary.Persisted, result.Summary.Found, result.FileName)
	return nil
}

// applyFlags overrides environment settings with the flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.FileURL = figmaURL
		if !flags.Changed("file-key") {
			cfg.FileKey = ""
		}
	}
	if flags.Changed("file-key") {
		cfg.FileKey = fileKey
	}
	if flags.Changed("token") {
		cfg.Token = accessToken
	}
	if flags.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("format") {
		cfg.Format = strings.ToLower(format)
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("store") {
		cfg.Store = strings.ToLower(storeKind)
	}
	if flags.Changed("dsn") {
		cfg.StoreDSN = storeDSN
	}
}

func printSummary(cfg *config.Config, result *figmacomponents.Result) {
	s := result.Summary
	row := func(label string, value any) string {
		return labelStyle.Render(label) + fmt.Sprint(value)
	}

	failed := okStyle.Render("0")
	if s.Failed > 0 {
		failed = failStyle.Render(fmt.Sprint(s.Failed))
	}

	location := cfg.Store
	if cfg.Store == string(store.KindFile) || cfg.Store == "" {
		location = cfg.OutputDir
	}

	lines := []string{
		row("File", result.FileName),
		row("Run", s.RunID),
		row("Found", s.Found),
		row("Persisted", okStyle.Render(fmt.Sprint(s.Persisted))),
		row("With rendition", s.WithRendition),
		row("Failed", failed),
		row("Stored in", location),
		row("Took", s.Duration().Round(time.Millisecond)),
	}

	fmt.Println()
	fmt.Println(boxStyle.Render(strings.Join(lines, "\n")))

	for _, r := range s.Results {
		if r.Err == nil {
			continue
		}
		stage, cause := "", r.Err
		var cerr *pipeline.ComponentError
		if errors.As(r.Err, &cerr) {
			stage, cause = string(cerr.Stage)+": ", cerr.Err
		}
		color.New(color.FgRed).Printf("  ✗ %s (%s) %s%v\n", r.Name, r.NodeID, stage, cause)
	}
}

// cliLogger implements figmacomponents.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
