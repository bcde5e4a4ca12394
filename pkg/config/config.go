// Package config loads run settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the settings of a run before command line overrides.
type Config struct {
	Token       string
	FileKey     string
	FileURL     string
	OutputDir   string
	MaxDepth    int
	Concurrency int
	Format      string
	Store       string
	StoreDSN    string
	Artifact    ArtifactConfig
}

// ArtifactConfig configures the S3-compatible artifact store.
type ArtifactConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const (
	DefaultOutputDir   = "figma_components"
	DefaultMaxDepth    = 10
	DefaultConcurrency = 4
	DefaultFormat      = "json"
	DefaultStore       = "file"
	DefaultBucket      = "figma-components"
	DefaultRegion      = "us-east-1"
)

// Load reads the given .env files (".env" when none are given; missing files
// are ignored) and then the process environment. Variables already set in
// the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	maxDepth, err := intEnv("FIGMA_MAX_DEPTH", DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	concurrency, err := intEnv("FIGMA_CONCURRENCY", DefaultConcurrency)
	if err != nil {
		return nil, err
	}
	useSSL, err := boolEnv("ARTIFACT_S3_USE_SSL", true)
	if err != nil {
		return nil, err
	}

	return &Config{
		Token:       env("FIGMA_TOKEN"),
		FileKey:     env("FIGMA_FILE_KEY"),
		FileURL:     env("FIGMA_FILE_URL"),
		OutputDir:   firstNonEmpty(env("FIGMA_OUTPUT_DIR"), DefaultOutputDir),
		MaxDepth:    maxDepth,
		Concurrency: concurrency,
		Format:      strings.ToLower(firstNonEmpty(env("FIGMA_FORMAT"), DefaultFormat)),
		Store:       strings.ToLower(firstNonEmpty(env("FIGMA_STORE"), DefaultStore)),
		StoreDSN:    env("FIGMA_STORE_DSN"),
		Artifact: ArtifactConfig{
			Endpoint:  env("ARTIFACT_S3_ENDPOINT"),
			Region:    firstNonEmpty(env("ARTIFACT_S3_REGION"), DefaultRegion),
			AccessKey: firstNonEmpty(env("ARTIFACT_S3_ACCESS_KEY"), env("MINIO_ROOT_USER")),
			SecretKey: firstNonEmpty(env("ARTIFACT_S3_SECRET_KEY"), env("MINIO_ROOT_PASSWORD")),
			Bucket:    firstNonEmpty(env("ARTIFACT_S3_BUCKET"), DefaultBucket),
			UseSSL:    useSSL,
		},
	}, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func intEnv(key string, def int) (int, error) {
	raw := env(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := env(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
