// Package store persists component artifacts.
//
// Artifacts are addressed by a namespace (the design file key) and a
// slash-separated path inside it. Writing the same address twice overwrites.
package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned by Get when no artifact exists at the address.
var ErrNotFound = errors.New("store: artifact not found")

// Store is a persistence sink for artifacts.
type Store interface {
	Put(ctx context.Context, namespace, path string, content []byte) error
	Get(ctx context.Context, namespace, path string) ([]byte, error)
	// List returns the sorted paths stored under namespace.
	List(ctx context.Context, namespace string) ([]string, error)
}

// Kind names a Store back-end.
type Kind string

const (
	KindFile     Kind = "file"
	KindMemory   Kind = "memory"
	KindS3       Kind = "s3"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// Config selects and configures a back-end for Open.
type Config struct {
	Kind Kind
	// Dir is the root directory of the file store.
	Dir string
	// DSN is the sqlite file path or the postgres connection string.
	DSN string
	S3  S3Config
}

// Open returns the Store described by cfg. An empty Kind selects the file store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch Kind(strings.ToLower(string(cfg.Kind))) {
	case "", KindFile:
		s, err = NewFileStore(cfg.Dir)
	case KindMemory:
		s = NewMemoryStore()
	case KindS3:
		s, err = NewS3Store(cfg.S3)
	case KindSQLite:
		s, err = OpenSQLite(ctx, cfg.DSN)
	case KindPostgres:
		s, err = OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("store: unknown kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the resources of s if it holds any.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// cleanAddress validates and normalizes an artifact address. Paths are
// relative, slash-separated and may not leave the namespace.
func cleanAddress(namespace, p string) (string, string, error) {
	ns, err := cleanNamespace(namespace)
	if err != nil {
		return "", "", err
	}

	p = strings.TrimSpace(p)
	if p == "" {
		return "", "", errors.New("store: path is required")
	}
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))[1:]
	if p == "" || p == "." {
		return "", "", errors.New("store: path is required")
	}
	return ns, p, nil
}

func cleanNamespace(namespace string) (string, error) {
	ns := strings.TrimSpace(namespace)
	if ns == "" {
		return "", errors.New("store: namespace is required")
	}
	if strings.ContainsAny(ns, `/\`) || ns == "." || ns == ".." {
		return "", fmt.Errorf("store: invalid namespace %q", namespace)
	}
	return ns, nil
}
