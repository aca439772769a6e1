package xsdnorm

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jward/xsdnorm/internal/store"
)

// DefaultExtension is the schema-file extension considered during
// directory discovery.
const DefaultExtension = ".xsd"

// Engine orchestrates the normalization pipeline: file discovery, output
// path mapping, the load-transform-save cycle per file, and optional
// hash-based change detection backed by SQLite.
type Engine struct {
	store     *store.Store
	logger    *log.Logger
	recursive bool
	force     bool
	ext       string
	cachePath string
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecursive controls whether directory discovery descends into
// subdirectories. Off by default.
func WithRecursive(recursive bool) Option {
	return func(e *Engine) {
		e.recursive = recursive
	}
}

// WithExtension overrides the schema-file extension used during
// directory discovery (default ".xsd"). The leading dot is required.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		e.ext = ext
	}
}

// WithCache enables the normalization cache at dbPath. Inputs whose
// content hash and destination match the cached record, and whose output
// file still exists, are skipped on subsequent runs.
func WithCache(dbPath string) Option {
	return func(e *Engine) {
		e.cachePath = dbPath
	}
}

// WithForce makes Run normalize every discovered file even when the
// cache reports it unchanged.
func WithForce(force bool) Option {
	return func(e *Engine) {
		e.force = force
	}
}

// WithLogger sets the logger used for per-file progress and skip
// notices. Defaults to log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine. The cache store is only opened when WithCache
// was given; without it the Engine is purely filesystem-driven.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: log.Default(),
		ext:    DefaultExtension,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cachePath != "" {
		s, err := store.NewStore(e.cachePath)
		if err != nil {
			return nil, fmt.Errorf("xsdnorm: open cache: %w", err)
		}
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, fmt.Errorf("xsdnorm: migrate cache: %w", err)
		}
		e.store = s
	}
	return e, nil
}

// Close releases the Engine's cache resources, if any.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// RunStats summarizes one batch run.
type RunStats struct {
	// Processed counts files that went through the full
	// load-transform-save cycle.
	Processed int
	// Skipped counts files ignored because they lie inside the output
	// root.
	Skipped int
	// Unchanged counts files skipped by the cache.
	Unchanged int
}

// Run normalizes every schema file discovered under input into its
// mirrored location under output. Processing is sequential and
// fail-fast: the first parse or filesystem error aborts the batch.
// Files nested inside the output root are skipped with a notice instead,
// guarding against self-overwrite when output sits under input.
func (e *Engine) Run(ctx context.Context, input, output string) (*RunStats, error) {
	absIn, absOut, err := ResolveRoots(input, output)
	if err != nil {
		return nil, err
	}

	files, err := Discover(absIn, e.recursive, e.ext)
	if err != nil {
		return nil, err
	}

	stats := &RunStats{}
	for _, file := range files {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		if underRoot(absOut, file) {
			e.logger.Warnf("skipping %s: inside output root", file)
			stats.Skipped++
			continue
		}

		dst, err := OutputPath(absIn, absOut, file)
		if err != nil {
			return stats, err
		}

		processed, err := e.processFile(file, dst)
		if err != nil {
			return stats, err
		}
		if processed {
			stats.Processed++
		} else {
			stats.Unchanged++
		}
	}
	return stats, nil
}

// processFile runs the load-transform-save cycle for one file, honoring
// the cache when enabled. Returns false when the cache elided the work.
func (e *Engine) processFile(src, dst string) (bool, error) {
	content, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", src, err)
	}
	hash := fmt.Sprintf("%x", sha256.Sum256(content))

	if e.store != nil && !e.force {
		rec, err := e.store.FileByPath(src)
		if err != nil {
			return false, fmt.Errorf("cache lookup %s: %w", src, err)
		}
		if rec != nil && rec.Hash == hash && rec.OutputPath == dst {
			if _, err := os.Stat(dst); err == nil {
				e.logger.Debugf("unchanged: %s", src)
				return false, nil
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	e.logger.Infof("%s -> %s", src, dst)

	doc, err := ReadDocument(src)
	if err != nil {
		return false, err
	}
	Normalize(doc)
	if err := WriteDocument(doc, dst); err != nil {
		return false, err
	}

	if e.store != nil {
		err := e.store.UpsertFile(&store.File{
			Path:           src,
			Hash:           hash,
			OutputPath:     dst,
			LastNormalized: time.Now(),
		})
		if err != nil {
			return false, fmt.Errorf("cache update %s: %w", src, err)
		}
	}
	return true, nil
}
