// Package extract converts resume documents into the lowercase plain text
// consumed by the engine.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/logger"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extractor returns the plain text of a document.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Registry dispatches documents to extractors by file extension and
// lowercases their output.
type Registry struct {
	logger     *zap.Logger
	extractors map[string]Extractor
}

// NewRegistry returns a registry with the PDF, DOCX and plain text extractors registered.
func NewRegistry(log *zap.Logger) *Registry {
	log = logger.WithFields(log)
	r := &Registry{
		logger:     log,
		extractors: make(map[string]Extractor),
	}

	r.Register(".pdf", NewPDF(log))
	r.Register(".docx", NewDOCX())
	r.Register(".txt", Text{})
	r.Register(".md", Text{})

	return r
}

// Register binds ext (with or without the leading dot) to an extractor.
func (r *Registry) Register(ext string, e Extractor) {
	r.extractors[normalizeExt(ext)] = e
}

// Supports reports whether ext has a registered extractor.
func (r *Registry) Supports(ext string) bool {
	_, ok := r.extractors[normalizeExt(ext)]
	return ok
}

func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	ext := normalizeExt(filepath.Ext(path))
	e, ok := r.extractors[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := e.Extract(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", filepath.Base(path), err)
	}

	r.logger.Debug("text extracted",
		zap.String("path", path),
		zap.Int("chars", len([]rune(text))),
		zap.String("preview", logger.TruncateForLog(text, 80)),
	)

	return strings.ToLower(text), nil
}

// Discover lists the files in dir having one of the extensions, sorted by name.
// It does not descend into subdirectories.
func Discover(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	wanted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		wanted[normalizeExt(ext)] = struct{}{}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := wanted[normalizeExt(filepath.Ext(entry.Name()))]; ok {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
