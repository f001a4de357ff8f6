// Package export writes ranked candidate records to a spreadsheet or JSON file.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/resume-scorer/internal/candidate"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Exporter writes records to path, best candidates first.
type Exporter interface {
	Export(records *candidate.Records, path string) error
}

// ForPath picks an exporter by the output file extension.
func ForPath(path string) (Exporter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return XLSX{}, nil
	case ".json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

func prepare(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}
