package logger

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldDocument is the structured log field key for the candidate name derived from a document.
	FieldDocument = "document"
	// FieldPath is the structured log field key for the document location on disk.
	FieldPath = "path"
	// FieldRunID identifies one batch run across all of its log entries.
	FieldRunID = "run_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields describes a resume document. The path is cleaned; empty values are dropped.
func DocumentFields(name, path string) []zap.Field {
	if strings.TrimSpace(path) != "" {
		path = filepath.Clean(path)
	}

	return StringFields(
		StringField{Key: FieldDocument, Value: name},
		StringField{Key: FieldPath, Value: path},
	)
}

func WithDocument(logger *zap.Logger, name, path string) *zap.Logger {
	return WithFields(logger, DocumentFields(name, path)...)
}
