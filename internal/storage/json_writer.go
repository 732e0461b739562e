package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"healthsites/internal/logger"
	"healthsites/pkg/checksum"
)

// WriteResult describes one written file.
type WriteResult struct {
	Path string
	Hash string
	// Size is the file size in bytes.
	Size int
	// Unchanged is true when the previous file had identical content.
	Unchanged bool
}

// SizeKB returns the file size in kilobytes.
func (r *WriteResult) SizeKB() float64 {
	return float64(r.Size) / 1024
}

// JSONWriter writes documents as indented UTF-8 JSON.
type JSONWriter struct {
	logger *logger.Logger
	indent string
}

// NewJSONWriter creates a writer using two-space indentation.
func NewJSONWriter(log *logger.Logger) *JSONWriter {
	if log == nil {
		log = logger.Discard()
	}

	return &JSONWriter{logger: log, indent: "  "}
}

// Encode renders v without HTML escaping so names like "Mother & Child" stay readable.
func (w *JSONWriter) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", w.indent)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return buf.Bytes(), nil
}

// Write encodes v and overwrites path with it, creating parent directories.
func (w *JSONWriter) Write(path string, v any) (*WriteResult, error) {
	data, err := w.Encode(v)
	if err != nil {
		return nil, err
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0755); mkdirErr != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", mkdirErr)
	}

	unchanged, err := checksum.Matches(path, data)
	if err != nil {
		w.logger.Warn("Could not compare with previous output", "path", path, "error", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	result := &WriteResult{
		Path:      path,
		Hash:      checksum.CalculateHash(data),
		Size:      len(data),
		Unchanged: unchanged,
	}

	w.logger.Debug("Wrote JSON output", "path", path, "bytes", result.Size, "sha256", result.Hash, "unchanged", unchanged)

	return result, nil
}
