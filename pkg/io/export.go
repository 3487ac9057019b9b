package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/canvasort/pkg/canvas"
)

// WriteCanvas encodes a canvas document to w as 2-space indented JSON with
// a trailing newline. The same document always produces the same bytes,
// which is the whole point: the compiled file must be diff-stable.
func WriteCanvas(c canvas.Canvas, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalCanvas returns the canonical serialized bytes for a document.
func MarshalCanvas(c canvas.Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCanvas(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCanvas writes a canvas document to a JSON file at path.
// This is a convenience wrapper around [WriteCanvas] for file-based output.
func ExportCanvas(c canvas.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCanvas(c, f)
}
