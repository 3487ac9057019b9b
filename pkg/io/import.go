package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/canvasort/pkg/canvas"
	"github.com/matzehuels/canvasort/pkg/errors"
)

// ReadCanvas decodes a canvas document from r.
//
// The input must be a JSON object; "nodes" and "edges" arrays are parsed
// into the typed model and every other key is preserved verbatim. Identifier
// and referential-integrity checking is deliberately not done here — that is
// the compiler's validation gate — so even documents the compiler would
// reject can be inspected.
//
// ReadCanvas does not close r.
func ReadCanvas(r io.Reader) (canvas.Canvas, error) {
	var c canvas.Canvas
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return canvas.Canvas{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode canvas")
	}
	return c, nil
}

// ImportCanvas reads the canvas file at path.
func ImportCanvas(path string) (canvas.Canvas, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return canvas.Canvas{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return canvas.Canvas{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCanvas(f)
}
