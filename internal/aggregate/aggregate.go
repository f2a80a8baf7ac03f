// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate writes extracted text into one combined output file.
//
// A Writer is created at the start of a run and closed at its end. In
// verbatim mode every added text is written followed by a newline. In
// dedup mode text is split into lines, each line is trimmed, and only the
// first occurrence of each non-empty trimmed line is written.
package aggregate

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

// ErrClosed is returned by Add after Close.
var ErrClosed = errors.New("aggregate: writer closed")

// Stats counts what a Writer has accepted.
type Stats struct {
	// Documents is the number of Add calls.
	Documents int
	// Blocks is the number of text blocks written.
	Blocks int
	// Duplicates is the number of trimmed lines dropped because they were
	// already written (dedup only).
	Duplicates int
	// Empty is the number of lines dropped because they were blank after
	// trimming (dedup only).
	Empty int
}

// Writer appends text blocks to the combined output file.
type Writer struct {
	path  string
	mode  types.Mode
	f     *os.File
	w     *bufio.Writer
	seen   map[string]struct{}
	stats  Stats
	closed bool
}

// Create truncates or creates the file at path and returns a Writer for mode.
func Create(path string, mode types.Mode) (*Writer, error) {
	if _, err := types.ParseMode(string(mode)); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output %s: %w", path, err)
	}
	w := &Writer{
		path: path,
		mode: mode,
		f:    f,
		w:    bufio.NewWriter(f),
	}
	if mode == types.ModeDedup {
		w.seen = make(map[string]struct{})
	}
	return w, nil
}

// Path returns the output file path.
func (w *Writer) Path() string { return w.path }

// Mode returns the aggregation mode.
func (w *Writer) Mode() types.Mode { return w.mode }

// Stats returns the counters accumulated so far.
func (w *Writer) Stats() Stats { return w.stats }

// Add writes one document's text and returns the number of blocks written.
func (w *Writer) Add(text string) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	w.stats.Documents++
	if w.mode == types.ModeVerbatim {
		if _, err := w.w.WriteString(text); err != nil {
			return 0, fmt.Errorf("writing %s: %w", w.path, err)
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return 0, fmt.Errorf("writing %s: %w", w.path, err)
		}
		w.stats.Blocks++
		return 1, nil
	}

	written := 0
	for _, line := range strings.Split(text, "\n") {
		block := strings.TrimSpace(line)
		if block == "" {
			w.stats.Empty++
			continue
		}
		if _, ok := w.seen[block]; ok {
			w.stats.Duplicates++
			continue
		}
		w.seen[block] = struct{}{}
		if _, err := w.w.WriteString(block + "\n"); err != nil {
			return written, fmt.Errorf("writing %s: %w", w.path, err)
		}
		written++
		w.stats.Blocks++
	}
	return written, nil
}

// Close flushes buffered output and closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	flushErr := w.w.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return fmt.Errorf("flushing %s: %w", w.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", w.path, closeErr)
	}
	return nil
}
