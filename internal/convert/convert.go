// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts plain text from paged documents with pluggable
// backends.
//
// Extraction is best effort. Extract never returns an error to its caller
// and never panics: a failure stops reading and the Result keeps the text
// gathered up to that point alongside the reason.
package convert

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

// Document is an opened paged document. Pages are numbered from 0.
type Document interface {
	// NumPage returns the number of pages.
	NumPage() int

	// PageText returns the plain-text rendering of page i.
	PageText(i int) (string, error)

	// Close releases the document.
	Close() error
}

// Opener opens the file at path as a Document. Backends implement it.
type Opener func(path string) (Document, error)

// NewOpener returns the Opener for backend.
func NewOpener(backend types.ConversionBackend) (Opener, error) {
	switch backend {
	case types.BackendFitz, "":
		return OpenFitz, nil
	case types.BackendPDF:
		return OpenPDF, nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", backend)
	}
}

// Result is the outcome of extracting one document.
type Result struct {
	// Text is the concatenated text of the pages read, in page order.
	Text string

	// Pages is the number of pages whose text is in Text.
	Pages int

	// Err is why extraction stopped early, or nil.
	Err error
}

// OK reports whether every page was read.
func (r Result) OK() bool { return r.Err == nil }

// Extract opens path and appends the text of pages 0..NumPage()-1 in order.
func Extract(open Opener, path string) (res Result) {
	var b strings.Builder
	pages := 0
	defer func() {
		if p := recover(); p != nil {
			res = Result{
				Text:  b.String(),
				Pages: pages,
				Err:   fmt.Errorf("extracting %s: panic: %v", path, p),
			}
		}
	}()

	doc, err := open(path)
	if err != nil {
		return Result{Err: fmt.Errorf("opening %s: %w", path, err)}
	}
	defer doc.Close()

	n := doc.NumPage()
	for i := 0; i < n; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return Result{
				Text:  b.String(),
				Pages: pages,
				Err:   fmt.Errorf("reading page %d of %s: %w", i, path, err),
			}
		}
		b.WriteString(text)
		pages++
	}
	return Result{Text: b.String(), Pages: pages}
}
