// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest writes small real PDF files for tests.
package pdftest

import (
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// Write creates a PDF at path with one page per entry in pages. Each page
// holds its text on a single line in Helvetica. Streams are left
// uncompressed so any reader can parse them.
func Write(t testing.TB, path string, pages ...string) {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	for _, text := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		doc.Text(20, 20, text)
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing PDF %s: %v", path, err)
	}
}
