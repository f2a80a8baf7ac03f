// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// fitzDocument reads pages through MuPDF.
type fitzDocument struct {
	doc *fitz.Document
}

// OpenFitz opens path with MuPDF.
func OpenFitz(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("mupdf: %w", err)
	}
	return &fitzDocument{doc: doc}, nil
}

func (d *fitzDocument) NumPage() int { return d.doc.NumPage() }

func (d *fitzDocument) PageText(i int) (string, error) {
	return d.doc.Text(i)
}

func (d *fitzDocument) Close() error { return d.doc.Close() }
