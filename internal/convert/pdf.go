// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// pdfDocument reads pages with the pure-Go ledongthuc/pdf reader. It needs
// no C toolchain, at the cost of weaker layout handling than MuPDF.
type pdfDocument struct {
	f *os.File
	r *pdf.Reader
}

// OpenPDF opens path with ledongthuc/pdf.
func OpenPDF(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return &pdfDocument{f: f, r: r}, nil
}

func (d *pdfDocument) NumPage() int { return d.r.NumPage() }

// PageText maps the 0-based index onto the reader's 1-based pages.
func (d *pdfDocument) PageText(i int) (string, error) {
	p := d.r.Page(i + 1)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func (d *pdfDocument) Close() error { return d.f.Close() }
