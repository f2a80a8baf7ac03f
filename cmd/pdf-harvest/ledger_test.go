// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/pdf-harvest/internal/ledger"
	"github.com/pdiddy/pdf-harvest/pkg/types"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short", in: "http://x/a.pdf", n: 20, want: "http://x/a.pdf"},
		{name: "exact", in: "abcde", n: 5, want: "abcde"},
		{name: "ascii", in: "abcdefghij", n: 6, want: "abc..."},
		{name: "multibyte", in: "http://x/résumé-été.pdf", n: 15, want: "http://x/rés..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestFormatEntries(t *testing.T) {
	var buf bytes.Buffer
	formatEntries(&buf, []ledger.Entry{
		{RunID: 1, Index: 0, URL: "http://x/a.pdf", Path: "pdf_files/a.pdf", Status: types.StatusDone},
		{RunID: 1, Index: 2, URL: "http://x/b.pdf", Status: types.StatusFetchFailed, Error: "HTTP 404 from http://x/b.pdf"},
	})
	out := buf.String()
	assert.Contains(t, out, "pdf_files/a.pdf")
	assert.Contains(t, out, "HTTP 404 from http://x/b.pdf")

	buf.Reset()
	formatEntries(&buf, nil)
	assert.Equal(t, "No entries recorded.\n", buf.String())
}
