// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/paper.pdf", false},
		{"http", "http://x/a.pdf", false},
		{"with query", "https://example.com/get.aspx?id=1", false},
		{"number", "42", true},
		{"bare word", "not-a-url", true},
		{"ftp scheme", "ftp://example.com/a.pdf", true},
		{"no host", "http:///a.pdf", true},
		{"empty", "", true},
		{"bad escape", "http://x/%zz", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://x/a.pdf", "a.pdf"},
		{"https://example.com/docs/2024/report.pdf", "report.pdf"},
		{"https://example.com/view.aspx?doc=7", "view.aspx?doc=7"},
		{"https://example.com/dir/", ""},
		{"no-slash", "no-slash"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.input), "FileName(%q)", tt.input)
	}
}

func TestLocalPath(t *testing.T) {
	got, err := LocalPath("pdf_files", "http://x/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("pdf_files", "a.pdf"), got)

	// Distinct URLs with the same final segment share a path.
	other, err := LocalPath("pdf_files", "http://y/other/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, got, other)

	for _, raw := range []string{"https://example.com/dir/", "http://x/.", "http://x/.."} {
		_, err := LocalPath("pdf_files", raw)
		assert.ErrorIs(t, err, ErrNoFilename, "LocalPath(%q)", raw)
	}
}
