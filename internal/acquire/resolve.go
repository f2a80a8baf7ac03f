// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidURL marks link values that are not absolute http(s) URLs.
	// No request is made for them.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrNoFilename marks URLs whose final path segment is empty.
	ErrNoFilename = errors.New("URL has no file name")
)

// Validate checks that raw is an absolute http or https URL with a host.
func Validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}

// FileName returns the text after the final "/" of raw, taken literally:
// a query string or fragment stays part of the name.
func FileName(raw string) string {
	return raw[strings.LastIndex(raw, "/")+1:]
}

// LocalPath returns the download destination for raw inside dir. Distinct
// URLs that share a final segment map to the same path.
func LocalPath(dir, raw string) (string, error) {
	name := FileName(raw)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrNoFilename, raw)
	}
	return filepath.Join(dir, name), nil
}
