// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads the documents named by link records.
//
// Each link gets exactly one GET. A 200 response is written to the
// documents directory under the URL's final path segment; anything else
// is a failure the caller logs and moves past.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

// StatusError reports a response other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Downloaded int
	Invalid    int
	Failed     int
	Documents  []types.Document
}

// Total returns the total number of links processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Invalid + r.Failed
}

// HasFailures reports whether any link failed or was invalid.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0 || r.Invalid > 0
}

// Prepare creates the documents directory.
func Prepare(cfg types.AcquisitionConfig) error {
	if err := os.MkdirAll(cfg.DocsDir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", cfg.DocsDir, err)
	}
	return nil
}

// Fetch downloads one link into cfg.DocsDir. The documents directory must
// already exist (see Prepare). On failure the returned Document carries
// only the link.
func Fetch(ctx context.Context, client *http.Client, link types.LinkRecord, cfg types.AcquisitionConfig) (types.Document, error) {
	doc := types.Document{Link: link}
	if err := Validate(link.URL); err != nil {
		return doc, err
	}
	path, err := LocalPath(cfg.DocsDir, link.URL)
	if err != nil {
		return doc, err
	}

	n, err := downloadFile(ctx, client, link.URL, path)
	if err != nil {
		return doc, err
	}
	doc.Path = path
	doc.Bytes = n
	return doc, nil
}

// FetchBatch fetches links in order, one at a time, logging each outcome.
// It continues after individual failures and starts at most one download
// per cfg.DownloadDelay. A cancelled context stops the batch
// before the next link.
func FetchBatch(ctx context.Context, client *http.Client, links []types.LinkRecord, cfg types.AcquisitionConfig, log zerolog.Logger) (BatchResult, error) {
	var result BatchResult
	if err := Prepare(cfg); err != nil {
		return result, err
	}
	pacer := NewPacer(cfg.DownloadDelay)
	for _, link := range links {
		if err := pacer.Wait(ctx); err != nil {
			return result, err
		}

		log.Info().Int("index", link.Index).Msgf("Processing URL: %s", link.URL)
		doc, err := Fetch(ctx, client, link, cfg)
		if err != nil {
			LogFailure(log, link, err)
			if errors.Is(err, ErrInvalidURL) {
				result.Invalid++
			} else {
				result.Failed++
			}
			continue
		}
		log.Debug().Str("path", doc.Path).Int64("bytes", doc.Bytes).Msg("downloaded")
		result.Downloaded++
		result.Documents = append(result.Documents, doc)
	}
	log.Info().Msgf("Batch summary: %d downloaded, %d invalid, %d failed (total: %d)",
		result.Downloaded, result.Invalid, result.Failed, result.Total())
	return result, nil
}

// LogFailure logs a Fetch error at the level its kind warrants: invalid
// links and non-200 responses are warnings, everything else is an error.
func LogFailure(log zerolog.Logger, link types.LinkRecord, err error) {
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrInvalidURL):
		log.Warn().Msgf("Invalid URL at index %d: %s", link.Index, link.URL)
	case errors.As(err, &statusErr):
		log.Warn().Msgf("Failed to download %s with status code %d", link.URL, statusErr.StatusCode)
	default:
		log.Error().Msgf("Exception occurred while downloading %s: %v", link.URL, err)
	}
}

// NewPacer returns a limiter that lets one download start every d. A
// zero or negative d never waits.
func NewPacer(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// downloadFile fetches url to destPath through a temporary file in the
// same directory, renamed over destPath once the body is complete.
func downloadFile(ctx context.Context, client *http.Client, url, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}
