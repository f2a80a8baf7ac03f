// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

const fakePDFContent = "%PDF-1.4 fake"

// newTestServer serves fake PDFs under /pdf/, 404 under /missing/, and
// 500 everywhere else.
func newTestServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/pdf/"):
			w.Header().Set("Content-Type", "application/pdf")
			fmt.Fprint(w, fakePDFContent)
		case strings.HasPrefix(r.URL.Path, "/missing/"):
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func testConfig(dir string) types.AcquisitionConfig {
	return types.AcquisitionConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second},
		DocsDir:    dir,
	}
}

func TestFetch_Success(t *testing.T) {
	ts := newTestServer(t, nil)
	defer ts.Close()

	dir := t.TempDir()
	link := types.LinkRecord{Index: 0, URL: ts.URL + "/pdf/a.pdf"}

	doc, err := Fetch(context.Background(), ts.Client(), link, testConfig(dir))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a.pdf"), doc.Path)
	assert.Equal(t, int64(len(fakePDFContent)), doc.Bytes)
	assert.Equal(t, link, doc.Link)

	data, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, fakePDFContent, string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetch_Overwrites(t *testing.T) {
	ts := newTestServer(t, nil)
	defer ts.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "a.pdf")
	require.NoError(t, os.WriteFile(dest, []byte("stale content that is longer"), 0o644))

	_, err := Fetch(context.Background(), ts.Client(), types.LinkRecord{URL: ts.URL + "/pdf/a.pdf"}, testConfig(dir))
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, fakePDFContent, string(data))
}

func TestFetch_NotFound(t *testing.T) {
	ts := newTestServer(t, nil)
	defer ts.Close()

	dir := t.TempDir()
	_, err := Fetch(context.Background(), ts.Client(), types.LinkRecord{URL: ts.URL + "/missing/b.pdf"}, testConfig(dir))
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)

	_, statErr := os.Stat(filepath.Join(dir, "b.pdf"))
	assert.True(t, os.IsNotExist(statErr), "no file should be written for a failed fetch")
}

func TestFetch_InvalidURLMakesNoRequest(t *testing.T) {
	var calls int32
	ts := newTestServer(t, &calls)
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), types.LinkRecord{URL: "42"}, testConfig(t.TempDir()))
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFetch_NoFilename(t *testing.T) {
	var calls int32
	ts := newTestServer(t, &calls)
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.Client(), types.LinkRecord{URL: ts.URL + "/pdf/"}, testConfig(t.TempDir()))
	assert.ErrorIs(t, err, ErrNoFilename)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFetch_TransportError(t *testing.T) {
	ts := newTestServer(t, nil)
	url := ts.URL + "/pdf/a.pdf"
	ts.Close()

	_, err := Fetch(context.Background(), http.DefaultClient, types.LinkRecord{URL: url}, testConfig(t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request")
}

func TestFetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	client := &http.Client{Timeout: 50 * time.Millisecond}
	_, err := Fetch(context.Background(), client, types.LinkRecord{URL: ts.URL + "/slow.pdf"}, testConfig(t.TempDir()))
	assert.Error(t, err)
}

func TestFetchBatch(t *testing.T) {
	ts := newTestServer(t, nil)
	defer ts.Close()

	dir := filepath.Join(t.TempDir(), "docs")
	links := []types.LinkRecord{
		{Index: 0, URL: ts.URL + "/pdf/a.pdf"},
		{Index: 1, URL: "not-a-url"},
		{Index: 2, URL: ts.URL + "/missing/b.pdf"},
		{Index: 3, URL: ts.URL + "/pdf/c.pdf"},
	}

	var buf bytes.Buffer
	result, err := FetchBatch(context.Background(), ts.Client(), links, testConfig(dir), zerolog.New(&buf))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Downloaded)
	assert.Equal(t, 1, result.Invalid)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Documents, 2)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), result.Documents[0].Path)
	assert.Equal(t, filepath.Join(dir, "c.pdf"), result.Documents[1].Path)

	out := buf.String()
	assert.Contains(t, out, "Invalid URL at index 1: not-a-url")
	assert.Contains(t, out, "with status code 404")
	assert.Contains(t, out, "Batch summary: 2 downloaded, 1 invalid, 1 failed (total: 4)")
}

func TestFetchBatch_Cancelled(t *testing.T) {
	var calls int32
	ts := newTestServer(t, &calls)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	links := []types.LinkRecord{{URL: ts.URL + "/pdf/a.pdf"}}
	_, err := FetchBatch(ctx, ts.Client(), links, testConfig(t.TempDir()), zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFetchBatch_DirectoryError(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := FetchBatch(context.Background(), http.DefaultClient, nil, testConfig(filepath.Join(blocker, "docs")), zerolog.Nop())
	assert.Error(t, err)
}

func TestNewPacer(t *testing.T) {
	p := NewPacer(0)
	assert.NoError(t, p.Wait(context.Background()))
	assert.NoError(t, p.Wait(context.Background()))

	p = NewPacer(time.Hour)
	assert.NoError(t, p.Wait(context.Background()), "first download starts immediately")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}

func TestNewPacer_SpacesDownloads(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)
	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	require.NoError(t, p.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
