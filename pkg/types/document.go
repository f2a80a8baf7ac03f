// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pdf-harvest pipeline:
// link records read from the input table, downloaded documents, and the
// configuration of a run.
package types

// LinkRecord is one row of the input table that carries a link value.
type LinkRecord struct {
	// Index is the 0-based data row of the record in the input table,
	// counted before rows with a missing link were dropped.
	Index int `json:"index" yaml:"index"`

	// URL is the link cell text with surrounding whitespace trimmed.
	URL string `json:"url" yaml:"url"`
}

// Document is a fetched file on local disk.
type Document struct {
	Link LinkRecord `json:"link" yaml:"link"`

	// Path is the local filesystem path the body was written to.
	Path string `json:"path" yaml:"path"`

	// Bytes is the size of the downloaded body.
	Bytes int64 `json:"bytes" yaml:"bytes"`
}

// Status is the outcome of processing one link.
type Status string

const (
	StatusInvalid       Status = "invalid"
	StatusFetchFailed   Status = "fetch_failed"
	StatusExtractFailed Status = "extract_failed"
	StatusDone          Status = "done"
)
