// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds the HTTP client used by the fetch stage.
package httputil

import (
	"net/http"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

// NewClient returns an http.Client for cfg. A zero Timeout leaves requests
// unbounded. Redirects follow the net/http defaults. When UserAgent is set,
// every request carries it; otherwise requests go out unmodified.
func NewClient(cfg types.HTTPConfig) *http.Client {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.UserAgent != "" {
		client.Transport = &userAgentTransport{
			base:      http.DefaultTransport,
			userAgent: cfg.UserAgent,
		}
	}
	return client
}

// userAgentTransport sets the User-Agent header on outgoing requests.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
