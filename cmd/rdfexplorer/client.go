// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
)

// statusClient is the HTTP client used by commands that talk to a running
// server. Overridden in tests via httptest.
var statusClient = &http.Client{
	Timeout: 5 * time.Second,
}

// apiClient provides HTTP access to a running rdfexplorer server.
type apiClient struct {
	baseURL string
	http    *http.Client
}

// newAPIClient targets addr, either host:port or a full http(s) URL.
func newAPIClient(addr string) *apiClient {
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &apiClient{
		baseURL: strings.TrimRight(base, "/"),
		http:    statusClient,
	}
}

// getJSON performs a GET request and decodes the JSON response into dest.
// Connection refusal is reported as CodeCLIServerNotRunning.
func (c *apiClient) getJSON(path string, dest any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		if isDialError(err) {
			return rdferr.Wrap(err, rdferr.CodeCLIServerNotRunning, "server is not running (connection refused)")
		}
		return rdferr.Wrap(err, rdferr.CodeCLIRequestFailure, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return rdferr.Errorf(rdferr.CodeCLIRequestFailure, "server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return rdferr.Wrap(err, rdferr.CodeCLIResponseInvalid, "invalid response")
	}
	return nil
}

// isDialError returns true if err is a net dial error (connection refused, etc.).
func isDialError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}
