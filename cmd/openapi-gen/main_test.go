// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSpec(t *testing.T) {
	spec, err := generateSpec()
	require.NoError(t, err)
	assert.Contains(t, string(spec), "openapi")
	assert.Contains(t, string(spec), "3.1")
	for _, path := range []string{
		"/health", "/api/graph", "/api/detail", "/api/view", "/api/export/dot",
		"/api/nodes/{id}", "/api/tree", "/api/tree/expand/{id}", "/api/search", "/api/stats",
	} {
		assert.Contains(t, string(spec), `"`+path+`"`)
	}
}

func TestGenerateSpec_ValidJSON(t *testing.T) {
	spec, err := generateSpec()
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(spec, &doc))
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rdfexplorer", info["title"])
}
