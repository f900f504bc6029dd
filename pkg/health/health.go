// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package health

import "time"

// Status exposes the current dataset state for monitoring and operator
// visibility. All fields are point-in-time snapshots safe to serialize to
// JSON.
type Status struct {
	Status      string     `json:"status" example:"ok" doc:"ok when a dataset is loaded, loading otherwise"`
	Generation  string     `json:"generation,omitempty" doc:"Identifier of the loaded snapshot"`
	Source      string     `json:"source,omitempty" doc:"Path of the loaded source document"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	Statements  int        `json:"statements"`
	Entities    int        `json:"entities"`
	DomainNodes int        `json:"domain_nodes"`
	DomainLinks int        `json:"domain_links"`
	Reloads     int64      `json:"reloads"`
	LastError   string     `json:"last_error,omitempty" doc:"Most recent reload failure, if any"`
	LastErrorAt *time.Time `json:"last_error_at,omitempty"`
}

// Status values.
const (
	StatusOK      = "ok"
	StatusLoading = "loading"
)
