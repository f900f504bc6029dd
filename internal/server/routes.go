// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sigil-dev/rdfexplorer/internal/dataset"
	"github.com/sigil-dev/rdfexplorer/internal/navigate"
	"github.com/sigil-dev/rdfexplorer/internal/ontology"
	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/health"
)

// DefaultTopRoots is the number of roots listed by the stats endpoint.
const DefaultTopRoots = 10

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Dataset status",
		Tags:        []string{"system"},
	}, s.handleHealth)

	// Snapshot queries
	huma.Register(s.api, huma.Operation{
		OperationID: "get-graph",
		Method:      http.MethodGet,
		Path:        "/api/graph",
		Summary:     "Domain graph: filtered nodes, semantic links and classes",
		Tags:        []string{"graph"},
	}, s.handleGraph)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-detail",
		Method:      http.MethodGet,
		Path:        "/api/detail",
		Summary:     "Every entity and relation, unfiltered",
		Tags:        []string{"graph"},
	}, s.handleDetail)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-view",
		Method:      http.MethodGet,
		Path:        "/api/view",
		Summary:     "Windowed subgraph for rendering",
		Tags:        []string{"graph"},
	}, s.handleView)

	huma.Register(s.api, huma.Operation{
		OperationID: "export-dot",
		Method:      http.MethodGet,
		Path:        "/api/export/dot",
		Summary:     "Windowed subgraph as Graphviz DOT",
		Tags:        []string{"graph"},
	}, s.handleExportDOT)

	// Node and tree navigation
	huma.Register(s.api, huma.Operation{
		OperationID: "get-node",
		Method:      http.MethodGet,
		Path:        "/api/nodes/{id}",
		Summary:     "Node details, relation groups and ancestors",
		Tags:        []string{"nodes"},
	}, s.handleNode)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-tree",
		Method:      http.MethodGet,
		Path:        "/api/tree",
		Summary:     "Ontology tree roots and children",
		Tags:        []string{"tree"},
	}, s.handleTree)

	huma.Register(s.api, huma.Operation{
		OperationID: "expand-tree",
		Method:      http.MethodGet,
		Path:        "/api/tree/expand/{id}",
		Summary:     "Ancestors to expand so a node becomes visible",
		Tags:        []string{"tree"},
	}, s.handleExpand)

	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search node and class labels",
		Tags:        []string{"nodes"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Dataset statistics",
		Tags:        []string{"system"},
	}, s.handleStats)
}

// --- Request/Response types for huma ---

type healthOutput struct {
	Body health.Status
}

type graphOutput struct {
	Body *ontology.DomainGraph
}

type detailOutput struct {
	Body ontology.Detail
}

type viewInput struct {
	Class string `query:"class" doc:"Only nodes of this type URI, plus their direct neighbors"`
	Focus string `query:"focus" doc:"Node id whose neighborhood is always included"`
	Limit int    `query:"limit" minimum:"0" doc:"Maximum node count; 0 uses the configured default"`
}

// ViewBody is a windowed subgraph with the context a renderer needs.
type ViewBody struct {
	Generation   string              `json:"generation"`
	Nodes        []*ontology.Entity  `json:"nodes"`
	Links        []ontology.Relation `json:"links"`
	Classes      []ontology.Class    `json:"classes"`
	Limit        int                 `json:"limit"`
	LimitSteps   []int               `json:"limitSteps"`
	TotalNodes   int                 `json:"totalNodes"`
	TotalLinks   int                 `json:"totalLinks"`
	LargeDataset bool                `json:"largeDataset"`
}

type viewOutput struct {
	Body ViewBody
}

type dotOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type nodeIDInput struct {
	ID string `path:"id" doc:"Entity id, URL-escaped"`
}

// NodeBody is the detail panel for one entity.
type NodeBody struct {
	navigate.NodeInfo
	Parent    string                 `json:"parent,omitempty" doc:"Tree parent, when the node is in the tree"`
	Relations navigate.NodeRelations `json:"relations"`
}

type nodeOutput struct {
	Body NodeBody
}

type treeOutput struct {
	Body navigate.TreeView
}

// ExpandBody lists the ancestors to open, nearest first.
type ExpandBody struct {
	ID        string   `json:"id"`
	Ancestors []string `json:"ancestors"`
	Cycle     bool     `json:"cycle"`
}

type expandOutput struct {
	Body ExpandBody
}

type searchInput struct {
	Query string `query:"q" doc:"Search text; case-insensitive, underscores and hyphens match spaces"`
	Limit int    `query:"limit" minimum:"0" doc:"Maximum node matches; 0 uses the configured default"`
}

type searchOutput struct {
	Body navigate.SearchResult
}

type statsInput struct {
	Top int `query:"top" minimum:"0" doc:"Number of top roots to list; 0 uses the default"`
}

type statsOutput struct {
	Body navigate.Stats
}

// --- Handlers ---

// apiError maps a coded error onto the matching HTTP status.
func apiError(err error) error {
	return huma.NewError(rdferr.HTTPStatus(err), err.Error())
}

// nodeID undoes URL escaping of entity ids, which are usually URIs.
func nodeID(raw string) string {
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func (s *Server) snapshot() (*dataset.Snapshot, error) {
	snap, err := s.data.Snapshot()
	if err != nil {
		return nil, apiError(err)
	}
	return snap, nil
}

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*healthOutput, error) {
	return &healthOutput{Body: s.data.Status()}, nil
}

func (s *Server) handleGraph(_ context.Context, _ *struct{}) (*graphOutput, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return &graphOutput{Body: snap.Graph}, nil
}

func (s *Server) handleDetail(_ context.Context, _ *struct{}) (*detailOutput, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return &detailOutput{Body: snap.Table.Detail()}, nil
}

func (s *Server) window(input *viewInput) (*dataset.Snapshot, dataset.View, error) {
	req := navigate.WindowRequest{Class: input.Class, Focus: nodeID(input.Focus), Limit: input.Limit}
	if req.Limit == 0 {
		req.Limit = s.cfg.View.DefaultLimit
	}

	v, err := s.data.View(req)
	if err != nil {
		return nil, dataset.View{}, apiError(err)
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, dataset.View{}, err
	}
	if snap.Generation != v.Generation {
		// Reloaded between the two calls; recompute against the new snapshot.
		if v, err = s.data.View(req); err != nil {
			return nil, dataset.View{}, apiError(err)
		}
	}
	return snap, v, nil
}

func (s *Server) handleView(_ context.Context, input *viewInput) (*viewOutput, error) {
	snap, v, err := s.window(input)
	if err != nil {
		return nil, err
	}
	return &viewOutput{Body: ViewBody{
		Generation:   v.Generation,
		Nodes:        v.Nodes,
		Links:        v.Links,
		Classes:      snap.Graph.Classes,
		Limit:        v.Request.Limit,
		LimitSteps:   s.cfg.View.LimitSteps,
		TotalNodes:   len(snap.Graph.Nodes),
		TotalLinks:   len(snap.Graph.Links),
		LargeDataset: navigate.LargeDataset(snap.Graph, s.cfg.View.LargeDatasetThreshold),
	}}, nil
}

func (s *Server) handleExportDOT(_ context.Context, input *viewInput) (*dotOutput, error) {
	snap, v, err := s.window(input)
	if err != nil {
		return nil, err
	}
	return &dotOutput{
		ContentType: "text/vnd.graphviz; charset=utf-8",
		Body:        []byte(navigate.ExportDOT(snap.Table, v.Window)),
	}, nil
}

func (s *Server) handleNode(_ context.Context, input *nodeIDInput) (*nodeOutput, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	id := nodeID(input.ID)

	info, ok := navigate.Inspect(snap.Table, snap.Graph, id)
	if !ok {
		return nil, apiError(rdferr.New(rdferr.CodeServerEntityNotFound, "entity "+id+" not found", rdferr.FieldNodeID(id)))
	}
	rels, _ := snap.Relations.Resolve(id)
	parent, _ := snap.Forest.Parent(id)

	return &nodeOutput{Body: NodeBody{NodeInfo: info, Parent: parent, Relations: rels}}, nil
}

func (s *Server) handleTree(_ context.Context, _ *struct{}) (*treeOutput, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return &treeOutput{Body: snap.Forest.View()}, nil
}

func (s *Server) handleExpand(_ context.Context, input *nodeIDInput) (*expandOutput, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	id := nodeID(input.ID)
	if !snap.Graph.Has(id) {
		return nil, apiError(rdferr.New(rdferr.CodeServerEntityNotFound, "node "+id+" is not in the tree", rdferr.FieldNodeID(id)))
	}

	ancestors, cycle := snap.Forest.ExpandPath(id)
	if ancestors == nil {
		ancestors = []string{}
	}
	return &expandOutput{Body: ExpandBody{ID: id, Ancestors: ancestors, Cycle: cycle}}, nil
}

func (s *Server) handleSearch(_ context.Context, input *searchInput) (*searchOutput, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.View.SearchMaxResults
	}
	return &searchOutput{Body: navigate.Search(snap.Graph, input.Query, limit)}, nil
}

func (s *Server) handleStats(_ context.Context, input *statsInput) (*statsOutput, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	top := input.Top
	if top == 0 {
		top = DefaultTopRoots
	}
	return &statsOutput{Body: snap.Stats(top)}, nil
}
