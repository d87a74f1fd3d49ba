package engine

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/engine/routingalgorithm"
)

type Algorithm string

const (
	AlgorithmAStar    Algorithm = "astar"
	AlgorithmDijkstra Algorithm = "dijkstra"
)

func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmAStar:
		return AlgorithmAStar, nil
	case AlgorithmDijkstra:
		return AlgorithmDijkstra, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q", s)
	}
}

/*
RouteSearch a route query that can be driven one expansion at a time.

the synthetic endpoints of the query live in the search's own virtual layer, it is dropped as soon
as the search finishes (found, not found or cancelled). the graph and overlay must not be mutated
while a search is in progress.
*/
type RouteSearch struct {
	engine *Engine
	layer  *virtualLayer
	search *routingalgorithm.AStar
	Start  BoundEndpoint
	End    BoundEndpoint
}

// NewRouteSearch binds both clicks to the road network and prepares the search.
func (e *Engine) NewRouteSearch(start, end datastructure.Coordinate, algo Algorithm) (*RouteSearch, error) {
	e.generation++
	layer := newVirtualLayer(e.generation)

	startBound, err := bind(e.graph, layer, "start", start)
	if err != nil {
		return nil, err
	}
	endBound, err := bind(e.graph, layer, "end", end)
	if err != nil {
		return nil, err
	}

	return e.newRouteSearch(layer, startBound, endBound, algo)
}

// NewNodeRouteSearch search between two stored nodes, no click binding and no synthetic endpoints.
func (e *Engine) NewNodeRouteSearch(from, to string, algo Algorithm) (*RouteSearch, error) {
	endpoints := make([]BoundEndpoint, 0, 2)
	for _, id := range []string{from, to} {
		n, ok := e.graph.Node(id)
		if !ok {
			return nil, fmt.Errorf("route from %s to %s, node %s: %w", from, to, id, datastructure.ErrNodeNotFound)
		}
		endpoints = append(endpoints, BoundEndpoint{NodeID: id, Click: n.Coordinate()})
	}

	e.generation++
	return e.newRouteSearch(newVirtualLayer(e.generation), endpoints[0], endpoints[1], algo)
}

func (e *Engine) newRouteSearch(layer *virtualLayer, startBound, endBound BoundEndpoint,
	algo Algorithm) (*RouteSearch, error) {
	sg := &searchGraph{g: e.graph, layer: layer, overlay: e.overlay}
	var (
		search *routingalgorithm.AStar
		err    error
	)
	switch algo {
	case AlgorithmDijkstra:
		search, err = routingalgorithm.NewDijkstra(sg, startBound.NodeID, endBound.NodeID)
	default:
		search, err = routingalgorithm.NewAStar(sg, startBound.NodeID, endBound.NodeID)
	}
	if err != nil {
		return nil, err
	}

	return &RouteSearch{
		engine: e,
		layer:  layer,
		search: search,
		Start:  startBound,
		End:    endBound,
	}, nil
}

// Step expands one node of the search.
func (r *RouteSearch) Step() routingalgorithm.StepEvent {
	ev := r.search.Step()
	if r.search.Done() {
		r.release()
	}
	return ev
}

func (r *RouteSearch) Cancel() {
	r.search.Cancel()
}

func (r *RouteSearch) Done() bool {
	return r.search.Done()
}

func (r *RouteSearch) State() routingalgorithm.SearchState {
	return r.search.State()
}

// Frontier open set of the search, for drawing.
func (r *RouteSearch) Frontier() []string {
	return r.search.Frontier()
}

// Coordinate of a stored or synthetic node of this search.
func (r *RouteSearch) Coordinate(nodeID string) (datastructure.Coordinate, bool) {
	if r.layer != nil {
		if n, ok := r.layer.nodes[nodeID]; ok {
			return n.Coordinate(), true
		}
	}
	if IsVirtualID(nodeID) {
		switch nodeID {
		case r.Start.NodeID:
			return r.Start.Click, true
		case r.End.NodeID:
			return r.End.Click, true
		}
		return datastructure.Coordinate{}, false
	}
	n, ok := r.engine.graph.Node(nodeID)
	return n.Coordinate(), ok
}

// Run steps until the search is finished or ctx is done.
func (r *RouteSearch) Run(ctx context.Context) (datastructure.PathResult, error) {
	for !r.Done() {
		if ctx.Err() != nil {
			r.Cancel()
		}
		r.Step()
	}
	return r.Result()
}

// Result PathResult once the search is done. not found and cancelled searches return a result
// with Found false together with the error.
func (r *RouteSearch) Result() (datastructure.PathResult, error) {
	res, err := r.search.Result()
	if err != nil {
		return datastructure.NotFoundPathResult(res.NodesExplored, res.Duration), err
	}

	coords := make([]datastructure.Coordinate, 0, len(res.NodeIDs))
	coords = append(coords, r.nodeCoordinate(res.NodeIDs[0]))
	edgeIDs := make([]string, 0, len(res.Edges))
	for i, edge := range res.Edges {
		coords = append(coords, r.nodeCoordinate(res.NodeIDs[i+1]))
		if !edge.Synthetic {
			edgeIDs = append(edgeIDs, edge.ID)
		}
	}
	return datastructure.NewPathResult(res.NodeIDs, coords, edgeIDs, res.Cost, res.Dist,
		res.NodesExplored, res.Duration), nil
}

func (r *RouteSearch) nodeCoordinate(nodeID string) datastructure.Coordinate {
	if IsVirtualID(nodeID) {
		if nodeID == r.Start.NodeID {
			return r.Start.Click
		}
		return r.End.Click
	}
	n, _ := r.engine.graph.Node(nodeID)
	return n.Coordinate()
}

func (r *RouteSearch) release() {
	r.layer = nil
}

// VirtualSize number of synthetic nodes and connector edges still held by the search.
func (r *RouteSearch) VirtualSize() (int, int) {
	if r.layer == nil {
		return 0, 0
	}
	return r.layer.size()
}
