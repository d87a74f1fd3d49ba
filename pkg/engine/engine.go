package engine

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/lintang-b-s/roadnav/pkg/overlay"
	"go.uber.org/zap"
)

/*
Engine one road network, its road status overlay and the route queries on top of them.

Engine is not safe for concurrent use, callers serialize every call. Version changes after every
successful mutation (graph load, split, road status edit) so callers can key caches on it.
*/
type Engine struct {
	graph      *graph.Graph
	overlay    *overlay.Overlay
	generation uint64
	version    uint64
	log        *zap.Logger
}

func NewEngine(log *zap.Logger) *Engine {
	return &Engine{
		graph:   graph.NewGraph(),
		overlay: overlay.New(),
		log:     log,
	}
}

func (e *Engine) Version() uint64 {
	return e.version
}

// Graph read access to the graph store. mutate it only through the engine.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

func (e *Engine) Overlay() *overlay.Overlay {
	return e.overlay
}

func (e *Engine) Stats() graph.Stats {
	return e.graph.Stats()
}

// LoadGraph replaces the graph with a json document. on error the current graph is kept.
func (e *Engine) LoadGraph(data []byte) error {
	snap, err := graph.ParseSnapshot(data)
	if err != nil {
		return err
	}
	return e.LoadSnapshot(snap)
}

// LoadSnapshot replaces the graph and resets the road status overlay.
func (e *Engine) LoadSnapshot(snap graph.Snapshot) error {
	g, err := graph.FromSnapshot(snap)
	if err != nil {
		return err
	}
	e.graph = g
	e.overlay = overlay.New()
	e.version++
	e.log.Info("graph loaded", zap.Int("nodes", g.NodeCount()), zap.Int("edges", g.EdgeCount()),
		zap.Uint64("version", e.version))
	return nil
}

func (e *Engine) ExportGraph() graph.Snapshot {
	return e.graph.Snapshot()
}

// FindRoute A* from the road location closest to start to the one closest to end.
func (e *Engine) FindRoute(ctx context.Context, start, end datastructure.Coordinate) (datastructure.PathResult, error) {
	return e.FindRouteWithAlgorithm(ctx, start, end, AlgorithmAStar)
}

func (e *Engine) FindRouteWithAlgorithm(ctx context.Context, start, end datastructure.Coordinate,
	algo Algorithm) (datastructure.PathResult, error) {
	search, err := e.NewRouteSearch(start, end, algo)
	if err != nil {
		return datastructure.NotFoundPathResult(0, 0), err
	}
	return e.runSearch(ctx, search)
}

// FindRouteBetweenNodes route between two stored node ids, the endpoints are not rebound.
func (e *Engine) FindRouteBetweenNodes(ctx context.Context, from, to string,
	algo Algorithm) (datastructure.PathResult, error) {
	search, err := e.NewNodeRouteSearch(from, to, algo)
	if err != nil {
		return datastructure.NotFoundPathResult(0, 0), err
	}
	return e.runSearch(ctx, search)
}

func (e *Engine) runSearch(ctx context.Context, search *RouteSearch) (datastructure.PathResult, error) {
	res, err := search.Run(ctx)
	if err != nil {
		e.log.Debug("route not found", zap.Error(err), zap.Int("nodes_explored", res.NodesExplored))
	}
	return res, err
}

// ApplyRoadStatus applies status to the run of edges between two road clicks, returns the
// number of edges edited.
func (e *Engine) ApplyRoadStatus(first, second datastructure.Coordinate, status datastructure.RoadStatus) (int, error) {
	run, err := e.ApplyRoadStatusRun(first, second, status)
	if err != nil {
		return 0, err
	}
	return len(run.EdgeIDs), nil
}

func (e *Engine) ApplyRoadStatusRun(first, second datastructure.Coordinate,
	status datastructure.RoadStatus) (overlay.Run, error) {
	if status == datastructure.StatusInPath {
		return overlay.Run{}, fmt.Errorf("status %s cannot be applied to a road", status)
	}
	run, err := e.overlay.ApplyRun(e.graph, first, second, status)
	if err != nil {
		return overlay.Run{}, err
	}
	e.version++
	e.log.Info("road status applied", zap.String("status", status.String()), zap.Strings("edges", run.EdgeIDs))
	return run, nil
}

// SetEdgeStatus sets the status of a single stored edge.
func (e *Engine) SetEdgeStatus(edgeID string, status datastructure.RoadStatus) error {
	if !e.graph.HasEdge(edgeID) {
		return fmt.Errorf("set status of %s: %w", edgeID, datastructure.ErrEdgeNotFound)
	}
	if status == datastructure.StatusInPath {
		return fmt.Errorf("status %s cannot be applied to a road", status)
	}
	e.overlay.Set(edgeID, status)
	e.version++
	return nil
}

func (e *Engine) ClearAllStatus() {
	e.overlay.ClearAll()
	e.version++
}

// SplitEdge splits a stored edge at fraction t, the new edges inherit its road status.
func (e *Engine) SplitEdge(edgeID string, t float64) (graph.SplitResult, error) {
	res, err := e.graph.SplitEdgeAt(edgeID, t)
	if err != nil {
		return graph.SplitResult{}, err
	}
	if res.Split {
		e.overlay.Inherit(res.OriginalEdge, res.FirstEdge, res.SecondEdge)
		e.version++
	}
	return res, nil
}

// SplitEdgeAtCoordinate splits the edge nearest to p at the projection of p.
func (e *Engine) SplitEdgeAtCoordinate(p datastructure.Coordinate) (graph.SplitResult, error) {
	nearest, ok := e.graph.NearestEdge(p)
	if !ok {
		return graph.SplitResult{}, fmt.Errorf("split at (%f, %f): %w", p.Lat, p.Lon, datastructure.ErrNoRoadNearby)
	}
	return e.SplitEdge(nearest.Edge.ID, nearest.Projection.T)
}

// EdgeStatuses classification of every stored edge. edges of path, if given, are reported
// as in_path whatever their overlay status.
func (e *Engine) EdgeStatuses(path *datastructure.PathResult) map[string]datastructure.RoadStatus {
	statuses := make(map[string]datastructure.RoadStatus, e.graph.EdgeCount())
	for _, edge := range e.graph.Edges() {
		statuses[edge.ID] = e.overlay.Classify(edge.ID)
	}
	if path != nil {
		for _, id := range path.EdgeIDs {
			if _, ok := statuses[id]; ok {
				statuses[id] = datastructure.StatusInPath
			}
		}
	}
	return statuses
}
