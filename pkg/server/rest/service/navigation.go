package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/engine"
	"github.com/lintang-b-s/roadnav/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/roadnav/pkg/geo"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/lintang-b-s/roadnav/pkg/guidance"
	"github.com/lintang-b-s/roadnav/pkg/kv"
	"github.com/lintang-b-s/roadnav/pkg/overlay"
	"github.com/lintang-b-s/roadnav/pkg/routecache"
	"github.com/lintang-b-s/roadnav/pkg/spatialindex"
	"github.com/lintang-b-s/roadnav/pkg/util"
	"go.uber.org/zap"
)

// CoverageRadius a location is covered when a road node lies within this many meters.
const CoverageRadius = 1000.0

type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, name string, snap graph.Snapshot) (kv.SnapshotMeta, error)
	LoadSnapshot(name string) (graph.Snapshot, error)
	ListSnapshots() ([]kv.SnapshotMeta, error)
	DeleteSnapshot(name string) error
}

type RouteCache interface {
	Get(version uint64, algo string, start, end datastructure.Coordinate) (datastructure.PathResult, bool, error)
	Put(version uint64, algo string, start, end datastructure.Coordinate, res datastructure.PathResult) error
	Stats() routecache.Stats
}

type RouteObserver interface {
	ObserveRoute(algo string, found, cached bool, nodesExplored int)
}

/*
NavigationService serializes every call into the engine, which is not safe for concurrent use.

store and cache are optional. the segment index and the coverage cells are rebuilt lazily after the
engine version moves.
*/
type NavigationService struct {
	mu       sync.Mutex
	engine   *engine.Engine
	store    SnapshotStore
	cache    RouteCache
	observer RouteObserver
	log      *zap.Logger

	index        *spatialindex.SegmentIndex
	coverage     *spatialindex.Coverage
	indexVersion uint64
	maxTrace     int
}

func NewNavigationService(eng *engine.Engine, store SnapshotStore, cache RouteCache, log *zap.Logger,
	maxTraceSteps int) *NavigationService {
	return &NavigationService{
		engine:   eng,
		store:    store,
		cache:    cache,
		log:      log,
		maxTrace: maxTraceSteps,
	}
}

func (uc *NavigationService) SetRouteObserver(o RouteObserver) {
	uc.observer = o
}

type Info struct {
	Version    uint64            `json:"version"`
	Stats      graph.Stats       `json:"stats"`
	Blocked    int               `json:"blocked"`
	Congested  int               `json:"congested"`
	CacheStats *routecache.Stats `json:"cache,omitempty"`
}

func (uc *NavigationService) Info(ctx context.Context) Info {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	info := Info{
		Version:   uc.engine.Version(),
		Stats:     uc.engine.Stats(),
		Blocked:   len(uc.engine.Overlay().Blocked()),
		Congested: len(uc.engine.Overlay().Congested()),
	}
	if uc.cache != nil {
		st := uc.cache.Stats()
		info.CacheStats = &st
	}
	return info
}

func (uc *NavigationService) LoadGraph(ctx context.Context, data []byte) (graph.Stats, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.engine.LoadGraph(data); err != nil {
		return graph.Stats{}, mapEngineError(err, "invalid graph document")
	}
	return uc.engine.Stats(), nil
}

func (uc *NavigationService) LoadSnapshot(ctx context.Context, snap graph.Snapshot) (graph.Stats, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.engine.LoadSnapshot(snap); err != nil {
		return graph.Stats{}, mapEngineError(err, "invalid graph document")
	}
	return uc.engine.Stats(), nil
}

func (uc *NavigationService) ExportGraph(ctx context.Context) graph.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.engine.ExportGraph()
}

func (uc *NavigationService) SaveGraph(ctx context.Context, name string) (kv.SnapshotMeta, error) {
	if uc.store == nil {
		return kv.SnapshotMeta{}, util.NewErrorf(util.ErrUnprocessable, "graph storage is not configured")
	}
	uc.mu.Lock()
	snap := uc.engine.ExportGraph()
	uc.mu.Unlock()

	meta, err := uc.store.SaveSnapshot(ctx, name, snap)
	if err != nil {
		if errors.Is(err, kv.ErrInvalidName) {
			return kv.SnapshotMeta{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid graph name %q", name)
		}
		return kv.SnapshotMeta{}, util.WrapErrorf(err, util.ErrInternalServerError, "internal server error")
	}
	return meta, nil
}

func (uc *NavigationService) RestoreGraph(ctx context.Context, name string) (graph.Stats, error) {
	if uc.store == nil {
		return graph.Stats{}, util.NewErrorf(util.ErrUnprocessable, "graph storage is not configured")
	}
	snap, err := uc.store.LoadSnapshot(name)
	if err != nil {
		if errors.Is(err, kv.ErrSnapshotNotFound) {
			return graph.Stats{}, util.WrapErrorf(err, util.ErrNotFound, "saved graph %q not found", name)
		}
		return graph.Stats{}, util.WrapErrorf(err, util.ErrInternalServerError, "internal server error")
	}
	return uc.LoadSnapshot(ctx, snap)
}

func (uc *NavigationService) ListSavedGraphs(ctx context.Context) ([]kv.SnapshotMeta, error) {
	if uc.store == nil {
		return []kv.SnapshotMeta{}, nil
	}
	metas, err := uc.store.ListSnapshots()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "internal server error")
	}
	return metas, nil
}

func (uc *NavigationService) DeleteSavedGraph(ctx context.Context, name string) error {
	if uc.store == nil {
		return util.NewErrorf(util.ErrUnprocessable, "graph storage is not configured")
	}
	if err := uc.store.DeleteSnapshot(name); err != nil {
		if errors.Is(err, kv.ErrSnapshotNotFound) {
			return util.WrapErrorf(err, util.ErrNotFound, "saved graph %q not found", name)
		}
		return util.WrapErrorf(err, util.ErrInternalServerError, "internal server error")
	}
	return nil
}

func (uc *NavigationService) SplitEdge(ctx context.Context, edgeID string, t float64) (graph.SplitResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if t < 0 || t > 1 {
		return graph.SplitResult{}, util.NewErrorf(util.ErrBadParamInput, "split fraction must be in [0, 1]")
	}
	res, err := uc.engine.SplitEdge(edgeID, t)
	if err != nil {
		return graph.SplitResult{}, mapEngineError(err, "cannot split edge %s", edgeID)
	}
	return res, nil
}

func (uc *NavigationService) SplitEdgeAtCoordinate(ctx context.Context, p datastructure.Coordinate) (graph.SplitResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	res, err := uc.engine.SplitEdgeAtCoordinate(p)
	if err != nil {
		return graph.SplitResult{}, mapEngineError(err, "cannot split the road at (%f, %f)", p.Lat, p.Lon)
	}
	return res, nil
}

type RouteResult struct {
	Path       datastructure.PathResult
	Simplified []datastructure.Coordinate
	Statuses   map[string]datastructure.RoadStatus
	Directions []guidance.DrivingDirection
	Algorithm  engine.Algorithm
	Cached     bool
}

// ShortestPath the route is served from the route cache when the engine version did not move
// since it was computed.
func (uc *NavigationService) ShortestPath(ctx context.Context, start, end datastructure.Coordinate,
	algo engine.Algorithm) (RouteResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	version := uc.engine.Version()
	if uc.cache != nil {
		path, ok, err := uc.cache.Get(version, string(algo), start, end)
		if err != nil {
			uc.log.Warn("route cache lookup failed", zap.Error(err))
		} else if ok {
			uc.observe(algo, true, true, path.NodesExplored)
			return uc.routeResult(path, algo, true), nil
		}
	}

	path, err := uc.engine.FindRouteWithAlgorithm(ctx, start, end, algo)
	if err != nil {
		uc.observe(algo, false, false, path.NodesExplored)
		return RouteResult{Path: path, Algorithm: algo},
			mapEngineError(err, "no route between (%f, %f) and (%f, %f)", start.Lat, start.Lon, end.Lat, end.Lon)
	}
	uc.observe(algo, true, false, path.NodesExplored)

	if uc.cache != nil {
		if err := uc.cache.Put(version, string(algo), start, end, path); err != nil {
			uc.log.Warn("route cache store failed", zap.Error(err))
		}
	}
	return uc.routeResult(path, algo, false), nil
}

// RouteBetweenNodes route between two stored node ids. these queries skip the route cache.
func (uc *NavigationService) RouteBetweenNodes(ctx context.Context, from, to string,
	algo engine.Algorithm) (RouteResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	path, err := uc.engine.FindRouteBetweenNodes(ctx, from, to, algo)
	if err != nil {
		uc.observe(algo, false, false, path.NodesExplored)
		return RouteResult{Path: path, Algorithm: algo},
			mapEngineError(err, "no route between node %s and node %s", from, to)
	}
	uc.observe(algo, true, false, path.NodesExplored)
	return uc.routeResult(path, algo, false), nil
}

func (uc *NavigationService) routeResult(path datastructure.PathResult, algo engine.Algorithm, cached bool) RouteResult {
	directions, err := guidance.NewInstructionsFromEdges(uc.engine.Graph()).GetDrivingDirections(path)
	if err != nil {
		uc.log.Debug("no driving directions for route", zap.Error(err))
	}
	return RouteResult{
		Path:       path,
		Simplified: geo.RamesDouglasPeucker(path.Coordinates, 0),
		Statuses:   uc.engine.EdgeStatuses(&path),
		Directions: directions,
		Algorithm:  algo,
		Cached:     cached,
	}
}

func (uc *NavigationService) observe(algo engine.Algorithm, found, cached bool, nodesExplored int) {
	if uc.observer != nil {
		uc.observer.ObserveRoute(string(algo), found, cached, nodesExplored)
	}
}

type TraceStep struct {
	Step          int                        `json:"step"`
	State         string                     `json:"state"`
	Current       string                     `json:"current,omitempty"`
	Coordinate    *datastructure.Coordinate  `json:"coordinate,omitempty"`
	Relaxed       []datastructure.Coordinate `json:"relaxed,omitempty"`
	NodesExplored int                        `json:"nodes_explored"`
}

type Trace struct {
	Steps     []TraceStep              `json:"steps"`
	Truncated bool                     `json:"truncated"`
	State     string                   `json:"state"`
	Path      datastructure.PathResult `json:"-"`
}

/*
TraceRoute drives a search one expansion at a time and records every expansion for replay by a
client. the search is cancelled once maxSteps expansions are recorded (maxSteps <= 0 uses the
service default) or when ctx is done.
*/
func (uc *NavigationService) TraceRoute(ctx context.Context, start, end datastructure.Coordinate,
	algo engine.Algorithm, maxSteps int) (Trace, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if maxSteps <= 0 || (uc.maxTrace > 0 && maxSteps > uc.maxTrace) {
		maxSteps = uc.maxTrace
	}

	search, err := uc.engine.NewRouteSearch(start, end, algo)
	if err != nil {
		return Trace{}, mapEngineError(err, "cannot start a route search")
	}

	trace := Trace{Steps: make([]TraceStep, 0)}
	for !search.Done() {
		if ctx.Err() != nil || (maxSteps > 0 && len(trace.Steps) >= maxSteps) {
			search.Cancel()
			search.Step()
			trace.Truncated = true
			break
		}
		ev := search.Step()
		step := TraceStep{
			Step:          len(trace.Steps),
			State:         ev.State.String(),
			Current:       ev.Current,
			NodesExplored: ev.NodesExplored,
		}
		if c, ok := search.Coordinate(ev.Current); ok {
			step.Coordinate = &c
		}
		for _, id := range ev.Relaxed {
			if c, ok := search.Coordinate(id); ok {
				step.Relaxed = append(step.Relaxed, c)
			}
		}
		trace.Steps = append(trace.Steps, step)
	}
	trace.State = search.State().String()

	if search.State() == routingalgorithm.StateFound {
		path, err := search.Result()
		if err != nil {
			return trace, util.WrapErrorf(err, util.ErrInternalServerError, "internal server error")
		}
		trace.Path = path
	}
	return trace, nil
}

func (uc *NavigationService) ApplyRoadStatus(ctx context.Context, first, second datastructure.Coordinate,
	status datastructure.RoadStatus) (overlay.Run, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	run, err := uc.engine.ApplyRoadStatusRun(first, second, status)
	if err != nil {
		return overlay.Run{}, mapEngineError(err, "cannot mark the selected roads as %s", status)
	}
	return run, nil
}

func (uc *NavigationService) SetEdgeStatus(ctx context.Context, edgeID string, status datastructure.RoadStatus) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.engine.SetEdgeStatus(edgeID, status); err != nil {
		return mapEngineError(err, "cannot mark edge %s as %s", edgeID, status)
	}
	return nil
}

func (uc *NavigationService) ClearAllStatus(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.engine.ClearAllStatus()
}

func (uc *NavigationService) RoadStatuses(ctx context.Context) map[string]datastructure.RoadStatus {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.engine.EdgeStatuses(nil)
}

func (uc *NavigationService) NearestRoadSegments(ctx context.Context, p datastructure.Coordinate, radius float64,
	k int) ([]spatialindex.NearbySegment, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.refreshIndex(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "internal server error")
	}
	if radius == 0 {
		if k <= 0 {
			k = 1
		}
		return uc.index.NearestSegments(p, k), nil
	}
	segs, err := uc.index.NearbySegments(p, radius, k)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid search area")
	}
	return segs, nil
}

// NearbyNode road node near a query point, Distance in meter.
type NearbyNode struct {
	Node     datastructure.Node
	Distance float64
}

// NearestNodes nodes within maxDistance meter of p, nearest first. maxDistance <= 0 returns the single
// nearest node whatever its distance.
func (uc *NavigationService) NearestNodes(ctx context.Context, p datastructure.Coordinate,
	maxDistance float64) ([]NearbyNode, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	g := uc.engine.Graph()
	if maxDistance <= 0 {
		n, dist, ok := g.NearestNode(p)
		if !ok {
			return nil, util.WrapErrorf(datastructure.ErrNodeNotFound, util.ErrNotFound, "graph has no nodes")
		}
		return []NearbyNode{{Node: n, Distance: dist}}, nil
	}

	nodes := g.NodesInRadius(p, maxDistance)
	if len(nodes) == 0 {
		return nil, util.WrapErrorf(datastructure.ErrNodeNotFound, util.ErrNotFound,
			"no node within %.1f meter of (%f, %f)", maxDistance, p.Lat, p.Lon)
	}
	nearby := make([]NearbyNode, 0, len(nodes))
	for _, n := range nodes {
		nearby = append(nearby, NearbyNode{
			Node:     n,
			Distance: geo.CalculateHaversineDistance(p.Lat, p.Lon, n.Lat, n.Lon),
		})
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})
	return nearby, nil
}

func (uc *NavigationService) Coverage(ctx context.Context) (spatialindex.Coverage, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.refreshIndex(); err != nil {
		return spatialindex.Coverage{}, util.WrapErrorf(err, util.ErrInternalServerError, "internal server error")
	}
	return *uc.coverage, nil
}

type CoverageCheck struct {
	InCoverage      bool     `json:"in_coverage"`
	InCell          bool     `json:"in_cell"`
	NearestNode     string   `json:"nearest_node,omitempty"`
	NearestDistance *float64 `json:"nearest_distance,omitempty"`
}

// CheckCoverage p is covered when a road node lies within CoverageRadius meter.
func (uc *NavigationService) CheckCoverage(ctx context.Context, p datastructure.Coordinate) (CoverageCheck, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.refreshIndex(); err != nil {
		return CoverageCheck{}, util.WrapErrorf(err, util.ErrInternalServerError, "internal server error")
	}
	check := CoverageCheck{InCell: uc.coverage.Covers(p)}
	node, dist, ok := uc.engine.Graph().NearestNode(p)
	if !ok {
		return check, nil
	}
	check.NearestNode = node.ID
	check.NearestDistance = &dist
	check.InCoverage = dist <= CoverageRadius
	return check, nil
}

func (uc *NavigationService) refreshIndex() error {
	version := uc.engine.Version()
	if uc.index != nil && uc.indexVersion == version {
		return nil
	}
	idx, err := spatialindex.BuildSegmentIndex(uc.engine.Graph())
	if err != nil {
		return err
	}
	cov := spatialindex.BuildCoverage(uc.engine.Graph(), spatialindex.DefaultResolution)
	uc.log.Debug("spatial index rebuilt", zap.Uint64("version", version), zap.Int("segments", idx.Size()),
		zap.Int("cells", len(cov.Cells)))
	uc.index = idx
	uc.coverage = &cov
	uc.indexVersion = version
	return nil
}

// mapEngineError attaches the error code the rest layer turns into a status code.
func mapEngineError(err error, format string, a ...interface{}) error {
	switch {
	case errors.Is(err, datastructure.ErrInvalidGraphFormat):
		return util.WrapErrorf(err, util.ErrBadParamInput, format, a...)
	case errors.Is(err, datastructure.ErrNoRoadNearby),
		errors.Is(err, datastructure.ErrNoPathFound),
		errors.Is(err, datastructure.ErrNoPathConnectingEdges),
		errors.Is(err, datastructure.ErrEdgeNotFound),
		errors.Is(err, datastructure.ErrNodeNotFound):
		return util.WrapErrorf(err, util.ErrNotFound, format, a...)
	case errors.Is(err, datastructure.ErrCancelled):
		return util.WrapErrorf(err, util.ErrConflict, format, a...)
	default:
		return util.WrapErrorf(err, util.ErrInternalServerError, format, a...)
	}
}
