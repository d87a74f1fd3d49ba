package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lintang-b-s/roadnav/pkg/engine"
	"github.com/lintang-b-s/roadnav/pkg/kv"
	"github.com/lintang-b-s/roadnav/pkg/routecache"
	"github.com/lintang-b-s/roadnav/pkg/server/rest/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const abcGraph = `{
  "nodes": [
    {"id": "A", "lat": 0, "lng": 0},
    {"id": "B", "lat": 0, "lng": 0.001},
    {"id": "C", "lat": 0, "lng": 0.002}
  ],
  "edges": [
    {"id": "A-B", "from": "A", "to": "B", "distance": 111},
    {"id": "B-C", "from": "B", "to": "C", "distance": 111}
  ]
}`

func newTestServer(t *testing.T) (*httptest.Server, *Metrics) {
	store, err := kv.OpenKVDB(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	cache, err := routecache.Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	m := NewMetrics(prometheus.NewRegistry())
	svc := service.NewNavigationService(engine.NewEngine(zap.NewNop()), store, cache, zap.NewNop(), 100)
	svc.SetRouteObserver(m)

	r := chi.NewRouter()
	r.Use(PromeHttpMiddleware(m))
	NavigatorRouter(r, svc, zap.NewNop())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, m
}

func doJSON(t *testing.T, method, url, body string, out interface{}) int {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGraphLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	var stats map[string]interface{}
	code := doJSON(t, http.MethodPost, srv.URL+"/api/graph", abcGraph, &stats)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3.0, stats["nodes"])
	assert.Equal(t, 2.0, stats["edges"])

	var errResp ErrResponse
	code = doJSON(t, http.MethodPost, srv.URL+"/api/graph", `{"nodes": [`, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request.", errResp.StatusText)

	var snap map[string][]map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/graph", "", &snap)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, snap["nodes"], 3)
	assert.Equal(t, 0.002, snap["nodes"][2]["lng"])

	var meta kv.SnapshotMeta
	code = doJSON(t, http.MethodPost, srv.URL+"/api/graph/save/abc", "", &meta)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "abc", meta.Name)

	var saved SavedGraphsResponse
	code = doJSON(t, http.MethodGet, srv.URL+"/api/graph/saved", "", &saved)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, saved.Graphs, 1)

	var split SplitEdgeResponse
	code = doJSON(t, http.MethodPost, srv.URL+"/api/graph/split", `{"edge_id": "A-B", "t": 0.5}`, &split)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, split.Split)
	assert.Equal(t, "A-B~1", split.FirstEdge)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/graph/split", `{"edge_id": "A-B"}`, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/graph/restore/abc", "", &stats)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3.0, stats["nodes"])

	code = doJSON(t, http.MethodPost, srv.URL+"/api/graph/restore/nope", "", &errResp)
	assert.Equal(t, http.StatusNotFound, code)

	code = doJSON(t, http.MethodDelete, srv.URL+"/api/graph/saved/abc", "", nil)
	assert.Equal(t, http.StatusNoContent, code)
}

func TestRouteAndRoadStatus(t *testing.T) {
	srv, m := newTestServer(t)
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, srv.URL+"/api/graph", abcGraph, nil))

	routeBody := `{"start": {"lat": 0, "lng": 0}, "end": {"lat": 0, "lng": 0.002}}`

	var route ShortestPathResponse
	code := doJSON(t, http.MethodPost, srv.URL+"/api/route?edge_statuses=true", routeBody, &route)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, route.Found)
	assert.Equal(t, []string{"A", "B", "C"}, route.Path)
	assert.InDelta(t, 222, route.Cost, 1e-9)
	assert.Equal(t, "astar", route.Algorithm)
	assert.Equal(t, "in_path", route.EdgeStatuses["A-B"])
	assert.NotEmpty(t, route.Polyline)

	var cached ShortestPathResponse
	code = doJSON(t, http.MethodPost, srv.URL+"/api/route", routeBody, &cached)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, cached.Cached)
	assert.Nil(t, cached.EdgeStatuses)

	var status RoadStatusResponse
	code = doJSON(t, http.MethodPost, srv.URL+"/api/road-status",
		`{"first": {"lat": 0, "lng": 0.0003}, "second": {"lat": 0, "lng": 0.0006}, "status": "blocked"}`, &status)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, status.Edited)
	assert.Equal(t, []string{"A-B"}, status.EdgeIDs)

	var noRoute ShortestPathResponse
	code = doJSON(t, http.MethodPost, srv.URL+"/api/route", routeBody, &noRoute)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, noRoute.Found)
	assert.Equal(t, 1, noRoute.NodesExplored)
	assert.Empty(t, noRoute.Path)
	assert.NotEmpty(t, noRoute.Error)

	var errResp ErrResponse

	var statuses RoadStatusesResponse
	code = doJSON(t, http.MethodGet, srv.URL+"/api/road-status", "", &statuses)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, statuses.Edges, 2)
	assert.Equal(t, EdgeStatus{EdgeID: "A-B", Status: "blocked"}, statuses.Edges[0])

	code = doJSON(t, http.MethodDelete, srv.URL+"/api/road-status", "", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code = doJSON(t, http.MethodPut, srv.URL+"/api/road-status/B-C", `{"status": "congested"}`, &status)
	require.Equal(t, http.StatusOK, code)
	code = doJSON(t, http.MethodPost, srv.URL+"/api/route", routeBody, &route)
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 444, route.Cost, 1e-9)

	code = doJSON(t, http.MethodPut, srv.URL+"/api/road-status/nope", `{"status": "blocked"}`, &errResp)
	assert.Equal(t, http.StatusNotFound, code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.routes.WithLabelValues("astar", "true", "true")))
	assert.Greater(t, testutil.CollectAndCount(m.requests), 0)
}

func TestRequestValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, srv.URL+"/api/graph", abcGraph, nil))

	cases := map[string]string{
		"missing end":       `{"start": {"lat": 0, "lng": 0}}`,
		"latitude range":    `{"start": {"lat": 95, "lng": 0}, "end": {"lat": 0, "lng": 0.002}}`,
		"missing longitude": `{"start": {"lat": 0}, "end": {"lat": 0, "lng": 0.002}}`,
		"unknown algorithm": `{"start": {"lat": 0, "lng": 0}, "end": {"lat": 0, "lng": 0.002}, "algorithm": "bfs"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var errResp ErrResponse
			code := doJSON(t, http.MethodPost, srv.URL+"/api/route", body, &errResp)
			assert.Equal(t, http.StatusBadRequest, code)
		})
	}

	var errResp ErrResponse
	code := doJSON(t, http.MethodPost, srv.URL+"/api/road-status",
		`{"first": {"lat": 0, "lng": 0}, "second": {"lat": 0, "lng": 0.001}, "status": "flooded"}`, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, errResp.ErrValidation)
}

func TestTraceAndSpatialEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, srv.URL+"/api/graph", abcGraph, nil))

	var trace TraceRouteResponse
	code := doJSON(t, http.MethodPost, srv.URL+"/api/route/trace",
		`{"start": {"lat": 0, "lng": 0}, "end": {"lat": 0, "lng": 0.002}, "algorithm": "dijkstra"}`, &trace)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "found", trace.State)
	require.NotNil(t, trace.Route)
	assert.Equal(t, "dijkstra", trace.Route.Algorithm)

	var segs RoadSegmentsResponse
	code = doJSON(t, http.MethodGet, srv.URL+"/api/nearest-road-segments?lat=0.0001&lng=0.0017&radius=50", "", &segs)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, segs.Segments, 1)
	assert.Equal(t, "B-C", segs.Segments[0].EdgeID)

	var errResp ErrResponse
	code = doJSON(t, http.MethodGet, srv.URL+"/api/nearest-road-segments?lat=abc&lng=0", "", &errResp)
	assert.Equal(t, http.StatusBadRequest, code)

	var check service.CoverageCheck
	code = doJSON(t, http.MethodPost, srv.URL+"/api/coverage/check", `{"lat": 0, "lng": 0.001}`, &check)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, check.InCoverage)

	var cov map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/coverage", "", &cov)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, cov["cells"])

	var health HealthResponse
	code = doJSON(t, http.MethodGet, srv.URL+"/api/health", "", &health)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", health.Status)

	var info service.Info
	code = doJSON(t, http.MethodGet, srv.URL+"/api/info", "", &info)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, info.Stats.Nodes)
	require.NotNil(t, info.CacheStats)
}

func TestMetricsObserveRoute(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveRoute("astar", true, false, 10)
	m.ObserveRoute("astar", false, false, 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.routes.WithLabelValues("astar", "false", "false")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.nodesExplored))
}

func TestNodeRouteAndNearestNode(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, srv.URL+"/api/graph", abcGraph, nil))

	var route ShortestPathResponse
	code := doJSON(t, http.MethodPost, srv.URL+"/api/route/nodes", `{"from": "C", "to": "A", "algorithm": "dijkstra"}`, &route)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, route.Found)
	assert.Equal(t, []string{"C", "B", "A"}, route.Path)
	assert.Equal(t, "dijkstra", route.Algorithm)

	var errResp ErrResponse
	code = doJSON(t, http.MethodPost, srv.URL+"/api/route/nodes", `{"from": "C", "to": "Z"}`, &errResp)
	assert.Equal(t, http.StatusNotFound, code)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/route/nodes", `{"from": "C"}`, &errResp)
	assert.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, http.MethodPut, srv.URL+"/api/road-status/A-B", `{"status": "blocked"}`, nil)
	require.Equal(t, http.StatusOK, code)
	var noRoute ShortestPathResponse
	code = doJSON(t, http.MethodPost, srv.URL+"/api/route/nodes", `{"from": "C", "to": "A"}`, &noRoute)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, noRoute.Found)
	assert.Equal(t, 2, noRoute.NodesExplored)

	var nearest NearestNodeResponse
	code = doJSON(t, http.MethodGet, srv.URL+"/api/node/nearest?lat=0&lng=0.0016&max_distance=150", "", &nearest)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, nearest.Nodes, 2)
	assert.Equal(t, "C", nearest.Nodes[0].ID)
	assert.Equal(t, "B", nearest.Nodes[1].ID)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/node/nearest?lat=0&lng=0.0004", "", &nearest)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, nearest.Nodes, 1)
	assert.Equal(t, "A", nearest.Nodes[0].ID)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/node/nearest?lat=1&lng=1&max_distance=10", "", &errResp)
	assert.Equal(t, http.StatusNotFound, code)

	code = doJSON(t, http.MethodGet, srv.URL+"/api/node/nearest?lat=x&lng=1", "", &errResp)
	assert.Equal(t, http.StatusBadRequest, code)
}
