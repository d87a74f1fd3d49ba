package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/engine"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/lintang-b-s/roadnav/pkg/guidance"
	"github.com/lintang-b-s/roadnav/pkg/kv"
	"github.com/lintang-b-s/roadnav/pkg/overlay"
	"github.com/lintang-b-s/roadnav/pkg/server/rest/service"
	"github.com/lintang-b-s/roadnav/pkg/spatialindex"
	"github.com/lintang-b-s/roadnav/pkg/util"
	"go.uber.org/zap"
)

// maxGraphBody upper bound of an uploaded graph document.
const maxGraphBody = 256 << 20

type NavigationService interface {
	Info(ctx context.Context) service.Info
	LoadGraph(ctx context.Context, data []byte) (graph.Stats, error)
	ExportGraph(ctx context.Context) graph.Snapshot
	SaveGraph(ctx context.Context, name string) (kv.SnapshotMeta, error)
	RestoreGraph(ctx context.Context, name string) (graph.Stats, error)
	ListSavedGraphs(ctx context.Context) ([]kv.SnapshotMeta, error)
	DeleteSavedGraph(ctx context.Context, name string) error
	SplitEdge(ctx context.Context, edgeID string, t float64) (graph.SplitResult, error)
	SplitEdgeAtCoordinate(ctx context.Context, p datastructure.Coordinate) (graph.SplitResult, error)
	ShortestPath(ctx context.Context, start, end datastructure.Coordinate, algo engine.Algorithm) (service.RouteResult, error)
	RouteBetweenNodes(ctx context.Context, from, to string, algo engine.Algorithm) (service.RouteResult, error)
	NearestNodes(ctx context.Context, p datastructure.Coordinate, maxDistance float64) ([]service.NearbyNode, error)
	TraceRoute(ctx context.Context, start, end datastructure.Coordinate, algo engine.Algorithm, maxSteps int) (service.Trace, error)
	ApplyRoadStatus(ctx context.Context, first, second datastructure.Coordinate, status datastructure.RoadStatus) (overlay.Run, error)
	SetEdgeStatus(ctx context.Context, edgeID string, status datastructure.RoadStatus) error
	ClearAllStatus(ctx context.Context)
	RoadStatuses(ctx context.Context) map[string]datastructure.RoadStatus
	NearestRoadSegments(ctx context.Context, p datastructure.Coordinate, radius float64, k int) ([]spatialindex.NearbySegment, error)
	Coverage(ctx context.Context) (spatialindex.Coverage, error)
	CheckCoverage(ctx context.Context, p datastructure.Coordinate) (service.CoverageCheck, error)
}

type NavigationHandler struct {
	svc      NavigationService
	log      *zap.Logger
	validate *validator.Validate
	trans    ut.Translator
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, log *zap.Logger) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc: svc, log: log, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Get("/health", handler.Health)
			r.Get("/info", handler.Info)

			r.Route("/graph", func(r chi.Router) {
				r.Post("/", handler.LoadGraph)
				r.Get("/", handler.ExportGraph)
				r.Get("/saved", handler.ListSavedGraphs)
				r.Post("/save/{name}", handler.SaveGraph)
				r.Post("/restore/{name}", handler.RestoreGraph)
				r.Delete("/saved/{name}", handler.DeleteSavedGraph)
				r.Post("/split", handler.SplitEdge)
			})

			r.Post("/route", handler.ShortestPath)
			r.Post("/route/trace", handler.TraceRoute)
			r.Post("/route/nodes", handler.RouteBetweenNodes)
			r.Get("/node/nearest", handler.NearestNode)

			r.Route("/road-status", func(r chi.Router) {
				r.Get("/", handler.RoadStatuses)
				r.Post("/", handler.ApplyRoadStatus)
				r.Delete("/", handler.ClearAllStatus)
				r.Put("/{edgeID}", handler.SetEdgeStatus)
			})

			r.Get("/nearest-road-segments", handler.NearestRoadSegments)
			r.Get("/coverage", handler.Coverage)
			r.Post("/coverage/check", handler.CheckCoverage)
		})
	})
}

func (h *NavigationHandler) validateRequest(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return false
	}
	return true
}

// Coord model info
//
//	@Description	latitude and longitude in degree
type Coord struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func (c Coord) coordinate() datastructure.Coordinate {
	return datastructure.NewCoordinate(*c.Lat, *c.Lng)
}

func newCoord(c datastructure.Coordinate) Coord {
	lat, lng := c.Lat, c.Lon
	return Coord{Lat: &lat, Lng: &lng}
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Health
//
//	@Summary	liveness probe
//	@Tags		system
//	@Produce	application/json
//	@Router		/health [get]
//	@Success	200	{object}	HealthResponse
func (h *NavigationHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, HealthResponse{Status: "ok"})
}

// Info
//
//	@Summary	graph statistics, road status counts and route cache statistics
//	@Tags		system
//	@Produce	application/json
//	@Router		/info [get]
//	@Success	200	{object}	service.Info
func (h *NavigationHandler) Info(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.svc.Info(r.Context()))
}

// LoadGraph
//
//	@Summary		replace the road network
//	@Description	body is a graph document {nodes:[{id,lat,lng|lon}], edges:[{id,from,to,distance,bidirectional}]}. the road status overlay is reset.
//	@Tags			graph
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/graph [post]
//	@Success		200	{object}	graph.Stats
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) LoadGraph(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxGraphBody))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	stats, err := h.svc.LoadGraph(r.Context(), data)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, stats)
}

// ExportGraph
//
//	@Summary	current road network as a graph document
//	@Tags		graph
//	@Produce	application/json
//	@Router		/graph [get]
//	@Success	200	{object}	graph.Snapshot
func (h *NavigationHandler) ExportGraph(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.svc.ExportGraph(r.Context()))
}

// SaveGraph
//
//	@Summary	store the current road network under a name
//	@Tags		graph
//	@Param		name	path	string	true	"snapshot name"
//	@Produce	application/json
//	@Router		/graph/save/{name} [post]
//	@Success	201	{object}	kv.SnapshotMeta
//	@Failure	400	{object}	ErrResponse
func (h *NavigationHandler) SaveGraph(w http.ResponseWriter, r *http.Request) {
	meta, err := h.svc.SaveGraph(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, meta)
}

// RestoreGraph
//
//	@Summary	load a stored road network
//	@Tags		graph
//	@Param		name	path	string	true	"snapshot name"
//	@Produce	application/json
//	@Router		/graph/restore/{name} [post]
//	@Success	200	{object}	graph.Stats
//	@Failure	404	{object}	ErrResponse
func (h *NavigationHandler) RestoreGraph(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.RestoreGraph(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, stats)
}

type SavedGraphsResponse struct {
	Graphs []kv.SnapshotMeta `json:"graphs"`
}

// ListSavedGraphs
//
//	@Summary	stored road networks
//	@Tags		graph
//	@Produce	application/json
//	@Router		/graph/saved [get]
//	@Success	200	{object}	SavedGraphsResponse
func (h *NavigationHandler) ListSavedGraphs(w http.ResponseWriter, r *http.Request) {
	metas, err := h.svc.ListSavedGraphs(r.Context())
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, SavedGraphsResponse{Graphs: metas})
}

func (h *NavigationHandler) DeleteSavedGraph(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSavedGraph(r.Context(), chi.URLParam(r, "name")); err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.NoContent(w, r)
}

// SplitEdgeRequest model info
//
//	@Description	split by edge id and fraction, or at the projection of a location onto its nearest edge
type SplitEdgeRequest struct {
	EdgeID   string   `json:"edge_id"`
	T        *float64 `json:"t" validate:"omitempty,gte=0,lte=1"`
	Location *Coord   `json:"location"`
}

func (s *SplitEdgeRequest) Bind(r *http.Request) error {
	if s.EdgeID == "" && s.Location == nil {
		return errors.New("either edge_id and t or location is required")
	}
	if s.EdgeID != "" && s.T == nil {
		return errors.New("t is required together with edge_id")
	}
	return nil
}

type SplitEdgeResponse struct {
	NodeID     string `json:"node_id"`
	Split      bool   `json:"split"`
	FirstEdge  string `json:"first_edge,omitempty"`
	SecondEdge string `json:"second_edge,omitempty"`
}

// SplitEdge
//
//	@Summary	split an edge into two edges joined by a new node
//	@Tags		graph
//	@Param		body	body	SplitEdgeRequest	true	"edge to split"
//	@Accept		application/json
//	@Produce	application/json
//	@Router		/graph/split [post]
//	@Success	200	{object}	SplitEdgeResponse
//	@Failure	400	{object}	ErrResponse
//	@Failure	404	{object}	ErrResponse
func (h *NavigationHandler) SplitEdge(w http.ResponseWriter, r *http.Request) {
	data := &SplitEdgeRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	var (
		res graph.SplitResult
		err error
	)
	if data.EdgeID != "" {
		res, err = h.svc.SplitEdge(r.Context(), data.EdgeID, *data.T)
	} else {
		res, err = h.svc.SplitEdgeAtCoordinate(r.Context(), data.Location.coordinate())
	}
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, SplitEdgeResponse{
		NodeID:     res.NodeID,
		Split:      res.Split,
		FirstEdge:  res.FirstEdge,
		SecondEdge: res.SecondEdge,
	})
}

// ShortestPathRequest model info
//
//	@Description	route between two clicked locations
type ShortestPathRequest struct {
	Start     *Coord `json:"start" validate:"required"`
	End       *Coord `json:"end" validate:"required"`
	Algorithm string `json:"algorithm" validate:"omitempty,oneof=astar dijkstra"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	if s.Start == nil || s.End == nil {
		return errors.New("start and end are required")
	}
	return nil
}

// ShortestPathResponse model info
//
//	@Description	route found by the search
type ShortestPathResponse struct {
	Found         bool                        `json:"found"`
	Path          []string                    `json:"path"`
	Coordinates   []Coord                     `json:"coordinates"`
	Polyline      string                      `json:"polyline"`
	Simplified    string                      `json:"simplified_polyline"`
	EdgeIDs       []string                    `json:"edge_ids"`
	Cost          float64                     `json:"cost"`
	Distance      float64                     `json:"distance"`
	NodesExplored int                         `json:"nodes_explored"`
	ComputeTimeMs float64                     `json:"compute_time_ms"`
	Algorithm     string                      `json:"algorithm"`
	Cached        bool                        `json:"cached"`
	Directions    []guidance.DrivingDirection `json:"directions,omitempty"`
	EdgeStatuses  map[string]string           `json:"edge_statuses,omitempty"`
	Error         string                      `json:"error,omitempty"`
}

func RenderShortestPathResponse(res service.RouteResult, withStatuses bool) *ShortestPathResponse {
	coords := make([]Coord, 0, len(res.Path.Coordinates))
	for _, c := range res.Path.Coordinates {
		coords = append(coords, newCoord(c))
	}
	resp := &ShortestPathResponse{
		Found:         res.Path.Found,
		Path:          res.Path.NodeIDs,
		Coordinates:   coords,
		Polyline:      res.Path.Polyline(),
		Simplified:    datastructure.CreatePolyline(res.Simplified),
		EdgeIDs:       res.Path.EdgeIDs,
		Cost:          res.Path.Cost,
		Distance:      res.Path.Dist,
		NodesExplored: res.Path.NodesExplored,
		ComputeTimeMs: float64(res.Path.Duration.Microseconds()) / 1000,
		Algorithm:     string(res.Algorithm),
		Cached:        res.Cached,
		Directions:    res.Directions,
	}
	if withStatuses {
		resp.EdgeStatuses = make(map[string]string, len(res.Statuses))
		for id, st := range res.Statuses {
			resp.EdgeStatuses[id] = st.String()
		}
	}
	return resp
}

// ShortestPath
//
//	@Summary		shortest route between two locations
//	@Description	both locations are attached to their nearest road. blocked roads are avoided and congested roads cost three times their length.
//	@Tags			navigations
//	@Param			body			body	ShortestPathRequest	true	"route request"
//	@Param			edge_statuses	query	bool				false	"include the status of every edge"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/route [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ShortestPathResponse	"no route, found is false and the search stats are kept"
func (h *NavigationHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}
	algo, err := engine.ParseAlgorithm(data.Algorithm)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	res, err := h.svc.ShortestPath(r.Context(), data.Start.coordinate(), data.End.coordinate(), algo)
	h.renderRoute(w, r, res, err)
}

// renderRoute a search that ran to completion without reaching the goal is answered with 404 and
// the search stats, every other error with a plain ErrResponse.
func (h *NavigationHandler) renderRoute(w http.ResponseWriter, r *http.Request, res service.RouteResult, err error) {
	if err != nil {
		h.log.Debug("route query failed", zap.Error(err))
		if !errors.Is(err, datastructure.ErrNoPathFound) {
			render.Render(w, r, ErrServiceRend(err))
			return
		}
		resp := RenderShortestPathResponse(res, false)
		var uerr *util.Error
		if errors.As(err, &uerr) {
			resp.Error = uerr.Message()
		}
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, resp)
		return
	}
	withStatuses, _ := strconv.ParseBool(r.URL.Query().Get("edge_statuses"))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderShortestPathResponse(res, withStatuses))
}

// NodeRouteRequest model info
//
//	@Description	route between two node ids of the loaded graph
type NodeRouteRequest struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Algorithm string `json:"algorithm" validate:"omitempty,oneof=astar dijkstra"`
}

func (s *NodeRouteRequest) Bind(r *http.Request) error {
	return nil
}

// RouteBetweenNodes
//
//	@Summary		shortest route between two node ids
//	@Description	the nodes are used as they are, no location binding. blocked and congested roads are handled like /route.
//	@Tags			navigations
//	@Param			body			body	NodeRouteRequest	true	"node route request"
//	@Param			edge_statuses	query	bool				false	"include the status of every edge"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/route/nodes [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ShortestPathResponse	"no route, found is false and the search stats are kept"
func (h *NavigationHandler) RouteBetweenNodes(w http.ResponseWriter, r *http.Request) {
	data := &NodeRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}
	algo, err := engine.ParseAlgorithm(data.Algorithm)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	res, err := h.svc.RouteBetweenNodes(r.Context(), data.From, data.To, algo)
	h.renderRoute(w, r, res, err)
}

type NearbyNode struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Location Coord   `json:"location"`
	Distance float64 `json:"distance"`
}

type NearestNodeResponse struct {
	Nodes []NearbyNode `json:"nodes"`
}

type NearestNodeRequest struct {
	Lat         float64 `validate:"gte=-90,lte=90"`
	Lng         float64 `validate:"gte=-180,lte=180"`
	MaxDistance float64 `validate:"gte=0,lte=50000"`
}

// NearestNode
//
//	@Summary	road nodes within max_distance meter of a location, nearest first
//	@Tags		navigations
//	@Param		lat				query	number	true	"latitude"
//	@Param		lng				query	number	true	"longitude"
//	@Param		max_distance	query	number	false	"radius in meter, 0 or missing returns the single nearest node"
//	@Produce	application/json
//	@Router		/node/nearest [get]
//	@Success	200	{object}	NearestNodeResponse
//	@Failure	400	{object}	ErrResponse
//	@Failure	404	{object}	ErrResponse
func (h *NavigationHandler) NearestNode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := NearestNodeRequest{}
	var err error
	if data.Lat, err = strconv.ParseFloat(q.Get("lat"), 64); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("lat must be a number")))
		return
	}
	if data.Lng, err = strconv.ParseFloat(q.Get("lng"), 64); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("lng must be a number")))
		return
	}
	if v := q.Get("max_distance"); v != "" {
		if data.MaxDistance, err = strconv.ParseFloat(v, 64); err != nil {
			render.Render(w, r, ErrInvalidRequest(errors.New("max_distance must be a number")))
			return
		}
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	nodes, err := h.svc.NearestNodes(r.Context(), datastructure.NewCoordinate(data.Lat, data.Lng), data.MaxDistance)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	resp := NearestNodeResponse{Nodes: make([]NearbyNode, 0, len(nodes))}
	for _, n := range nodes {
		resp.Nodes = append(resp.Nodes, NearbyNode{
			ID:       n.Node.ID,
			Name:     n.Node.Name,
			Location: newCoord(n.Node.Coordinate()),
			Distance: n.Distance,
		})
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// TraceRouteRequest model info
//
//	@Description	route request whose search expansions are recorded
type TraceRouteRequest struct {
	ShortestPathRequest
	MaxSteps int `json:"max_steps" validate:"gte=0"`
}

type TraceRouteResponse struct {
	State     string                `json:"state"`
	Truncated bool                  `json:"truncated"`
	Steps     []service.TraceStep   `json:"steps"`
	Route     *ShortestPathResponse `json:"route,omitempty"`
}

// TraceRoute
//
//	@Summary	every expansion of a route search, for animating it
//	@Tags		navigations
//	@Param		body	body	TraceRouteRequest	true	"trace request"
//	@Accept		application/json
//	@Produce	application/json
//	@Router		/route/trace [post]
//	@Success	200	{object}	TraceRouteResponse
//	@Failure	400	{object}	ErrResponse
//	@Failure	404	{object}	ErrResponse
func (h *NavigationHandler) TraceRoute(w http.ResponseWriter, r *http.Request) {
	data := &TraceRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}
	algo, err := engine.ParseAlgorithm(data.Algorithm)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	trace, err := h.svc.TraceRoute(r.Context(), data.Start.coordinate(), data.End.coordinate(), algo, data.MaxSteps)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	resp := TraceRouteResponse{
		State:     trace.State,
		Truncated: trace.Truncated,
		Steps:     trace.Steps,
	}
	if trace.Path.Found {
		resp.Route = RenderShortestPathResponse(service.RouteResult{Path: trace.Path, Algorithm: algo}, false)
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// RoadStatusRequest model info
//
//	@Description	two clicks on the map, every edge of the road run between them gets the status
type RoadStatusRequest struct {
	First  *Coord `json:"first" validate:"required"`
	Second *Coord `json:"second" validate:"required"`
	Status string `json:"status" validate:"required,oneof=blocked congested clear normal"`
}

func (s *RoadStatusRequest) Bind(r *http.Request) error {
	if s.First == nil || s.Second == nil {
		return errors.New("first and second are required")
	}
	return nil
}

type RoadStatusResponse struct {
	Status   string   `json:"status"`
	Edited   int      `json:"edited"`
	EdgeIDs  []string `json:"edge_ids"`
	NodePath []string `json:"node_path"`
}

// ApplyRoadStatus
//
//	@Summary	block, congest or clear the roads between two clicks
//	@Tags		road-status
//	@Param		body	body	RoadStatusRequest	true	"road status request"
//	@Accept		application/json
//	@Produce	application/json
//	@Router		/road-status [post]
//	@Success	200	{object}	RoadStatusResponse
//	@Failure	400	{object}	ErrResponse
//	@Failure	404	{object}	ErrResponse
func (h *NavigationHandler) ApplyRoadStatus(w http.ResponseWriter, r *http.Request) {
	data := &RoadStatusRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}
	status, err := datastructure.ParseRoadStatus(data.Status)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	run, err := h.svc.ApplyRoadStatus(r.Context(), data.First.coordinate(), data.Second.coordinate(), status)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, RoadStatusResponse{
		Status:   status.String(),
		Edited:   len(run.EdgeIDs),
		EdgeIDs:  run.EdgeIDs,
		NodePath: run.NodePath,
	})
}

type EdgeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=blocked congested clear normal"`
}

func (s *EdgeStatusRequest) Bind(r *http.Request) error {
	return nil
}

func (h *NavigationHandler) SetEdgeStatus(w http.ResponseWriter, r *http.Request) {
	data := &EdgeStatusRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}
	status, err := datastructure.ParseRoadStatus(data.Status)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	edgeID := chi.URLParam(r, "edgeID")
	if err := h.svc.SetEdgeStatus(r.Context(), edgeID, status); err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, RoadStatusResponse{
		Status:   status.String(),
		Edited:   1,
		EdgeIDs:  []string{edgeID},
		NodePath: []string{},
	})
}

// ClearAllStatus
//
//	@Summary	every road back to normal
//	@Tags		road-status
//	@Router		/road-status [delete]
//	@Success	204
func (h *NavigationHandler) ClearAllStatus(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearAllStatus(r.Context())
	render.NoContent(w, r)
}

type EdgeStatus struct {
	EdgeID string `json:"edge_id"`
	Status string `json:"status"`
}

type RoadStatusesResponse struct {
	Edges []EdgeStatus `json:"edges"`
}

// RoadStatuses
//
//	@Summary	status of every road, sorted by edge id
//	@Tags		road-status
//	@Produce	application/json
//	@Router		/road-status [get]
//	@Success	200	{object}	RoadStatusesResponse
func (h *NavigationHandler) RoadStatuses(w http.ResponseWriter, r *http.Request) {
	statuses := h.svc.RoadStatuses(r.Context())
	resp := RoadStatusesResponse{Edges: make([]EdgeStatus, 0, len(statuses))}
	for id, st := range statuses {
		resp.Edges = append(resp.Edges, EdgeStatus{EdgeID: id, Status: st.String()})
	}
	sort.Slice(resp.Edges, func(i, j int) bool {
		return resp.Edges[i].EdgeID < resp.Edges[j].EdgeID
	})
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// NearestRoadSegmentsRequest model info
//
//	@Description	query string of the nearest road segments search
type NearestRoadSegmentsRequest struct {
	Lat    float64 `validate:"gte=-90,lte=90"`
	Lng    float64 `validate:"gte=-180,lte=180"`
	Radius float64 `validate:"gte=0,lte=5000"`
	K      int     `validate:"gte=0"`
}

type RoadSegment struct {
	EdgeID        string  `json:"edge_id"`
	Name          string  `json:"name,omitempty"`
	From          Coord   `json:"from"`
	To            Coord   `json:"to"`
	Projection    Coord   `json:"projection"`
	Distance      float64 `json:"distance"`
	Bidirectional bool    `json:"bidirectional"`
}

type RoadSegmentsResponse struct {
	Segments []RoadSegment `json:"segments"`
}

func RenderRoadSegmentsResponse(segs []spatialindex.NearbySegment) *RoadSegmentsResponse {
	resp := &RoadSegmentsResponse{Segments: make([]RoadSegment, 0, len(segs))}
	for _, s := range segs {
		resp.Segments = append(resp.Segments, RoadSegment{
			EdgeID:        s.Edge.ID,
			Name:          s.Edge.Name,
			From:          newCoord(s.From),
			To:            newCoord(s.To),
			Projection:    newCoord(s.Projection.Point),
			Distance:      s.Distance,
			Bidirectional: s.Edge.Bidirectional,
		})
	}
	return resp
}

// NearestRoadSegments
//
//	@Summary	road segments within radius meter of a location, nearest first
//	@Tags		navigations
//	@Param		lat		query	number	true	"latitude"
//	@Param		lng		query	number	true	"longitude"
//	@Param		radius	query	number	false	"search radius in meter, default 100. 0 returns the k nearest segments at any distance"
//	@Param		k		query	int		false	"maximum number of segments, 0 means no limit"
//	@Produce	application/json
//	@Router		/nearest-road-segments [get]
//	@Success	200	{object}	RoadSegmentsResponse
//	@Failure	400	{object}	ErrResponse
func (h *NavigationHandler) NearestRoadSegments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := NearestRoadSegmentsRequest{Radius: 100}
	var err error
	if data.Lat, err = strconv.ParseFloat(q.Get("lat"), 64); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("lat must be a number")))
		return
	}
	if data.Lng, err = strconv.ParseFloat(q.Get("lng"), 64); err != nil {
		render.Render(w, r, ErrInvalidRequest(errors.New("lng must be a number")))
		return
	}
	if v := q.Get("radius"); v != "" {
		if data.Radius, err = strconv.ParseFloat(v, 64); err != nil {
			render.Render(w, r, ErrInvalidRequest(errors.New("radius must be a number")))
			return
		}
	}
	if v := q.Get("k"); v != "" {
		if data.K, err = strconv.Atoi(v); err != nil {
			render.Render(w, r, ErrInvalidRequest(errors.New("k must be an integer")))
			return
		}
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	segs, err := h.svc.NearestRoadSegments(r.Context(), datastructure.NewCoordinate(data.Lat, data.Lng), data.Radius, data.K)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRoadSegmentsResponse(segs))
}

// Coverage
//
//	@Summary	h3 cells holding road nodes and the bounding box of the road network
//	@Tags		navigations
//	@Produce	application/json
//	@Router		/coverage [get]
//	@Success	200	{object}	spatialindex.Coverage
func (h *NavigationHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	cov, err := h.svc.Coverage(r.Context())
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, cov)
}

func (c *Coord) Bind(r *http.Request) error {
	if c.Lat == nil || c.Lng == nil {
		return errors.New("lat and lng are required")
	}
	return nil
}

// CheckCoverage
//
//	@Summary	whether a location is served by the road network
//	@Tags		navigations
//	@Param		body	body	Coord	true	"location"
//	@Accept		application/json
//	@Produce	application/json
//	@Router		/coverage/check [post]
//	@Success	200	{object}	service.CoverageCheck
//	@Failure	400	{object}	ErrResponse
func (h *NavigationHandler) CheckCoverage(w http.ResponseWriter, r *http.Request) {
	data := &Coord{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, data) {
		return
	}
	check, err := h.svc.CheckCoverage(r.Context(), data.coordinate())
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, check)
}
