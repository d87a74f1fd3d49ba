package engine

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/geo"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/lintang-b-s/roadnav/pkg/overlay"
)

// SnapTolerance clicks within this many meters of an edge endpoint bind to that node directly.
const SnapTolerance = 0.01

const virtualPrefix = datastructure.VirtualIDPrefix

// BoundEndpoint a click coordinate attached to the road network.
type BoundEndpoint struct {
	NodeID     string
	Synthetic  bool
	Click      datastructure.Coordinate
	EdgeID     string
	Projection geo.Projection
	Distance   float64
}

/*
virtualLayer per-query nodes and connector edges.

it lives next to the graph store and is never inserted into it, dropping the layer discards every
synthetic entity of the query. ids are drawn from @virtual/<generation>/... so they cannot collide
with dataset ids or with the layer of another query.
*/
type virtualLayer struct {
	generation uint64
	nodes      map[string]datastructure.Node
	edges      map[string][]datastructure.Edge
}

func newVirtualLayer(generation uint64) *virtualLayer {
	return &virtualLayer{
		generation: generation,
		nodes:      make(map[string]datastructure.Node),
		edges:      make(map[string][]datastructure.Edge),
	}
}

func (v *virtualLayer) nodeID(role string) string {
	return fmt.Sprintf("%s%d/%s", virtualPrefix, v.generation, role)
}

func (v *virtualLayer) addConnector(id, a, b string, dist float64) {
	e := datastructure.NewEdge(id, a, b, dist, true)
	e.Synthetic = true
	v.edges[a] = append(v.edges[a], e)
	v.edges[b] = append(v.edges[b], e)
}

func (v *virtualLayer) size() (int, int) {
	edges := 0
	for _, es := range v.edges {
		edges += len(es)
	}
	return len(v.nodes), edges / 2
}

// IsVirtualID reports whether id belongs to a per-query synthetic entity.
func IsVirtualID(id string) bool {
	return strings.HasPrefix(id, virtualPrefix)
}

// bind attaches p to its nearest edge. role names the endpoint inside the layer (start, end).
func bind(g *graph.Graph, layer *virtualLayer, role string, p datastructure.Coordinate) (BoundEndpoint, error) {
	nearest, ok := g.NearestEdge(p)
	if !ok {
		return BoundEndpoint{}, fmt.Errorf("bind %s (%f, %f): %w", role, p.Lat, p.Lon, datastructure.ErrNoRoadNearby)
	}
	edge := nearest.Edge
	a, _ := g.Node(edge.A)
	b, _ := g.Node(edge.B)

	bound := BoundEndpoint{
		Click:      p,
		EdgeID:     edge.ID,
		Projection: nearest.Projection,
		Distance:   nearest.Distance,
	}

	distA := geo.CalculateHaversineDistance(p.Lat, p.Lon, a.Lat, a.Lon)
	distB := geo.CalculateHaversineDistance(p.Lat, p.Lon, b.Lat, b.Lon)
	if distA <= SnapTolerance {
		bound.NodeID = a.ID
		return bound, nil
	}
	if distB <= SnapTolerance {
		bound.NodeID = b.ID
		return bound, nil
	}

	// the synthetic node sits on the raw click, the connectors carry the detour.
	id := layer.nodeID(role)
	node := datastructure.NewNode(id, p.Lat, p.Lon)
	layer.nodes[id] = node
	layer.addConnector(id+"/a", id, a.ID, distA)
	layer.addConnector(id+"/b", id, b.ID, distB)

	bound.NodeID = id
	bound.Synthetic = true
	return bound, nil
}

// searchGraph graph store + virtual layer + road status, as seen by the search.
type searchGraph struct {
	g       *graph.Graph
	layer   *virtualLayer
	overlay *overlay.Overlay
}

func (s *searchGraph) NodeCoordinate(nodeID string) (datastructure.Coordinate, bool) {
	if n, ok := s.layer.nodes[nodeID]; ok {
		return n.Coordinate(), true
	}
	n, ok := s.g.Node(nodeID)
	return n.Coordinate(), ok
}

// OutgoingEdges stored edges first, then the connectors touching the node.
func (s *searchGraph) OutgoingEdges(nodeID string) []datastructure.Edge {
	connectors := s.layer.edges[nodeID]
	if _, virtual := s.layer.nodes[nodeID]; virtual {
		return connectors
	}
	edges := s.g.OutgoingEdges(nodeID)
	if len(connectors) == 0 {
		return edges
	}
	return append(edges, connectors...)
}

func (s *searchGraph) EdgeCost(e datastructure.Edge) (float64, bool) {
	if e.Synthetic {
		return e.Distance, true
	}
	mult, ok := s.overlay.Multiplier(e.ID)
	if !ok {
		return 0, false
	}
	return e.Distance * mult, true
}
