package graph

import (
	"math"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/geo"
)

// distances closer than this (meter) are treated as a tie.
const tieTolerance = 1e-9

// EdgeProjection nearest edge to a query point. Distance is the haversine distance (meter)
// between the query point and its projection onto the edge.
type EdgeProjection struct {
	Edge       datastructure.Edge
	Projection geo.Projection
	Distance   float64
}

// NearestEdge linear scan over every edge in insertion order, ties keep the first edge seen.
// ok is false when the graph has no edges.
func (g *Graph) NearestEdge(p datastructure.Coordinate) (EdgeProjection, bool) {
	best := EdgeProjection{Distance: math.Inf(1)}
	found := false
	for _, id := range g.edgeOrder {
		e := g.edges[id]
		a := g.nodes[e.A]
		b := g.nodes[e.B]
		proj := geo.ProjectOntoSegment(p, a.Coordinate(), b.Coordinate())
		dist := geo.CalculateHaversineDistance(p.Lat, p.Lon, proj.Point.Lat, proj.Point.Lon)
		if dist < best.Distance-tieTolerance {
			best = EdgeProjection{Edge: e, Projection: proj, Distance: dist}
			found = true
		}
	}
	return best, found
}

// NearestNode linear scan, ties keep the first node seen.
func (g *Graph) NearestNode(p datastructure.Coordinate) (datastructure.Node, float64, bool) {
	var best datastructure.Node
	bestDist := math.Inf(1)
	found := false
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		dist := geo.CalculateHaversineDistance(p.Lat, p.Lon, n.Lat, n.Lon)
		if dist < bestDist {
			best, bestDist, found = n, dist, true
		}
	}
	return best, bestDist, found
}

// NodesInRadius nodes within radius meter of p, in insertion order.
func (g *Graph) NodesInRadius(p datastructure.Coordinate, radius float64) []datastructure.Node {
	nodes := make([]datastructure.Node, 0)
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		if geo.CalculateHaversineDistance(p.Lat, p.Lon, n.Lat, n.Lon) <= radius {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
