package routingalgorithm

import "github.com/lintang-b-s/roadnav/pkg/datastructure"

// Graph what the search needs from the road network plus any per-query virtual nodes.
type Graph interface {
	NodeCoordinate(nodeID string) (datastructure.Coordinate, bool)
	// OutgoingEdges edges that can be traversed when leaving nodeID, in a stable order.
	OutgoingEdges(nodeID string) []datastructure.Edge
	// EdgeCost ok is false when the edge must not be traversed.
	EdgeCost(e datastructure.Edge) (float64, bool)
}

// Heuristic estimated remaining cost (meter) from a node coordinate to the target.
type Heuristic func(node, target datastructure.Coordinate) float64
