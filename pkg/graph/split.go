package graph

import (
	"fmt"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/geo"
)

// SplitEpsilon fractions closer than this to an edge end do not split the edge.
const SplitEpsilon = 1e-3

// SplitResult outcome of SplitEdgeAt. when Split is false NodeID is the existing endpoint
// closest to t and the graph was not modified.
type SplitResult struct {
	NodeID       string
	Split        bool
	OriginalEdge string
	FirstEdge    string
	SecondEdge   string
}

func SplitNodeID(edgeID string) string {
	return edgeID + "~split"
}

// SplitEdgeIDs ids of the two edges that replace edgeID after a split.
func SplitEdgeIDs(edgeID string) (string, string) {
	return edgeID + "~1", edgeID + "~2"
}

/*
SplitEdgeAt replaces edge (A,B) by a new node at fraction t plus edges A->new and new->B.

both new edges keep the directionality of the original. their distances are the haversine
length of each half, scaled so they sum to the original distance. t <= SplitEpsilon or
t >= 1-SplitEpsilon returns the existing endpoint without touching the graph.
*/
func (g *Graph) SplitEdgeAt(edgeID string, t float64) (SplitResult, error) {
	e, ok := g.edges[edgeID]
	if !ok {
		return SplitResult{}, fmt.Errorf("split edge %s: %w", edgeID, datastructure.ErrEdgeNotFound)
	}
	if t <= SplitEpsilon {
		return SplitResult{NodeID: e.A, OriginalEdge: edgeID}, nil
	}
	if t >= 1-SplitEpsilon {
		return SplitResult{NodeID: e.B, OriginalEdge: edgeID}, nil
	}

	newNodeID := SplitNodeID(edgeID)
	firstID, secondID := SplitEdgeIDs(edgeID)
	if g.HasNode(newNodeID) {
		return SplitResult{}, fmt.Errorf("split edge %s: %w", edgeID, datastructure.ErrDuplicateNode)
	}
	if g.HasEdge(firstID) || g.HasEdge(secondID) {
		return SplitResult{}, fmt.Errorf("split edge %s: %w", edgeID, datastructure.ErrDuplicateEdge)
	}

	a := g.nodes[e.A]
	b := g.nodes[e.B]
	pos := geo.Interpolate(a.Coordinate(), b.Coordinate(), t)

	firstDist := geo.CalculateHaversineDistance(a.Lat, a.Lon, pos.Lat, pos.Lon)
	secondDist := geo.CalculateHaversineDistance(pos.Lat, pos.Lon, b.Lat, b.Lon)
	if sum := firstDist + secondDist; sum > 0 {
		firstDist, secondDist = e.Distance*firstDist/sum, e.Distance*secondDist/sum
	} else {
		firstDist, secondDist = e.Distance*t, e.Distance*(1-t)
	}

	if err := g.RemoveEdge(edgeID); err != nil {
		return SplitResult{}, err
	}
	// ids were checked above, these cannot fail.
	_ = g.AddNode(datastructure.NewNode(newNodeID, pos.Lat, pos.Lon))

	first := datastructure.NewEdge(firstID, e.A, newNodeID, firstDist, e.Bidirectional)
	first.Name = e.Name
	second := datastructure.NewEdge(secondID, newNodeID, e.B, secondDist, e.Bidirectional)
	second.Name = e.Name
	_ = g.AddEdge(first)
	_ = g.AddEdge(second)

	return SplitResult{
		NodeID:       newNodeID,
		Split:        true,
		OriginalEdge: edgeID,
		FirstEdge:    firstID,
		SecondEdge:   secondID,
	}, nil
}
