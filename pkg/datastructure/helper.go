package datastructure

import (
	"time"

	"github.com/twpayne/go-polyline"
)

// PathResult is the outcome of one shortest path query.
// Cost is weighted by road status, Dist is the plain sum of edge distances (meter).
type PathResult struct {
	NodeIDs       []string
	Coordinates   []Coordinate
	EdgeIDs       []string // only edges stored in the graph, connector edges are left out
	Cost          float64
	Dist          float64
	NodesExplored int
	Duration      time.Duration
	Found         bool
}

func NewPathResult(nodeIDs []string, coords []Coordinate, edgeIDs []string, cost, dist float64,
	nodesExplored int, duration time.Duration) PathResult {
	return PathResult{
		NodeIDs:       nodeIDs,
		Coordinates:   coords,
		EdgeIDs:       edgeIDs,
		Cost:          cost,
		Dist:          dist,
		NodesExplored: nodesExplored,
		Duration:      duration,
		Found:         true,
	}
}

func NotFoundPathResult(nodesExplored int, duration time.Duration) PathResult {
	return PathResult{
		NodeIDs:       []string{},
		Coordinates:   []Coordinate{},
		EdgeIDs:       []string{},
		NodesExplored: nodesExplored,
		Duration:      duration,
		Found:         false,
	}
}

func (p PathResult) Polyline() string {
	return CreatePolyline(p.Coordinates)
}

func CreatePolyline(path []Coordinate) string {
	s := ""
	coords := make([][]float64, 0)
	for _, p := range path {
		pT := p
		coords = append(coords, []float64{pT.Lat, pT.Lon})
	}
	s = string(polyline.EncodeCoords(coords))
	return s
}
