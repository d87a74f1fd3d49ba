package graph

import (
	"math"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
)

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lng"`
}

func (b BoundingBox) Center() datastructure.Coordinate {
	return datastructure.NewCoordinate((b.MinLat+b.MaxLat)/2, (b.MinLon+b.MaxLon)/2)
}

type Stats struct {
	Nodes              int         `json:"nodes"`
	Edges              int         `json:"edges"`
	OneWayEdges        int         `json:"one_way_edges"`
	BidirectionalEdges int         `json:"bidirectional_edges"`
	POIs               int         `json:"pois"`
	IsolatedNodes      int         `json:"isolated_nodes"`
	Components         int         `json:"components"`
	LargestComponent   int         `json:"largest_component"`
	TotalLength        float64     `json:"total_length_m"`
	BoundingBox        BoundingBox `json:"bounding_box"`
}

func (g *Graph) Stats() Stats {
	st := Stats{
		Nodes: g.NodeCount(),
		Edges: g.EdgeCount(),
	}
	for _, id := range g.edgeOrder {
		e := g.edges[id]
		if e.Bidirectional {
			st.BidirectionalEdges++
		} else {
			st.OneWayEdges++
		}
		st.TotalLength += e.Distance
	}
	for _, id := range g.nodeOrder {
		if g.nodes[id].IsPOI {
			st.POIs++
		}
		if len(g.adjacency[id]) == 0 {
			st.IsolatedNodes++
		}
	}

	components := g.ConnectedComponents()
	st.Components = len(components)
	for _, c := range components {
		st.LargestComponent = max(st.LargestComponent, len(c))
	}
	st.BoundingBox, _ = g.BoundingBox()
	return st
}

// BoundingBox ok is false for an empty graph.
func (g *Graph) BoundingBox() (BoundingBox, bool) {
	if len(g.nodeOrder) == 0 {
		return BoundingBox{}, false
	}
	bb := BoundingBox{
		MinLat: math.Inf(1), MinLon: math.Inf(1),
		MaxLat: math.Inf(-1), MaxLon: math.Inf(-1),
	}
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		bb.MinLat = math.Min(bb.MinLat, n.Lat)
		bb.MinLon = math.Min(bb.MinLon, n.Lon)
		bb.MaxLat = math.Max(bb.MaxLat, n.Lat)
		bb.MaxLon = math.Max(bb.MaxLon, n.Lon)
	}
	return bb, true
}

// ConnectedComponents weakly connected components (edge direction ignored), each listed
// in discovery order. components are ordered by their first node in insertion order.
func (g *Graph) ConnectedComponents() [][]string {
	visited := make(map[string]bool, len(g.nodeOrder))
	components := make([][]string, 0)
	for _, start := range g.nodeOrder {
		if visited[start] {
			continue
		}
		visited[start] = true
		component := []string{start}
		queue := []string{start}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, next := range g.Neighbors(curr, false) {
				if visited[next] {
					continue
				}
				visited[next] = true
				component = append(component, next)
				queue = append(queue, next)
			}
		}
		components = append(components, component)
	}
	return components
}
