package datastructure

// VirtualIDPrefix ids under this prefix belong to per-query synthetic nodes and edges, datasets may not use it.
const VirtualIDPrefix = "@virtual/"

// Node is a road network vertex. ID is either the dataset id (numeric ids are kept as their
// decimal string) or a synthetic id created by the engine.
type Node struct {
	ID    string
	Lat   float64
	Lon   float64
	Name  string
	IsPOI bool
}

func NewNode(id string, lat, lon float64) Node {
	return Node{
		ID:  id,
		Lat: lat,
		Lon: lon,
	}
}

func (n Node) Coordinate() Coordinate {
	return Coordinate{Lat: n.Lat, Lon: n.Lon}
}

/*
Edge is a road segment between node A and node B.

Bidirectional edges can be traversed A->B and B->A, one-way edges only A->B.
Distance is in meter. Synthetic edges are the connector edges that attach a clicked
location to the road network, they are never stored in the graph and never affected by
road status.
*/
type Edge struct {
	ID            string
	A             string
	B             string
	Distance      float64
	Bidirectional bool
	Synthetic     bool
	Name          string
}

func NewEdge(id, a, b string, dist float64, bidirectional bool) Edge {
	return Edge{
		ID:            id,
		A:             a,
		B:             b,
		Distance:      dist,
		Bidirectional: bidirectional,
	}
}

// Other returns the opposite endpoint, ignoring direction.
func (e Edge) Other(nodeID string) string {
	if e.A == nodeID {
		return e.B
	}
	return e.A
}

// TraverseFrom returns the node reached when leaving nodeID through this edge.
// A is always expandable, B only if the edge is bidirectional.
func (e Edge) TraverseFrom(nodeID string) (string, bool) {
	if e.A == nodeID {
		return e.B, true
	}
	if e.B == nodeID && e.Bidirectional {
		return e.A, true
	}
	return "", false
}

// Connects reports whether the edge joins a and b in any direction.
func (e Edge) Connects(a, b string) bool {
	return (e.A == a && e.B == b) || (e.A == b && e.B == a)
}
