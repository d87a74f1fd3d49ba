package graph

import (
	"fmt"
	"math"
	"slices"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/util"
)

/*
Graph in-memory road network.

nodes and edges are kept in insertion order, iteration over Nodes()/Edges() and over the
incident edges of a node always follows that order. adjacency maps a node id to the ids of
its incident edges (both directions), edge direction is only applied by the caller.
*/
type Graph struct {
	nodes     map[string]datastructure.Node
	nodeOrder []string
	edges     map[string]datastructure.Edge
	edgeOrder []string
	adjacency map[string][]string
}

func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]datastructure.Node),
		nodeOrder: make([]string, 0),
		edges:     make(map[string]datastructure.Edge),
		edgeOrder: make([]string, 0),
		adjacency: make(map[string][]string),
	}
}

func (g *Graph) NodeCount() int {
	return len(g.nodeOrder)
}

func (g *Graph) EdgeCount() int {
	return len(g.edgeOrder)
}

func (g *Graph) Node(id string) (datastructure.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Edge(id string) (datastructure.Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) HasEdge(id string) bool {
	_, ok := g.edges[id]
	return ok
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []datastructure.Node {
	nodes := make([]datastructure.Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []datastructure.Edge {
	edges := make([]datastructure.Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		edges = append(edges, g.edges[id])
	}
	return edges
}

func (g *Graph) AddNode(n datastructure.Node) error {
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("add node %s: %w", n.ID, datastructure.ErrDuplicateNode)
	}
	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
	g.adjacency[n.ID] = make([]string, 0, 2)
	return nil
}

// AddEdge both endpoints must already be in the graph.
func (g *Graph) AddEdge(e datastructure.Edge) error {
	if _, ok := g.edges[e.ID]; ok {
		return fmt.Errorf("add edge %s: %w", e.ID, datastructure.ErrDuplicateEdge)
	}
	if !(e.Distance >= 0) || math.IsInf(e.Distance, 1) {
		return fmt.Errorf("add edge %s: %w", e.ID, datastructure.ErrNegativeWeight)
	}
	if !g.HasNode(e.A) {
		return fmt.Errorf("add edge %s, endpoint %s: %w", e.ID, e.A, datastructure.ErrNodeNotFound)
	}
	if !g.HasNode(e.B) {
		return fmt.Errorf("add edge %s, endpoint %s: %w", e.ID, e.B, datastructure.ErrNodeNotFound)
	}

	g.edges[e.ID] = e
	g.edgeOrder = append(g.edgeOrder, e.ID)
	g.adjacency[e.A] = append(g.adjacency[e.A], e.ID)
	if e.B != e.A {
		g.adjacency[e.B] = append(g.adjacency[e.B], e.ID)
	}
	return nil
}

// AddDirectedEdge one-way edge from -> to.
func (g *Graph) AddDirectedEdge(id, from, to string, dist float64) error {
	return g.AddEdge(datastructure.NewEdge(id, from, to, dist, false))
}

func (g *Graph) AddUndirectedEdge(id, a, b string, dist float64) error {
	return g.AddEdge(datastructure.NewEdge(id, a, b, dist, true))
}

func (g *Graph) RemoveEdge(id string) error {
	e, ok := g.edges[id]
	if !ok {
		return fmt.Errorf("remove edge %s: %w", id, datastructure.ErrEdgeNotFound)
	}
	delete(g.edges, id)
	g.edgeOrder = util.RemoveFirst(g.edgeOrder, id)
	g.adjacency[e.A] = util.RemoveFirst(g.adjacency[e.A], id)
	if e.B != e.A {
		g.adjacency[e.B] = util.RemoveFirst(g.adjacency[e.B], id)
	}
	return nil
}

// RemoveNode removes the node and every edge incident to it.
func (g *Graph) RemoveNode(id string) error {
	if !g.HasNode(id) {
		return fmt.Errorf("remove node %s: %w", id, datastructure.ErrNodeNotFound)
	}
	incident := slices.Clone(g.adjacency[id])
	for _, edgeID := range incident {
		if err := g.RemoveEdge(edgeID); err != nil {
			return err
		}
	}
	delete(g.nodes, id)
	delete(g.adjacency, id)
	g.nodeOrder = util.RemoveFirst(g.nodeOrder, id)
	return nil
}

// IncidentEdges every edge touching the node, regardless of direction.
func (g *Graph) IncidentEdges(nodeID string) []datastructure.Edge {
	ids := g.adjacency[nodeID]
	edges := make([]datastructure.Edge, 0, len(ids))
	for _, id := range ids {
		edges = append(edges, g.edges[id])
	}
	return edges
}

// OutgoingEdges edges that can be traversed when leaving nodeID.
func (g *Graph) OutgoingEdges(nodeID string) []datastructure.Edge {
	edges := make([]datastructure.Edge, 0, len(g.adjacency[nodeID]))
	for _, id := range g.adjacency[nodeID] {
		e := g.edges[id]
		if _, ok := e.TraverseFrom(nodeID); ok {
			edges = append(edges, e)
		}
	}
	return edges
}

// EdgesBetween all parallel edges joining a and b, in either direction.
func (g *Graph) EdgesBetween(a, b string) []datastructure.Edge {
	edges := make([]datastructure.Edge, 0, 1)
	for _, id := range g.adjacency[a] {
		e := g.edges[id]
		if e.Connects(a, b) {
			edges = append(edges, e)
		}
	}
	return edges
}

// Neighbors distinct neighbor ids of nodeID in adjacency order. with respectDirection, only
// nodes reachable by traversing an edge out of nodeID are returned.
func (g *Graph) Neighbors(nodeID string, respectDirection bool) []string {
	seen := make(map[string]struct{})
	neighbors := make([]string, 0, len(g.adjacency[nodeID]))
	for _, id := range g.adjacency[nodeID] {
		e := g.edges[id]
		var next string
		if respectDirection {
			to, ok := e.TraverseFrom(nodeID)
			if !ok {
				continue
			}
			next = to
		} else {
			next = e.Other(nodeID)
		}
		if _, ok := seen[next]; ok {
			continue
		}
		seen[next] = struct{}{}
		neighbors = append(neighbors, next)
	}
	return neighbors
}

// Degree number of incident edges.
func (g *Graph) Degree(nodeID string) int {
	return len(g.adjacency[nodeID])
}
