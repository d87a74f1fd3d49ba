package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/geo"
)

// Snapshot normalized graph document. longitude is always written as lng.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes"`
	Edges []SnapshotEdge `json:"edges"`
}

type SnapshotNode struct {
	ID    string  `json:"id"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Name  string  `json:"name,omitempty"`
	IsPOI bool    `json:"isPOI,omitempty"`
}

type SnapshotEdge struct {
	ID            string  `json:"id"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Distance      float64 `json:"distance"`
	Bidirectional bool    `json:"bidirectional"`
	Name          string  `json:"name,omitempty"`
}

type rawSnapshot struct {
	Nodes *[]rawNode `json:"nodes"`
	Edges *[]rawEdge `json:"edges"`
}

type rawNode struct {
	ID    json.RawMessage `json:"id"`
	Lat   *float64        `json:"lat"`
	Lng   *float64        `json:"lng"`
	Lon   *float64        `json:"lon"`
	Name  string          `json:"name"`
	IsPOI bool            `json:"isPOI"`
}

type rawEdge struct {
	ID            json.RawMessage `json:"id"`
	From          json.RawMessage `json:"from"`
	To            json.RawMessage `json:"to"`
	Distance      *float64        `json:"distance"`
	Weight        *float64        `json:"weight"`
	Bidirectional *bool           `json:"bidirectional"`
	Name          string          `json:"name"`
}

func invalidf(format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), datastructure.ErrInvalidGraphFormat)
}

/*
ParseSnapshot decode a graph document.

ids may be json strings or numbers (numbers are kept as their decimal string). longitude
is read from lng or lon. an edge without distance (or weight) gets the haversine length
between its endpoints, bidirectional defaults to true and a missing edge id becomes e<index>.
*/
func ParseSnapshot(data []byte) (Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, invalidf("decode graph json: %v", err)
	}
	if raw.Nodes == nil {
		return Snapshot{}, invalidf("missing nodes collection")
	}
	if raw.Edges == nil {
		return Snapshot{}, invalidf("missing edges collection")
	}

	snap := Snapshot{
		Nodes: make([]SnapshotNode, 0, len(*raw.Nodes)),
		Edges: make([]SnapshotEdge, 0, len(*raw.Edges)),
	}
	coords := make(map[string]datastructure.Coordinate, len(*raw.Nodes))
	for i, n := range *raw.Nodes {
		id, err := parseID(n.ID)
		if err != nil {
			return Snapshot{}, invalidf("node %d: %v", i, err)
		}
		lng := n.Lng
		if lng == nil {
			lng = n.Lon
		}
		if n.Lat == nil || lng == nil {
			return Snapshot{}, invalidf("node %s: missing coordinate", id)
		}
		snap.Nodes = append(snap.Nodes, SnapshotNode{
			ID:    id,
			Lat:   *n.Lat,
			Lng:   *lng,
			Name:  n.Name,
			IsPOI: n.IsPOI,
		})
		coords[id] = datastructure.NewCoordinate(*n.Lat, *lng)
	}

	for i, e := range *raw.Edges {
		id := fmt.Sprintf("e%d", i)
		if len(bytes.TrimSpace(e.ID)) > 0 && !bytes.Equal(bytes.TrimSpace(e.ID), []byte("null")) {
			parsed, err := parseID(e.ID)
			if err != nil {
				return Snapshot{}, invalidf("edge %d: %v", i, err)
			}
			id = parsed
		}
		from, err := parseID(e.From)
		if err != nil {
			return Snapshot{}, invalidf("edge %s from: %v", id, err)
		}
		to, err := parseID(e.To)
		if err != nil {
			return Snapshot{}, invalidf("edge %s to: %v", id, err)
		}

		dist := e.Distance
		if dist == nil {
			dist = e.Weight
		}
		var d float64
		if dist != nil {
			d = *dist
		} else {
			a, okA := coords[from]
			b, okB := coords[to]
			if !okA || !okB {
				return Snapshot{}, invalidf("edge %s references a missing node", id)
			}
			d = geo.CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
		}

		bidirectional := true
		if e.Bidirectional != nil {
			bidirectional = *e.Bidirectional
		}
		snap.Edges = append(snap.Edges, SnapshotEdge{
			ID:            id,
			From:          from,
			To:            to,
			Distance:      d,
			Bidirectional: bidirectional,
			Name:          e.Name,
		})
	}
	return snap, nil
}

// FromSnapshot build a graph, every failure is reported as ErrInvalidGraphFormat.
func FromSnapshot(snap Snapshot) (*Graph, error) {
	g := NewGraph()
	for _, n := range snap.Nodes {
		if math.IsNaN(n.Lat) || math.IsNaN(n.Lng) || math.Abs(n.Lat) > 90 || math.Abs(n.Lng) > 180 {
			return nil, invalidf("node %s: coordinate out of range", n.ID)
		}
		if strings.HasPrefix(n.ID, datastructure.VirtualIDPrefix) {
			return nil, invalidf("node %s: ids starting with %s are reserved", n.ID, datastructure.VirtualIDPrefix)
		}
		node := datastructure.NewNode(n.ID, n.Lat, n.Lng)
		node.Name = n.Name
		node.IsPOI = n.IsPOI
		if err := g.AddNode(node); err != nil {
			return nil, invalidf("%v", err)
		}
	}
	for _, e := range snap.Edges {
		if strings.HasPrefix(e.ID, datastructure.VirtualIDPrefix) {
			return nil, invalidf("edge %s: ids starting with %s are reserved", e.ID, datastructure.VirtualIDPrefix)
		}
		edge := datastructure.NewEdge(e.ID, e.From, e.To, e.Distance, e.Bidirectional)
		edge.Name = e.Name
		if err := g.AddEdge(edge); err != nil {
			return nil, invalidf("%v", err)
		}
	}
	return g, nil
}

// LoadJSON ParseSnapshot followed by FromSnapshot.
func LoadJSON(data []byte) (*Graph, error) {
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap)
}

// Snapshot export the graph in insertion order.
func (g *Graph) Snapshot() Snapshot {
	snap := Snapshot{
		Nodes: make([]SnapshotNode, 0, g.NodeCount()),
		Edges: make([]SnapshotEdge, 0, g.EdgeCount()),
	}
	for _, id := range g.nodeOrder {
		n := g.nodes[id]
		snap.Nodes = append(snap.Nodes, SnapshotNode{
			ID:    n.ID,
			Lat:   n.Lat,
			Lng:   n.Lon,
			Name:  n.Name,
			IsPOI: n.IsPOI,
		})
	}
	for _, id := range g.edgeOrder {
		e := g.edges[id]
		snap.Edges = append(snap.Edges, SnapshotEdge{
			ID:            e.ID,
			From:          e.A,
			To:            e.B,
			Distance:      e.Distance,
			Bidirectional: e.Bidirectional,
			Name:          e.Name,
		})
	}
	return snap
}

func (g *Graph) ExportJSON() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("missing id")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		if s == "" {
			return "", fmt.Errorf("empty id")
		}
		return s, nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", fmt.Errorf("id must be a string or a number: %v", err)
	}
	if i, err := num.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := num.Float64()
	if err != nil {
		return "", err
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return num.String(), nil
}
