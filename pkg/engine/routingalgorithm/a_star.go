package routingalgorithm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/geo"
	"github.com/lintang-b-s/roadnav/pkg/util"
)

var ErrSearchRunning = errors.New("search has not finished")

type SearchState uint8

const (
	StateRunning SearchState = iota
	StateFound
	StateNotFound
	StateCancelled
)

func (s SearchState) String() string {
	switch s {
	case StateFound:
		return "found"
	case StateNotFound:
		return "not_found"
	case StateCancelled:
		return "cancelled"
	default:
		return "running"
	}
}

type cameFromPair struct {
	Edge   datastructure.Edge
	NodeID string
}

// StepEvent what happened during one Step, enough for a ui to animate the search.
type StepEvent struct {
	State         SearchState
	Current       string
	Relaxed       []string
	NodesExplored int
}

// Result Edges are the traversed edges in path order, NodeIDs includes both ends.
type Result struct {
	NodeIDs       []string
	Edges         []datastructure.Edge
	Cost          float64
	Dist          float64
	NodesExplored int
	Duration      time.Duration
}

// HaversineHeuristic great-circle distance to the target.
func HaversineHeuristic(node, target datastructure.Coordinate) float64 {
	return geo.CalculateHaversineDistance(node.Lat, node.Lon, target.Lat, target.Lon)
}

// ZeroHeuristic turns the search into plain dijkstra.
func ZeroHeuristic(_, _ datastructure.Coordinate) float64 {
	return 0
}

/*
AStar step driven A* search.

every Step call pops one node from the open set and relaxes its outgoing edges. the caller decides
the pacing: a batch caller calls Run, an animated caller calls Step between frames and may stop
calling it at any time without losing state. nodes are never reopened once closed.
ties on f are broken by insertion order into the open set.
https://www.cs.princeton.edu/courses/archive/spr06/cos423/Handouts/GH05.pdf
*/
type AStar struct {
	g         Graph
	heuristic Heuristic
	from      string
	to        string
	target    datastructure.Coordinate

	pq        *datastructure.MinHeap[string]
	costSoFar map[string]float64
	distSoFar map[string]float64
	cameFrom  map[string]cameFromPair
	closed    map[string]struct{}

	state     SearchState
	cancelled bool
	explored  int
	elapsed   time.Duration
	result    Result
}

func NewAStar(g Graph, from, to string) (*AStar, error) {
	return NewSearch(g, from, to, HaversineHeuristic)
}

func NewDijkstra(g Graph, from, to string) (*AStar, error) {
	return NewSearch(g, from, to, ZeroHeuristic)
}

func NewSearch(g Graph, from, to string, heuristic Heuristic) (*AStar, error) {
	fromCoord, ok := g.NodeCoordinate(from)
	if !ok {
		return nil, fmt.Errorf("search start %s: %w", from, datastructure.ErrNodeNotFound)
	}
	target, ok := g.NodeCoordinate(to)
	if !ok {
		return nil, fmt.Errorf("search end %s: %w", to, datastructure.ErrNodeNotFound)
	}

	a := &AStar{
		g:         g,
		heuristic: heuristic,
		from:      from,
		to:        to,
		target:    target,
		pq:        datastructure.NewMinHeap[string](),
		costSoFar: map[string]float64{from: 0},
		distSoFar: map[string]float64{from: 0},
		cameFrom:  map[string]cameFromPair{from: {NodeID: ""}},
		closed:    make(map[string]struct{}),
		state:     StateRunning,
	}
	a.pq.Insert(datastructure.NewPriorityQueueNode(heuristic(fromCoord, target), from))
	return a, nil
}

func (a *AStar) State() SearchState {
	return a.state
}

func (a *AStar) Done() bool {
	return a.state != StateRunning
}

// Cancel takes effect on the next Step.
func (a *AStar) Cancel() {
	a.cancelled = true
}

func (a *AStar) NodesExplored() int {
	return a.explored
}

// Frontier node ids currently in the open set.
func (a *AStar) Frontier() []string {
	return a.pq.Items()
}

// IsClosed reports whether the node was already expanded.
func (a *AStar) IsClosed(nodeID string) bool {
	_, ok := a.closed[nodeID]
	return ok
}

// Step expands one node. calling Step on a finished search is a no-op.
func (a *AStar) Step() StepEvent {
	if a.state != StateRunning {
		return StepEvent{State: a.state, NodesExplored: a.explored}
	}
	start := time.Now()
	defer func() {
		a.elapsed += time.Since(start)
	}()

	if a.cancelled {
		a.state = StateCancelled
		return StepEvent{State: a.state, NodesExplored: a.explored}
	}
	if a.pq.Size() == 0 {
		a.state = StateNotFound
		return StepEvent{State: a.state, NodesExplored: a.explored}
	}

	current, _ := a.pq.ExtractMin()
	if current.Item == a.to {
		a.state = StateFound
		a.result = a.buildResult()
		return StepEvent{State: a.state, Current: current.Item, NodesExplored: a.explored}
	}

	a.closed[current.Item] = struct{}{}
	a.explored++

	relaxed := make([]string, 0, 4)
	for _, edge := range a.g.OutgoingEdges(current.Item) {
		next, ok := edge.TraverseFrom(current.Item)
		if !ok {
			continue
		}
		if _, ok := a.closed[next]; ok {
			continue
		}
		cost, ok := a.g.EdgeCost(edge)
		if !ok {
			continue
		}

		newCost := a.costSoFar[current.Item] + cost
		dist := a.distSoFar[current.Item] + edge.Distance

		oldCost, seen := a.costSoFar[next]
		if seen && newCost >= oldCost {
			continue
		}
		nextCoord, ok := a.g.NodeCoordinate(next)
		if !ok {
			continue
		}

		a.costSoFar[next] = newCost
		a.distSoFar[next] = dist
		a.cameFrom[next] = cameFromPair{Edge: edge, NodeID: current.Item}
		priority := newCost + a.heuristic(nextCoord, a.target)
		if seen {
			_ = a.pq.DecreaseKey(datastructure.NewPriorityQueueNode(priority, next))
		} else {
			a.pq.Insert(datastructure.NewPriorityQueueNode(priority, next))
		}
		relaxed = append(relaxed, next)
	}

	return StepEvent{State: a.state, Current: current.Item, Relaxed: relaxed, NodesExplored: a.explored}
}

// Run steps until the search finishes or ctx is done.
func (a *AStar) Run(ctx context.Context) (Result, error) {
	for !a.Done() {
		if ctx.Err() != nil {
			a.Cancel()
		}
		a.Step()
	}
	return a.Result()
}

// Result is only meaningful once the search is done. NodesExplored and Duration are filled
// for every outcome.
func (a *AStar) Result() (Result, error) {
	switch a.state {
	case StateFound:
		res := a.result
		res.Duration = a.elapsed
		return res, nil
	case StateNotFound:
		return Result{NodesExplored: a.explored, Duration: a.elapsed},
			fmt.Errorf("from %s to %s, %d nodes explored: %w", a.from, a.to, a.explored, datastructure.ErrNoPathFound)
	case StateCancelled:
		return Result{NodesExplored: a.explored, Duration: a.elapsed},
			fmt.Errorf("after %d nodes explored: %w", a.explored, datastructure.ErrCancelled)
	default:
		return Result{NodesExplored: a.explored, Duration: a.elapsed}, ErrSearchRunning
	}
}

func (a *AStar) buildResult() Result {
	nodeIDs := []string{}
	edges := []datastructure.Edge{}
	for curr := a.to; curr != a.from; {
		pair := a.cameFrom[curr]
		nodeIDs = append(nodeIDs, curr)
		edges = append(edges, pair.Edge)
		curr = pair.NodeID
	}
	nodeIDs = append(nodeIDs, a.from)

	return Result{
		NodeIDs:       util.ReverseG(nodeIDs),
		Edges:         util.ReverseG(edges),
		Cost:          a.costSoFar[a.to],
		Dist:          a.distSoFar[a.to],
		NodesExplored: a.explored,
	}
}
