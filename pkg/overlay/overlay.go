package overlay

import (
	"slices"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
)

/*
Overlay road status layered on top of the graph store, keyed by edge id.

blocked and congested are disjoint: setting one status removes the edge from the other set.
ids of edges that no longer exist in the graph are harmless, they are simply never looked up.
*/
type Overlay struct {
	blocked   map[string]struct{}
	congested map[string]struct{}
}

func New() *Overlay {
	return &Overlay{
		blocked:   make(map[string]struct{}),
		congested: make(map[string]struct{}),
	}
}

func (o *Overlay) Classify(edgeID string) datastructure.RoadStatus {
	if _, ok := o.blocked[edgeID]; ok {
		return datastructure.StatusBlocked
	}
	if _, ok := o.congested[edgeID]; ok {
		return datastructure.StatusCongested
	}
	return datastructure.StatusNormal
}

// Set StatusNormal clears the edge. StatusInPath is not an overlay status and is ignored.
func (o *Overlay) Set(edgeID string, status datastructure.RoadStatus) {
	switch status {
	case datastructure.StatusBlocked:
		delete(o.congested, edgeID)
		o.blocked[edgeID] = struct{}{}
	case datastructure.StatusCongested:
		delete(o.blocked, edgeID)
		o.congested[edgeID] = struct{}{}
	case datastructure.StatusNormal:
		delete(o.blocked, edgeID)
		delete(o.congested, edgeID)
	}
}

// Apply sets status on every id and returns the number of ids.
func (o *Overlay) Apply(edgeIDs []string, status datastructure.RoadStatus) int {
	for _, id := range edgeIDs {
		o.Set(id, status)
	}
	return len(edgeIDs)
}

func (o *Overlay) ClearAll() {
	clear(o.blocked)
	clear(o.congested)
}

// Inherit moves the status of oldID to every id in newIDs and forgets oldID.
func (o *Overlay) Inherit(oldID string, newIDs ...string) {
	status := o.Classify(oldID)
	o.Set(oldID, datastructure.StatusNormal)
	if status == datastructure.StatusNormal {
		return
	}
	for _, id := range newIDs {
		o.Set(id, status)
	}
}

// Multiplier cost factor of a stored edge. ok is false for blocked edges.
func (o *Overlay) Multiplier(edgeID string) (float64, bool) {
	switch o.Classify(edgeID) {
	case datastructure.StatusBlocked:
		return 0, false
	case datastructure.StatusCongested:
		return datastructure.CongestionFactor, true
	default:
		return 1, true
	}
}

// Blocked sorted ids of blocked edges.
func (o *Overlay) Blocked() []string {
	return sortedKeys(o.blocked)
}

// Congested sorted ids of congested edges.
func (o *Overlay) Congested() []string {
	return sortedKeys(o.congested)
}

func (o *Overlay) Len() int {
	return len(o.blocked) + len(o.congested)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
