package concurrent

import (
	"github.com/lintang-b-s/roadnav/pkg/datastructure"
)

// WayEdgesJobItem the nodes of one osm way that are present in the extract, in way order.
type WayEdgesJobItem struct {
	Index   int
	WayID   int64
	NodeIDs []int64
	Coords  []datastructure.Coordinate
	Name    string
	OneWay  bool
	Forward bool
}

func NewWayEdgesJobItem(index int, wayID int64, name string, oneWay, forward bool) WayEdgesJobItem {
	return WayEdgesJobItem{
		Index:   index,
		WayID:   wayID,
		NodeIDs: make([]int64, 0),
		Coords:  make([]datastructure.Coordinate, 0),
		Name:    name,
		OneWay:  oneWay,
		Forward: forward,
	}
}

// NodeCellJobItem a batch of nodes whose h3 cells are computed by one worker.
type NodeCellJobItem struct {
	Nodes      []datastructure.Node
	Resolution int
}

type JobI interface {
	WayEdgesJobItem | NodeCellJobItem
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}
type JobFunc[T JobI, G any] func(job T) G
