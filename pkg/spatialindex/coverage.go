package spatialindex

import (
	"runtime"
	"sort"

	"github.com/lintang-b-s/roadnav/pkg/concurrent"
	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/uber/h3-go/v4"
)

// DefaultResolution h3 resolution 9 cells are about 0.1 km2.
const DefaultResolution = 9

type CoverageCell struct {
	Cell   string                   `json:"cell"`
	Nodes  int                      `json:"nodes"`
	Center datastructure.Coordinate `json:"center"`
}

// Coverage h3 cells holding at least one graph node.
type Coverage struct {
	Resolution  int                `json:"resolution"`
	Cells       []CoverageCell     `json:"cells"`
	AreaKm2     float64            `json:"area_km2"`
	BoundingBox *graph.BoundingBox `json:"bounding_box,omitempty"`
	cellSet     map[h3.Cell]struct{}
}

// coverageBatch number of nodes per worker job.
const coverageBatch = 4096

func countCells(job concurrent.NodeCellJobItem) map[h3.Cell]int {
	counts := make(map[h3.Cell]int)
	for _, n := range job.Nodes {
		cell := h3.LatLngToCell(h3.NewLatLng(n.Lat, n.Lon), job.Resolution)
		counts[cell]++
	}
	return counts
}

func BuildCoverage(g *graph.Graph, resolution int) Coverage {
	nodes := g.Nodes()
	batches := (len(nodes) + coverageBatch - 1) / coverageBatch

	workers := concurrent.NewWorkerPool[concurrent.NodeCellJobItem, map[h3.Cell]int](runtime.GOMAXPROCS(0), batches)
	for start := 0; start < len(nodes); start += coverageBatch {
		end := min(start+coverageBatch, len(nodes))
		workers.AddJob(concurrent.NodeCellJobItem{Nodes: nodes[start:end], Resolution: resolution})
	}
	workers.Close()
	workers.Start(countCells)
	workers.Wait()

	counts := make(map[h3.Cell]int)
	for partial := range workers.CollectResults() {
		for cell, count := range partial {
			counts[cell] += count
		}
	}

	cov := Coverage{
		Resolution: resolution,
		Cells:      make([]CoverageCell, 0, len(counts)),
		cellSet:    make(map[h3.Cell]struct{}, len(counts)),
	}
	for cell, count := range counts {
		center := h3.CellToLatLng(cell)
		cov.Cells = append(cov.Cells, CoverageCell{
			Cell:   cell.String(),
			Nodes:  count,
			Center: datastructure.NewCoordinate(center.Lat, center.Lng),
		})
		cov.AreaKm2 += h3.CellAreaKm2(cell)
		cov.cellSet[cell] = struct{}{}
	}
	sort.Slice(cov.Cells, func(i, j int) bool {
		return cov.Cells[i].Cell < cov.Cells[j].Cell
	})
	if bb, ok := g.BoundingBox(); ok {
		cov.BoundingBox = &bb
	}
	return cov
}

// Covers reports whether p falls in a covered cell or in one of its direct neighbours.
func (c Coverage) Covers(p datastructure.Coordinate) bool {
	origin := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lon), c.Resolution)
	for _, cell := range h3.GridDisk(origin, 1) {
		if _, ok := c.cellSet[cell]; ok {
			return true
		}
	}
	return false
}
