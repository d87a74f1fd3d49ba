package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/lintang-b-s/roadnav/pkg/concurrent"
	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/geo"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type Format int

const (
	FormatPBF Format = iota
	FormatXML
)

// FormatFromPath .osm and .xml are read as osm xml, everything else as pbf.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".osm", ".xml":
		return FormatXML
	default:
		return FormatPBF
	}
}

type nodeCoord struct {
	lat float64
	lon float64
}

type wayData struct {
	id      int64
	nodes   []int64
	name    string
	highway string
	oneWay  bool
	forward bool
}

type ParseStats struct {
	TotalNodes   int `json:"total_nodes"`
	TotalWays    int `json:"total_ways"`
	IncludedWays int `json:"included_ways"`
	ExcludedWays int `json:"excluded_ways"`
	MissingNodes int `json:"missing_nodes"`
	POIs         int `json:"pois"`
}

type OsmParser struct {
	nodes   map[int64]nodeCoord
	pois    map[int64]string
	ways    []wayData
	stats   ParseStats
	workers int
	log     *zap.Logger
}

func NewOSMParser(log *zap.Logger) *OsmParser {
	return &OsmParser{
		nodes:   make(map[int64]nodeCoord),
		pois:    make(map[int64]string),
		ways:    make([]wayData, 0),
		workers: runtime.GOMAXPROCS(0),
		log:     log,
	}
}

func (p *OsmParser) Stats() ParseStats {
	return p.stats
}

func (p *OsmParser) ParseFile(ctx context.Context, mapFile string) (graph.Snapshot, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return graph.Snapshot{}, err
	}
	defer f.Close()
	return p.Parse(ctx, f, FormatFromPath(mapFile))
}

/*
Parse read an osm document and convert its drivable ways into a graph snapshot.

every pair of consecutive way nodes becomes one edge weighted by its haversine length in
meter, node ids are the osm node ids. ways tagged oneway=yes|true|1 and motorways are one-way,
oneway=-1 is one-way against the node order.
*/
func (p *OsmParser) Parse(ctx context.Context, r io.Reader, format Format) (graph.Snapshot, error) {
	var scanner osm.Scanner
	switch format {
	case FormatXML:
		scanner = osmxml.New(ctx, r)
	default:
		scanner = osmpbf.New(ctx, r, p.workers)
	}
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			p.stats.TotalNodes++
			p.nodes[int64(o.ID)] = nodeCoord{lat: o.Lat, lon: o.Lon}
			if name, ok := poiName(o.Tags); ok {
				p.pois[int64(o.ID)] = name
			}
		case *osm.Way:
			p.stats.TotalWays++
			if (p.stats.TotalWays+1)%50000 == 0 {
				p.log.Info("reading openstreetmap ways", zap.Int("ways", p.stats.TotalWays+1))
			}
			way, ok := acceptOsmWay(o)
			if !ok {
				p.stats.ExcludedWays++
				continue
			}
			p.stats.IncludedWays++
			p.ways = append(p.ways, way)
		}
	}
	if err := scanner.Err(); err != nil {
		return graph.Snapshot{}, fmt.Errorf("scan osm: %w", err)
	}

	snap := p.buildSnapshot()
	p.log.Info("openstreetmap parsed",
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)),
		zap.Int("included_ways", p.stats.IncludedWays),
		zap.Int("excluded_ways", p.stats.ExcludedWays))
	return snap, nil
}

func (p *OsmParser) buildSnapshot() graph.Snapshot {
	snap := graph.Snapshot{
		Nodes: make([]graph.SnapshotNode, 0),
		Edges: make([]graph.SnapshotEdge, 0),
	}
	added := make(map[int64]struct{})
	addNode := func(id int64) bool {
		coord, ok := p.nodes[id]
		if !ok {
			p.stats.MissingNodes++
			return false
		}
		if _, ok := added[id]; ok {
			return true
		}
		added[id] = struct{}{}
		node := graph.SnapshotNode{
			ID:  strconv.FormatInt(id, 10),
			Lat: coord.lat,
			Lng: coord.lon,
		}
		if name, ok := p.pois[id]; ok {
			node.Name = name
			node.IsPOI = true
			p.stats.POIs++
		}
		snap.Nodes = append(snap.Nodes, node)
		return true
	}

	jobs := make([]concurrent.WayEdgesJobItem, 0, len(p.ways))
	for i, way := range p.ways {
		item := concurrent.NewWayEdgesJobItem(i, way.id, way.name, way.oneWay, way.forward)
		for _, id := range way.nodes {
			if addNode(id) {
				coord := p.nodes[id]
				item.NodeIDs = append(item.NodeIDs, id)
				item.Coords = append(item.Coords, datastructure.NewCoordinate(coord.lat, coord.lon))
			}
		}
		jobs = append(jobs, item)
	}

	workers := concurrent.NewWorkerPool[concurrent.WayEdgesJobItem, wayEdges](p.workers, len(jobs))
	for _, job := range jobs {
		workers.AddJob(job)
	}
	workers.Close()
	workers.Start(buildWayEdges)
	workers.Wait()

	perWay := make([][]graph.SnapshotEdge, len(jobs))
	for res := range workers.CollectResults() {
		perWay[res.index] = res.edges
	}
	for _, edges := range perWay {
		snap.Edges = append(snap.Edges, edges...)
	}
	return snap
}

type wayEdges struct {
	index int
	edges []graph.SnapshotEdge
}

// buildWayEdges one edge per pair of consecutive way nodes, edge ids keep the position in the way.
func buildWayEdges(way concurrent.WayEdgesJobItem) wayEdges {
	res := wayEdges{index: way.Index, edges: make([]graph.SnapshotEdge, 0, len(way.NodeIDs))}
	for i := 1; i < len(way.NodeIDs); i++ {
		from, to := way.NodeIDs[i-1], way.NodeIDs[i]
		if from == to {
			continue
		}
		a, b := way.Coords[i-1], way.Coords[i]
		if way.OneWay && !way.Forward {
			from, to = to, from
		}
		res.edges = append(res.edges, graph.SnapshotEdge{
			ID:            fmt.Sprintf("w%d-%d", way.WayID, i-1),
			From:          strconv.FormatInt(from, 10),
			To:            strconv.FormatInt(to, 10),
			Distance:      geo.CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon),
			Bidirectional: !way.OneWay,
			Name:          way.Name,
		})
	}
	return res
}

var allowedHighway = map[string]struct{}{
	"motorway":       {},
	"trunk":          {},
	"primary":        {},
	"secondary":      {},
	"tertiary":       {},
	"unclassified":   {},
	"residential":    {},
	"motorway_link":  {},
	"trunk_link":     {},
	"primary_link":   {},
	"secondary_link": {},
	"tertiary_link":  {},
	"living_street":  {},
	"service":        {},
	"road":           {},
}

func acceptOsmWay(way *osm.Way) (wayData, bool) {
	highway := way.Tags.Find("highway")
	if _, ok := allowedHighway[highway]; !ok {
		return wayData{}, false
	}
	if len(way.Nodes) < 2 {
		return wayData{}, false
	}

	data := wayData{
		id:      int64(way.ID),
		nodes:   make([]int64, 0, len(way.Nodes)),
		highway: highway,
		forward: true,
	}
	for _, n := range way.Nodes {
		data.nodes = append(data.nodes, int64(n.ID))
	}

	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		data.oneWay = true
	case "-1", "reverse":
		data.oneWay = true
		data.forward = false
	}
	if highway == "motorway" {
		data.oneWay = true
	}

	data.name = way.Tags.Find("name")
	if data.name == "" {
		data.name = way.Tags.Find("ref")
	}
	if data.name == "" {
		data.name = fmt.Sprintf("Way %d", way.ID)
	}
	return data, true
}

// poiName named amenity, shop or tourism nodes are kept as points of interest.
func poiName(tags osm.Tags) (string, bool) {
	name := tags.Find("name")
	if name == "" {
		return "", false
	}
	for _, key := range []string{"amenity", "shop", "tourism"} {
		if tags.Find(key) != "" {
			return name, true
		}
	}
	return "", false
}
