package spatialindex

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/geo"
	"github.com/lintang-b-s/roadnav/pkg/graph"
)

// every segment box is grown by this many meters so degenerate (zero length) boxes never reach the tree.
const boxPadding = 0.5

type segment struct {
	edge  datastructure.Edge
	a     datastructure.Coordinate
	b     datastructure.Coordinate
	order int
	rect  rtreego.Rect
}

func (s *segment) Bounds() rtreego.Rect {
	return s.rect
}

// NearbySegment road segment near a query point, Distance in meter.
type NearbySegment struct {
	Edge       datastructure.Edge
	From       datastructure.Coordinate
	To         datastructure.Coordinate
	Projection geo.Projection
	Distance   float64
}

// SegmentIndex r-tree over the edges of a graph, points are (lat, lon).
type SegmentIndex struct {
	tree  *rtreego.Rtree
	count int
}

func BuildSegmentIndex(g *graph.Graph) (*SegmentIndex, error) {
	tree := rtreego.NewTree(2, 25, 50)
	for i, e := range g.Edges() {
		a, _ := g.Node(e.A)
		b, _ := g.Node(e.B)
		rect, err := boundsOf(a.Coordinate(), b.Coordinate())
		if err != nil {
			return nil, err
		}
		tree.Insert(&segment{
			edge:  e,
			a:     a.Coordinate(),
			b:     b.Coordinate(),
			order: i,
			rect:  rect,
		})
	}
	return &SegmentIndex{tree: tree, count: g.EdgeCount()}, nil
}

func (s *SegmentIndex) Size() int {
	return s.count
}

func boundsOf(a, b datastructure.Coordinate) (rtreego.Rect, error) {
	rect := geo.SegmentBoundingRect(a, b, boxPadding)
	lo := rtreego.Point{rect.Lo().Lat.Degrees(), rect.Lo().Lng.Degrees()}
	hi := rtreego.Point{rect.Hi().Lat.Degrees(), rect.Hi().Lng.Degrees()}
	return rtreego.NewRectFromPoints(lo, hi)
}

// NearbySegments up to k segments within radius meter of p, nearest first. k <= 0 means no limit.
func (s *SegmentIndex) NearbySegments(p datastructure.Coordinate, radius float64, k int) ([]NearbySegment, error) {
	latPad := geo.MetersToDegree(radius)
	lonPad := latPad / math.Max(math.Cos(p.Lat*math.Pi/180), 1e-6)
	box, err := rtreego.NewRectFromPoints(
		rtreego.Point{p.Lat - latPad, p.Lon - lonPad},
		rtreego.Point{p.Lat + latPad, p.Lon + lonPad},
	)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		NearbySegment
		order int
	}
	candidates := make([]candidate, 0)
	for _, obj := range s.tree.SearchIntersect(box) {
		seg := obj.(*segment)
		proj := geo.ProjectOntoSegment(p, seg.a, seg.b)
		dist := geo.CalculateHaversineDistance(p.Lat, p.Lon, proj.Point.Lat, proj.Point.Lon)
		if dist > radius {
			continue
		}
		candidates = append(candidates, candidate{
			NearbySegment: NearbySegment{
				Edge:       seg.edge,
				From:       seg.a,
				To:         seg.b,
				Projection: proj,
				Distance:   dist,
			},
			order: seg.order,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].order < candidates[j].order
	})
	if k > 0 && len(candidates) > k {
		candidates = candidates[:k]
	}

	result := make([]NearbySegment, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.NearbySegment)
	}
	return result, nil
}

// NearestSegments k segments whose boxes are closest to p, whatever the distance.
func (s *SegmentIndex) NearestSegments(p datastructure.Coordinate, k int) []NearbySegment {
	result := make([]NearbySegment, 0, k)
	for _, obj := range s.tree.NearestNeighbors(k, rtreego.Point{p.Lat, p.Lon}) {
		if obj == nil {
			continue
		}
		seg := obj.(*segment)
		proj := geo.ProjectOntoSegment(p, seg.a, seg.b)
		result = append(result, NearbySegment{
			Edge:       seg.edge,
			From:       seg.a,
			To:         seg.b,
			Projection: proj,
			Distance:   geo.CalculateHaversineDistance(p.Lat, p.Lon, proj.Point.Lat, proj.Point.Lon),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})
	return result
}
