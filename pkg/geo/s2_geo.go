package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/roadnav/pkg/datastructure"
)

// Projection result of projecting a point onto a segment. T is the interpolation fraction
// from the segment start, always in [0,1].
type Projection struct {
	Point datastructure.Coordinate
	T     float64
}

/*
ProjectOntoSegment closest point of segment (s,e) to p, lat/lon treated as a flat plane.

good enough at city scale. if s == e the segment start is returned with T = 0.
*/
func ProjectOntoSegment(p, s, e datastructure.Coordinate) Projection {
	dLat := e.Lat - s.Lat
	dLon := e.Lon - s.Lon
	lenSq := dLat*dLat + dLon*dLon
	if lenSq == 0 {
		return Projection{Point: s, T: 0}
	}

	t := ((p.Lat-s.Lat)*dLat + (p.Lon-s.Lon)*dLon) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Projection{
		Point: Interpolate(s, e, t),
		T:     t,
	}
}

// Interpolate linear interpolation between a and b at fraction t.
func Interpolate(a, b datastructure.Coordinate, t float64) datastructure.Coordinate {
	return datastructure.NewCoordinate(a.Lat+(b.Lat-a.Lat)*t, a.Lon+(b.Lon-a.Lon)*t)
}

// SegmentBoundingRect bounding rectangle of segment (a,b) grown by padMeter on every side.
func SegmentBoundingRect(a, b datastructure.Coordinate, padMeter float64) s2.Rect {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	rect = rect.AddPoint(s2.LatLngFromDegrees(b.Lat, b.Lon))
	if padMeter <= 0 {
		return rect
	}
	latPad := s1.Angle(padMeter / earthRadiusM).Degrees()
	cosLat := math.Max(math.Cos(degreeToRadians(math.Max(math.Abs(a.Lat), math.Abs(b.Lat)))), 1e-6)
	lngPad := latPad / cosLat

	lo := rect.Lo()
	hi := rect.Hi()
	padded := s2.RectFromLatLng(s2.LatLngFromDegrees(math.Max(lo.Lat.Degrees()-latPad, -90), math.Max(lo.Lng.Degrees()-lngPad, -180)))
	return padded.AddPoint(s2.LatLngFromDegrees(math.Min(hi.Lat.Degrees()+latPad, 90), math.Min(hi.Lng.Degrees()+lngPad, 180)))
}

// RectContains reports whether c lies inside rect.
func RectContains(rect s2.Rect, c datastructure.Coordinate) bool {
	return rect.ContainsLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}
