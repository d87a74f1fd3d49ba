package geo

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func TestHaversine(t *testing.T) {
	cases := []struct {
		latOne, longOne, latTwo, longTwo float64
		expectedDist                     float64
	}{
		{
			latOne:       -7.557155997491524,
			longOne:      110.77170252731288,
			latTwo:       -7.550209300671982,
			longTwo:      110.78942094938256,
			expectedDist: 2100,
		},
		{
			latOne:       -7.759889166547908,
			longOne:      110.36689459108496,
			latTwo:       -7.760335932763678,
			longTwo:      110.37671195413539,
			expectedDist: 1080,
		},
		{
			latOne:       0,
			longOne:      0,
			latTwo:       0,
			longTwo:      0.001,
			expectedDist: 111.19,
		},
	}

	t.Run("success haversine distance", func(t *testing.T) {
		for _, c := range cases {
			dist := CalculateHaversineDistance(c.latOne, c.longOne, c.latTwo, c.longTwo)
			assert.InDelta(t, c.expectedDist, dist, c.expectedDist*0.01)
		}
	})

	t.Run("symmetric, triangle inequality and agrees with s2", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 500; i++ {
			a := datastructure.NewCoordinate(-7.8+rng.Float64()*0.2, 110.3+rng.Float64()*0.2)
			b := datastructure.NewCoordinate(-7.8+rng.Float64()*0.2, 110.3+rng.Float64()*0.2)
			c := datastructure.NewCoordinate(-7.8+rng.Float64()*0.2, 110.3+rng.Float64()*0.2)

			ab := CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
			ba := CalculateHaversineDistance(b.Lat, b.Lon, a.Lat, a.Lon)
			bc := CalculateHaversineDistance(b.Lat, b.Lon, c.Lat, c.Lon)
			ac := CalculateHaversineDistance(a.Lat, a.Lon, c.Lat, c.Lon)

			assert.InDelta(t, ab, ba, 1e-6)
			assert.LessOrEqual(t, ac, ab+bc+1e-6)
			s2Dist := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon)).Radians() * earthRadiusM
			assert.InDelta(t, ab, s2Dist, 0.01)
		}
	})
}

func TestProjectOntoSegment(t *testing.T) {
	s := datastructure.NewCoordinate(0, 0)
	e := datastructure.NewCoordinate(0, 0.002)

	t.Run("projection in the middle", func(t *testing.T) {
		p := ProjectOntoSegment(datastructure.NewCoordinate(0.0005, 0.0005), s, e)
		assert.InDelta(t, 0.25, p.T, 1e-9)
		assert.InDelta(t, 0.0, p.Point.Lat, 1e-12)
		assert.InDelta(t, 0.0005, p.Point.Lon, 1e-12)
	})

	t.Run("clamped to endpoints", func(t *testing.T) {
		before := ProjectOntoSegment(datastructure.NewCoordinate(0, -1), s, e)
		assert.Equal(t, 0.0, before.T)
		assert.True(t, before.Point.Equal(s))

		after := ProjectOntoSegment(datastructure.NewCoordinate(0.001, 1), s, e)
		assert.Equal(t, 1.0, after.T)
		assert.True(t, after.Point.Equal(e))
	})

	t.Run("degenerate segment", func(t *testing.T) {
		p := ProjectOntoSegment(datastructure.NewCoordinate(1, 1), s, s)
		assert.Equal(t, 0.0, p.T)
		assert.True(t, p.Point.Equal(s))
	})

	t.Run("close to the s2 projection at city scale", func(t *testing.T) {
		a := datastructure.NewCoordinate(-7.7600, 110.3700)
		b := datastructure.NewCoordinate(-7.7610, 110.3750)
		q := datastructure.NewCoordinate(-7.7590, 110.3720)
		flat := ProjectOntoSegment(q, a, b).Point
		projected := s2.LatLngFromPoint(s2.Project(
			s2.PointFromLatLng(s2.LatLngFromDegrees(q.Lat, q.Lon)),
			s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon)),
			s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon)),
		))
		sphere := datastructure.NewCoordinate(projected.Lat.Degrees(), projected.Lng.Degrees())
		assert.Less(t, CalculateHaversineDistance(flat.Lat, flat.Lon, sphere.Lat, sphere.Lon), 2.0)
	})
}

func TestSegmentBoundingRect(t *testing.T) {
	a := datastructure.NewCoordinate(-7.76, 110.37)
	b := datastructure.NewCoordinate(-7.75, 110.38)

	rect := SegmentBoundingRect(a, b, 0)
	assert.True(t, RectContains(rect, Interpolate(a, b, 0.5)))
	assert.False(t, RectContains(rect, datastructure.NewCoordinate(-7.7499, 110.38)))

	padded := SegmentBoundingRect(a, b, 50)
	assert.True(t, RectContains(padded, datastructure.NewCoordinate(-7.7499, 110.38)))
	assert.True(t, RectContains(padded, datastructure.NewCoordinate(-7.76, 110.3696)))
	assert.False(t, RectContains(padded, datastructure.NewCoordinate(-7.749, 110.38)))
	assert.False(t, RectContains(padded, datastructure.NewCoordinate(-7.76, 110.369)))
}

func TestDouglasPeucker(t *testing.T) {
	lineCoords := []datastructure.Coordinate{
		{Lat: -7.565837, Lon: 110.831586},
		{Lat: -7.566063, Lon: 110.832379},
		{Lat: -7.566406, Lon: 110.833232},
	}

	simplified := RamesDouglasPeucker(lineCoords, 0)
	assert.Len(t, simplified, 2)

	corner := []datastructure.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.001},
		{Lat: 0.001, Lon: 0.001},
	}
	assert.Len(t, RamesDouglasPeucker(corner, 0), 3)
}

func TestBearingTo(t *testing.T) {
	assert.InDelta(t, 0, BearingTo(0, 0, 0.001, 0), 1e-9)
	assert.InDelta(t, 90, BearingTo(0, 0, 0, 0.001), 1e-9)
	assert.InDelta(t, 180, BearingTo(0.001, 0, 0, 0), 1e-9)
	assert.InDelta(t, -90, BearingTo(0, 0.001, 0, 0), 1e-9)
}
