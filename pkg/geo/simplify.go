package geo

import (
	"container/list"
	"math"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
)

const (
	DOUGLAS_PEUCKER_THRESHOLDS = 7.0 // 7 meter
)

// PointLinePerpendicularDistance distance in meter from p to the segment (a,b).
func PointLinePerpendicularDistance(a, b, p datastructure.Coordinate) float64 {
	proj := ProjectOntoSegment(p, a, b)
	return CalculateHaversineDistance(p.Lat, p.Lon, proj.Point.Lat, proj.Point.Lon)
}

// RamesDouglasPeucker simplify a route geometry for drawing, the first and last point are always kept.
// https://cartography-playground.gitlab.io/playgrounds/douglas-peucker-algorithm/
func RamesDouglasPeucker(coords []datastructure.Coordinate, threshold float64) []datastructure.Coordinate {
	size := len(coords)
	if size <= 2 {
		return coords
	}
	if threshold <= 0 {
		threshold = DOUGLAS_PEUCKER_THRESHOLDS
	}

	kepts := make([]bool, size)
	kepts[0] = true
	kepts[size-1] = true

	stack := list.New()
	stack.PushBack([2]int{0, size - 1})

	for stack.Len() > 0 {
		pair := stack.Remove(stack.Back()).([2]int)
		left, right := pair[0], pair[1]
		maxDist := math.Inf(-1)
		farthestIndex := left

		for i := left + 1; i < right; i++ {
			dist := PointLinePerpendicularDistance(coords[left], coords[right], coords[i])
			if dist > maxDist {
				maxDist = dist
				farthestIndex = i
			}
		}

		if maxDist > threshold {
			kepts[farthestIndex] = true
			stack.PushBack([2]int{left, farthestIndex})
			stack.PushBack([2]int{farthestIndex, right})
		}
	}

	simplified := make([]datastructure.Coordinate, 0)
	for i, necessary := range kepts {
		if necessary {
			simplified = append(simplified, coords[i])
		}
	}
	return simplified
}
