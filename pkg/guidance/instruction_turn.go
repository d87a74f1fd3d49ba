package guidance

import (
	"math"

	"github.com/lintang-b-s/roadnav/pkg/geo"
)

const (
	DEGREE_TO_RADIANS = 0.017453292519943295
)

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func isTurn(sign int) bool {
	s := abs(sign)
	return s == TURN_SLIGHT_RIGHT || s == TURN_RIGHT || s == TURN_SHARP_RIGHT
}

func toRadians(degrees float64) float64 {
	return degrees * DEGREE_TO_RADIANS
}

func alignOrientation(baseOrientation, orientation float64) float64 {
	var resultOrientation float64
	if baseOrientation >= 0 {
		if orientation < -math.Pi+baseOrientation {
			resultOrientation = orientation + 2*math.Pi
		} else {
			resultOrientation = orientation
		}
	} else if orientation > math.Pi+baseOrientation {
		resultOrientation = orientation - 2*math.Pi
	} else {
		resultOrientation = orientation
	}
	return resultOrientation
}

func isSameName(name1, name2 string) bool {
	if name1 == "" || name2 == "" {
		// nama street kosong tidak dianggap sama
		return false
	}
	return name1 == name2
}

func calcOrientation(lat1, lon1, lat2, lon2 float64) float64 {
	return toRadians(geo.BearingTo(lat1, lon1, lat2, lon2))
}

func calculateOrientationDelta(prevLatitude, prevLongitude, latitude, longitude, prevOrientation float64) float64 {
	orientation := calcOrientation(prevLatitude, prevLongitude, latitude, longitude)
	orientation = alignOrientation(prevOrientation, orientation)
	return orientation - prevOrientation
}

func getTurnDirection(prevLatitude, prevLongitude, latitude, longitude, prevOrientation float64) int {
	delta := calculateOrientationDelta(prevLatitude, prevLongitude, latitude, longitude, prevOrientation)
	absDelta := math.Abs(delta)
	deltaDegree := absDelta * (180 / math.Pi)
	if deltaDegree < 12 {
		// 12°
		return CONTINUE_ON_STREET
	} else if deltaDegree < 40 {
		if delta < 0 {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	} else if deltaDegree < 105 {
		if delta < 0 {
			return TURN_LEFT
		}
		return TURN_RIGHT
	} else if delta < 0 {
		return TURN_SHARP_LEFT
	}
	return TURN_SHARP_RIGHT
}
