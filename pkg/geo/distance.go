package geo

import "math"

const earthRadiusM = 6371000.0

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func radiansToDegree(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// CalculateHaversineDistance great-circle distance in meter.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(math.Min(1, a)))
	return earthRadiusM * c
}

// MetersToDegree rough conversion of a distance along a meridian, used to pad search boxes.
func MetersToDegree(m float64) float64 {
	return radiansToDegree(m / earthRadiusM)
}

// BearingTo initial great-circle bearing in degree from point one to point two, in (-180, 180].
func BearingTo(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	latTwo = degreeToRadians(latTwo)
	deltaLon := degreeToRadians(longTwo - longOne)

	y := math.Sin(deltaLon) * math.Cos(latTwo)
	x := math.Cos(latOne)*math.Sin(latTwo) - math.Sin(latOne)*math.Cos(latTwo)*math.Cos(deltaLon)
	return radiansToDegree(math.Atan2(y, x))
}
