package util

import (
	"math"
)

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

// RemoveFirst removes the first occurrence of target from arr, keeping the order of the rest.
func RemoveFirst[T comparable](arr []T, target T) []T {
	for i, v := range arr {
		if v == target {
			return append(arr[:i], arr[i+1:]...)
		}
	}
	return arr
}
