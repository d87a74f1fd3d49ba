package datastructure

import (
	"fmt"
	"strings"
)

type RoadStatus uint8

const (
	StatusNormal RoadStatus = iota
	StatusBlocked
	StatusCongested
	// StatusInPath is only used for rendering, it is never stored in the overlay.
	StatusInPath
)

// CongestionFactor multiplies the distance of a congested edge.
const CongestionFactor = 3.0

func (s RoadStatus) String() string {
	switch s {
	case StatusBlocked:
		return "blocked"
	case StatusCongested:
		return "congested"
	case StatusInPath:
		return "in_path"
	default:
		return "normal"
	}
}

func (s RoadStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseRoadStatus accepts the names used by the ui. "clear" is an alias of normal.
func ParseRoadStatus(s string) (RoadStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blocked", "block":
		return StatusBlocked, nil
	case "congested", "congestion":
		return StatusCongested, nil
	case "normal", "clear", "":
		return StatusNormal, nil
	default:
		return StatusNormal, fmt.Errorf("unknown road status %q", s)
	}
}
