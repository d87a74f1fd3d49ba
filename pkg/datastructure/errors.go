package datastructure

import "errors"

var (
	ErrInvalidGraphFormat    = errors.New("invalid graph format")
	ErrNoRoadNearby          = errors.New("no road nearby")
	ErrNoPathConnectingEdges = errors.New("no path connecting the selected roads")
	ErrNoPathFound           = errors.New("no path found")
	ErrCancelled             = errors.New("search cancelled")

	ErrNodeNotFound   = errors.New("node not found")
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrDuplicateNode  = errors.New("duplicate node id")
	ErrDuplicateEdge  = errors.New("duplicate edge id")
	ErrNegativeWeight = errors.New("negative or non-finite edge distance")
)
