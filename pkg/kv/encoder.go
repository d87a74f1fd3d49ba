package kv

import (
	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
	"github.com/lintang-b-s/roadnav/pkg/graph"
)

// snapshotRecord stored value of a saved graph.
type snapshotRecord struct {
	Nodes []graph.SnapshotNode
	Edges []graph.SnapshotEdge
}

func encodeSnapshot(snap graph.Snapshot) ([]byte, error) {
	bb, err := binary.Marshal(snapshotRecord{Nodes: snap.Nodes, Edges: snap.Edges})
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeSnapshot(bbCompressed []byte) (graph.Snapshot, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return graph.Snapshot{}, err
	}
	var rec snapshotRecord
	if err := binary.Unmarshal(bb, &rec); err != nil {
		return graph.Snapshot{}, err
	}
	if rec.Nodes == nil {
		rec.Nodes = []graph.SnapshotNode{}
	}
	if rec.Edges == nil {
		rec.Edges = []graph.SnapshotEdge{}
	}
	return graph.Snapshot{Nodes: rec.Nodes, Edges: rec.Edges}, nil
}

func encodeMeta(meta SnapshotMeta) ([]byte, error) {
	return binary.Marshal(meta)
}

func decodeMeta(bb []byte) (SnapshotMeta, error) {
	var meta SnapshotMeta
	err := binary.Unmarshal(bb, &meta)
	return meta, err
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
