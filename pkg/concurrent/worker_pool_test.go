package concurrent

import (
	"testing"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	const jobs = 100
	workers := NewWorkerPool[WayEdgesJobItem, int](8, jobs)
	for i := 0; i < jobs; i++ {
		item := NewWayEdgesJobItem(i, int64(i), "", false, true)
		item.Coords = append(item.Coords, datastructure.NewCoordinate(0, 0))
		workers.AddJob(item)
	}
	workers.Close()
	workers.Start(func(job WayEdgesJobItem) int {
		return job.Index
	})
	workers.Wait()

	seen := make(map[int]bool, jobs)
	for idx := range workers.CollectResults() {
		seen[idx] = true
	}
	assert.Len(t, seen, jobs)
	assert.True(t, seen[0])
	assert.True(t, seen[jobs-1])
}

func TestWorkerPoolNoJobs(t *testing.T) {
	workers := NewWorkerPool[NodeCellJobItem, int](0, 0)
	workers.Close()
	workers.Start(func(job NodeCellJobItem) int { return len(job.Nodes) })
	workers.Wait()

	count := 0
	for range workers.CollectResults() {
		count++
	}
	assert.Zero(t, count)
}
