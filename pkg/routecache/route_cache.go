package routecache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/pebble"
	kbinary "github.com/kelindar/binary"
	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"go.uber.org/zap"
)

// coordinates are rounded to 1e-6 degree (about 11 cm) in cache keys.
const coordScale = 1e6

type cachedRoute struct {
	NodeIDs       []string
	Lats          []float64
	Lons          []float64
	EdgeIDs       []string
	Cost          float64
	Dist          float64
	NodesExplored int
	DurationNs    int64
}

type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Version uint64 `json:"version"`
}

/*
RouteCache found routes persisted in pebble.

keys are prefixed with the engine version (8 byte big endian) so a route computed on an older graph
or older road status is never returned. entries of older versions are deleted the first time a newer
version is seen, and everything is deleted on open because versions restart with the process.
*/
type RouteCache struct {
	db      *pebble.DB
	log     *zap.Logger
	version uint64
	hits    atomic.Uint64
	misses  atomic.Uint64
}

func Open(dir string, log *zap.Logger) (*RouteCache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", dir, err)
	}
	c := &RouteCache{db: db, log: log}
	if err := c.purgeBefore(math.MaxUint64); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *RouteCache) Close() error {
	return c.db.Close()
}

// Get ok is false on a miss.
func (c *RouteCache) Get(version uint64, algo string, start, end datastructure.Coordinate) (datastructure.PathResult, bool, error) {
	if err := c.observe(version); err != nil {
		return datastructure.PathResult{}, false, err
	}
	val, closer, err := c.db.Get(routeKey(version, algo, start, end))
	if errors.Is(err, pebble.ErrNotFound) {
		c.misses.Add(1)
		return datastructure.PathResult{}, false, nil
	}
	if err != nil {
		return datastructure.PathResult{}, false, err
	}
	defer closer.Close()

	var rec cachedRoute
	if err := kbinary.Unmarshal(val, &rec); err != nil {
		return datastructure.PathResult{}, false, err
	}
	c.hits.Add(1)
	return rec.toPathResult(), true, nil
}

// Put only found routes are stored.
func (c *RouteCache) Put(version uint64, algo string, start, end datastructure.Coordinate, res datastructure.PathResult) error {
	if !res.Found {
		return nil
	}
	if err := c.observe(version); err != nil {
		return err
	}
	val, err := kbinary.Marshal(newCachedRoute(res))
	if err != nil {
		return err
	}
	return c.db.Set(routeKey(version, algo, start, end), val, pebble.NoSync)
}

func (c *RouteCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Version: c.version,
	}
}

// observe purges every entry older than version the first time version is seen.
func (c *RouteCache) observe(version uint64) error {
	if version <= c.version {
		return nil
	}
	if err := c.purgeBefore(version); err != nil {
		return err
	}
	c.version = version
	return nil
}

func (c *RouteCache) purgeBefore(version uint64) error {
	start := versionPrefix(0)
	end := versionPrefix(version)
	if err := c.db.DeleteRange(start, end, pebble.NoSync); err != nil {
		return fmt.Errorf("purge route cache: %w", err)
	}
	c.log.Debug("route cache purged", zap.Uint64("before_version", version))
	return nil
}

func versionPrefix(version uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, version)
	return key
}

func routeKey(version uint64, algo string, start, end datastructure.Coordinate) []byte {
	key := versionPrefix(version)
	for _, v := range []float64{start.Lat, start.Lon, end.Lat, end.Lon} {
		key = binary.BigEndian.AppendUint64(key, uint64(int64(math.Round(v*coordScale))))
	}
	return append(key, algo...)
}

func newCachedRoute(res datastructure.PathResult) cachedRoute {
	rec := cachedRoute{
		NodeIDs:       res.NodeIDs,
		Lats:          make([]float64, 0, len(res.Coordinates)),
		Lons:          make([]float64, 0, len(res.Coordinates)),
		EdgeIDs:       res.EdgeIDs,
		Cost:          res.Cost,
		Dist:          res.Dist,
		NodesExplored: res.NodesExplored,
		DurationNs:    res.Duration.Nanoseconds(),
	}
	for _, c := range res.Coordinates {
		rec.Lats = append(rec.Lats, c.Lat)
		rec.Lons = append(rec.Lons, c.Lon)
	}
	return rec
}

func (r cachedRoute) toPathResult() datastructure.PathResult {
	nodeIDs := r.NodeIDs
	if nodeIDs == nil {
		nodeIDs = []string{}
	}
	edgeIDs := r.EdgeIDs
	if edgeIDs == nil {
		edgeIDs = []string{}
	}
	return datastructure.NewPathResult(nodeIDs, datastructure.NewCoordinates(r.Lats, r.Lons), edgeIDs,
		r.Cost, r.Dist, r.NodesExplored, time.Duration(r.DurationNs))
}
